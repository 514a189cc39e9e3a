package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ryotapoi/mdtoc/internal/clip"
	"github.com/ryotapoi/mdtoc/internal/core"
)

// app carries the collaborators and resolved settings shared by all commands.
type app struct {
	stdin           io.Reader
	stdout          io.Writer
	stderr          io.Writer
	clipboard       clip.Clipboard
	stdinIsTerminal func() bool
	now             func() time.Time

	// Global flags
	configPath string
	verbose    bool
	quiet      bool

	// Resolved values
	cfg core.Config
	log *logrus.Logger
}

func newApp() *app {
	return &app{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		clipboard: clip.System{},
		stdinIsTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		now: time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdtoc",
		Short: "Maintain nested tables of contents across a tree of Markdown documents",
		Long: `mdtoc keeps hand-written tables of contents consistent across a tree of
README.md files, one per directory, each linking to its children.

Run 'mdtoc toc lift <path>' after editing a document's table of contents to
copy it into the nested entry for that document in every parent README.md,
up to the repository root.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = newLogger(a.stderr, a.verbose, a.quiet)
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log.WithField("index_name", cfg.IndexName).Debug("config loaded")
			return nil
		},
	}
	cmd.SetVersionTemplate("mdtoc version {{.Version}}\n")
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default ./mdtoc.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "V", false, "Log every step")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only log warnings and errors")

	cmd.AddCommand(newTocCmd(a), newConvCmd(a), newConfigCmd(a))
	return cmd
}

func newLogger(w io.Writer, verbose, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case quiet:
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
