package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/mdtoc/internal/core"
)

func newLiftCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "lift <path>",
		Short: "Lift the table of contents to all parent Markdown files",
		Long: `Lift the table of contents from the Markdown file to all parent Markdown files.

The README.md in the directory of <path> is the source. Its title and table of
contents become one nested entry, which replaces the entry linking to that
README.md in every parent README.md, up to the first directory containing .git.
Link targets are rewritten to stay valid from each parent's directory.

When a parent has no entry for the source yet, the entry is appended after the
parent's table of contents, or after its title if it has none.

Example:
  A/B/C/README.md lists C1 and C2 while its parents only know about C1:

    A/README.md       - [B](B/README.md)
                        - [C](B/C/README.md)
    A/B/README.md     - [C](C/README.md)
                        - [C1](C/C1/README.md)

  mdtoc toc lift A/B/C/README.md

  A/B/README.md now nests C1 and C2 under its C entry with targets C/C1/...
  and C/C2/...; A/README.md nests them under its C entry with targets
  B/C/C1/... and B/C/C2/...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("path %q does not exist", path)
			}

			res, err := core.Lift(path, core.LiftOptions{
				Config: a.cfg,
				DryRun: dryRun,
				Logger: a.log,
			})
			if err != nil {
				return err
			}

			if a.cfg.History.Enabled && !dryRun {
				id, err := core.RecordLift(res, a.now())
				if err != nil {
					return fmt.Errorf("record history: %w", err)
				}
				a.log.WithField("run", id).Debug("lift recorded")
			}

			switch format {
			case "json":
				return printJSON(a.stdout, res)
			case "yaml":
				return printYAML(a.stdout, res)
			default:
				printLiftText(a.stdout, res)
				return nil
			}
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the changes without writing any file")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json or yaml)")
	return cmd
}
