package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ryotapoi/mdtoc/internal/core"
)

func newConvCmd(a *app) *cobra.Command {
	conv := &cobra.Command{
		Use:   "conv",
		Short: "Convert",
	}
	oneob := &cobra.Command{
		Use:   "oneob",
		Short: "From OneNote-Obsidian note in the clipboard...",
	}
	oneob.AddCommand(&cobra.Command{
		Use:   "ob",
		Short: "To Obsidian note (images are not supported)",
		Long: `Convert a OneNote note imported into Obsidian into a regular Obsidian note.

The note is read from the clipboard and the result is copied back to it. When
stdin is not a terminal the note is read from stdin and written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneNoteToObsidian(a)
		},
	})
	conv.AddCommand(oneob)
	return conv
}

func runOneNoteToObsidian(a *app) error {
	if !a.stdinIsTerminal() {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return err
		}
		_, err = io.WriteString(a.stdout, core.ReformatOneNote(string(data)))
		return err
	}

	content, err := a.clipboard.ReadAll()
	if err != nil {
		return err
	}
	if err := a.clipboard.WriteAll(core.ReformatOneNote(content)); err != nil {
		return err
	}
	a.log.Debug("clipboard note converted")
	return nil
}
