package main

import (
	"github.com/spf13/cobra"

	"github.com/ryotapoi/mdtoc/internal/core"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		root   string
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded lifts",
		Long: `List lifts recorded in <root>/.mdtoc/history.sqlite, newest first.

Lifts are only recorded when history.enabled is set in mdtoc.yaml. The root
is the repository root the lift stopped at.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			records, err := core.ListLifts(root, limit)
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return printJSON(a.stdout, records)
			case "yaml":
				return printYAML(a.stdout, records)
			default:
				printHistoryText(a.stdout, records)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "Repository root holding the history database")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json or yaml)")
	return cmd
}
