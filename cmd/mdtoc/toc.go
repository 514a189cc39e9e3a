package main

import "github.com/spf13/cobra"

func newTocCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc",
		Short: "Table of Contents",
	}
	cmd.AddCommand(newLiftCmd(a), newHistoryCmd(a))
	return cmd
}
