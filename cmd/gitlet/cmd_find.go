package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the ids of commits whose message contains the text",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			ids, err := r.Find(args[0])
			if err != nil {
				return err
			}
			for _, h := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}
