package main

import (
	"github.com/spf13/cobra"
)

func (a *app) newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record the staged changes",
		Args:  rangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			msg := ""
			if len(args) == 1 {
				msg = args[0]
			}
			_, err = r.Commit(msg)
			return err
		},
	}
}
