package main

import (
	"github.com/spf13/cobra"
)

func (a *app) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>",
		Short: "Unstage a file and stage its removal",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			p, err := repoPath(r, args[0])
			if err != nil {
				return err
			}
			return r.Remove(p)
		},
	}
}
