package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func (a *app) newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			res, err := r.Merge(args[0])
			if err != nil {
				return err
			}
			printMergeResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printMergeResult(out io.Writer, res *repo.MergeResult) {
	switch {
	case res.FastForward:
		fmt.Fprintln(out, "Current branch fast-forwarded.")
	case res.HasConflicts():
		fmt.Fprintln(out, "Encountered a merge conflict.")
	}
}
