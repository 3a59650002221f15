package main

import (
	"github.com/spf13/cobra"
)

func (a *app) newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout [<commit>] -- <file> | checkout <branch>",
		Short: "Restore a file from a commit or switch branches",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			var commitID, file, branch string
			switch {
			case len(args) == 1 && dash == 0:
				file = args[0]
			case len(args) == 2 && dash == 1:
				commitID, file = args[0], args[1]
			case len(args) == 1 && dash < 0:
				branch = args[0]
			default:
				return errIncorrectOperands
			}

			r, err := a.openRepo()
			if err != nil {
				return err
			}
			if branch != "" {
				return r.CheckoutBranch(branch)
			}
			p, err := repoPath(r, file)
			if err != nil {
				return err
			}
			return r.CheckoutFile(p, commitID)
		},
	}
}
