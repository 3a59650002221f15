package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

func (a *app) newVerifyCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-commit <commit>",
		Short: "Check the SSH signature of a commit",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			h, pub, err := r.VerifyCommit(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Good signature on %s from %s key %s\n",
				h.Short(7), pub.Type(), ssh.FingerprintSHA256(pub))
			return nil
		},
	}
}
