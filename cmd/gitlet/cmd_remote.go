package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/remote"
)

func (a *app) newAddRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-remote <name> <path>",
		Short: "Register a peer repository",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			loc, err := filepath.Abs(filepath.FromSlash(args[1]))
			if err != nil {
				return err
			}
			return r.AddRemote(args[0], loc)
		},
	}
}

func (a *app) newRmRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-remote <name>",
		Short: "Forget a peer repository",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			return r.RemoveRemote(args[0])
		},
	}
}

func (a *app) newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push <remote> <branch>",
		Short: "Append the current branch's history to a remote branch",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			_, err = remote.Push(cmd.Context(), r, args[0], args[1])
			return err
		},
	}
}

func (a *app) newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <remote> <branch>",
		Short: "Copy a remote branch into its tracking ref",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			_, err = remote.Fetch(cmd.Context(), r, args[0], args[1])
			return err
		},
	}
}

func (a *app) newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <remote> <branch>",
		Short: "Fetch a remote branch and merge it",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			res, err := remote.Pull(cmd.Context(), r, args[0], args[1])
			if err != nil {
				return err
			}
			printMergeResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
