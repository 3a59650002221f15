package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a repository in the current directory",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger = a.newLogger(slog.LevelWarn)
			_, err := repo.Init(".", repo.WithLogger(a.logger))
			return err
		},
	}
}
