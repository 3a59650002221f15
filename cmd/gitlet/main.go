package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

var (
	errNoCommand         = errors.New(errors.CodeInvalidInput, "Please enter a command.")
	errUnknownCommand    = errors.New(errors.CodeInvalidInput, "No command with that name exists.")
	errIncorrectOperands = errors.New(errors.CodeInvalidInput, "Incorrect operands.")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code. Every
// failure is reported as a single line on stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stderr)
	root := a.rootCmd()
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.logger.Debug("command failed", "err", err)
		fmt.Fprintln(stdout, repo.UserMessage(err))
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "A small local version-control system",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoCommand
			}
			return errUnknownCommand
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	root.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return errIncorrectOperands
	})
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.newInitCmd(),
		a.newAddCmd(),
		a.newCommitCmd(),
		a.newRmCmd(),
		a.newLogCmd(),
		a.newGlobalLogCmd(),
		a.newFindCmd(),
		a.newStatusCmd(),
		a.newCheckoutCmd(),
		a.newBranchCmd(),
		a.newRmBranchCmd(),
		a.newResetCmd(),
		a.newMergeCmd(),
		a.newAddRemoteCmd(),
		a.newRmRemoteCmd(),
		a.newPushCmd(),
		a.newFetchCmd(),
		a.newPullCmd(),
		a.newReflogCmd(),
		a.newVerifyCommitCmd(),
	)
	return root
}

// exactArgs is cobra.ExactArgs with the user-facing operand error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errIncorrectOperands
		}
		return nil
	}
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return errIncorrectOperands
		}
		return nil
	}
}
