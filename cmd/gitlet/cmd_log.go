package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

const logDateLayout = "Mon Jan 02 15:04:05 2006 -0700"

func (a *app) newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the first-parent history of the current branch",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			entries, err := r.Log()
			if err != nil {
				return err
			}
			printLog(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func (a *app) newGlobalLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit reachable from a branch",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			entries, err := r.GlobalLog()
			if err != nil {
				return err
			}
			printLog(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func printLog(out io.Writer, entries []repo.LogEntry) {
	for _, e := range entries {
		c := e.Commit
		fmt.Fprintln(out, "===")
		fmt.Fprintf(out, "commit %s\n", e.Hash)
		if c.IsMerge() {
			fmt.Fprintf(out, "Merge: %s %s\n", c.FirstParent().Short(7), c.SecondParent().Short(7))
		}
		fmt.Fprintf(out, "Date: %s\n", commitTime(c.Timestamp, c.Timezone).Format(logDateLayout))
		fmt.Fprintln(out, c.Message)
		fmt.Fprintln(out)
	}
}

// commitTime renders a stored timestamp in the zone it was recorded in.
func commitTime(unix int64, zone string) time.Time {
	t := time.Unix(unix, 0)
	if z, err := time.Parse("-0700", zone); err == nil {
		return t.In(z.Location())
	}
	return t.UTC()
}
