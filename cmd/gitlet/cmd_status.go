package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/gitlet/pkg/repo"
)

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show branches, staged files and working-tree changes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printStatus(out io.Writer, st *repo.Status) {
	fmt.Fprintln(out, "=== Branches ===")
	for _, b := range st.Branches {
		if b == st.Current {
			fmt.Fprintf(out, "*%s\n", b)
			continue
		}
		fmt.Fprintln(out, b)
	}
	fmt.Fprintln(out)

	printSection(out, "Staged Files", st.Staged)
	printSection(out, "Removed Files", st.Removed)

	fmt.Fprintln(out, "=== Modifications Not Staged For Commit ===")
	for _, c := range st.Unstaged {
		fmt.Fprintf(out, "%s (%s)\n", c.Path, c.Kind)
	}
	fmt.Fprintln(out)

	printSection(out, "Untracked Files", st.Untracked)
}

func printSection(out io.Writer, title string, lines []string) {
	fmt.Fprintf(out, "=== %s ===\n", title)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintln(out)
}
