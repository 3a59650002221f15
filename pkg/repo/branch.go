package repo

import (
	"fmt"
	"strings"
)

// CreateBranch creates a branch pointing at the current head commit. It
// does not switch to the new branch.
func (r *Repo) CreateBranch(name string) error {
	if err := validBranchName(name); err != nil {
		return err
	}
	_, exists, err := r.readRef(branchRef(name))
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	if exists {
		return ErrBranchExists
	}
	head, err := r.HeadCommit()
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	if err := r.updateRef(branchRef(name), head, "branch: created"); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// DeleteBranch removes the branch pointer only; commits stay in the store.
func (r *Repo) DeleteBranch(name string) error {
	_, exists, err := r.readRef(branchRef(name))
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if !exists {
		return ErrBranchNotFound
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if current == name {
		return ErrRemoveCurrentBranch
	}
	return r.deleteRef(branchRef(name))
}

// ListBranches returns the local branch names sorted alphabetically.
func (r *Repo) ListBranches() ([]string, error) {
	refs, err := r.ListRefs(headsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return sortedKeys(refs), nil
}

func validBranchName(name string) error {
	switch {
	case strings.TrimSpace(name) == "",
		strings.HasPrefix(name, "/"),
		strings.HasSuffix(name, "/"),
		strings.Contains(name, ".."),
		strings.ContainsAny(name, " \t\n\\"):
		return fmt.Errorf("invalid branch name %q", name)
	}
	return nil
}
