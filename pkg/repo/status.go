package repo

import (
	"fmt"
	"sort"
)

// ChangeKind qualifies an unstaged modification.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// Change is a working-tree difference that is not staged.
type Change struct {
	Path string
	Kind ChangeKind
}

// Status summarizes the branches, index and working tree. Every list is
// sorted; paths are relative to the working-tree root.
type Status struct {
	Current   string
	Branches  []string
	Staged    []string
	Removed   []string
	Unstaged  []Change
	Untracked []string
}

// Status computes the five status reports.
//
// A path is an unstaged change when it is:
//   - staged for addition and missing on disk (deleted)
//   - staged for addition with different contents on disk (modified)
//   - tracked, not staged for removal, and missing on disk (deleted)
//   - tracked, not staged for addition or removal, and different on disk (modified)
//
// A path is untracked when it exists on disk but is neither tracked nor
// staged for addition, or when it is staged for removal and has reappeared.
// Ignore rules only filter the untracked list.
func (r *Repo) Status() (*Status, error) {
	st := &Status{}

	var err error
	if st.Current, err = r.CurrentBranch(); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	if st.Branches, err = r.ListBranches(); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	head, err := r.HeadTree()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	st.Staged = idx.Add.Paths()
	st.Removed = idx.RemovedPaths()

	unstaged := make(map[string]ChangeKind)
	for _, p := range st.Staged {
		h, ok, err := r.workFileHash(p)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		switch {
		case !ok:
			unstaged[p] = ChangeDeleted
		case h != idx.Add[p]:
			unstaged[p] = ChangeModified
		}
	}
	for _, p := range head.Files.Paths() {
		h, ok, err := r.workFileHash(p)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		_, staged := idx.Add[p]
		switch {
		case !ok && !idx.Removed(p):
			unstaged[p] = ChangeDeleted
		case ok && h != head.Files[p] && !staged && !idx.Removed(p):
			unstaged[p] = ChangeModified
		}
	}
	for p, kind := range unstaged {
		st.Unstaged = append(st.Unstaged, Change{Path: p, Kind: kind})
	}
	sort.Slice(st.Unstaged, func(i, j int) bool { return st.Unstaged[i].Path < st.Unstaged[j].Path })

	cfg, err := r.ReadConfig()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	ignore, err := r.ignoreChecker(cfg)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	files, err := r.WorkFiles()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	for _, p := range files {
		_, staged := idx.Add[p]
		untracked := (!head.Has(p) && !staged) || idx.Removed(p)
		if untracked && !ignore.IsIgnored(p) {
			st.Untracked = append(st.Untracked, p)
		}
	}
	return st, nil
}
