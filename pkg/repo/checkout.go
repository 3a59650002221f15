package repo

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// CheckoutFile overwrites the working file at path with its version in the
// given commit. An empty commitID means the head commit. The index is left
// untouched.
func (r *Repo) CheckoutFile(path, commitID string) error {
	var (
		h   object.Hash
		err error
	)
	if commitID == "" {
		h, err = r.HeadCommit()
	} else {
		h, err = r.ResolveCommit(commitID)
	}
	if err != nil {
		return err
	}

	tree, err := r.CommitTree(h)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	blob := tree.Lookup(path)
	if blob == "" {
		return ErrFileNotInCommit
	}
	if err := r.writeBlobToWork(path, blob); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// CheckoutBranch switches the working tree and HEAD to another branch.
//
//  1. Fail with ErrNoSuchBranch or ErrAlreadyOnBranch
//  2. Sync the working tree to the branch head (aborts before any change
//     when an untracked file would be overwritten or deleted)
//  3. Clear the index and repoint HEAD
func (r *Repo) CheckoutBranch(name string) error {
	target, exists, err := r.readRef(branchRef(name))
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if !exists {
		return ErrNoSuchBranch
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if current == name {
		return ErrAlreadyOnBranch
	}

	if err := r.syncWorkTree(target); err != nil {
		return err
	}
	if err := r.clearIndex(); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if err := r.setHead(name); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	r.Logger.Info("switched branch", "from", current, "to", name)
	return nil
}

// syncWorkTree rewrites the working tree from the head commit's snapshot
// to target's. Every path tracked by either snapshot is checked first; no
// file is touched if any of them is in the way.
func (r *Repo) syncWorkTree(target object.Hash) error {
	current, err := r.HeadTree()
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	next, err := r.CommitTree(target)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	paths := append(next.Files.Paths(), current.Files.Paths()...)
	if err := r.checkNotInTheWay(paths, current); err != nil {
		return err
	}

	for _, p := range current.Files.Paths() {
		if next.Has(p) {
			continue
		}
		if err := r.removeWork(p); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	}
	for _, p := range next.Files.Paths() {
		if err := r.writeBlobToWork(p, next.Files[p]); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	}
	return nil
}

// checkNotInTheWay returns ErrUntrackedInTheWay if any path exists in the
// working tree without matching its record in current. Such a file would be
// lost by an overwrite or delete.
func (r *Repo) checkNotInTheWay(paths []string, current *object.TreeObj) error {
	for _, p := range paths {
		h, ok, err := r.workFileHash(p)
		if err != nil {
			return fmt.Errorf("check working tree: %w", err)
		}
		if !ok {
			continue
		}
		if tracked := current.Lookup(p); tracked == "" || tracked != h {
			r.Logger.Debug("file in the way", "path", p)
			return ErrUntrackedInTheWay
		}
	}
	return nil
}
