package repo

import (
	"fmt"
	"path"

	"github.com/odvcencio/gitlet/pkg/merge"
	"github.com/odvcencio/gitlet/pkg/object"
)

// MergeResult describes the outcome of Merge.
type MergeResult struct {
	SplitPoint  object.Hash
	Commit      object.Hash // merge commit, or the new head after a fast-forward
	FastForward bool
	Files       []merge.FileMerge
	Conflicts   []string
}

// HasConflicts reports whether any file was written with conflict markers.
func (m *MergeResult) HasConflicts() bool {
	return len(m.Conflicts) > 0
}

// SplitPoint returns the approximate common ancestor of two commits using
// the lock-step first-parent walk.
func (r *Repo) SplitPoint(a, b object.Hash) (object.Hash, error) {
	return merge.SplitPoint(a, b, r.firstParent)
}

func (r *Repo) firstParent(h object.Hash) (object.Hash, error) {
	c, err := r.ReadCommit(h)
	if err != nil {
		return "", err
	}
	return c.FirstParent(), nil
}

// Merge merges the named branch into the current branch. name may be a
// local branch or a remote-tracking name "<remote>/<branch>".
//
//  1. Fail with ErrUncommittedChanges, ErrBranchNotFound or ErrMergeWithSelf
//  2. Compute the split point; fail with ErrAncestorBranch when it is the
//     other head, fast-forward when it is the current head
//  3. Classify every path of the split, head and other snapshots
//  4. Fail with ErrUntrackedInTheWay before touching anything if a file the
//     merge would write or delete is untracked or modified on disk
//  5. Apply the classification to the working tree and index
//  6. Commit with both heads as parents
func (r *Repo) Merge(name string) (*MergeResult, error) {
	return r.merge(name, func() (object.Hash, string, error) {
		return r.ResolveBranch(name)
	})
}

// MergeTracking merges the remote-tracking ref of branch on the named
// remote into the current branch. Unlike Merge it never resolves to a
// local branch that happens to share the "<remote>/<branch>" name.
func (r *Repo) MergeTracking(remote, branch string) (*MergeResult, error) {
	return r.merge(path.Join(remote, branch), func() (object.Hash, string, error) {
		h, ok, err := r.TrackingRef(remote, branch)
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", ErrBranchNotFound
		}
		return h, trackingRef(remote, branch), nil
	})
}

func (r *Repo) merge(name string, resolve func() (object.Hash, string, error)) (*MergeResult, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if !idx.IsEmpty() {
		return nil, ErrUncommittedChanges
	}
	other, otherRef, err := resolve()
	if err != nil {
		return nil, err
	}
	currentRef, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if otherRef == currentRef {
		return nil, ErrMergeWithSelf
	}
	current, err := r.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	head, err := r.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	split, err := r.SplitPoint(head, other)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if split == other {
		return nil, ErrAncestorBranch
	}
	if split == head {
		return r.fastForward(currentRef, split, other)
	}

	splitTree := object.EmptyTree()
	if split != "" {
		if splitTree, err = r.CommitTree(split); err != nil {
			return nil, fmt.Errorf("merge: split point: %w", err)
		}
	}
	headTree, err := r.CommitTree(head)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	otherTree, err := r.CommitTree(other)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	files := merge.MatchFiles(splitTree.Files, headTree.Files, otherTree.Files)
	var touched []string
	for _, f := range files {
		if f.Disposition.TouchesWorkTree() {
			touched = append(touched, f.Path)
		}
	}
	if err := r.checkNotInTheWay(touched, headTree); err != nil {
		return nil, err
	}

	res := &MergeResult{SplitPoint: split, Files: files}
	for _, f := range files {
		if err := r.applyFileMerge(idx, headTree, f); err != nil {
			return nil, fmt.Errorf("merge %s: %w", f.Path, err)
		}
		if f.Disposition == merge.Conflict {
			res.Conflicts = append(res.Conflicts, f.Path)
		}
	}
	if err := r.WriteIndex(idx); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	msg := fmt.Sprintf("Merged %s into %s.", name, current)
	h, err := r.commit(msg, other, "merge "+name)
	if err != nil {
		return nil, err
	}
	res.Commit = h

	sum := merge.Summarize(files)
	r.Logger.Info("merged", "branch", name, "commit", h.Short(7), "split", split.Short(7),
		"files", sum.Total, "applied", sum.Applied, "conflicts", sum.Conflicts)
	return res, nil
}

func (r *Repo) applyFileMerge(idx *Index, headTree *object.TreeObj, f merge.FileMerge) error {
	switch f.Disposition {
	case merge.TakeOther, merge.AddedOther:
		if err := r.writeBlobToWork(f.Path, f.Other); err != nil {
			return err
		}
		return r.stageForAddition(idx, headTree, f.Path)
	case merge.DeletedOther:
		return r.stageForRemoval(idx, headTree, f.Path)
	case merge.Conflict:
		headData, err := r.blobData(f.Head)
		if err != nil {
			return err
		}
		otherData, err := r.blobData(f.Other)
		if err != nil {
			return err
		}
		if err := r.writeWork(f.Path, merge.ConflictBody(headData, otherData)); err != nil {
			return err
		}
		return r.stageForAddition(idx, headTree, f.Path)
	}
	return nil
}

// blobData returns a blob's bytes; the absent hash reads as empty content.
func (r *Repo) blobData(h object.Hash) ([]byte, error) {
	if h == "" {
		return nil, nil
	}
	b, err := r.Store.ReadBlob(h)
	if err != nil {
		return nil, err
	}
	return b.Data, nil
}

func (r *Repo) fastForward(currentRef string, split, target object.Hash) (*MergeResult, error) {
	if err := r.syncWorkTree(target); err != nil {
		return nil, err
	}
	if err := r.updateRef(currentRef, target, "merge: fast-forward"); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if err := r.clearIndex(); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	r.Logger.Info("fast-forwarded", "ref", currentRef, "commit", target.Short(7))
	return &MergeResult{SplitPoint: split, Commit: target, FastForward: true}, nil
}
