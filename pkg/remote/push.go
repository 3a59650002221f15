package remote

import (
	"context"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/odvcencio/gitlet/pkg/repo"
)

// Result describes one push or fetch.
type Result struct {
	Remote string
	Branch string
	Old    object.Hash // previous head of the updated ref, "" if it was absent
	New    object.Hash
	Stats
}

// UpToDate reports whether the transfer left the ref where it was.
func (r *Result) UpToDate() bool {
	return r.Old == r.New
}

// Push appends the local head's history to branch on the named remote.
//
//  1. Open the peer (ErrRemoteDirNotFound)
//  2. If the remote branch exists, its head must be a first-parent
//     ancestor of the local head, otherwise ErrPullFirst
//  3. Copy the missing commits with their snapshots
//  4. Move the remote branch and the local tracking ref to the local head
//
// The peer's working tree and index are not touched.
func Push(ctx context.Context, local *repo.Repo, remoteName, branch string) (*Result, error) {
	peer, err := OpenPeer(local, remoteName)
	if err != nil {
		return nil, err
	}
	head, err := local.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}

	remoteHead, exists, err := peer.BranchHead(branch)
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	if exists {
		if !local.Store.Has(remoteHead) {
			return nil, ErrPullFirst
		}
		split, err := local.SplitPoint(head, remoteHead)
		if err != nil {
			return nil, fmt.Errorf("push: %w", err)
		}
		if split != remoteHead {
			return nil, ErrPullFirst
		}
	}

	st, err := CopyChain(ctx, local.Store, peer.Store, head)
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	if err := peer.UpdateBranch(branch, head, "push"); err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	if err := local.SetTrackingRef(remoteName, branch, head, "push"); err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}

	local.Logger.Info("pushed", "remote", remoteName, "branch", branch,
		"head", head.Short(7), "commits", st.Commits, "objects", st.Objects)
	return &Result{Remote: remoteName, Branch: branch, Old: remoteHead, New: head, Stats: st}, nil
}
