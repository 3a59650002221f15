package remote

import (
	"context"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/repo"
)

// Fetch copies branch's history from the named remote into the local store
// and records its head in the tracking ref "<remote>/<branch>". No local
// branch is changed.
func Fetch(ctx context.Context, local *repo.Repo, remoteName, branch string) (*Result, error) {
	peer, err := OpenPeer(local, remoteName)
	if err != nil {
		return nil, err
	}
	remoteHead, exists, err := peer.BranchHead(branch)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if !exists {
		return nil, ErrNoRemoteBranch
	}
	old, _, err := local.TrackingRef(remoteName, branch)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	st, err := CopyChain(ctx, peer.Store, local.Store, remoteHead)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if err := local.SetTrackingRef(remoteName, branch, remoteHead, "fetch"); err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	local.Logger.Info("fetched", "remote", remoteName, "branch", branch,
		"head", remoteHead.Short(7), "commits", st.Commits, "objects", st.Objects)
	return &Result{Remote: remoteName, Branch: branch, Old: old, New: remoteHead, Stats: st}, nil
}

// Pull fetches branch from the named remote and merges the tracking ref
// into the current branch.
func Pull(ctx context.Context, local *repo.Repo, remoteName, branch string) (*repo.MergeResult, error) {
	if _, err := Fetch(ctx, local, remoteName, branch); err != nil {
		return nil, err
	}
	return local.MergeTracking(remoteName, branch)
}
