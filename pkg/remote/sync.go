package remote

import (
	"context"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Stats counts what a transfer wrote into the destination store.
type Stats struct {
	Commits int
	Objects int
}

// MissingChain walks head's first-parent chain and returns the commits dst
// does not have yet, oldest first. The walk stops at the first commit dst
// already holds: every commit behind it was copied with it.
func MissingChain(src, dst *object.Store, head object.Hash) ([]object.Hash, error) {
	var chain []object.Hash
	for h := head; h != ""; {
		if dst.Has(h) {
			break
		}
		c, err := src.ReadCommit(h)
		if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", h, err)
		}
		chain = append(chain, h)
		h = c.FirstParent()
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// CopyChain copies head and its missing first-parent ancestors from src to
// dst. Parents land before children and each commit's blobs and tree land
// before the commit, so an interrupted copy never leaves a dangling commit.
func CopyChain(ctx context.Context, src, dst *object.Store, head object.Hash) (Stats, error) {
	var st Stats
	chain, err := MissingChain(src, dst, head)
	if err != nil {
		return st, err
	}
	for _, h := range chain {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		n, err := src.CopyCommitTo(dst, h)
		if err != nil {
			return st, fmt.Errorf("copy commit %s: %w", h, err)
		}
		st.Commits++
		st.Objects += n
	}
	return st, nil
}
