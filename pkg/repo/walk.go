package repo

import (
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// CommitWalk is a single-pass cursor over commits. Call Next until it
// returns false, then check Err. A walk cannot be restarted; construct a new
// one instead.
type CommitWalk interface {
	Next() bool
	Hash() object.Hash
	Commit() *object.CommitObj
	Err() error
}

// FirstParentWalk yields start, then its first parent, and so on until a
// root commit.
type FirstParentWalk struct {
	r       *Repo
	next    object.Hash
	hash    object.Hash
	commit  *object.CommitObj
	err     error
	started bool
}

// FirstParentWalk returns a walk along the first-parent chain of start.
func (r *Repo) FirstParentWalk(start object.Hash) *FirstParentWalk {
	return &FirstParentWalk{r: r, next: start}
}

func (w *FirstParentWalk) Next() bool {
	if w.err != nil {
		return false
	}
	if w.started {
		if w.commit == nil {
			return false
		}
		w.next = w.commit.FirstParent()
	}
	w.started = true
	if w.next == "" {
		w.hash, w.commit = "", nil
		return false
	}
	c, err := w.r.ReadCommit(w.next)
	if err != nil {
		w.err = err
		w.hash, w.commit = "", nil
		return false
	}
	w.hash, w.commit = w.next, c
	return true
}

func (w *FirstParentWalk) Hash() object.Hash         { return w.hash }
func (w *FirstParentWalk) Commit() *object.CommitObj { return w.commit }
func (w *FirstParentWalk) Err() error                { return w.err }

// ReachableWalk yields every distinct commit found by walking the
// first-parent chain of each head. Only hashes are remembered, not commit
// objects. A commit reachable solely through a merge's second parent is not
// visited unless it is itself one of the heads.
//
// Algorithm:
//  1. Queue the heads in sorted order, without duplicates.
//  2. Advance the current commit to its first parent while that parent is
//     present and unvisited, marking it visited and yielding it.
//  3. When the chain ends, pop heads until one is unvisited, mark it and
//     yield it as the new current commit.
type ReachableWalk struct {
	r       *Repo
	heads   []object.Hash
	visited map[object.Hash]struct{}
	hash    object.Hash
	commit  *object.CommitObj
	err     error
}

// ReachableWalk returns a walk over every commit reachable from heads.
func (r *Repo) ReachableWalk(heads []object.Hash) *ReachableWalk {
	uniq := make(map[object.Hash]struct{}, len(heads))
	queue := make([]object.Hash, 0, len(heads))
	for _, h := range heads {
		if h == "" {
			continue
		}
		if _, ok := uniq[h]; ok {
			continue
		}
		uniq[h] = struct{}{}
		queue = append(queue, h)
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })
	return &ReachableWalk{r: r, heads: queue, visited: make(map[object.Hash]struct{})}
}

func (w *ReachableWalk) Next() bool {
	if w.err != nil {
		return false
	}
	if w.commit != nil {
		p := w.commit.FirstParent()
		if _, seen := w.visited[p]; p != "" && !seen {
			return w.visit(p)
		}
	}
	for len(w.heads) > 0 {
		h := w.heads[0]
		w.heads = w.heads[1:]
		if _, seen := w.visited[h]; !seen {
			return w.visit(h)
		}
	}
	w.hash, w.commit = "", nil
	return false
}

func (w *ReachableWalk) visit(h object.Hash) bool {
	w.visited[h] = struct{}{}
	c, err := w.r.ReadCommit(h)
	if err != nil {
		w.err = err
		w.hash, w.commit = "", nil
		return false
	}
	w.hash, w.commit = h, c
	return true
}

func (w *ReachableWalk) Hash() object.Hash         { return w.hash }
func (w *ReachableWalk) Commit() *object.CommitObj { return w.commit }
func (w *ReachableWalk) Err() error                { return w.err }

// BranchHeads returns the head commit of every local branch.
func (r *Repo) BranchHeads() ([]object.Hash, error) {
	refs, err := r.ListRefs(headsPrefix)
	if err != nil {
		return nil, err
	}
	heads := make([]object.Hash, 0, len(refs))
	for _, name := range sortedKeys(refs) {
		heads = append(heads, refs[name])
	}
	return heads, nil
}
