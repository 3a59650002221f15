package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in CommitObj.Signature.
type CommitSigner func(payload []byte) (string, error)

// WithSigner signs every commit the repository creates, merges included.
func WithSigner(s CommitSigner) Option {
	return func(r *Repo) {
		r.signer = s
	}
}

const initialCommitMessage = "initial commit"

// ReadCommit reads a commit through the repository's commit cache.
func (r *Repo) ReadCommit(h object.Hash) (*object.CommitObj, error) {
	if c, ok := r.commits.Get(h); ok {
		return c, nil
	}
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", h.Short(7), err)
	}
	r.commits.Add(h, c)
	return c, nil
}

// ResolveCommit expands a full or abbreviated commit id. Zero matches yield
// ErrNoSuchCommit and several yield ErrAmbiguousCommit.
func (r *Repo) ResolveCommit(id string) (object.Hash, error) {
	matches, err := r.Store.FindByPrefix(id, object.TypeCommit)
	if err != nil {
		return "", fmt.Errorf("resolve commit %q: %w", id, err)
	}
	switch len(matches) {
	case 0:
		return "", ErrNoSuchCommit
	case 1:
		return matches[0], nil
	}
	return "", ErrAmbiguousCommit
}

// Commit records the staged changes as a new commit on the current branch.
//
//  1. Fail with ErrNothingToCommit, then ErrEmptyMessage
//  2. Build the new tree: HEAD's tree plus additions minus removals
//  3. Write the commit with parent = current branch head
//  4. Advance the current branch and clear the index
func (r *Repo) Commit(message string) (object.Hash, error) {
	return r.commit(message, "", "commit")
}

func (r *Repo) commit(message string, secondParent object.Hash, reason string) (object.Hash, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if idx.IsEmpty() {
		return "", ErrNothingToCommit
	}
	if message == "" {
		return "", ErrEmptyMessage
	}

	ref, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	parent, err := r.HeadCommit()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	base, err := r.CommitTree(parent)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	treeHash, err := r.buildTree(base, idx)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	now := r.timestamp()
	c := &object.CommitObj{
		TreeHash:  treeHash,
		Parents:   []object.Hash{parent},
		Timestamp: now.Unix(),
		Timezone:  now.Format("-0700"),
		Message:   message,
	}
	if secondParent != "" {
		c.Parents = append(c.Parents, secondParent)
	}
	h, err := r.writeCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	if err := r.updateRef(ref, h, reason+": "+firstLine(message)); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	if err := r.clearIndex(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	r.Logger.Info("committed", "commit", h.Short(7), "files", len(idx.Add), "removed", len(idx.Remove))
	return h, nil
}

// writeCommit signs c when a signer is configured and stores it.
func (r *Repo) writeCommit(c *object.CommitObj) (object.Hash, error) {
	if r.signer != nil {
		sig, err := r.signer(object.CommitSigningPayload(c))
		if err != nil {
			return "", fmt.Errorf("sign commit: %w", err)
		}
		c.Signature = sig
	}
	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("write commit: %w", err)
	}
	r.commits.Add(h, c)
	return h, nil
}

// LogEntry pairs a commit with its hash.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// Log returns the first-parent history of HEAD, most recent first.
func (r *Repo) Log() ([]LogEntry, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return collect(r.FirstParentWalk(head))
}

// GlobalLog returns every commit reachable from a local branch head.
func (r *Repo) GlobalLog() ([]LogEntry, error) {
	heads, err := r.BranchHeads()
	if err != nil {
		return nil, fmt.Errorf("global-log: %w", err)
	}
	return collect(r.ReachableWalk(heads))
}

// Find returns the ids of reachable commits whose message contains msg.
func (r *Repo) Find(msg string) ([]object.Hash, error) {
	heads, err := r.BranchHeads()
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	var out []object.Hash
	w := r.ReachableWalk(heads)
	for w.Next() {
		if strings.Contains(w.Commit().Message, msg) {
			out = append(out, w.Hash())
		}
	}
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoMatchingMessage
	}
	return out, nil
}

func collect(w CommitWalk) ([]LogEntry, error) {
	var out []LogEntry
	for w.Next() {
		out = append(out, LogEntry{Hash: w.Hash(), Commit: w.Commit()})
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
