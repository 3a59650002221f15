package object

import "sort"

// Hash is a 40-character hex-encoded SHA-1 digest. The empty Hash is the
// sentinel for "no object" (no parent, empty tree, absent file).
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// FileSet maps repository-relative slash paths to blob hashes. Snapshots and
// the staging index both build on it.
type FileSet map[string]Hash

// Paths returns the paths in lexicographic order.
func (fs FileSet) Paths() []string {
	out := make([]string, 0, len(fs))
	for p := range fs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the hash recorded for path, or "" when absent.
func (fs FileSet) Lookup(path string) Hash {
	return fs[path]
}

// Clone returns an independent copy.
func (fs FileSet) Clone() FileSet {
	out := make(FileSet, len(fs))
	for p, h := range fs {
		out[p] = h
	}
	return out
}

// TreeObj is an immutable snapshot of every tracked file at one point in
// history.
type TreeObj struct {
	Files FileSet
}

// Has reports whether the snapshot tracks path.
func (t *TreeObj) Has(path string) bool {
	if t == nil {
		return false
	}
	_, ok := t.Files[path]
	return ok
}

// Lookup returns the blob hash for path, or "" when the path is untracked.
func (t *TreeObj) Lookup(path string) Hash {
	if t == nil {
		return ""
	}
	return t.Files[path]
}

// EmptyTree returns the snapshot with no files.
func EmptyTree() *TreeObj {
	return &TreeObj{Files: make(FileSet)}
}

// CommitObj is an immutable history node. Parents holds at most two hashes:
// the first parent, then the merged-in branch head for merge commits.
type CommitObj struct {
	TreeHash  Hash
	Parents   []Hash
	Timestamp int64
	Timezone  string
	Signature string
	Message   string
}

// FirstParent returns the first parent hash, or "" for a root commit.
func (c *CommitObj) FirstParent() Hash {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// SecondParent returns the merged-in parent hash, or "".
func (c *CommitObj) SecondParent() Hash {
	if len(c.Parents) < 2 {
		return ""
	}
	return c.Parents[1]
}

// IsMerge reports whether the commit records a second parent.
func (c *CommitObj) IsMerge() bool {
	return c.SecondParent() != ""
}
