package repo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

const indexFile = "index"

// Index is the staging area: pending additions (path to staged blob) and
// pending removals relative to the HEAD commit. A path is never in both.
type Index struct {
	Add    object.FileSet
	Remove map[string]struct{}
}

// indexFileJSON is the on-disk form of Index.
type indexFileJSON struct {
	Add    map[string]object.Hash `json:"add"`
	Remove []string               `json:"remove"`
}

// NewIndex returns an empty staging area.
func NewIndex() *Index {
	return &Index{Add: make(object.FileSet), Remove: make(map[string]struct{})}
}

// IsEmpty reports whether nothing is staged.
func (idx *Index) IsEmpty() bool {
	return len(idx.Add) == 0 && len(idx.Remove) == 0
}

// Removed reports whether path is staged for removal.
func (idx *Index) Removed(path string) bool {
	_, ok := idx.Remove[path]
	return ok
}

// RemovedPaths returns the removal set in lexicographic order.
func (idx *Index) RemovedPaths() []string {
	out := make([]string, 0, len(idx.Remove))
	for p := range idx.Remove {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ReadIndex loads the staging area from .gitlet/index. If the file does not
// exist, an empty Index is returned (no error).
func (r *Repo) ReadIndex() (*Index, error) {
	data, ok, err := r.readMetaFile(indexFile)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	idx := NewIndex()
	if !ok {
		return idx, nil
	}

	var raw indexFileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("read index: unmarshal: %w", err)
	}
	for p, h := range raw.Add {
		idx.Add[p] = h
	}
	for _, p := range raw.Remove {
		if _, staged := idx.Add[p]; staged {
			return nil, fmt.Errorf("read index: %q is staged for both addition and removal", p)
		}
		idx.Remove[p] = struct{}{}
	}
	return idx, nil
}

// WriteIndex atomically writes the staging area to .gitlet/index.
func (r *Repo) WriteIndex(idx *Index) error {
	raw := indexFileJSON{Add: idx.Add, Remove: idx.RemovedPaths()}
	if raw.Add == nil {
		raw.Add = make(object.FileSet)
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("write index: marshal: %w", err)
	}
	if err := r.writeMetaFile(indexFile, data); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// clearIndex empties the staging area.
func (r *Repo) clearIndex() error {
	return r.WriteIndex(NewIndex())
}

// Add stages the working file at path for addition.
//
//  1. Fail with ErrFileNotExist when the working file is missing
//  2. Store the file contents as a blob (no-op when already stored)
//  3. Drop any pending removal of path
//  4. If the blob matches the HEAD snapshot, drop any pending addition;
//     otherwise stage the blob
func (r *Repo) Add(path string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	head, err := r.HeadTree()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err := r.stageForAddition(idx, head, path); err != nil {
		return err
	}
	return r.WriteIndex(idx)
}

func (r *Repo) stageForAddition(idx *Index, head *object.TreeObj, path string) error {
	data, ok, err := r.readWork(path)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if !ok {
		return ErrFileNotExist
	}

	h, err := r.Store.WriteBlob(&object.Blob{Data: data})
	if err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}

	delete(idx.Remove, path)
	if head.Lookup(path) == h {
		delete(idx.Add, path)
	} else {
		idx.Add[path] = h
	}
	r.Logger.Debug("staged", "path", path, "blob", h.Short(7))
	return nil
}

// Remove deletes the working file at path, unstages it and, when HEAD
// tracks it, stages it for removal. It fails with ErrNoReasonToRemove when path is
// neither staged nor tracked.
func (r *Repo) Remove(path string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	head, err := r.HeadTree()
	if err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	if err := r.stageForRemoval(idx, head, path); err != nil {
		return err
	}
	return r.WriteIndex(idx)
}

func (r *Repo) stageForRemoval(idx *Index, head *object.TreeObj, path string) error {
	_, staged := idx.Add[path]
	tracked := head.Has(path)
	if !staged && !tracked {
		return ErrNoReasonToRemove
	}

	if err := r.removeWork(path); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	delete(idx.Add, path)
	if tracked {
		idx.Remove[path] = struct{}{}
	}
	r.Logger.Debug("unstaged", "path", path, "tracked", tracked)
	return nil
}
