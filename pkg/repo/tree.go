package repo

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/odvcencio/gitlet/pkg/object"
)

// CommitTree resolves the snapshot recorded by a commit. A commit with the
// empty tree hash yields the empty snapshot without touching the store.
func (r *Repo) CommitTree(h object.Hash) (*object.TreeObj, error) {
	c, err := r.ReadCommit(h)
	if err != nil {
		return nil, err
	}
	tr, err := r.Store.ReadTree(c.TreeHash)
	if err != nil {
		return nil, fmt.Errorf("commit tree %s: %w", h.Short(7), err)
	}
	return tr, nil
}

// HeadTree returns the snapshot of the current branch head.
func (r *Repo) HeadTree() (*object.TreeObj, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	return r.CommitTree(head)
}

// buildTree applies the staged additions and removals to base and stores
// the resulting snapshot.
func (r *Repo) buildTree(base *object.TreeObj, idx *Index) (object.Hash, error) {
	files := base.Files.Clone()
	for p, h := range idx.Add {
		files[p] = h
	}
	for p := range idx.Remove {
		delete(files, p)
	}
	h, err := r.Store.WriteTree(&object.TreeObj{Files: files})
	if err != nil {
		return "", fmt.Errorf("build tree: %w", err)
	}
	return h, nil
}

// CleanPath normalizes a root-relative path to slash form and rejects
// paths that leave the working tree or point into .gitlet.
func CleanPath(p string) (string, error) {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "./")
	if p == "." || p == "" || p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("path %q is outside the working tree", p)
	}
	if p == DirName || strings.HasPrefix(p, DirName+"/") {
		return "", fmt.Errorf("path %q is inside %s", p, DirName)
	}
	return p, nil
}

// WorkFiles lists every regular file in the working tree, excluding
// .gitlet, as sorted slash paths.
func (r *Repo) WorkFiles() ([]string, error) {
	var out []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := r.Work.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			name := path.Join(dir, e.Name())
			if name == DirName {
				continue
			}
			if e.IsDir() {
				if err := walk(name); err != nil {
					return err
				}
				continue
			}
			if e.Mode().IsRegular() {
				out = append(out, name)
			}
		}
		return nil
	}
	if err := walk(""); err != nil {
		return nil, fmt.Errorf("list working tree: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

// workFileHash returns the blob hash the working file at p would have.
// ok is false when the file does not exist.
func (r *Repo) workFileHash(p string) (h object.Hash, ok bool, err error) {
	data, ok, err := r.readWork(p)
	if err != nil || !ok {
		return "", ok, err
	}
	return object.HashObject(object.TypeBlob, data), true, nil
}

// readWork reads a working file. Missing files and directories are
// reported as not present.
func (r *Repo) readWork(p string) ([]byte, bool, error) {
	info, err := r.Work.Stat(p)
	if err != nil {
		if isNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, false, nil
	}
	data, err := readWorkFile(r.Work, p)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", p, err)
	}
	return data, true, nil
}

func (r *Repo) workFileExists(p string) bool {
	info, err := r.Work.Stat(p)
	return err == nil && !info.IsDir()
}

// writeBlobToWork overwrites the working file at p with a stored blob.
func (r *Repo) writeBlobToWork(p string, h object.Hash) error {
	b, err := r.Store.ReadBlob(h)
	if err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return r.writeWork(p, b.Data)
}

func (r *Repo) writeWork(p string, data []byte) error {
	if dir := path.Dir(p); dir != "." {
		if err := r.Work.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: mkdir: %w", p, err)
		}
	}
	if err := util.WriteFile(r.Work, p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// removeWork deletes a working file if present and prunes directories
// left empty by the removal.
func (r *Repo) removeWork(p string) error {
	if err := r.Work.Remove(p); err != nil && !isNotExist(err) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	r.removeEmptyParents(path.Dir(p))
	return nil
}

func (r *Repo) removeEmptyParents(dir string) {
	for dir != "." && dir != "" && dir != "/" {
		entries, err := r.Work.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := r.Work.Remove(dir); err != nil {
			return
		}
		dir = path.Dir(dir)
	}
}

func readWorkFile(fs billy.Filesystem, p string) ([]byte, error) {
	return util.ReadFile(fs, p)
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
