package repo

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/odvcencio/gitlet/pkg/object"
)

// DefaultBranch is the branch created by Init.
const DefaultBranch = "master"

// Init creates a new repository whose working tree is rooted at path.
func Init(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	r, err := InitFS(osfs.New(abs), opts...)
	if err != nil {
		return nil, err
	}
	r.RootDir = abs
	return r, nil
}

// InitFS creates a new repository inside work.
//
//  1. Fail with ErrAlreadyExists if .gitlet/ is present
//  2. Create objects/, refs/{heads,remotes,paths}/ and logs/
//  3. Write HEAD -> refs/heads/master, an empty index and default config
//  4. Store the initial commit and point master at it
//
// The initial commit is never signed and has a fixed timestamp, so every
// repository starts from the same commit id.
func InitFS(work billy.Filesystem, opts ...Option) (*Repo, error) {
	if _, err := work.Stat(DirName); err == nil {
		return nil, ErrAlreadyExists
	}

	r, err := newRepo("", work, opts)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	for _, d := range []string{"objects", headsPrefix, remotesPrefix, pathsPrefix, "logs"} {
		if err := r.Meta.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}
	if err := r.setHead(DefaultBranch); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.clearIndex(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	initial := &object.CommitObj{Message: initialCommitMessage, Timezone: "+0000"}
	h, err := r.Store.WriteCommit(initial)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.updateRef(branchRef(DefaultBranch), h, "init"); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	r.Logger.Info("initialized repository", "root", r.RootDir, "commit", h.Short(7))
	return r, nil
}
