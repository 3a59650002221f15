package repo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/odvcencio/gitlet/pkg/object"
)

// DirName is the name of the metadata directory at the working-tree root.
const DirName = ".gitlet"

const defaultCommitCacheSize = 4096

// Repo represents an opened Gitlet repository. It is the explicit context
// passed to every operation; no repository state lives in package globals.
type Repo struct {
	RootDir string           // absolute working-tree root; empty for in-memory trees
	Work    billy.Filesystem // working tree
	Meta    billy.Filesystem // .gitlet/ directory
	Store   *object.Store    // content-addressed object store
	Logger  *slog.Logger

	now     func() time.Time
	signer  CommitSigner
	commits *lru.Cache[object.Hash, *object.CommitObj]
}

// Option configures a Repo at Init or Open time.
type Option func(*Repo)

// WithLogger routes repository logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repo) {
		if l != nil {
			r.Logger = l
		}
	}
}

// WithClock overrides the time source used for commit timestamps and the
// reflog.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) {
		if now != nil {
			r.now = now
		}
	}
}

func newRepo(rootDir string, work billy.Filesystem, opts []Option) (*Repo, error) {
	meta, err := work.Chroot(DirName)
	if err != nil {
		return nil, fmt.Errorf("open: chroot %s: %w", DirName, err)
	}
	cache, err := lru.New[object.Hash, *object.CommitObj](defaultCommitCacheSize)
	if err != nil {
		return nil, fmt.Errorf("open: commit cache: %w", err)
	}
	r := &Repo{
		RootDir: rootDir,
		Work:    work,
		Meta:    meta,
		Store:   object.NewStore(meta),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		commits: cache,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Open searches upward from path for a .gitlet/ directory and opens the
// repository rooted there. It fails with ErrNotRepository when none is found.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		info, err := os.Stat(filepath.Join(cur, DirName))
		if err == nil && info.IsDir() {
			return newRepo(cur, osfs.New(cur), opts)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, ErrNotRepository
		}
		cur = parent
	}
}

// OpenAt opens the repository whose working-tree root is exactly root,
// without searching parent directories.
func OpenAt(root string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}
	r, err := OpenFS(osfs.New(abs), opts...)
	if err != nil {
		return nil, err
	}
	r.RootDir = abs
	return r, nil
}

// OpenFS opens a repository whose working tree is work.
func OpenFS(work billy.Filesystem, opts ...Option) (*Repo, error) {
	info, err := work.Stat(DirName)
	if err != nil || !info.IsDir() {
		return nil, ErrNotRepository
	}
	return newRepo("", work, opts)
}

// Configure applies opts to an opened repository, for settings that are
// only known after its config has been read.
func (r *Repo) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

func (r *Repo) timestamp() time.Time {
	return r.now()
}

// readMetaFile reads a file under .gitlet/. A missing file is reported as
// (nil, false, nil).
func (r *Repo) readMetaFile(name string) ([]byte, bool, error) {
	data, err := util.ReadFile(r.Meta, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// writeMetaFile atomically replaces a file under .gitlet/ via temp + rename.
func (r *Repo) writeMetaFile(name string, data []byte) error {
	return writeFileAtomic(r.Meta, name, data)
}

func writeFileAtomic(fs billy.Filesystem, name string, data []byte) error {
	dir := filepath.Dir(name)
	if dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: mkdir: %w", name, err)
		}
	}

	tmp, err := util.TempFile(fs, dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("write %s: tmpfile: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("write %s: close: %w", name, err)
	}
	if err := fs.Rename(tmpName, name); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("write %s: rename: %w", name, err)
	}
	return nil
}
