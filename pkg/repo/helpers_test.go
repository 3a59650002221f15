package repo

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/odvcencio/gitlet/pkg/object"
)

// testClock advances one second per reading so commits get distinct
// timestamps.
type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRepo(t *testing.T, opts ...Option) (*Repo, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	clock := &testClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	r, err := InitFS(fs, append([]Option{WithClock(clock.now)}, opts...)...)
	if err != nil {
		t.Fatalf("InitFS: %v", err)
	}
	return r, fs
}

func writeFile(t *testing.T, fs billy.Filesystem, p, content string) {
	t.Helper()
	if err := util.WriteFile(fs, p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func readFile(t *testing.T, fs billy.Filesystem, p string) string {
	t.Helper()
	data, err := util.ReadFile(fs, p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	return string(data)
}

func fileExists(fs billy.Filesystem, p string) bool {
	_, err := fs.Stat(p)
	return err == nil
}

// commitFiles writes, stages and commits the given files in one commit.
func commitFiles(t *testing.T, r *Repo, fs billy.Filesystem, msg string, files map[string]string) object.Hash {
	t.Helper()
	for p, content := range files {
		writeFile(t, fs, p, content)
		if err := r.Add(p); err != nil {
			t.Fatalf("Add(%s): %v", p, err)
		}
	}
	h, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("Commit(%q): %v", msg, err)
	}
	return h
}

func headHash(t *testing.T, r *Repo) object.Hash {
	t.Helper()
	h, err := r.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}
	return h
}

func blobHash(content string) object.Hash {
	return object.HashObject(object.TypeBlob, []byte(content))
}

// mustNoErr fails the test immediately when err is non-nil.
func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// wantErr fails the test unless err matches target via errors.Is.
func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("err = %v, want %v", err, target)
	}
}

func wantContent(t *testing.T, fs billy.Filesystem, p, want string) {
	t.Helper()
	if got := readFile(t, fs, p); got != want {
		t.Fatalf("%s = %q, want %q", p, got, want)
	}
}

func wantMessage(t *testing.T, err error, want string) {
	t.Helper()
	if got := UserMessage(err); got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func wantBranch(t *testing.T, r *Repo, want string) {
	t.Helper()
	cur, err := r.CurrentBranch()
	mustNoErr(t, err)
	if cur != want {
		t.Fatalf("current branch = %q, want %q", cur, want)
	}
}

func wantCleanIndex(t *testing.T, r *Repo) {
	t.Helper()
	idx, err := r.ReadIndex()
	mustNoErr(t, err)
	if !idx.IsEmpty() {
		t.Fatalf("index = %+v, want empty", idx)
	}
}

func wantList[T comparable](t *testing.T, what string, got, want []T) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
}
