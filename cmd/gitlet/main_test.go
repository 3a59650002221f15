package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/gitlet/pkg/repo"
)

// gitlet runs one command line in the current directory and returns its
// stdout and exit code.
func gitlet(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), code
}

func mustGitlet(t *testing.T, args ...string) string {
	t.Helper()
	out, code := gitlet(t, args...)
	if code != 0 {
		t.Fatalf("gitlet %s: exit %d: %s", strings.Join(args, " "), code, out)
	}
	return out
}

func expectFailure(t *testing.T, want string, args ...string) {
	t.Helper()
	out, code := gitlet(t, args...)
	if code == 0 {
		t.Fatalf("gitlet %s: expected failure, got output %q", strings.Join(args, " "), out)
	}
	if out != want+"\n" {
		t.Fatalf("gitlet %s: output = %q, want %q", strings.Join(args, " "), out, want+"\n")
	}
}

func writeWorkFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readWorkFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// newWorkspace creates and enters an initialized repository.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	mustGitlet(t, "init")
	return dir
}

func TestUsageErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	expectFailure(t, "Please enter a command.")
	expectFailure(t, "No command with that name exists.", "frobnicate")
	expectFailure(t, "Incorrect operands.", "add")
	expectFailure(t, "Incorrect operands.", "branch", "a", "b")
	expectFailure(t, "Incorrect operands.", "log", "--bogus")
	expectFailure(t, "Not in an initialized Gitlet directory.", "status")
}

func TestInitTwice(t *testing.T) {
	newWorkspace(t)
	expectFailure(t, "A Gitlet version-control system already exists in the current directory.", "init")
}

func TestCommitAndLog(t *testing.T) {
	newWorkspace(t)
	writeWorkFile(t, "f.txt", "hello")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "added f")

	expectFailure(t, "No changes added to the commit.", "commit", "again")
	writeWorkFile(t, "g.txt", "more")
	mustGitlet(t, "add", "g.txt")
	expectFailure(t, "Please enter a commit message.", "commit", "")
	expectFailure(t, "Please enter a commit message.", "commit")

	out := mustGitlet(t, "log")
	entries := strings.Split(strings.TrimSuffix(out, "\n\n"), "\n\n")
	if len(entries) != 2 {
		t.Fatalf("log has %d entries:\n%s", len(entries), out)
	}
	if !strings.HasPrefix(entries[0], "===\ncommit ") || !strings.HasSuffix(entries[0], "\nadded f") {
		t.Fatalf("first entry = %q", entries[0])
	}
	if !strings.Contains(entries[0], "\nDate: ") {
		t.Fatalf("first entry has no date: %q", entries[0])
	}
	wantInitial := "\nDate: Thu Jan 01 00:00:00 1970 +0000\ninitial commit"
	if !strings.HasSuffix(entries[1], wantInitial) {
		t.Fatalf("initial entry = %q", entries[1])
	}
}

func TestStatusOutput(t *testing.T) {
	newWorkspace(t)
	writeWorkFile(t, "a.txt", "a")
	writeWorkFile(t, "c.txt", "c")
	mustGitlet(t, "add", "a.txt")
	mustGitlet(t, "add", "c.txt")
	mustGitlet(t, "commit", "two files")
	mustGitlet(t, "branch", "other")

	mustGitlet(t, "rm", "a.txt")
	writeWorkFile(t, "b.txt", "b")
	mustGitlet(t, "add", "b.txt")
	writeWorkFile(t, "c.txt", "changed")
	writeWorkFile(t, "d.txt", "d")

	want := `=== Branches ===
*master
other

=== Staged Files ===
b.txt

=== Removed Files ===
a.txt

=== Modifications Not Staged For Commit ===
c.txt (modified)

=== Untracked Files ===
d.txt

`
	if got := mustGitlet(t, "status"); got != want {
		t.Fatalf("status =\n%s\nwant\n%s", got, want)
	}
}

func TestPathsAreRelativeToWorkingDirectory(t *testing.T) {
	dir := newWorkspace(t)
	writeWorkFile(t, filepath.Join("sub", "f.txt"), "nested")

	t.Chdir(filepath.Join(dir, "sub"))
	mustGitlet(t, "add", "f.txt")
	out := mustGitlet(t, "status")
	if !strings.Contains(out, "=== Staged Files ===\nsub/f.txt\n") {
		t.Fatalf("status =\n%s", out)
	}
	expectFailure(t, "File does not exist.", "add", "missing.txt")
}

func TestCheckoutForms(t *testing.T) {
	newWorkspace(t)
	writeWorkFile(t, "f.txt", "v1")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "version one")
	id := strings.TrimSpace(mustGitlet(t, "find", "version one"))

	writeWorkFile(t, "f.txt", "v2")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "version two")

	writeWorkFile(t, "f.txt", "scratch")
	mustGitlet(t, "checkout", "--", "f.txt")
	if got := readWorkFile(t, "f.txt"); got != "v2" {
		t.Fatalf("f.txt = %q after checkout -- f.txt", got)
	}

	mustGitlet(t, "checkout", id[:8], "--", "f.txt")
	if got := readWorkFile(t, "f.txt"); got != "v1" {
		t.Fatalf("f.txt = %q after checkout <id> -- f.txt", got)
	}

	expectFailure(t, "Incorrect operands.", "checkout", id, "f.txt")
	expectFailure(t, "No commit with that id exists.", "checkout", "0123abcd", "--", "f.txt")
	expectFailure(t, "File does not exist in that commit.", "checkout", id, "--", "nope.txt")
	expectFailure(t, "No such branch exists.", "checkout", "nope")
	expectFailure(t, "No need to checkout the current branch.", "checkout", "master")
}

func TestBranchSwitchAndMergeOutput(t *testing.T) {
	newWorkspace(t)
	writeWorkFile(t, "f.txt", "base")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "base")
	mustGitlet(t, "branch", "other")
	expectFailure(t, "A branch with that name already exists.", "branch", "other")

	mustGitlet(t, "checkout", "other")
	writeWorkFile(t, "f.txt", "B")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "other edit")
	mustGitlet(t, "checkout", "master")
	if got := readWorkFile(t, "f.txt"); got != "base" {
		t.Fatalf("f.txt = %q on master", got)
	}

	mustGitlet(t, "branch", "ff")
	if out := mustGitlet(t, "checkout", "ff"); out != "" {
		t.Fatalf("checkout printed %q", out)
	}
	if out := mustGitlet(t, "merge", "other"); out != "Current branch fast-forwarded.\n" {
		t.Fatalf("fast-forward merge printed %q", out)
	}
	mustGitlet(t, "checkout", "master")

	writeWorkFile(t, "f.txt", "A")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "master edit")
	if out := mustGitlet(t, "merge", "other"); out != "Encountered a merge conflict.\n" {
		t.Fatalf("conflicting merge printed %q", out)
	}
	if got := readWorkFile(t, "f.txt"); got != "<<<<<<< HEAD\nA=======\nB>>>>>>>" {
		t.Fatalf("conflict body = %q", got)
	}

	out := mustGitlet(t, "log")
	if !strings.Contains(out, "\nMerge: ") || !strings.Contains(out, "Merged other into master.") {
		t.Fatalf("log after merge =\n%s", out)
	}

	expectFailure(t, "Cannot merge a branch with itself.", "merge", "master")
	expectFailure(t, "A branch with that name does not exist.", "merge", "nope")
	expectFailure(t, "Cannot remove the current branch.", "rm-branch", "master")
	mustGitlet(t, "rm-branch", "ff")
	expectFailure(t, "A branch with that name does not exist.", "rm-branch", "ff")
}

func TestFindAndGlobalLog(t *testing.T) {
	newWorkspace(t)
	writeWorkFile(t, "f.txt", "1")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "shared words")
	mustGitlet(t, "branch", "side")
	mustGitlet(t, "checkout", "side")
	writeWorkFile(t, "f.txt", "2")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "more shared words")

	ids := strings.Fields(mustGitlet(t, "find", "shared"))
	if len(ids) != 2 {
		t.Fatalf("find returned %v", ids)
	}
	expectFailure(t, "Found no commit with that message.", "find", "absent")

	out := mustGitlet(t, "global-log")
	if n := strings.Count(out, "===\ncommit "); n != 3 {
		t.Fatalf("global-log listed %d commits:\n%s", n, out)
	}
}

func TestResetAndReflog(t *testing.T) {
	newWorkspace(t)
	writeWorkFile(t, "f.txt", "1")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "first")
	id := strings.TrimSpace(mustGitlet(t, "find", "first"))
	writeWorkFile(t, "f.txt", "2")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "second")

	mustGitlet(t, "reset", id)
	if got := readWorkFile(t, "f.txt"); got != "1" {
		t.Fatalf("f.txt = %q after reset", got)
	}
	expectFailure(t, "No commit with that id exists.", "reset", "deadbeef")

	lines := strings.Split(strings.TrimSpace(mustGitlet(t, "reflog", "-n", "2")), "\n")
	if len(lines) != 2 {
		t.Fatalf("reflog lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], id[:8]+" ") || !strings.HasSuffix(lines[0], "reset: moving to "+id[:7]) {
		t.Fatalf("latest reflog line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "commit: second") {
		t.Fatalf("second reflog line = %q", lines[1])
	}
}

func TestRemoteCommands(t *testing.T) {
	parent := t.TempDir()
	localDir := filepath.Join(parent, "local")
	peerDir := filepath.Join(parent, "peer")
	for _, d := range []string{localDir, peerDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	peer, err := repo.Init(peerDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Chdir(localDir)
	mustGitlet(t, "init")
	mustGitlet(t, "add-remote", "origin", "../peer/.gitlet")
	expectFailure(t, "A remote with that name already exists.", "add-remote", "origin", "../peer/.gitlet")

	writeWorkFile(t, "f.txt", "local")
	mustGitlet(t, "add", "f.txt")
	mustGitlet(t, "commit", "local work")
	mustGitlet(t, "push", "origin", "master")

	head, ok, err := peer.BranchHead("master")
	if err != nil || !ok {
		t.Fatalf("peer master: ok=%v err=%v", ok, err)
	}
	id := strings.TrimSpace(mustGitlet(t, "find", "local work"))
	if string(head) != id {
		t.Fatalf("peer master = %s, want %s", head, id)
	}

	expectFailure(t, "That remote does not have that branch.", "fetch", "origin", "nope")
	mustGitlet(t, "fetch", "origin", "master")
	expectFailure(t, "Given branch is an ancestor of the current branch.", "pull", "origin", "master")

	mustGitlet(t, "rm-remote", "origin")
	expectFailure(t, "A remote with that name does not exist.", "rm-remote", "origin")

	mustGitlet(t, "add-remote", "ghost", "../nowhere/.gitlet")
	expectFailure(t, "Remote directory not found.", "push", "ghost", "master")
}
