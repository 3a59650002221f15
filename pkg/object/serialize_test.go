package object

import (
	"bytes"
	"testing"
)

func TestMarshalUnmarshalBlob(t *testing.T) {
	orig := &Blob{Data: []byte("hello world\nline two")}
	got, err := UnmarshalBlob(MarshalBlob(orig))
	if err != nil {
		t.Fatalf("UnmarshalBlob: %v", err)
	}
	if !bytes.Equal(got.Data, orig.Data) {
		t.Errorf("Blob round-trip mismatch: got %q, want %q", got.Data, orig.Data)
	}
}

func TestMarshalTreeSortedAndPathsWithSpaces(t *testing.T) {
	h1 := HashObject(TypeBlob, []byte("1"))
	h2 := HashObject(TypeBlob, []byte("2"))
	tr := &TreeObj{Files: FileSet{"z.txt": h1, "dir/a file.txt": h2}}

	data := MarshalTree(tr)
	want := string(h2) + " dir/a file.txt\n" + string(h1) + " z.txt\n"
	if string(data) != want {
		t.Fatalf("MarshalTree:\n got %q\nwant %q", data, want)
	}

	got, err := UnmarshalTree(data)
	if err != nil {
		t.Fatalf("UnmarshalTree: %v", err)
	}
	if got.Lookup("dir/a file.txt") != h2 || got.Lookup("z.txt") != h1 {
		t.Errorf("tree round-trip lost entries: %v", got.Files)
	}
}

func TestUnmarshalTreeRejectsMalformed(t *testing.T) {
	for _, in := range []string{"short a.txt\n", "nospace\n"} {
		if _, err := UnmarshalTree([]byte(in)); err == nil {
			t.Errorf("UnmarshalTree(%q) should fail", in)
		}
	}
}

func TestMarshalCommitRoundTrip(t *testing.T) {
	p1 := HashObject(TypeCommit, []byte("p1"))
	p2 := HashObject(TypeCommit, []byte("p2"))
	orig := &CommitObj{
		TreeHash:  HashObject(TypeTree, []byte("t")),
		Parents:   []Hash{p1, p2},
		Timestamp: 1700000000,
		Timezone:  "-0800",
		Message:   "Merged dev into master.\n\nwith a body",
	}
	got, err := UnmarshalCommit(MarshalCommit(orig))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.TreeHash != orig.TreeHash || got.Timestamp != orig.Timestamp || got.Timezone != orig.Timezone {
		t.Errorf("header mismatch: %+v", got)
	}
	if got.FirstParent() != p1 || got.SecondParent() != p2 || !got.IsMerge() {
		t.Errorf("parents mismatch: %v", got.Parents)
	}
	if got.Message != orig.Message {
		t.Errorf("Message: got %q, want %q", got.Message, orig.Message)
	}
}

func TestMarshalCommitEmptyTreeAndDefaults(t *testing.T) {
	c := &CommitObj{Message: "initial commit"}
	data := MarshalCommit(c)
	if !bytes.HasPrefix(data, []byte("tree -\ntimestamp 0\ntimezone +0000\n\n")) {
		t.Fatalf("unexpected encoding: %q", data)
	}
	got, err := UnmarshalCommit(data)
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.TreeHash != "" || got.FirstParent() != "" || got.IsMerge() {
		t.Errorf("decoded initial commit = %+v", got)
	}
}

func TestMarshalCommitDeterminism(t *testing.T) {
	c := &CommitObj{Timestamp: 42, Message: "m"}
	if HashObject(TypeCommit, MarshalCommit(c)) != HashObject(TypeCommit, MarshalCommit(c)) {
		t.Error("commit encoding not deterministic")
	}
}

func TestCommitSigningPayloadExcludesSignature(t *testing.T) {
	c := &CommitObj{Message: "m", Signature: "sshsig-v1:x"}
	unsigned := &CommitObj{Message: "m"}
	if !bytes.Equal(CommitSigningPayload(c), MarshalCommit(unsigned)) {
		t.Error("signing payload should match the unsigned encoding")
	}
	if c.Signature == "" {
		t.Error("CommitSigningPayload mutated its argument")
	}
}

func TestUnmarshalCommitTooManyParents(t *testing.T) {
	p := HashObject(TypeCommit, []byte("p"))
	data := "tree -\nparent " + string(p) + "\nparent " + string(p) + "\nparent " + string(p) + "\ntimestamp 0\n\nm"
	if _, err := UnmarshalCommit([]byte(data)); err == nil {
		t.Fatal("three parents should be rejected")
	}
}
