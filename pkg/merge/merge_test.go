package merge

import (
	"slices"
	"testing"

	"github.com/odvcencio/gitlet/pkg/object"
)

func h(s string) object.Hash {
	return object.HashObject(object.TypeBlob, []byte(s))
}

func TestClassifyRules(t *testing.T) {
	a, b, c := h("a"), h("b"), h("c")

	tests := []struct {
		name               string
		split, head, other object.Hash
		want               Disposition
	}{
		{"modified in other only", a, a, b, TakeOther},
		{"modified in head only", a, b, a, KeepHead},
		{"modified the same way", a, b, b, Converged},
		{"deleted on both sides", a, "", "", Converged},
		{"added identically", "", b, b, Converged},
		{"added in head only", "", a, "", AddedHead},
		{"added in other only", "", "", a, AddedOther},
		{"deleted in other, untouched in head", a, a, "", DeletedOther},
		{"deleted in head, untouched in other", a, "", a, DeletedHead},
		{"modified differently", a, b, c, Conflict},
		{"added differently", "", a, b, Conflict},
		{"modified in head, deleted in other", a, b, "", Conflict},
		{"deleted in head, modified in other", a, "", b, Conflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.split, tt.head, tt.other); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTouchesWorkTree(t *testing.T) {
	touching := map[Disposition]bool{
		TakeOther: true, AddedOther: true, DeletedOther: true, Conflict: true,
	}
	for d := TakeOther; d <= Conflict; d++ {
		if got := d.TouchesWorkTree(); got != touching[d] {
			t.Errorf("%s.TouchesWorkTree() = %v", d, got)
		}
	}
}

func TestMatchFilesUnionSorted(t *testing.T) {
	a, b := h("a"), h("b")
	split := object.FileSet{"f": a, "gone": a}
	head := object.FileSet{"f": a, "gone": a, "mine": b}
	other := object.FileSet{"f": b, "theirs": a}

	files := MatchFiles(split, head, other)
	if len(files) != 4 {
		t.Fatalf("MatchFiles returned %d files, want 4", len(files))
	}

	got := make(map[string]Disposition)
	var order []string
	for _, f := range files {
		got[f.Path] = f.Disposition
		order = append(order, f.Path)
	}
	if want := []string{"f", "gone", "mine", "theirs"}; !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	want := map[string]Disposition{"f": TakeOther, "gone": DeletedOther, "mine": AddedHead, "theirs": AddedOther}
	for p, d := range want {
		if got[p] != d {
			t.Errorf("%s = %v, want %v", p, got[p], d)
		}
	}

	if s := Summarize(files); s != (Summary{Total: 4, Applied: 3, Conflicts: 0}) {
		t.Fatalf("Summarize = %+v", s)
	}
}

func TestConflictBody(t *testing.T) {
	if got := string(ConflictBody([]byte("A"), []byte("B"))); got != "<<<<<<< HEAD\nA=======\nB>>>>>>>" {
		t.Fatalf("ConflictBody(A, B) = %q", got)
	}
	if got := string(ConflictBody([]byte("A\n"), nil)); got != "<<<<<<< HEAD\nA\n=======\n>>>>>>>" {
		t.Fatalf("ConflictBody(A, nil) = %q", got)
	}
}
