package merge

import "bytes"

// Conflict markers written around the two sides of a conflicted file.
const (
	MarkerHead  = "<<<<<<< HEAD\n"
	MarkerSep   = "=======\n"
	MarkerOther = ">>>>>>>"
)

// ConflictBody renders the working-file contents for a conflicted path. A
// side that deleted the file contributes empty content. The sides are
// concatenated verbatim, so content without a trailing newline runs into
// the following marker.
func ConflictBody(head, other []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(MarkerHead) + len(head) + len(MarkerSep) + len(other) + len(MarkerOther))
	buf.WriteString(MarkerHead)
	buf.Write(head)
	buf.WriteString(MarkerSep)
	buf.Write(other)
	buf.WriteString(MarkerOther)
	return buf.Bytes()
}

// Summary counts dispositions over a set of classified paths.
type Summary struct {
	Total     int
	Applied   int
	Conflicts int
}

// Summarize tallies files by how they will be applied.
func Summarize(files []FileMerge) Summary {
	var s Summary
	s.Total = len(files)
	for _, f := range files {
		if f.Disposition == Conflict {
			s.Conflicts++
		}
		if f.Disposition.TouchesWorkTree() {
			s.Applied++
		}
	}
	return s
}
