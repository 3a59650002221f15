package merge

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// Disposition describes how a single path is reconciled by a three-way
// merge. The numeric values are the rule numbers, evaluated in order:
// changed in other only, changed in head only, head and other agree, new in
// head only, new in other only, deleted in other, deleted in head, and
// finally conflict.
type Disposition int

const (
	TakeOther Disposition = iota + 1
	KeepHead
	Converged
	AddedHead
	AddedOther
	DeletedOther
	DeletedHead
	Conflict
)

func (d Disposition) String() string {
	switch d {
	case TakeOther:
		return "TakeOther"
	case KeepHead:
		return "KeepHead"
	case Converged:
		return "Converged"
	case AddedHead:
		return "AddedHead"
	case AddedOther:
		return "AddedOther"
	case DeletedOther:
		return "DeletedOther"
	case DeletedHead:
		return "DeletedHead"
	case Conflict:
		return "Conflict"
	}
	return fmt.Sprintf("Disposition(%d)", int(d))
}

// TouchesWorkTree reports whether applying d writes or deletes the working
// file. Only these paths are subject to the untracked-file check.
func (d Disposition) TouchesWorkTree() bool {
	switch d {
	case TakeOther, AddedOther, DeletedOther, Conflict:
		return true
	}
	return false
}

// Classify determines the Disposition for one path given its blob hash at
// the split point, at head and at other. An absent path is "". The rules
// overlap, so the order of the cases below is significant.
func Classify(split, head, other object.Hash) Disposition {
	inSplit := split != ""
	inHead := head != ""
	inOther := other != ""

	switch {
	case inSplit && inHead && inOther && split == head && split != other:
		return TakeOther
	case inSplit && inHead && inOther && split != head && split == other:
		return KeepHead
	case head == other:
		return Converged
	case !inSplit && inHead && !inOther:
		return AddedHead
	case !inSplit && !inHead && inOther:
		return AddedOther
	case inSplit && inHead && !inOther && split == head:
		return DeletedOther
	case inSplit && !inHead && inOther && split == other:
		return DeletedHead
	}
	return Conflict
}

// FileMerge is the classification of one path across the three snapshots.
type FileMerge struct {
	Path        string
	Split       object.Hash
	Head        object.Hash
	Other       object.Hash
	Disposition Disposition
}

// MatchFiles classifies every path that appears in any of the three
// snapshots. The result is sorted by path.
func MatchFiles(split, head, other object.FileSet) []FileMerge {
	union := make(object.FileSet, len(split)+len(head)+len(other))
	for _, fs := range []object.FileSet{split, head, other} {
		for p := range fs {
			union[p] = ""
		}
	}

	out := make([]FileMerge, 0, len(union))
	for _, p := range union.Paths() {
		fm := FileMerge{
			Path:  p,
			Split: split.Lookup(p),
			Head:  head.Lookup(p),
			Other: other.Lookup(p),
		}
		fm.Disposition = Classify(fm.Split, fm.Head, fm.Other)
		out = append(out, fm)
	}
	return out
}
