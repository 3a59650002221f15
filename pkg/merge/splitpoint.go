package merge

import (
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

// ParentFunc returns the first parent of a commit, or "" for a root commit.
type ParentFunc func(object.Hash) (object.Hash, error)

// SplitPoint approximates the common ancestor of head and other.
//
// Algorithm:
//  1. Walk both first-parent chains in lock-step, head first on each step.
//  2. Record every hash in one shared visited set.
//  3. The first hash that is already in the set when it is about to be
//     added is the split point.
//
// In diamond-shaped histories this can return a common ancestor that is not
// the lowest one. When the chains share nothing the result is "".
func SplitPoint(head, other object.Hash, parent ParentFunc) (object.Hash, error) {
	visited := make(map[object.Hash]struct{})
	step := func(h object.Hash) (next object.Hash, found bool, err error) {
		if _, ok := visited[h]; ok {
			return h, true, nil
		}
		visited[h] = struct{}{}
		next, err = parent(h)
		if err != nil {
			return "", false, fmt.Errorf("split point: parent of %s: %w", h, err)
		}
		return next, false, nil
	}

	for head != "" || other != "" {
		if head != "" {
			next, found, err := step(head)
			if err != nil {
				return "", err
			}
			if found {
				return head, nil
			}
			head = next
		}
		if other != "" {
			next, found, err := step(other)
			if err != nil {
				return "", err
			}
			if found {
				return other, nil
			}
			other = next
		}
	}
	return "", nil
}
