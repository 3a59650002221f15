package object

import "fmt"

// CommitObjects returns every object a commit needs to be self-contained in
// another store: its blobs, then its tree, then the commit itself. Parents
// are not followed.
func (s *Store) CommitObjects(h Hash) ([]Hash, error) {
	c, err := s.ReadCommit(h)
	if err != nil {
		return nil, fmt.Errorf("commit objects %s: %w", h, err)
	}
	tree, err := s.ReadTree(c.TreeHash)
	if err != nil {
		return nil, fmt.Errorf("commit objects %s: tree: %w", h, err)
	}

	seen := make(map[Hash]struct{}, len(tree.Files))
	out := make([]Hash, 0, len(tree.Files)+2)
	for _, p := range tree.Files.Paths() {
		b := tree.Files[p]
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	if c.TreeHash != "" {
		out = append(out, c.TreeHash)
	}
	return append(out, h), nil
}

// CopyCommitTo copies a commit and its snapshot into dst, dependencies
// first, so a reader of dst never observes a commit whose tree is missing.
// It returns the number of objects actually written.
func (s *Store) CopyCommitTo(dst *Store, h Hash) (int, error) {
	hashes, err := s.CommitObjects(h)
	if err != nil {
		return 0, err
	}
	copied := 0
	for _, oh := range hashes {
		ok, err := s.CopyTo(dst, oh)
		if err != nil {
			return copied, fmt.Errorf("copy %s: %w", oh, err)
		}
		if ok {
			copied++
		}
	}
	return copied, nil
}
