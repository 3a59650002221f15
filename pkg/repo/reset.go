package repo

import "fmt"

// Reset checks out every file of the given commit, removes files tracked
// now but absent there, moves the current branch to it and clears the
// index. Abbreviated ids are accepted.
func (r *Repo) Reset(commitID string) error {
	target, err := r.ResolveCommit(commitID)
	if err != nil {
		return err
	}
	ref, err := r.Head()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	if err := r.syncWorkTree(target); err != nil {
		return err
	}
	if err := r.updateRef(ref, target, "reset: moving to "+target.Short(7)); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := r.clearIndex(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
