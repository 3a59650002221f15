package repo

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

const (
	headsPrefix   = "refs/heads"
	remotesPrefix = "refs/remotes"
	pathsPrefix   = "refs/paths"
	headFile      = "HEAD"
)

func branchRef(name string) string {
	return path.Join(headsPrefix, name)
}

func trackingRef(remote, branch string) string {
	return path.Join(remotesPrefix, remote, branch)
}

// Head reads .gitlet/HEAD and returns the ref path it points at, e.g.
// "refs/heads/master". HEAD is always symbolic.
func (r *Repo) Head() (string, error) {
	data, ok, err := r.readMetaFile(headFile)
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("head: %w", os.ErrNotExist)
	}
	ref := strings.TrimSpace(string(data))
	if !strings.HasPrefix(ref, headsPrefix+"/") {
		return "", fmt.Errorf("head: unexpected target %q", ref)
	}
	return ref, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	ref, err := r.Head()
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(ref, headsPrefix+"/"), nil
}

// setHead repoints HEAD at the named branch.
func (r *Repo) setHead(branch string) error {
	if err := r.writeMetaFile(headFile, []byte(branchRef(branch))); err != nil {
		return fmt.Errorf("set head: %w", err)
	}
	return nil
}

// HeadCommit resolves HEAD through the current branch to a commit hash.
func (r *Repo) HeadCommit() (object.Hash, error) {
	ref, err := r.Head()
	if err != nil {
		return "", err
	}
	h, ok, err := r.readRef(ref)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("head commit: %s: %w", ref, os.ErrNotExist)
	}
	return h, nil
}

// readRef reads the hash stored in a ref file such as "refs/heads/master".
func (r *Repo) readRef(ref string) (object.Hash, bool, error) {
	data, ok, err := r.readMetaFile(ref)
	if err != nil {
		return "", false, fmt.Errorf("read ref %q: %w", ref, err)
	}
	if !ok {
		return "", false, nil
	}
	return object.Hash(strings.TrimSpace(string(data))), true, nil
}

// updateRef points ref at h and records the movement in the reflog.
func (r *Repo) updateRef(ref string, h object.Hash, reason string) error {
	old, _, err := r.readRef(ref)
	if err != nil {
		return fmt.Errorf("update ref %q: %w", ref, err)
	}
	if err := r.writeMetaFile(ref, []byte(h)); err != nil {
		return fmt.Errorf("update ref %q: %w", ref, err)
	}
	if err := r.appendReflog(ref, old, h, reason); err != nil {
		return fmt.Errorf("update ref %q: %w", ref, err)
	}
	r.Logger.Debug("ref updated", "ref", ref, "old", old.Short(7), "new", h.Short(7), "reason", reason)
	return nil
}

// deleteRef removes a ref file. Missing refs are not an error.
func (r *Repo) deleteRef(ref string) error {
	if err := r.Meta.Remove(ref); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete ref %q: %w", ref, err)
	}
	return nil
}

// ListRefs lists ref files under .gitlet/<prefix>, keyed by their path
// relative to prefix, e.g. "master" under "refs/heads".
func (r *Repo) ListRefs(prefix string) (map[string]object.Hash, error) {
	refs := make(map[string]object.Hash)
	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		entries, err := r.Meta.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".tmp-") {
				continue
			}
			full := path.Join(dir, e.Name())
			name := path.Join(rel, e.Name())
			if e.IsDir() {
				if err := walk(full, name); err != nil {
					return err
				}
				continue
			}
			h, _, err := r.readRef(full)
			if err != nil {
				return err
			}
			refs[name] = h
		}
		return nil
	}
	if err := walk(prefix, ""); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return refs, nil
		}
		return nil, fmt.Errorf("list refs %s: %w", prefix, err)
	}
	return refs, nil
}

// ResolveBranch returns the head commit for a local branch name or a
// remote-tracking name of the form "<remote>/<branch>". Local branches
// win when both exist.
func (r *Repo) ResolveBranch(name string) (object.Hash, string, error) {
	if name == "" {
		return "", "", ErrBranchNotFound
	}
	for _, ref := range []string{branchRef(name), path.Join(remotesPrefix, name)} {
		h, ok, err := r.readRef(ref)
		if err != nil {
			return "", "", err
		}
		if ok {
			return h, ref, nil
		}
	}
	return "", "", ErrBranchNotFound
}

func sortedKeys(m map[string]object.Hash) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
