package repo

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"github.com/odvcencio/gitlet/pkg/object"
)

// AddRemote registers a peer repository under name. location is a
// filesystem path to the peer's working root or its .gitlet directory.
func (r *Repo) AddRemote(name, location string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("add remote: invalid remote name %q", name)
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("add remote: location is required")
	}
	if _, exists, err := r.readMetaFile(path.Join(pathsPrefix, name)); err != nil {
		return fmt.Errorf("add remote: %w", err)
	} else if exists {
		return ErrRemoteExists
	}

	if err := r.writeMetaFile(path.Join(pathsPrefix, name), []byte(filepath.Clean(location))); err != nil {
		return fmt.Errorf("add remote: %w", err)
	}
	if err := r.Meta.MkdirAll(path.Join(remotesPrefix, name), 0o755); err != nil {
		return fmt.Errorf("add remote: %w", err)
	}
	r.Logger.Info("remote added", "remote", name, "location", location)
	return nil
}

// RemoveRemote forgets a peer and its remote-tracking refs.
func (r *Repo) RemoveRemote(name string) error {
	if _, err := r.RemoteLocation(name); err != nil {
		return err
	}
	if err := r.Meta.Remove(path.Join(pathsPrefix, name)); err != nil {
		return fmt.Errorf("rm remote: %w", err)
	}
	if err := util.RemoveAll(r.Meta, path.Join(remotesPrefix, name)); err != nil {
		return fmt.Errorf("rm remote: %w", err)
	}
	return nil
}

// RemoteLocation returns the registered path for a remote name.
func (r *Repo) RemoteLocation(name string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		return "", ErrRemoteNotFound
	}
	data, ok, err := r.readMetaFile(path.Join(pathsPrefix, name))
	if err != nil {
		return "", fmt.Errorf("remote %q: %w", name, err)
	}
	if !ok {
		return "", ErrRemoteNotFound
	}
	return strings.TrimSpace(string(data)), nil
}

// Remotes returns every registered remote and its location.
func (r *Repo) Remotes() (map[string]string, error) {
	entries, err := r.ListRefs(pathsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	out := make(map[string]string, len(entries))
	for name, loc := range entries {
		out[name] = string(loc)
	}
	return out, nil
}

// TrackingRef returns the last known head of branch on remote.
func (r *Repo) TrackingRef(remote, branch string) (object.Hash, bool, error) {
	return r.readRef(trackingRef(remote, branch))
}

// SetTrackingRef records h as the last known head of branch on remote.
func (r *Repo) SetTrackingRef(remote, branch string, h object.Hash, reason string) error {
	return r.updateRef(trackingRef(remote, branch), h, reason)
}

// BranchHead returns the head commit of a local branch.
func (r *Repo) BranchHead(name string) (object.Hash, bool, error) {
	return r.readRef(branchRef(name))
}

// UpdateBranch points a local branch at h, creating it when absent. The
// working tree is not touched.
func (r *Repo) UpdateBranch(name string, h object.Hash, reason string) error {
	if err := validBranchName(name); err != nil {
		return err
	}
	return r.updateRef(branchRef(name), h, reason)
}
