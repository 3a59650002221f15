package remote

import (
	"os"
	"path/filepath"

	"github.com/jmgilman/go/errors"

	"github.com/odvcencio/gitlet/pkg/repo"
)

// OpenPeer opens the repository registered under name in local's remote
// registry. Relative locations resolve against local's working root.
func OpenPeer(local *repo.Repo, name string) (*repo.Repo, error) {
	loc, err := local.RemoteLocation(name)
	if err != nil {
		return nil, err
	}
	root := PeerRoot(loc)
	if !filepath.IsAbs(root) && local.RootDir != "" {
		root = filepath.Join(local.RootDir, root)
	}

	info, err := os.Stat(filepath.Join(root, repo.DirName))
	if err != nil || !info.IsDir() {
		return nil, ErrRemoteDirNotFound
	}
	peer, err := repo.OpenAt(root, repo.WithLogger(local.Logger.With("remote", name)))
	if err != nil {
		return nil, errors.Wrap(err, repo.CodeRemote, ErrRemoteDirNotFound.Message())
	}
	return peer, nil
}

// PeerRoot maps a registered location to the peer's working root. Both the
// root itself and its .gitlet directory are accepted.
func PeerRoot(location string) string {
	loc := filepath.Clean(location)
	if filepath.Base(loc) == repo.DirName {
		return filepath.Dir(loc)
	}
	return loc
}
