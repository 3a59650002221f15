package remote

import (
	"github.com/jmgilman/go/errors"

	"github.com/odvcencio/gitlet/pkg/repo"
)

var (
	ErrRemoteDirNotFound = errors.New(repo.CodeRemote, "Remote directory not found.")
	ErrPullFirst         = errors.New(repo.CodeRemote, "Please pull down remote changes before pushing.")
	ErrNoRemoteBranch    = errors.New(repo.CodeRemote, "That remote does not have that branch.")
)
