package repo

import "github.com/jmgilman/go/errors"

// Error codes beyond the shared set. Every user-facing failure carries one
// of these or a built-in code, and its Message is the text shown to the user.
const (
	CodePrecondition errors.ErrorCode = "PRECONDITION_FAILED"
	CodeAmbiguousID  errors.ErrorCode = "AMBIGUOUS_ID"
	CodeRemote       errors.ErrorCode = "REMOTE_ERROR"
)

var (
	ErrNotRepository = errors.New(errors.CodeNotFound, "Not in an initialized Gitlet directory.")
	ErrAlreadyExists = errors.New(errors.CodeAlreadyExists, "A Gitlet version-control system already exists in the current directory.")

	ErrFileNotExist     = errors.New(CodePrecondition, "File does not exist.")
	ErrNoReasonToRemove = errors.New(CodePrecondition, "No reason to remove the file.")
	ErrNothingToCommit  = errors.New(CodePrecondition, "No changes added to the commit.")
	ErrEmptyMessage     = errors.New(CodePrecondition, "Please enter a commit message.")

	ErrNoMatchingMessage = errors.New(errors.CodeNotFound, "Found no commit with that message.")
	ErrNoSuchCommit      = errors.New(errors.CodeNotFound, "No commit with that id exists.")
	ErrAmbiguousCommit   = errors.New(CodeAmbiguousID, "Multiple commits match that id.")
	ErrFileNotInCommit   = errors.New(CodePrecondition, "File does not exist in that commit.")

	ErrNoSuchBranch        = errors.New(errors.CodeNotFound, "No such branch exists.")
	ErrAlreadyOnBranch     = errors.New(CodePrecondition, "No need to checkout the current branch.")
	ErrBranchExists        = errors.New(CodePrecondition, "A branch with that name already exists.")
	ErrBranchNotFound      = errors.New(errors.CodeNotFound, "A branch with that name does not exist.")
	ErrRemoveCurrentBranch = errors.New(CodePrecondition, "Cannot remove the current branch.")

	ErrUntrackedInTheWay  = errors.New(errors.CodeConflict, "There is an untracked file in the way; delete it, or add and commit it first.")
	ErrUncommittedChanges = errors.New(errors.CodeConflict, "You have uncommitted changes.")
	ErrMergeWithSelf      = errors.New(CodePrecondition, "Cannot merge a branch with itself.")
	ErrAncestorBranch     = errors.New(CodePrecondition, "Given branch is an ancestor of the current branch.")

	ErrRemoteExists   = errors.New(CodeRemote, "A remote with that name already exists.")
	ErrRemoteNotFound = errors.New(CodeRemote, "A remote with that name does not exist.")
)

// UserMessage returns the text to show for err: the message of the outermost
// coded error, or the plain error string for infrastructure failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe errors.PlatformError
	if errors.As(err, &pe) {
		return pe.Message()
	}
	return err.Error()
}
