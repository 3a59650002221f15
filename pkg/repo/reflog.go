package repo

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/odvcencio/gitlet/pkg/object"
)

const zeroHash = "0000000000000000000000000000000000000000"

// ReflogEntry records one movement of a ref.
type ReflogEntry struct {
	Ref       string
	OldHash   object.Hash
	NewHash   object.Hash
	Timestamp int64
	Reason    string
}

func reflogPath(ref string) string {
	return path.Join("logs", ref)
}

func (r *Repo) appendReflog(ref string, oldHash, newHash object.Hash, reason string) error {
	if strings.TrimSpace(reason) == "" {
		reason = "update"
	}

	logPath := reflogPath(ref)
	if err := r.Meta.MkdirAll(path.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("reflog mkdir: %w", err)
	}

	old := string(oldHash)
	if old == "" {
		old = zeroHash
	}
	newVal := string(newHash)
	if newVal == "" {
		newVal = zeroHash
	}
	line := fmt.Sprintf("%s %s %d %s\n", old, newVal, r.timestamp().Unix(), reason)

	f, err := r.Meta.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("reflog open: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte(line)); err != nil {
		return fmt.Errorf("reflog write: %w", err)
	}
	return nil
}

// ReadReflog returns the movements of a branch, newest first. An empty
// branch name means the current branch. limit <= 0 returns everything.
func (r *Repo) ReadReflog(branch string, limit int) ([]ReflogEntry, error) {
	if strings.TrimSpace(branch) == "" {
		cur, err := r.CurrentBranch()
		if err != nil {
			return nil, err
		}
		branch = cur
	}
	ref := branchRef(branch)

	f, err := r.Meta.Open(reflogPath(ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reflog: %w", err)
	}
	defer f.Close()

	var entries []ReflogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 4)
		if len(parts) < 4 {
			continue
		}
		ts, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, ReflogEntry{
			Ref:       ref,
			OldHash:   unzero(parts[0]),
			NewHash:   unzero(parts[1]),
			Timestamp: ts,
			Reason:    parts[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read reflog: %w", err)
	}

	// Return newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func unzero(s string) object.Hash {
	if s == zeroHash {
		return ""
	}
	return object.Hash(s)
}
