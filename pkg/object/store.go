package object

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123...
type Store struct {
	fs billy.Filesystem
}

// NewStore creates a Store over the repository metadata filesystem. The
// objects/ subdirectory is created lazily on first write.
func NewStore(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return s.fs.Join("objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if len(h) < 3 {
		return false
	}
	_, err := s.fs.Stat(s.objectPath(h))
	return err == nil
}

// Write stores an object and returns its content hash. The on-disk format
// is "type len\0content". Writes are atomic: data is written to a temp
// file and then renamed into place. Writing content that is already
// present is a no-op.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	envelope := fmt.Sprintf("%s %d\x00", objType, len(data))
	raw := append([]byte(envelope), data...)

	h := HashObject(objType, data)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}
	if err := s.writeRaw(h, raw); err != nil {
		return "", err
	}
	return h, nil
}

func (s *Store) writeRaw(h Hash, raw []byte) error {
	dir := s.fs.Join("objects", string(h[:2]))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("object write mkdir: %w", err)
	}

	// Atomic write via temp + rename.
	tmp, err := util.TempFile(s.fs, dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("object write close: %w", err)
	}

	if err := s.fs.Rename(tmpName, s.objectPath(h)); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("object write rename: %w", err)
	}
	return nil
}

// ReadRaw returns the stored envelope bytes of an object without parsing.
func (s *Store) ReadRaw(h Hash) ([]byte, error) {
	if len(h) < 3 {
		return nil, fmt.Errorf("object read %q: %w", h, os.ErrNotExist)
	}
	raw, err := util.ReadFile(s.fs, s.objectPath(h))
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return raw, nil
}

// Read retrieves an object by hash, returning its type and raw content.
// A missing object yields an error wrapping os.ErrNotExist.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return "", nil, err
	}
	return parseEnvelope(h, raw)
}

func parseEnvelope(h Hash, raw []byte) (ObjectType, []byte, error) {
	// Parse envelope: "type len\0content"
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	objType := ObjectType(parts[0])
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: invalid length %q: %w", h, parts[1], err)
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(content))
	}

	return objType, content, nil
}

// CopyTo copies the object h verbatim into dst. It reports false without
// touching dst when dst already holds the object.
func (s *Store) CopyTo(dst *Store, h Hash) (bool, error) {
	if h == "" || dst.Has(h) {
		return false, nil
	}
	raw, err := s.ReadRaw(h)
	if err != nil {
		return false, err
	}
	if err := dst.writeRaw(h, raw); err != nil {
		return false, err
	}
	return true, nil
}

// FindByPrefix returns every stored object of type want whose hash starts
// with prefix, sorted. An empty want matches any type. Prefixes shorter than
// the shard width or longer than a full hash match nothing.
func (s *Store) FindByPrefix(prefix string, want ObjectType) ([]Hash, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < 2 || len(prefix) > HashLen {
		return nil, nil
	}
	if len(prefix) == HashLen {
		h := Hash(prefix)
		if !s.Has(h) || !s.hasType(h, want) {
			return nil, nil
		}
		return []Hash{h}, nil
	}

	shard := prefix[:2]
	entries, err := s.fs.ReadDir(s.fs.Join("objects", shard))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("find object %q: %w", prefix, err)
	}

	var out []Hash
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix[2:]) {
			continue
		}
		h := Hash(shard + e.Name())
		if !h.IsFull() || !s.hasType(h, want) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Store) hasType(h Hash, want ObjectType) bool {
	if want == "" {
		return true
	}
	objType, _, err := s.Read(h)
	return err == nil && objType == want
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeBlob)
	}
	return UnmarshalBlob(data)
}

// WriteTree serializes and stores a TreeObj. The empty snapshot is never
// stored; its identity is the sentinel "".
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	if tr == nil || len(tr.Files) == 0 {
		return "", nil
	}
	return s.Write(TypeTree, MarshalTree(tr))
}

// ReadTree reads and deserializes a TreeObj. The sentinel "" resolves to
// the empty snapshot without touching the store.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	if h == "" {
		return EmptyTree(), nil
	}
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeTree)
	}
	return UnmarshalTree(data)
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeCommit)
	}
	return UnmarshalCommit(data)
}
