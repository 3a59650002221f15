package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// HashLen is the length of a full hex-encoded object id.
const HashLen = 2 * sha1.Size

// HashBytes computes the raw SHA-1 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the envelope "type len\0content". The
// same envelope is what Store writes to disk, so an object's key is a pure
// function of its content.
func HashObject(objType ObjectType, data []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(data))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// IsFull reports whether h has the length of a complete object id.
func (h Hash) IsFull() bool {
	return len(h) == HashLen
}

// Short returns the first n characters of h, or h itself when shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}
