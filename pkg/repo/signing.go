package repo

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jmgilman/go/errors"
	"golang.org/x/crypto/ssh"

	"github.com/odvcencio/gitlet/pkg/object"
)

const commitSignaturePrefix = "sshsig-v1"

var (
	ErrUnsignedCommit   = errors.New(CodePrecondition, "Commit is not signed.")
	ErrInvalidSignature = errors.New(errors.CodeConflict, "Commit signature does not verify.")
)

// NewSSHSigner returns a CommitSigner backed by a PEM-encoded SSH private
// key. Signatures have the form sshsig-v1:<format>:<pubkey>:<sig>, both
// binary parts base64 encoded.
func NewSSHSigner(pemBytes []byte) (CommitSigner, ssh.PublicKey, error) {
	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("parse signing key: %w", err)
	}

	pub := signer.PublicKey()
	pubB64 := base64.StdEncoding.EncodeToString(pub.Marshal())

	commitSigner := func(payload []byte) (string, error) {
		sig, err := signer.Sign(rand.Reader, payload)
		if err != nil {
			return "", err
		}
		sigB64 := base64.StdEncoding.EncodeToString(sig.Blob)
		return fmt.Sprintf("%s:%s:%s:%s", commitSignaturePrefix, sig.Format, pubB64, sigB64), nil
	}
	return commitSigner, pub, nil
}

// VerifyCommitSignature checks c's signature against its signing payload
// and returns the key that produced it.
func VerifyCommitSignature(c *object.CommitObj) (ssh.PublicKey, error) {
	if strings.TrimSpace(c.Signature) == "" {
		return nil, ErrUnsignedCommit
	}
	parts := strings.Split(c.Signature, ":")
	if len(parts) != 4 || parts[0] != commitSignaturePrefix {
		return nil, errors.Wrap(fmt.Errorf("unrecognized signature format"), errors.CodeConflict, ErrInvalidSignature.Message())
	}
	pubBytes, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConflict, ErrInvalidSignature.Message())
	}
	pub, err := ssh.ParsePublicKey(pubBytes)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConflict, ErrInvalidSignature.Message())
	}
	blob, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConflict, ErrInvalidSignature.Message())
	}
	sig := &ssh.Signature{Format: parts[1], Blob: blob}
	if err := pub.Verify(object.CommitSigningPayload(c), sig); err != nil {
		return nil, ErrInvalidSignature
	}
	return pub, nil
}

// VerifyCommit resolves an abbreviated commit id and verifies its
// signature.
func (r *Repo) VerifyCommit(id string) (object.Hash, ssh.PublicKey, error) {
	h, err := r.ResolveCommit(id)
	if err != nil {
		return "", nil, err
	}
	c, err := r.ReadCommit(h)
	if err != nil {
		return "", nil, fmt.Errorf("verify: %w", err)
	}
	pub, err := VerifyCommitSignature(c)
	if err != nil {
		return "", nil, err
	}
	return h, pub, nil
}
