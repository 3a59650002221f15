package repo

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"testing"

	"golang.org/x/crypto/ssh"
)

func testSigningKey(t *testing.T) []byte {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	mustNoErr(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "test")
	mustNoErr(t, err)
	return pem.EncodeToMemory(block)
}

func TestSignedCommitVerifies(t *testing.T) {
	signer, pub, err := NewSSHSigner(testSigningKey(t))
	mustNoErr(t, err)

	r, fs := newTestRepo(t, WithSigner(signer))
	h := commitFiles(t, r, fs, "signed", map[string]string{"a.txt": "a"})

	got, key, err := r.VerifyCommit(h.Short(10))
	mustNoErr(t, err)
	if got != h {
		t.Fatalf("verified %s, want %s", got, h)
	}
	if want, have := ssh.FingerprintSHA256(pub), ssh.FingerprintSHA256(key); have != want {
		t.Fatalf("signing key = %s, want %s", have, want)
	}
}

func TestTamperedCommitFailsVerification(t *testing.T) {
	signer, _, err := NewSSHSigner(testSigningKey(t))
	mustNoErr(t, err)

	r, fs := newTestRepo(t, WithSigner(signer))
	h := commitFiles(t, r, fs, "original message", map[string]string{"a.txt": "a"})

	c, err := r.Store.ReadCommit(h)
	mustNoErr(t, err)
	c.Message = "rewritten message"
	_, err = VerifyCommitSignature(c)
	wantErr(t, err, ErrInvalidSignature)

	c.Signature = "not-a-signature"
	_, err = VerifyCommitSignature(c)
	if err == nil {
		t.Fatal("garbage signature verified")
	}
	wantMessage(t, err, "Commit signature does not verify.")
}

func TestInitialCommitIsUnsigned(t *testing.T) {
	signer, _, err := NewSSHSigner(testSigningKey(t))
	mustNoErr(t, err)

	r, _ := newTestRepo(t, WithSigner(signer))
	_, _, err = r.VerifyCommit(string(headHash(t, r)))
	wantErr(t, err, ErrUnsignedCommit)
}

func TestNewSSHSignerRejectsGarbage(t *testing.T) {
	if _, _, err := NewSSHSigner([]byte("not a key")); err == nil {
		t.Fatal("NewSSHSigner accepted garbage")
	}
}
