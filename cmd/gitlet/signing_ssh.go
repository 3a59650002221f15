package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitlet/pkg/repo"
)

// autoSigningKey in config.toml selects the first default key in ~/.ssh.
const autoSigningKey = "auto"

func newSSHCommitSigner(keyPath, root string) (repo.CommitSigner, string, error) {
	resolvedPath, err := resolveSigningKeyPath(keyPath, root)
	if err != nil {
		return nil, "", err
	}

	raw, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, "", fmt.Errorf("read signing key %q: %w", resolvedPath, err)
	}
	signer, _, err := repo.NewSSHSigner(raw)
	if err != nil {
		return nil, "", fmt.Errorf("signing key %q: %w", resolvedPath, err)
	}
	return signer, resolvedPath, nil
}

// resolveSigningKeyPath expands "~/", resolves relative paths against the
// repository root and maps "auto" to a default key.
func resolveSigningKeyPath(path, root string) (string, error) {
	path = strings.TrimSpace(path)
	if path != autoSigningKey {
		expanded, err := expandUserPath(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(root, expanded)
		}
		return expanded, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	candidates := []string{
		filepath.Join(home, ".ssh", "id_ed25519"),
		filepath.Join(home, ".ssh", "id_ecdsa"),
		filepath.Join(home, ".ssh", "id_rsa"),
	}
	for _, candidate := range candidates {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no default SSH private key found in ~/.ssh (id_ed25519, id_ecdsa, id_rsa)")
}

func expandUserPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}
