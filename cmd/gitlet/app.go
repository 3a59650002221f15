package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/odvcencio/gitlet/pkg/repo"
)

// app carries per-invocation state shared by the commands.
type app struct {
	verbose bool
	runID   string
	stderr  io.Writer
	logger  *slog.Logger
}

func newApp(stderr io.Writer) *app {
	a := &app{runID: uuid.NewString(), stderr: stderr}
	a.logger = a.newLogger(slog.LevelWarn)
	return a
}

func (a *app) newLogger(level slog.Level) *slog.Logger {
	if a.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", a.runID)
}

// openRepo opens the repository containing the working directory and
// applies its config: log level and, when configured, a commit signer.
func (a *app) openRepo() (*repo.Repo, error) {
	r, err := repo.Open(".")
	if err != nil {
		return nil, err
	}
	cfg, err := r.ReadConfig()
	if err != nil {
		return nil, err
	}
	a.logger = a.newLogger(cfg.Log.SlogLevel())
	opts := []repo.Option{repo.WithLogger(a.logger)}

	if key := strings.TrimSpace(cfg.Signing.Key); key != "" {
		signer, keyPath, err := newSSHCommitSigner(key, r.RootDir)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("signing commits", "key", keyPath)
		opts = append(opts, repo.WithSigner(signer))
	}
	r.Configure(opts...)
	return r, nil
}

// repoPath converts a path given on the command line, relative to the
// current directory, into a slash-separated path relative to the root.
func repoPath(r *repo.Repo, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return "", err
	}
	return repo.CleanPath(filepath.ToSlash(rel))
}
