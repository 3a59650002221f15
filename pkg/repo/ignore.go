package repo

import (
	"bufio"
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

const ignoreFile = ".gitletignore"

// IgnoreChecker determines if a working-tree path should be left out of the
// untracked listing.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	negated  bool
	dirOnly  bool
	hasSlash bool // pattern contains a slash, so match against full path
	matcher  glob.Glob
}

// NewIgnoreChecker builds a checker from .gitletignore contents followed by
// extra patterns (typically from config). .gitlet is always ignored.
func NewIgnoreChecker(ignoreData []byte, extra []string) (*IgnoreChecker, error) {
	ic := &IgnoreChecker{}
	if err := ic.add(DirName); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(ignoreData))
	for scanner.Scan() {
		if err := ic.add(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ignore: %w", err)
	}
	for _, p := range extra {
		if err := ic.add(p); err != nil {
			return nil, err
		}
	}
	return ic, nil
}

func (ic *IgnoreChecker) add(line string) error {
	p, err := parseLine(line)
	if err != nil {
		return err
	}
	if p != nil {
		ic.patterns = append(ic.patterns, *p)
	}
	return nil
}

// parseLine parses a single ignore line. Returns nil for blank lines and
// comments.
func parseLine(line string) (*ignorePattern, error) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	p := &ignorePattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return nil, nil
	}
	p.hasSlash = strings.Contains(line, "/")
	p.pattern = line

	m, err := glob.Compile(line, '/')
	if err != nil {
		return nil, fmt.Errorf("ignore: invalid pattern %q: %w", line, err)
	}
	p.matcher = m
	return p, nil
}

// IsIgnored checks whether a slash-separated, root-relative file path should
// be ignored. Last matching pattern wins, so negations can re-include.
func (ic *IgnoreChecker) IsIgnored(filePath string) bool {
	if ic == nil {
		return false
	}
	ignored := false
	for _, p := range ic.patterns {
		if p.match(filePath) {
			ignored = !p.negated
		}
	}
	return ignored
}

func (p ignorePattern) match(filePath string) bool {
	// Candidate directories are every proper prefix of the path; a file
	// inside an ignored directory is ignored.
	dirs := ancestorDirs(filePath)

	if p.hasSlash {
		for _, d := range dirs {
			if p.matcher.Match(d) {
				return true
			}
		}
		return !p.dirOnly && p.matcher.Match(filePath)
	}

	for _, d := range dirs {
		if p.matcher.Match(path.Base(d)) {
			return true
		}
	}
	return !p.dirOnly && p.matcher.Match(path.Base(filePath))
}

func ancestorDirs(filePath string) []string {
	var out []string
	for i := 0; i < len(filePath); i++ {
		if filePath[i] == '/' {
			out = append(out, filePath[:i])
		}
	}
	return out
}

// ignoreChecker loads the repository's ignore rules.
func (r *Repo) ignoreChecker(cfg *Config) (*IgnoreChecker, error) {
	data, err := readWorkFile(r.Work, ignoreFile)
	if err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("ignore: read %s: %w", ignoreFile, err)
	}
	var extra []string
	if cfg != nil {
		extra = cfg.Ignore.Patterns
	}
	return NewIgnoreChecker(data, extra)
}
