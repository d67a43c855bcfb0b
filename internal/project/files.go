package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher applies the workspace include and exclude globs to paths relative to
// the workspace root.
type Matcher struct {
	Root    string
	Include []string
	Exclude []string
}

// Matcher returns the glob filter of the workspace.
func (c Config) Matcher() Matcher {
	return Matcher{Root: c.Workspace.Root, Include: c.Workspace.Include, Exclude: c.Workspace.Exclude}
}

// Validate checks every pattern for syntax errors.
func (m Matcher) Validate() error {
	var errs []error
	for _, p := range slices.Concat(m.Include, m.Exclude) {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Errorf("invalid glob %q", p))
		}
	}
	return errors.Join(errs...)
}

// Match reports whether path is included and not excluded. Absolute paths are
// made relative to the root first; paths outside the root never match.
func (m Matcher) Match(path string) bool {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(m.Root, path)
		if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)
	for _, p := range m.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	if len(m.Include) == 0 {
		return true
	}
	for _, p := range m.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Files lists the matching regular files under the root in lexical order.
func (m Matcher) Files() ([]string, error) {
	var out []string
	err := filepath.WalkDir(m.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if m.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && m.Match(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan workspace %s: %w", m.Root, err)
	}
	return out, nil
}

// SkipDir reports whether a directory below the root is excluded as a whole.
func (m Matcher) SkipDir(path string) bool {
	return path != m.Root && m.excludedDir(path)
}

// excludedDir reports whether an exclude pattern names the whole directory,
// e.g. `log/**` for log.
func (m Matcher) excludedDir(path string) bool {
	rel, err := filepath.Rel(m.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range m.Exclude {
		if ok, _ := doublestar.Match(p, rel+"/x"); ok {
			if full, _ := doublestar.Match(p, rel+"/x/y"); full {
				return true
			}
		}
	}
	return false
}
