// Package sandbox confines filesystem access to a single directory tree.
//
// Every path argument a command receives is resolved against the session
// working directory and then checked against the sandbox root. Escapes via
// "..", absolute paths, or "~" expansion all fail the same way, so callers
// can surface one error kind regardless of how the escape was written.
package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideSandbox is returned when a resolved path falls outside the
// sandbox root.
var ErrOutsideSandbox = errors.New("path outside sandbox root")

// Resolver resolves user-supplied paths to absolute ones and enforces the
// sandbox boundary. The zero value is unusable; construct with New.
type Resolver struct {
	root    string
	enforce bool
}

// New creates a resolver rooted at root. An empty root selects the user's
// home directory, falling back to the process working directory when the
// home cannot be determined. The root is made absolute and cleaned.
func New(root string, enforce bool) (*Resolver, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cwd, cwdErr := os.Getwd()
			if cwdErr != nil {
				return nil, cwdErr
			}
			home = cwd
		}
		root = home
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Resolver{root: filepath.Clean(abs), enforce: enforce}, nil
}

// Root returns the sandbox root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Enforced reports whether escape attempts are rejected.
func (r *Resolver) Enforced() bool {
	return r.enforce
}

// Resolve expands and absolutizes path against cwd, then applies the
// sandbox check. The returned path is cleaned and absolute.
func (r *Resolver) Resolve(cwd, path string) (string, error) {
	p := ExpandUser(path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	p = filepath.Clean(p)
	if r.enforce && !r.Within(p) {
		return "", ErrOutsideSandbox
	}
	return p, nil
}

// Within reports whether the cleaned absolute path lies inside the sandbox
// root. The root itself counts as inside.
func (r *Resolver) Within(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// InitialDir returns the working directory new sessions start in: the
// process working directory when it lies inside the sandbox, otherwise the
// sandbox root.
func (r *Resolver) InitialDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return r.root
	}
	cwd = filepath.Clean(cwd)
	if r.enforce && !r.Within(cwd) {
		return r.root
	}
	return cwd
}

// HomeDir returns the target of a bare "cd": the user's home directory,
// clamped to the sandbox root when home lies outside it.
func (r *Resolver) HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return r.root
	}
	home = filepath.Clean(home)
	if r.enforce && !r.Within(home) {
		return r.root
	}
	return home
}

// ExpandUser rewrites a leading "~" or "~/" to the current user's home
// directory. Other forms, including "~name", pass through unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
