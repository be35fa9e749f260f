// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ResolveWithinRoot maps a caller-supplied relative path to a filesystem
// path under root. It rejects any traversal outside root, including through
// existing symlinks.
func ResolveWithinRoot(root, userPath string) (string, error) {
	if root == "" {
		return "", ErrInvalidRoot
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	rootAbs = filepath.Clean(rootAbs)

	rel := filepath.FromSlash(strings.TrimLeft(userPath, `/\`))
	joined := filepath.Clean(filepath.Join(rootAbs, rel))

	if !isWithin(rootAbs, joined) || hasSymlinkComponent(rootAbs, joined) {
		return "", ErrPathTraversal
	}

	if existing := nearestExisting(joined); existing != "" {
		resolved, err := filepath.EvalSymlinks(existing)
		if err != nil {
			return "", err
		}
		rootResolved, err := filepath.EvalSymlinks(nearestExisting(rootAbs))
		if err != nil {
			return "", err
		}
		if !isWithin(rootResolved, resolved) && !isWithin(rootAbs, resolved) {
			return "", ErrPathTraversal
		}
	}

	return joined, nil
}

func hasSymlinkComponent(rootAbs, fullPath string) bool {
	rel, err := filepath.Rel(rootAbs, fullPath)
	if err != nil {
		return true
	}
	if rel == "." {
		return false
	}
	cur := rootAbs
	for _, p := range strings.Split(rel, string(filepath.Separator)) {
		if p == "" || p == "." {
			continue
		}
		cur = filepath.Join(cur, p)
		st, err := os.Lstat(cur)
		if err != nil {
			return false
		}
		if st.Mode()&os.ModeSymlink != 0 {
			return true
		}
	}
	return false
}

func isWithin(root, candidate string) bool {
	root = filepath.Clean(root)
	candidate = filepath.Clean(candidate)
	if root == candidate {
		return true
	}
	sep := string(filepath.Separator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	return strings.HasPrefix(candidate, root)
}

func nearestExisting(p string) string {
	cur := p
	for {
		_, err := os.Lstat(cur)
		if err == nil {
			return cur
		}
		if !errors.Is(err, os.ErrNotExist) {
			return ""
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}
