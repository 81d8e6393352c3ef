// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath and os calls
// that accept and return types.FilesystemPath, so callers get typed-in/
// typed-out path operations. Resolve is the canonicalization point: every
// component that accepts a path runs it through Resolve first so downstream
// logic operates on real filesystem locations.
package fspath

import (
	"os"
	"path/filepath"
	"strings"

	"getaddons-cli/internal/diag"
	"getaddons-cli/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments. Use this when joining a validated path with literal constants
// (e.g., "__manifest__.py") or OS-provided file names (e.g., from os.ReadDir).
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath, returning the raw name.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// TrimTrailingSeparator normalizes a trailing-separator path so that Base
// yields the directory's own name instead of an empty component.
func TrimTrailingSeparator(p types.FilesystemPath) types.FilesystemPath {
	s := string(p)
	for len(s) > 1 && strings.HasSuffix(s, string(os.PathSeparator)) {
		s = s[:len(s)-1]
	}
	return types.FilesystemPath(s)
}

// IsSymlink reports whether p itself is a symbolic link (without following it).
func IsSymlink(p types.FilesystemPath) bool {
	info, err := os.Lstat(string(p))
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// IsDir reports whether p exists and is a directory (following symlinks).
func IsDir(p types.FilesystemPath) bool {
	info, err := os.Stat(string(p))
	return err == nil && info.IsDir()
}

// Exists reports whether p exists, following symlinks. A broken link does
// not exist for the purposes of traversal.
func Exists(p types.FilesystemPath) bool {
	_, err := os.Stat(string(p))
	return err == nil
}

// RealPath fully dereferences p, falling back to an absolute form of the
// input when evaluation fails (e.g., a broken link); the caller's subsequent
// existence checks then reject the path naturally.
func RealPath(p types.FilesystemPath) types.FilesystemPath {
	real, err := filepath.EvalSymlinks(string(p))
	if err != nil {
		abs, absErr := filepath.Abs(string(p))
		if absErr != nil {
			return p
		}
		return types.FilesystemPath(abs)
	}
	return types.FilesystemPath(real)
}

// Resolve canonicalizes a possibly-symlinked path. When p is a symbolic
// link its real target is returned and the mapping is recorded as a
// diagnostic event; otherwise p comes back unchanged. Resolve never fails.
func Resolve(p types.FilesystemPath) types.FilesystemPath {
	if !IsSymlink(p) {
		return p
	}
	real := RealPath(p)
	diag.SymlinkResolved(string(p), string(real))
	return real
}
