// SPDX-License-Identifier: MPL-2.0

// Package addons discovers installable modules and the addon directories
// that hold them. Discovery is computed fresh on every call: nothing is
// cached, and a module's installable flag is re-read each time its manifest
// is visited.
package addons

import (
	"os"

	"getaddons-cli/internal/diag"
	"getaddons-cli/pkg/fspath"
	"getaddons-cli/pkg/manifest"
	"getaddons-cli/pkg/types"
)

// Modules lists the immediate children of path that are installable
// modules. A child that is a symlink is reported under the basename of its
// real target. The result follows directory listing order; a path that is
// not a directory yields an empty list. A malformed manifest anywhere in
// the listing aborts the call.
func Modules(path types.FilesystemPath) ([]types.ModuleName, error) {
	// A trailing separator would make the directory's own name vanish
	// from basename-derived results downstream.
	path = fspath.TrimTrailingSeparator(path)
	resolved := fspath.Resolve(path)

	if !fspath.IsDir(resolved) {
		return nil, nil
	}
	entries, err := os.ReadDir(string(resolved))
	if err != nil {
		return nil, err
	}

	var names []types.ModuleName
	for _, entry := range entries {
		childPath := fspath.JoinStr(resolved, entry.Name())
		_, ok, err := manifest.FindInstallable(childPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if fspath.IsSymlink(childPath) {
			real := fspath.RealPath(childPath)
			diag.Logger().Debug("symlinked module", "name", entry.Name(), "target", real)
			names = append(names, types.ModuleName(fspath.Base(real)))
		} else {
			names = append(names, types.ModuleName(entry.Name()))
		}
	}
	return names, nil
}

// IsAddonsDir reports whether path directly contains at least one
// installable module.
func IsAddonsDir(path types.FilesystemPath) (bool, error) {
	names, err := Modules(path)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// Addons returns every directory under path that directly contains one or
// more modules, in discovery order with duplicates removed by first
// occurrence. A nonexistent path yields an empty list.
func Addons(path types.FilesystemPath) ([]types.FilesystemPath, error) {
	visited := make(map[types.FilesystemPath]bool)
	found, err := walkAddons(path, visited)
	if err != nil {
		return nil, err
	}

	seen := make(map[types.FilesystemPath]bool, len(found))
	var unique []types.FilesystemPath
	for _, p := range found {
		if seen[p] {
			continue
		}
		seen[p] = true
		unique = append(unique, p)
	}
	return unique, nil
}

// walkAddons is the recursive body of Addons. The visited set holds
// resolved real paths already descended into; without it a symlink cycle
// (a subdirectory linking back to an ancestor) would recurse forever.
func walkAddons(path types.FilesystemPath, visited map[types.FilesystemPath]bool) ([]types.FilesystemPath, error) {
	if !fspath.Exists(path) {
		return nil, nil
	}
	resolved := fspath.Resolve(path)
	if visited[resolved] {
		return nil, nil
	}
	visited[resolved] = true

	isAddons, err := IsAddonsDir(resolved)
	if err != nil {
		return nil, err
	}

	if isAddons {
		// The directory itself holds modules; its subdirectories may
		// still hold further addon directories.
		res := []types.FilesystemPath{resolved}
		if !fspath.IsDir(resolved) {
			return res, nil
		}
		entries, err := os.ReadDir(string(resolved))
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Name()[0] == '.' {
				continue
			}
			childPath := fspath.JoinStr(resolved, entry.Name())
			if !fspath.IsDir(childPath) {
				continue
			}
			nested, err := walkAddons(childPath, visited)
			if err != nil {
				return nil, err
			}
			res = append(res, nested...)
		}
		return res, nil
	}

	if !fspath.IsDir(resolved) {
		return nil, nil
	}
	entries, err := os.ReadDir(string(resolved))
	if err != nil {
		return nil, err
	}

	var res []types.FilesystemPath
	for _, entry := range entries {
		childPath := fspath.JoinStr(resolved, entry.Name())
		childIsAddons, err := IsAddonsDir(childPath)
		if err != nil {
			return nil, err
		}
		if !childIsAddons {
			continue
		}
		if fspath.IsSymlink(childPath) {
			real := fspath.RealPath(childPath)
			diag.Logger().Debug("symlinked addons dir", "path", childPath, "target", real)
			res = append(res, real)
		} else {
			res = append(res, childPath)
		}
		nested, err := walkAddons(childPath, visited)
		if err != nil {
			return nil, err
		}
		for _, p := range nested {
			if p != childPath {
				res = append(res, p)
			}
		}
	}
	return res, nil
}
