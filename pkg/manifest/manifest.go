// SPDX-License-Identifier: MPL-2.0

// Package manifest classifies directories as addon modules. A module is a
// directory listing exactly one recognized manifest filename next to the
// __init__.py entry point; its manifest marks it non-installable by setting
// the installable flag to a falsy value.
package manifest

import (
	"fmt"
	"os"

	"getaddons-cli/pkg/fspath"
	"getaddons-cli/pkg/manifest/pyliteral"
	"getaddons-cli/pkg/types"
)

// Filenames are the recognized manifest file names, newest convention first.
var Filenames = []string{
	"__manifest__.py",
	"__odoo__.py",
	"__openerp__.py",
	"__terp__.py",
}

// EntryPointFile is the marker that must sit next to the manifest.
const EntryPointFile = "__init__.py"

// InstallableKey is the only manifest key this tool interprets.
const InstallableKey = "installable"

// Descriptor is the parsed manifest content: string keys mapping to literal
// values (booleans, numbers, strings, sequences, nested mappings).
type Descriptor map[string]any

// Installable reports the manifest's installable flag; absence implies true.
func (d Descriptor) Installable() bool {
	v, ok := d[InstallableKey]
	if !ok {
		return true
	}
	return pyliteral.IsTruthy(v)
}

// Find reports whether path is a module. It resolves symlinks, lists the
// directory's immediate entries, and requires the subset matching the
// recognized names to be exactly {entry point, one manifest}. On success the
// full path to the manifest is returned.
func Find(path types.FilesystemPath) (types.FilesystemPath, bool) {
	resolved := fspath.Resolve(path)
	if !fspath.IsDir(resolved) {
		return "", false
	}

	entries, err := os.ReadDir(string(resolved))
	if err != nil {
		return "", false
	}

	recognized := make(map[string]bool, len(Filenames)+1)
	recognized[EntryPointFile] = true
	for _, name := range Filenames {
		recognized[name] = true
	}

	var matched []string
	for _, entry := range entries {
		if recognized[entry.Name()] {
			matched = append(matched, entry.Name())
		}
	}
	if len(matched) != 2 {
		return "", false
	}

	hasEntryPoint := false
	manifestName := ""
	for _, name := range matched {
		if name == EntryPointFile {
			hasEntryPoint = true
		} else {
			manifestName = name
		}
	}
	if !hasEntryPoint {
		return "", false
	}
	return fspath.JoinStr(resolved, manifestName), true
}

// FindInstallable reports whether path is an installable module, returning
// the manifest path on success. The manifest is re-read and re-evaluated on
// every call. A manifest that is not a valid literal dict is a fatal error,
// propagated to the caller.
func FindInstallable(path types.FilesystemPath) (types.FilesystemPath, bool, error) {
	manifestPath, ok := Find(path)
	if !ok {
		return "", false, nil
	}

	desc, err := Read(manifestPath)
	if err != nil {
		return "", false, err
	}
	if !desc.Installable() {
		return "", false, nil
	}
	return manifestPath, true, nil
}

// Read parses a manifest file into a Descriptor.
func Read(path types.FilesystemPath) (Descriptor, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	v, err := pyliteral.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing manifest %s: top-level value is %T, want a mapping", path, v)
	}
	return Descriptor(m), nil
}
