// SPDX-License-Identifier: MPL-2.0

package addons

import (
	"sort"
	"strings"

	"getaddons-cli/internal/gitrun"
	"getaddons-cli/pkg/fspath"
	"getaddons-cli/pkg/types"
)

// GitRunner is the collaborator contract for change-range queries: execute
// an arbitrary git subcommand, and list the file paths changed relative to
// a ref.
type GitRunner interface {
	Run(args ...string) (string, error)
	ChangedItems(ref types.GitRef) ([]string, error)
}

// newGitRunner builds the collaborator for a repository's metadata
// directory. Tests swap it for a stub.
var newGitRunner = func(gitDir types.FilesystemPath) GitRunner {
	return gitrun.New(gitDir)
}

// ModulesChanged returns the paths of the modules under path that a git
// change range touched. When ref is not the current checkout it is fetched
// first; a ref with no colon gets ":ref" appended so a local branch is
// forced into existence. Collaborator failures are fatal and propagated.
//
// Results are sorted by module name. The original tool left this order to
// set-iteration chance; a deterministic order is deliberately chosen here
// so CI output is stable across runs.
func ModulesChanged(path types.FilesystemPath, ref types.GitRef) ([]types.FilesystemPath, error) {
	resolved := fspath.Resolve(path)
	runner := newGitRunner(fspath.JoinStr(resolved, ".git"))

	if ref != types.HeadRef {
		fetchRef := string(ref)
		if !strings.Contains(fetchRef, ":") {
			// Force a local branch to be created.
			fetchRef += ":" + fetchRef
		}
		args := append([]string{"fetch"}, strings.SplitN(fetchRef, "/", 2)...)
		if _, err := runner.Run(args...); err != nil {
			return nil, err
		}
	}

	items, err := runner.ChangedItems(ref)
	if err != nil {
		return nil, err
	}

	// Top-level directory names touched by the change range. Entries
	// without a separator are files at the repo root, not modules.
	folders := make(map[string]bool)
	for _, item := range items {
		if i := strings.IndexByte(item, '/'); i > 0 {
			folders[item[:i]] = true
		}
	}

	names, err := Modules(resolved)
	if err != nil {
		return nil, err
	}

	modules := make(map[string]bool, len(names))
	for _, name := range names {
		modules[string(name)] = true
	}

	var changed []string
	for folder := range folders {
		if modules[folder] {
			changed = append(changed, folder)
		}
	}
	sort.Strings(changed)

	paths := make([]types.FilesystemPath, 0, len(changed))
	for _, name := range changed {
		paths = append(paths, fspath.JoinStr(resolved, name))
	}
	return paths, nil
}
