// SPDX-License-Identifier: MPL-2.0

// Package gitrun wraps the git CLI for change-range queries. Operations use
// os/exec to call git directly rather than a Go git library, which keeps the
// tool compatible with user configuration (SSH keys, credential helpers)
// and with whatever git version the CI image carries.
package gitrun

import (
	"fmt"
	"os/exec"
	"strings"

	"getaddons-cli/pkg/fspath"
	"getaddons-cli/pkg/types"
)

// CommandError describes a failed git invocation, carrying the subcommand
// argv and whatever git wrote to stderr.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, e.Stderr)
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error { return e.Err }

// IsFetch reports whether the failed subcommand was a fetch.
func (e *CommandError) IsFetch() bool { return len(e.Args) > 0 && e.Args[0] == "fetch" }

// Runner executes git subcommands against one repository's metadata
// directory. Every invocation is synchronous, runs at most once, and has no
// timeout; a hang in git hangs the caller.
type Runner struct {
	gitDir types.FilesystemPath
}

// New returns a Runner bound to the given .git directory.
func New(gitDir types.FilesystemPath) *Runner {
	return &Runner{gitDir: gitDir}
}

// GitDir returns the metadata directory this Runner is bound to.
func (r *Runner) GitDir() types.FilesystemPath { return r.gitDir }

// Run executes an arbitrary git subcommand and returns its raw stdout.
// Failures are fatal to the invocation and carry git's stderr for context.
func (r *Runner) Run(args ...string) (string, error) {
	argv := append([]string{"--git-dir", string(r.gitDir)}, args...)
	cmd := exec.Command("git", argv...)
	// diff-index consults working tree stat data, so run from the
	// repository root rather than the caller's cwd.
	cmd.Dir = string(fspath.Dir(r.gitDir))

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return string(out), nil
}

// ChangedItems returns the file paths, relative to the repository root, that
// differ between the working tree/index and ref.
func (r *Runner) ChangedItems(ref types.GitRef) ([]string, error) {
	out, err := r.Run("diff-index", "--name-only", string(ref))
	if err != nil {
		return nil, err
	}

	var items []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items, nil
}
