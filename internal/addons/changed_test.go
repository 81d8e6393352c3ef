// SPDX-License-Identifier: MPL-2.0

package addons

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"getaddons-cli/pkg/types"
)

// stubRunner records git invocations and plays back canned changed items.
type stubRunner struct {
	gitDir  types.FilesystemPath
	runs    [][]string
	items   []string
	runErr  error
	itemErr error
}

func (s *stubRunner) Run(args ...string) (string, error) {
	s.runs = append(s.runs, args)
	return "", s.runErr
}

func (s *stubRunner) ChangedItems(_ types.GitRef) ([]string, error) {
	return s.items, s.itemErr
}

// withStubRunner swaps the collaborator constructor for the test's stub.
func withStubRunner(t *testing.T, stub *stubRunner) {
	t.Helper()
	orig := newGitRunner
	newGitRunner = func(gitDir types.FilesystemPath) GitRunner {
		stub.gitDir = gitDir
		return stub
	}
	t.Cleanup(func() { newGitRunner = orig })
}

func TestModulesChanged_IntersectsChangesWithModules(t *testing.T) {
	tmp := t.TempDir()
	writeModule(t, tmp, "sale_extra")
	writeModule(t, tmp, "account_extra")
	writeModule(t, tmp, "untouched")

	stub := &stubRunner{items: []string{
		"sale_extra/models/sale.py",
		"account_extra/__manifest__.py",
		"unknown_dir/file.py",
		"toplevel_file.txt",
	}}
	withStubRunner(t, stub)

	got, err := ModulesChanged(types.FilesystemPath(tmp), types.HeadRef)
	if err != nil {
		t.Fatalf("ModulesChanged() error = %v", err)
	}

	want := []string{
		filepath.Join(tmp, "account_extra"),
		filepath.Join(tmp, "sale_extra"),
	}
	if !equalStrings(pathStrings(got), want) {
		t.Errorf("ModulesChanged() = %v, want %v", got, want)
	}
	if string(stub.gitDir) != filepath.Join(tmp, ".git") {
		t.Errorf("collaborator bound to %q, want repo metadata dir", stub.gitDir)
	}
}

func TestModulesChanged_HeadSkipsFetch(t *testing.T) {
	tmp := t.TempDir()
	writeModule(t, tmp, "sale_extra")

	stub := &stubRunner{}
	withStubRunner(t, stub)

	if _, err := ModulesChanged(types.FilesystemPath(tmp), types.HeadRef); err != nil {
		t.Fatalf("ModulesChanged() error = %v", err)
	}
	if len(stub.runs) != 0 {
		t.Errorf("HEAD comparison should not fetch, git runs: %v", stub.runs)
	}
}

func TestModulesChanged_FetchRefspec(t *testing.T) {
	tests := []struct {
		name string
		ref  types.GitRef
		want []string
	}{
		{"plain branch forces local creation", "16.0", []string{"fetch", "16.0:16.0"}},
		{"remote branch splits on first slash", "origin/16.0", []string{"fetch", "origin", "16.0:origin/16.0"}},
		{"explicit refspec kept as-is", "main:local", []string{"fetch", "main:local"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			writeModule(t, tmp, "sale_extra")

			stub := &stubRunner{}
			withStubRunner(t, stub)

			if _, err := ModulesChanged(types.FilesystemPath(tmp), tt.ref); err != nil {
				t.Fatalf("ModulesChanged() error = %v", err)
			}
			if len(stub.runs) != 1 || !equalStrings(stub.runs[0], tt.want) {
				t.Errorf("fetch invocation = %v, want [%v]", stub.runs, tt.want)
			}
		})
	}
}

func TestModulesChanged_FetchFailureIsFatal(t *testing.T) {
	tmp := t.TempDir()
	writeModule(t, tmp, "sale_extra")

	stub := &stubRunner{runErr: errors.New("fetch refused")}
	withStubRunner(t, stub)

	_, err := ModulesChanged(types.FilesystemPath(tmp), "origin/16.0")
	if err == nil || !strings.Contains(err.Error(), "fetch refused") {
		t.Fatalf("ModulesChanged() error = %v, want propagated fetch failure", err)
	}
}

func TestModulesChanged_DiffFailureIsFatal(t *testing.T) {
	tmp := t.TempDir()
	writeModule(t, tmp, "sale_extra")

	stub := &stubRunner{itemErr: errors.New("not a git repository")}
	withStubRunner(t, stub)

	if _, err := ModulesChanged(types.FilesystemPath(tmp), types.HeadRef); err == nil {
		t.Fatal("ModulesChanged() succeeded, want propagated git failure")
	}
}

func TestModulesChanged_ResultsAreModulePaths(t *testing.T) {
	tmp := t.TempDir()
	writeModule(t, tmp, "sale_extra")

	stub := &stubRunner{items: []string{
		"sale_extra/views/view.xml",
		"docs/readme.md",
	}}
	withStubRunner(t, stub)

	got, err := ModulesChanged(types.FilesystemPath(tmp), types.HeadRef)
	if err != nil {
		t.Fatalf("ModulesChanged() error = %v", err)
	}
	modules, err := Modules(types.FilesystemPath(tmp))
	if err != nil {
		t.Fatal(err)
	}
	known := make(map[string]bool)
	for _, m := range modules {
		known[string(m)] = true
	}
	for _, p := range got {
		if !known[filepath.Base(string(p))] {
			t.Errorf("result %q is not a module known at the root", p)
		}
	}
}
