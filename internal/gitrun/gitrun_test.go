// SPDX-License-Identifier: MPL-2.0

package gitrun

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"getaddons-cli/pkg/types"
)

// initRepo creates a repository with one committed file and returns its root.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = root
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", ".")
	run("commit", "-m", "init")
	return root
}

func TestRun_ReturnsRawOutput(t *testing.T) {
	t.Parallel()

	root := initRepo(t)
	r := New(types.FilesystemPath(filepath.Join(root, ".git")))

	out, err := r.Run("rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out) < 40 {
		t.Errorf("Run(rev-parse HEAD) = %q, want a sha", out)
	}
}

func TestRun_FailureIsFatal(t *testing.T) {
	t.Parallel()

	root := initRepo(t)
	r := New(types.FilesystemPath(filepath.Join(root, ".git")))

	if _, err := r.Run("rev-parse", "no-such-ref-xyz"); err == nil {
		t.Fatal("Run() succeeded on bad ref, want error")
	}
}

func TestRun_MissingRepository(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	r := New(types.FilesystemPath(filepath.Join(t.TempDir(), ".git")))
	if _, err := r.Run("rev-parse", "HEAD"); err == nil {
		t.Fatal("Run() succeeded without repository metadata, want error")
	}
}

func TestChangedItems(t *testing.T) {
	t.Parallel()

	root := initRepo(t)
	modFile := filepath.Join(root, "sale_extra", "models.py")
	if err := os.MkdirAll(filepath.Dir(modFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(modFile, []byte("pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("git", "add", ".")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	r := New(types.FilesystemPath(filepath.Join(root, ".git")))
	items, err := r.ChangedItems(types.HeadRef)
	if err != nil {
		t.Fatalf("ChangedItems() error = %v", err)
	}

	found := false
	for _, item := range items {
		if item == "sale_extra/models.py" {
			found = true
		}
	}
	if !found {
		t.Errorf("ChangedItems() = %v, want sale_extra/models.py listed", items)
	}
}

func TestChangedItems_CleanTreeIsEmpty(t *testing.T) {
	t.Parallel()

	root := initRepo(t)
	r := New(types.FilesystemPath(filepath.Join(root, ".git")))

	items, err := r.ChangedItems(types.HeadRef)
	if err != nil {
		t.Fatalf("ChangedItems() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("ChangedItems() on clean tree = %v, want empty", items)
	}
}
