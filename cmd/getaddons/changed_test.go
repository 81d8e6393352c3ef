// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
)

func TestRunChanged_NoRepository(t *testing.T) {
	t.Parallel()

	c := &cobra.Command{}
	var out, errOut bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&errOut)

	err := runChanged(c, []string{t.TempDir()})
	if err == nil {
		t.Fatal("runChanged() should fail outside a git checkout")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runChanged() error should be *ExitError, got %T", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if errOut.Len() == 0 {
		t.Error("expected guidance on stderr for a missing repository")
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	withCause := &ExitError{Code: 1, Err: errors.New("boom")}
	if withCause.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", withCause.Error(), "boom")
	}
	if !errors.Is(withCause, withCause.Err) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}
}
