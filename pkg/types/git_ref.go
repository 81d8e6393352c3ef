// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGitRef is the sentinel error wrapped by InvalidGitRefError.
var ErrInvalidGitRef = errors.New("invalid git ref")

// HeadRef is the implicit current checkout. Comparing against HeadRef never
// triggers a fetch.
const HeadRef GitRef = "HEAD"

type (
	// GitRef is a branch name, remote/branch pair, or commit sha used as the
	// comparison base for a change range.
	GitRef string

	// InvalidGitRefError is returned when a GitRef value is empty or
	// whitespace-only.
	InvalidGitRefError struct {
		Value GitRef
	}
)

// String returns the string representation of the GitRef.
func (r GitRef) String() string { return string(r) }

// IsValid returns whether the GitRef is valid.
func (r GitRef) IsValid() (bool, []error) {
	if strings.TrimSpace(string(r)) == "" {
		return false, []error{&InvalidGitRefError{Value: r}}
	}
	return true, nil
}

// Error implements the error interface for InvalidGitRefError.
func (e *InvalidGitRefError) Error() string {
	return fmt.Sprintf("invalid git ref %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidGitRef for errors.Is() compatibility.
func (e *InvalidGitRefError) Unwrap() error { return ErrInvalidGitRef }
