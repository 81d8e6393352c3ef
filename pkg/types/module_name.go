// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
var ErrInvalidModuleName = errors.New("invalid module name")

type (
	// ModuleName is the identity of a discovered module: the basename of its
	// directory, or of the symlink target when the directory is a link.
	// A valid name is non-empty and contains no path separator.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName value is empty,
	// whitespace-only, or contains a path separator.
	InvalidModuleNameError struct {
		Value ModuleName
	}
)

// String returns the string representation of the ModuleName.
func (m ModuleName) String() string { return string(m) }

// IsValid returns whether the ModuleName is valid.
func (m ModuleName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(m)) == "" || strings.ContainsAny(string(m), `/\`) {
		return false, []error{&InvalidModuleNameError{Value: m}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: must be non-empty and free of path separators", e.Value)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }
