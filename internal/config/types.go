// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"getaddons-cli/pkg/types"
)

var (
	// ErrInvalidExcludeEntry is the sentinel error wrapped by InvalidExcludeEntryError.
	ErrInvalidExcludeEntry = errors.New("invalid exclude entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the tool's resolved configuration.
	Config struct {
		// Exclude lists result names dropped from every report, merged
		// with (and overridden by) the -e flag.
		Exclude []string `mapstructure:"exclude"`
		// Verbose raises the diagnostic log level to debug.
		Verbose bool `mapstructure:"verbose"`
		// DefaultRef is the comparison base used by the changed command
		// when no ref argument is given.
		DefaultRef string `mapstructure:"default_ref"`
	}

	// InvalidExcludeEntryError is returned when an exclude entry is empty
	// or whitespace-only.
	InvalidExcludeEntryError struct {
		Index int
		Value string
	}

	// InvalidConfigError aggregates validation failures for a Config.
	InvalidConfigError struct {
		Errors []error
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Exclude:    nil,
		Verbose:    false,
		DefaultRef: string(types.HeadRef),
	}
}

// IsValid returns whether the Config is valid.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	for i, name := range c.Exclude {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, &InvalidExcludeEntryError{Index: i, Value: name})
		}
	}
	if _, refErrs := types.GitRef(c.DefaultRef).IsValid(); len(refErrs) > 0 {
		errs = append(errs, refErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{Errors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidExcludeEntryError.
func (e *InvalidExcludeEntryError) Error() string {
	return fmt.Sprintf("invalid exclude entry at index %d: must be non-empty (got %q)", e.Index, e.Value)
}

// Unwrap returns ErrInvalidExcludeEntry for errors.Is() compatibility.
func (e *InvalidExcludeEntryError) Unwrap() error { return ErrInvalidExcludeEntry }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
