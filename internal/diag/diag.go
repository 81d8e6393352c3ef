// SPDX-License-Identifier: MPL-2.0

// Package diag owns the process-wide diagnostic logger. The logger is
// lazily initialized on first use and filters by level; components report
// traversal details (symlink resolutions, manifest lookups) through it
// without holding a reference themselves.
package diag

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger *log.Logger
)

// Logger returns the shared diagnostic logger, creating it on first call.
// The default level is Warn so routine traversal events stay quiet unless
// verbosity is raised via SetVerbose or GETADDONS_LOG.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newLogger(os.Stderr)
	}
	return logger
}

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "getaddons",
	})
	l.SetLevel(levelFromEnv())
	return l
}

func levelFromEnv() log.Level {
	if raw := os.Getenv("GETADDONS_LOG"); raw != "" {
		if lvl, err := log.ParseLevel(raw); err == nil {
			return lvl
		}
	}
	return log.WarnLevel
}

// SetVerbose lowers the level to Debug (true) or restores the default (false).
func SetVerbose(verbose bool) {
	l := Logger()
	if verbose {
		l.SetLevel(log.DebugLevel)
		return
	}
	l.SetLevel(levelFromEnv())
}

// SetOutput redirects diagnostic output. Tests use this to capture events.
func SetOutput(w io.Writer) {
	Logger().SetOutput(w)
}

// Reset drops the shared logger so the next Logger call rebuilds it.
// Call from test cleanup to restore defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	logger = nil
}

// SymlinkResolved records a symlink mapping discovered during traversal.
func SymlinkResolved(path, target string) {
	Logger().Debug("symlink resolved", "path", path, "target", target)
}
