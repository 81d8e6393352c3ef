// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for getaddons.
//
// This package implements the Cobra command hierarchy for the getaddons CLI:
// the root scan command, the changed subcommand, and shell completion.
package cmd
