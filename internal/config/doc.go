// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/getaddons/config.toml (or XDG
// equivalent on Linux, ~/Library/Application Support/getaddons/config.toml
// on macOS, %APPDATA%\getaddons\config.toml on Windows), falling back to a
// getaddons.toml in the current directory. A .env file, when present, is
// loaded first so GETADDONS_* environment variables can override file
// values. The package provides type-safe configuration access for the
// default exclusion list, verbosity, and the default comparison ref.
package config
