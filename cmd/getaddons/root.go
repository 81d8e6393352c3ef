// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"getaddons-cli/internal/config"
	"getaddons-cli/internal/diag"
	"getaddons-cli/internal/issue"
	"getaddons-cli/pkg/manifest/pyliteral"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// listModules switches the report from addon directories to module names
	listModules bool
	// excludeNames lists result names dropped from the report
	excludeNames []string

	// cfg holds the loaded configuration, populated by initRootConfig
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "getaddons [flags] path [path...]",
		Short: "Discover Odoo addon directories and modules",
		Long: TitleStyle.Render("getaddons") + SubtitleStyle.Render(" - Discover Odoo addon directories and modules") + `

getaddons scans one or more paths for Odoo addons: directories whose
subdirectories carry a module manifest (__manifest__.py, __odoo__.py,
__openerp__.py or __terp__.py) next to an __init__.py entry point.

By default it reports addon directories; with -m it reports the names
of the installable modules found directly under each path. Results are
printed as a single comma-joined line on stdout.

` + SubtitleStyle.Render("Examples:") + `
  getaddons /opt/odoo/addons              List addon directories
  getaddons -m /opt/odoo/addons           List installable module names
  getaddons -m -e sale,crm /opt/odoo      Exclude specific modules
  getaddons changed /opt/odoo 16.0        Modules changed against a ref`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/getaddons/config.toml)")

	// Scan flags
	rootCmd.Flags().BoolVarP(&listModules, "modules", "m", false, "report module names instead of addon directories")
	rootCmd.Flags().StringSliceVarP(&excludeNames, "exclude", "e", nil, "comma-separated result names to drop from the report")

	// Add subcommands
	rootCmd.AddCommand(changedCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		rendered, _ := issue.Get(issue.NoPathsGivenId).Render("dark")
		fmt.Fprint(cmd.ErrOrStderr(), rendered)
		_ = cmd.Usage()
		return &ExitError{Code: 1, Err: errors.New("no paths given")}
	}

	line, err := scan(args, listModules, excludeSet())
	if err != nil {
		var parseErr *pyliteral.ParseError
		if errors.As(err, &parseErr) {
			rendered, _ := issue.Get(issue.ManifestParseErrorId).Render("dark")
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
		}
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		if cfgFile != "" {
			rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.Verbose
	}
	diag.SetVerbose(verbose)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
