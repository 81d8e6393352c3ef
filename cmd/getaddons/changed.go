// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"getaddons-cli/internal/addons"
	"getaddons-cli/internal/gitrun"
	"getaddons-cli/internal/issue"
	"getaddons-cli/pkg/fspath"
	"getaddons-cli/pkg/types"

	"github.com/spf13/cobra"
)

// changedCmd reports which modules a git change range touched.
var changedCmd = &cobra.Command{
	Use:   "changed path [ref]",
	Short: "List modules touched by a git change range",
	Long: `List the modules under path that changed relative to a git ref.

The path must be the root of a git checkout containing modules. The ref
defaults to HEAD (or the configured default_ref); any other ref is
fetched first so remote comparison branches work in shallow CI clones.

` + SubtitleStyle.Render("Examples:") + `
  getaddons changed /opt/odoo              Changes in the working tree
  getaddons changed /opt/odoo 16.0         Changes against branch 16.0
  getaddons changed /opt/odoo origin/16.0  Changes against a remote ref`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runChanged,
}

func runChanged(cmd *cobra.Command, args []string) error {
	path := types.FilesystemPath(args[0])
	ref := types.HeadRef
	if len(args) == 2 {
		ref = types.GitRef(args[1])
	} else if cfg != nil && cfg.DefaultRef != "" {
		ref = types.GitRef(cfg.DefaultRef)
	}

	if !fspath.IsDir(fspath.JoinStr(fspath.Resolve(path), ".git")) {
		rendered, _ := issue.Get(issue.RepositoryNotFoundId).Render("dark")
		fmt.Fprint(cmd.ErrOrStderr(), rendered)
		return &ExitError{Code: 1, Err: fmt.Errorf("no git repository at %s", args[0])}
	}

	changed, err := addons.ModulesChanged(path, ref)
	if err != nil {
		var gitErr *gitrun.CommandError
		if errors.As(err, &gitErr) && gitErr.IsFetch() {
			rendered, _ := issue.Get(issue.FetchFailedId).Render("dark")
			fmt.Fprint(cmd.ErrOrStderr(), rendered)
		}
		return &ExitError{Code: 1, Err: issue.NewErrorContext().
			WithOperation("resolve changed modules").
			WithResource(args[0]).
			Wrap(err).
			BuildError()}
	}

	names := make([]string, 0, len(changed))
	for _, p := range changed {
		names = append(names, string(p))
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ","))
	return nil
}
