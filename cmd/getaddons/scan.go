// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"getaddons-cli/internal/addons"
	"getaddons-cli/internal/issue"
	"getaddons-cli/pkg/types"
)

// scan runs the discovery over each path in order and joins the surviving
// results into a single comma-separated line. With listModules set it reports
// the installable module names directly under each path; otherwise it reports
// addon directories. Exclusion drops results whose full text matches a name.
func scan(paths []string, listModules bool, exclude map[string]bool) (string, error) {
	var results []string
	for _, p := range paths {
		fp := types.FilesystemPath(p)
		if listModules {
			names, err := addons.Modules(fp)
			if err != nil {
				return "", issue.NewErrorContext().
					WithOperation("enumerate modules").
					WithResource(p).
					WithSuggestion("Check each module's manifest for syntax errors").
					Wrap(err).
					BuildError()
			}
			for _, name := range names {
				results = append(results, string(name))
			}
		} else {
			dirs, err := addons.Addons(fp)
			if err != nil {
				return "", issue.NewErrorContext().
					WithOperation("resolve addon directories").
					WithResource(p).
					Wrap(err).
					BuildError()
			}
			for _, dir := range dirs {
				results = append(results, string(dir))
			}
		}
	}
	return strings.Join(filterExcluded(results, exclude), ","), nil
}

// filterExcluded drops entries whose full text appears in exclude,
// preserving order.
func filterExcluded(results []string, exclude map[string]bool) []string {
	if len(exclude) == 0 {
		return results
	}
	kept := make([]string, 0, len(results))
	for _, r := range results {
		if !exclude[r] {
			kept = append(kept, r)
		}
	}
	return kept
}

// excludeSet merges the -e flag values with the configured exclusions.
func excludeSet() map[string]bool {
	set := make(map[string]bool, len(excludeNames))
	for _, name := range excludeNames {
		set[name] = true
	}
	if cfg != nil {
		for _, name := range cfg.Exclude {
			set[name] = true
		}
	}
	return set
}
