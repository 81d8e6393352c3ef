// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NoPathsGivenId Id = iota + 1
	ManifestParseErrorId
	RepositoryNotFoundId
	FetchFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown alongside the message
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	noPathsGivenIssue = &Issue{
		id: NoPathsGivenId,
		mdMsg: `
# No paths given!

getaddons needs at least one directory to scan.

## Usage:
~~~
$ getaddons [-m] [-e name1,name2] path [path ...]
~~~

## Examples:
~~~
$ getaddons /opt/odoo/addons            List addon directories
$ getaddons -m /opt/odoo/addons         List module names instead
$ getaddons -m -e wip /opt/odoo/addons  Drop 'wip' from the output
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse a module manifest!

A manifest file (__manifest__.py, __openerp__.py, ...) could not be read
as a literal Python dict. Manifests must contain only plain values:
booleans, numbers, strings, lists, tuples, and dicts.

## Common issues:
- Function calls or imports inside the manifest
- f-strings or string formatting expressions
- A missing comma or unbalanced bracket

## Things you can try:
- Check the error message above for the specific line/column
- Compare against a minimal manifest:
~~~python
{
    "name": "Sale Extra",
    "version": "16.0.1.0.0",
    "depends": ["sale"],
    "installable": True,
}
~~~`,
	}

	repositoryNotFoundIssue = &Issue{
		id: RepositoryNotFoundId,
		mdMsg: `
# No git repository found!

The changed command needs the scanned path to be the root of a git
checkout (a .git directory must sit directly under it).

## Things you can try:
- Run against the repository root rather than a subdirectory
- Clone the repository instead of exporting an archive
- Verify the path:
~~~
$ git -C /path/to/addons status
~~~`,
	}

	fetchFailedIssue = &Issue{
		id: FetchFailedId,
		mdMsg: `
# Fetching the comparison ref failed!

The ref you are comparing against could not be fetched.

## Things you can try:
- Check the ref spelling (branch, remote/branch, or sha)
- Verify the remote is reachable:
~~~
$ git -C /path/to/addons fetch origin
~~~
- Use HEAD to compare against the current checkout only`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the getaddons configuration file.

## Configuration file locations:
- Linux: ~/.config/getaddons/config.toml
- macOS: ~/Library/Application Support/getaddons/config.toml
- Windows: %APPDATA%\getaddons\config.toml
- Fallback: ./getaddons.toml

## Example configuration:
~~~toml
exclude = ["broken_module"]
verbose = false
default_ref = "origin/16.0"
~~~`,
	}

	issues = map[Id]*Issue{
		noPathsGivenIssue.Id():       noPathsGivenIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		repositoryNotFoundIssue.Id(): repositoryNotFoundIssue,
		fetchFailedIssue.Id():        fetchFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
