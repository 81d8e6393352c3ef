// SPDX-License-Identifier: MPL-2.0

package main

import cmd "getaddons-cli/cmd/getaddons"

func main() {
	cmd.Execute()
}
