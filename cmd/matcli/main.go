// SPDX-License-Identifier: MIT
// Command matcli is a schema-driven command-line front end to a numeric
// matrix library: it maps a dotted function name and textual arguments
// onto typed library calls and prints the result as delimited text.
package main

import (
	"os"

	"github.com/katalvlaran/matcli/cli"
)

func main() {
	os.Exit(cli.New().Execute(os.Args[1:]))
}
