//	@title			artofest API
//	@version		1.0
//	@description	Art festival discovery API

//	@BasePath	/api

//	@tag.name			festivals
//	@tag.description	Festival listing and filtering

package main

import (
	"fmt"
	"os"

	"github.com/artofest/artofest/cli"
	"github.com/artofest/artofest/cli/helpers"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, helpers.FormatError(err))
		os.Exit(1)
	}
}
