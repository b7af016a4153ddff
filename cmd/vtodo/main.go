package main

import (
	"os"

	"github.com/idilsaglam/vtodo/internal/cli"
	"github.com/idilsaglam/vtodo/internal/ui"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}
}
