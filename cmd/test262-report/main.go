package main

import (
	"os"

	"github.com/bitrise-steplib/steps-test262-report/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
