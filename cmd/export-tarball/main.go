package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/qqvirus/chromium-source-tarball/cli"
)

var version = "dev" // set via ldflags at release time

func main() {
	cli.Version = version
	cli.RootCommand.Version = version

	if err := cli.RootCommand.Run(context.Background(), os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
