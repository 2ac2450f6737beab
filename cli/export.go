package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/qqvirus/chromium-source-tarball/core"
)

// RootCommand is the whole CLI: the export itself runs as the root action so
// that `export-tarball OUTPUT` works without a subcommand.
var RootCommand = &cli.Command{
	Name:                  "export-tarball",
	Usage:                 "package a Chromium source checkout into a compressed tarball",
	ArgsUsage:             "OUTPUT",
	EnableShellCompletion: true,
	Flags:                 commonExportFlags(),
	Commands: []*cli.Command{
		ListCommand,
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		opts, err := ExportOptionsForCommand(cmd)
		if err != nil {
			return err
		}

		result, err := core.Export(ctx, opts)
		if err != nil {
			return cli.Exit(err, 1)
		}

		core.PrettyPrintResult(result, core.PrintOptions{Version: Version})

		return nil
	},
}
