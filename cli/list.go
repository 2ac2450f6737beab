package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/qqvirus/chromium-source-tarball/core"
)

var ListCommand = &cli.Command{
	Name:                  "list",
	Aliases:               []string{"l"},
	Usage:                 "print the entries an export with the same flags would include, without writing anything",
	ArgsUsage:             "OUTPUT",
	EnableShellCompletion: true,
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "excluded",
			Usage: "print the entries that would be skipped instead",
		},
	}, commonExportFlags()...),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		opts, err := ExportOptionsForCommand(cmd)
		if err != nil {
			return err
		}

		entries, err := core.Manifest(opts, cmd.Bool("excluded"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		for _, entry := range entries {
			fmt.Fprintln(os.Stdout, entry)
		}

		return nil
	},
}
