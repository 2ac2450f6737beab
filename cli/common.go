package cli

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/qqvirus/chromium-source-tarball/core"
)

var Version string // This will be set by main

func commonExportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "basename",
			Usage: "archive-internal root directory name (default: base name of OUTPUT)",
		},
		&cli.BoolFlag{
			Name:  "remove-nonessential-files",
			Usage: "strip test and data content that downstream packagers do not need",
		},
		&cli.BoolFlag{
			Name:  "test-data",
			Usage: "also bundle the test data directories under the basename",
		},
		&cli.StringFlag{
			Name:  "src-dir",
			Usage: "source checkout to export",
			Value: ".",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "report every skipped entry",
		},
	}
}

// ExportOptionsForCommand translates the parsed command line into core
// options. Exactly one positional argument, the output path without the .tar
// suffix, is required.
func ExportOptionsForCommand(cmd *cli.Command) (core.Options, error) {
	if cmd.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	if cmd.Args().Len() != 1 {
		return core.Options{}, cli.Exit("you must provide one argument: the output file name (without the .tar suffix)", 1)
	}

	sourceDir, err := filepath.Abs(cmd.String("src-dir"))
	if err != nil {
		return core.Options{}, cli.Exit(err, 1)
	}

	return core.Options{
		SourceDir:               sourceDir,
		Output:                  cmd.Args().First(),
		Basename:                cmd.String("basename"),
		RemoveNonessentialFiles: cmd.Bool("remove-nonessential-files"),
		IncludeTestData:         cmd.Bool("test-data"),
	}, nil
}
