// scenexport converts scene descriptions and RSM models into FBX documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/Faultbox/scenexport/internal/logger"
)

// Exit codes.
const (
	exitOK      = 0
	exitFatal   = 1
	exitPartial = 2 // written, but some objects were left out
)

func main() {
	err := newApp(os.Stdout).Run(os.Args)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func newApp(out io.Writer) *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "scenexport"
	app.Usage = "export scene objects to FBX"
	app.Version = "0.1.0"
	app.Writer = out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "config file (default: ./scenexport.yaml, then the user config dir)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "export",
			Usage: "convert a scene or model file into a document",
			Description: `
Load the objects of a YAML scene file or an RSM model and write them, in
order, as direct children of the document root. Objects that cannot be
converted are reported and left out; the rest are still written.

With --grf, the input is the path of an RSM model inside that archive.

The output format follows --format, then the output file extension, then
the config file.`,
			ArgsUsage: "<input.yaml|input.rsm> <output>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "format, f",
					Usage: "output format: fbx or yaml",
				},
				cli.Float64Flag{
					Name:  "scale, s",
					Usage: "scale factor applied to mesh positions (default 100)",
				},
				cli.BoolFlag{
					Name:  "descendants, d",
					Usage: "also export the children of every listed object",
				},
				cli.StringFlag{
					Name:  "grf",
					Usage: "read the input model from this GRF archive",
				},
				cli.StringSliceFlag{
					Name:  "select",
					Value: &cli.StringSlice{},
					Usage: "export only objects with this name (repeatable)",
				},
			},
			Action: exportAction,
		},
		{
			Name:      "info",
			Usage:     "print a summary of a scene or model file",
			ArgsUsage: "<input.yaml|input.rsm>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "grf",
					Usage: "read the input model from this GRF archive",
				},
			},
			Action: infoAction,
		},
		{
			Name:  "config",
			Usage: "manage configuration files",
			Subcommands: []cli.Command{
				{
					Name:      "init",
					Usage:     "write a config file with default values",
					ArgsUsage: "[path]",
					Action:    configInitAction,
				},
			},
		},
	}
	return app
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitFatal
}
