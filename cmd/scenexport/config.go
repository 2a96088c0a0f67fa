package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/Faultbox/scenexport/internal/config"
)

func configInitAction(ctx *cli.Context) error {
	cfg := config.Default()

	path := ctx.Args().First()
	if path == "" {
		saved, err := cfg.Save()
		if err != nil {
			return cli.NewExitError(fmt.Errorf("writing config: %w", err), exitFatal)
		}
		path = saved
	} else if err := cfg.SaveTo(path); err != nil {
		return cli.NewExitError(fmt.Errorf("writing config: %w", err), exitFatal)
	}

	fmt.Fprintf(ctx.App.Writer, "Wrote %s\n", path)
	return nil
}
