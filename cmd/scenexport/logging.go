package main

import (
	"github.com/urfave/cli"

	"github.com/Faultbox/scenexport/internal/config"
	"github.com/Faultbox/scenexport/internal/logger"
)

// verbosity maps -v and -vv to a log level override.
func verbosity(ctx *cli.Context) string {
	if ctx.GlobalBool("vv") {
		return "debug"
	}
	if ctx.GlobalBool("v") {
		return "info"
	}
	return ""
}

// setup loads the configuration and initializes logging from it.
func setup(ctx *cli.Context, o config.Overrides) (*config.Config, error) {
	o.Level = verbosity(ctx)

	cfg, err := config.Load(ctx.GlobalString("config"), o)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	return cfg, nil
}
