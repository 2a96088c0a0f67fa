package main

import (
	"fmt"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Faultbox/scenexport/internal/config"
	"github.com/Faultbox/scenexport/internal/logger"
	"github.com/Faultbox/scenexport/pkg/document"
	"github.com/Faultbox/scenexport/pkg/exporter"
	"github.com/Faultbox/scenexport/pkg/fbx"
	"github.com/Faultbox/scenexport/pkg/scene"
)

func exportAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("export needs an input and an output path", exitFatal)
	}
	input, output := ctx.Args().Get(0), ctx.Args().Get(1)

	cfg, err := setup(ctx, config.Overrides{
		ScaleFactor:        ctx.Float64("scale"),
		Format:             outputFormat(ctx.String("format"), output, ""),
		IncludeDescendants: ctx.Bool("descendants"),
	})
	if err != nil {
		return cli.NewExitError(err, exitFatal)
	}

	objects, err := loadObjects(ctx.String("grf"), input)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("loading %s: %w", input, err), exitFatal)
	}
	if cfg.Export.IncludeDescendants {
		objects = scene.Flatten(objects)
	}
	if names := ctx.StringSlice("select"); len(names) > 0 {
		objects = scene.Select(objects, names)
		if len(objects) == 0 {
			logger.Warn("no objects matched the selection", zap.Strings("select", names))
		}
	}

	logger.Debug("exporting",
		zap.String("input", input),
		zap.Int("objects", len(objects)),
		zap.String("format", cfg.Export.Format),
		zap.Float64("scale_factor", cfg.Export.ScaleFactor),
	)

	session := exporter.NewSession(exporter.NewFileWriter(newFormat(cfg.Export)), exporter.SessionConfig{
		Options:      exporter.Options{ScaleFactor: cfg.Export.ScaleFactor},
		DocumentName: documentName(input),
		Creator:      cfg.Export.Creator,
		Logger:       logger.Log,
	})

	res, err := session.Export(objects, output)
	for _, f := range res.Failures {
		logger.Warn("object not exported", zap.Int("index", f.Index), zap.String("object", f.Name), zap.Error(f.Err))
	}
	if err != nil {
		return cli.NewExitError(err, exitFatal)
	}

	stats := res.Document.Stats()
	logger.Info("export complete",
		zap.String("output", output),
		zap.Int("exported", len(res.Exported)),
		zap.Int("failed", len(res.Failures)),
		zap.Int("control_points", stats.ControlPoints),
		zap.Int("polygons", stats.Polygons),
	)

	if len(res.Failures) > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d objects were not exported", len(res.Failures), len(objects)), exitPartial)
	}
	return nil
}

func newFormat(cfg config.ExportConfig) exporter.Format {
	if cfg.Format == config.FormatYAML {
		return document.YAMLFormat{}
	}
	return fbx.Format{Creator: cfg.Creator}
}
