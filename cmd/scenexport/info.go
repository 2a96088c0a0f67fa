package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/Faultbox/scenexport/internal/config"
	"github.com/Faultbox/scenexport/pkg/scene"
)

func infoAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("info needs an input path", exitFatal)
	}
	input := ctx.Args().Get(0)
	w := ctx.App.Writer

	if _, err := setup(ctx, config.Overrides{}); err != nil {
		return cli.NewExitError(err, exitFatal)
	}

	archive := ctx.String("grf")

	var objects []*scene.Object
	if archive != "" || isRSM(input) {
		model, err := readRSM(archive, input)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("loading %s: %w", input, err), exitFatal)
		}
		fmt.Fprintf(w, "Model:    %s\n", input)
		fmt.Fprintf(w, "Version:  %s\n", model.Version)
		fmt.Fprintf(w, "Root:     %s\n", model.RootNode)
		fmt.Fprintf(w, "Textures: %d\n", len(model.Textures))
		fmt.Fprintf(w, "Shading:  %s\n", model.Shading)
		if model.HasAnimation() {
			fmt.Fprintf(w, "Animated: %d ms\n", model.AnimLength)
		}
		fmt.Fprintln(w)

		if objects, err = scene.FromRSM(model); err != nil {
			return cli.NewExitError(fmt.Errorf("loading %s: %w", input, err), exitFatal)
		}
	} else {
		var err error
		if objects, err = scene.LoadFile(input); err != nil {
			return cli.NewExitError(fmt.Errorf("loading %s: %w", input, err), exitFatal)
		}
	}

	all := scene.Flatten(objects)
	var vertices, triangles int
	for _, o := range all {
		if o != nil && o.Mesh != nil {
			vertices += o.Mesh.VertexCount()
			triangles += o.Mesh.TriangleCount()
		}
	}

	fmt.Fprintf(w, "Scene:     %s\n", input)
	fmt.Fprintf(w, "Objects:   %d (%d with descendants)\n", len(objects), len(all))
	fmt.Fprintf(w, "Vertices:  %d\n", vertices)
	fmt.Fprintf(w, "Triangles: %d\n", triangles)
	fmt.Fprintln(w)

	for _, o := range all {
		if o == nil {
			continue
		}
		if o.Mesh == nil {
			fmt.Fprintf(w, "  %-24s (empty)\n", o.Name)
			continue
		}
		fmt.Fprintf(w, "  %-24s %6d vertices %6d triangles\n", o.Name, o.Mesh.VertexCount(), o.Mesh.TriangleCount())
	}
	return nil
}
