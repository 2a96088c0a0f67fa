package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/scenexport/internal/config"
	"github.com/Faultbox/scenexport/pkg/formats"
	"github.com/Faultbox/scenexport/pkg/grf"
	"github.com/Faultbox/scenexport/pkg/scene"
)

// loadObjects reads an input file, choosing the loader by extension. With a
// GRF archive, input names an RSM model inside it.
func loadObjects(archive, input string) ([]*scene.Object, error) {
	if archive == "" {
		if isRSM(input) {
			return scene.LoadRSMFile(input)
		}
		return scene.LoadFile(input)
	}
	model, err := readArchivedRSM(archive, input)
	if err != nil {
		return nil, err
	}
	return scene.FromRSM(model)
}

// readRSM parses an RSM model from disk, or from archive when one is given.
func readRSM(archive, name string) (*formats.RSM, error) {
	if archive == "" {
		return formats.ParseRSMFile(name)
	}
	return readArchivedRSM(archive, name)
}

// readArchivedRSM parses an RSM model stored in a GRF archive.
func readArchivedRSM(archive, name string) (*formats.RSM, error) {
	if !isRSM(name) {
		return nil, fmt.Errorf("%s: only RSM models can be read from an archive", name)
	}

	a, err := grf.Open(archive)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	data, err := a.Read(name)
	if err != nil {
		return nil, err
	}
	return formats.ParseRSM(data)
}

func isRSM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rsm")
}

// outputFormat picks the output format: an explicit flag wins, then a known
// output extension, then the configured default.
func outputFormat(flag, output, configured string) string {
	if flag != "" {
		return flag
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".fbx":
		return config.FormatFBX
	case ".yaml", ".yml":
		return config.FormatYAML
	}
	return configured
}

// documentName names the document after the input file.
func documentName(input string) string {
	base := filepath.Base(strings.ReplaceAll(input, "\\", "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
