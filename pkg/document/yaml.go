package document

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormat writes documents as YAML, for inspection and diffing.
type YAMLFormat struct{}

// Name returns the format name.
func (YAMLFormat) Name() string { return "yaml" }

// Extension returns the conventional file extension.
func (YAMLFormat) Extension() string { return ".yaml" }

// Encode writes doc to w.
func (YAMLFormat) Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
