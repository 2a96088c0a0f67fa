package exporter

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/scenexport/pkg/document"
	"github.com/Faultbox/scenexport/pkg/scene"
)

// Writer opens a write session for a destination, typically a file path.
type Writer interface {
	Open(dest string) (WriteSession, error)
}

// WriteSession serializes one document. Close must be called on every path
// and releases whatever Open acquired; output is only valid if Write and
// Close both succeed.
type WriteSession interface {
	Write(doc *document.Document) error
	Close() error
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Options
	DocumentName string
	Creator      string
	Logger       *zap.Logger // nil disables logging
}

// Session runs exports against one Writer.
type Session struct {
	writer    Writer
	converter *Converter
	name      string
	creator   string
	log       *zap.Logger
}

// NewSession creates a Session.
func NewSession(w Writer, cfg SessionConfig) *Session {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	name := cfg.DocumentName
	if name == "" {
		name = "Scene"
	}
	return &Session{
		writer:    w,
		converter: NewConverter(cfg.Options),
		name:      name,
		creator:   cfg.Creator,
		log:       log,
	}
}

// Result reports what an export did.
type Result struct {
	Destination string
	Document    *document.Document
	Exported    []string
	Failures    []ObjectFailure
	Written     bool
}

// FailedNames returns the names of the objects left out.
func (r *Result) FailedNames() []string {
	names := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		names[i] = f.Name
	}
	return names
}

// FailureErr combines the per-object failures into one error, or nil.
func (r *Result) FailureErr() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f.Err)
	}
	return err
}

// Build converts objects into a fresh document without writing it.
func (s *Session) Build(objects []*scene.Object) (*document.Document, *Traversal) {
	doc := document.New(s.name)
	doc.Creator = s.creator

	t := s.converter.Traverse(objects)
	doc.Root = t.Root
	return doc, t
}

// Export converts objects and writes the document to dest.
//
// The writer is opened before conversion; if that fails nothing is converted
// and the error wraps ErrWriterInit. Objects that fail to convert are
// reported in the Result and do not stop the export. A failed write or close
// wraps ErrWriterExport. The Result is never nil.
func (s *Session) Export(objects []*scene.Object, dest string) (res *Result, err error) {
	res = &Result{Destination: dest}
	log := s.log.With(zap.String("destination", dest))

	ws, err := s.writer.Open(dest)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrWriterInit, err)
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil && err == nil {
			res.Written = false
			err = fmt.Errorf("%w: %w", ErrWriterExport, cerr)
		}
	}()

	doc, t := s.Build(objects)
	res.Document = doc
	res.Exported = t.Exported
	res.Failures = t.Failures

	for _, f := range t.Failures {
		log.Debug("object skipped", zap.Int("index", f.Index), zap.String("object", f.Name), zap.Error(f.Err))
	}

	stats := doc.Stats()
	log.Debug("document built",
		zap.Int("exported", len(t.Exported)),
		zap.Int("failed", len(t.Failures)),
		zap.Int("meshes", stats.Meshes),
		zap.Int("control_points", stats.ControlPoints),
		zap.Int("polygons", stats.Polygons),
	)

	if err := ws.Write(doc); err != nil {
		return res, fmt.Errorf("%w: %w", ErrWriterExport, err)
	}
	res.Written = true

	return res, nil
}
