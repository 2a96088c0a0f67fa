package exporter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/scenexport/pkg/document"
)

// Format serializes a document to a byte stream.
type Format interface {
	Name() string
	Extension() string
	Encode(w io.Writer, doc *document.Document) error
}

// File writer errors.
var (
	ErrEmptyDestination = errors.New("empty destination")
	ErrSessionState     = errors.New("write session misuse")
)

// FileWriter writes documents to files in a Format.
//
// Output goes to a temporary file next to the destination which is renamed
// into place only after a successful Write and Close, so a failed export
// never leaves a partial file at the destination.
type FileWriter struct {
	format Format
}

// NewFileWriter creates a FileWriter.
func NewFileWriter(format Format) *FileWriter {
	return &FileWriter{format: format}
}

// Format returns the writer's format.
func (fw *FileWriter) Format() Format {
	return fw.format
}

// Open checks that dest can be written and creates the temporary file.
func (fw *FileWriter) Open(dest string) (WriteSession, error) {
	if dest == "" {
		return nil, ErrEmptyDestination
	}

	dir := filepath.Dir(dest)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("destination directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("destination directory %s is not a directory", dir)
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return nil, fmt.Errorf("destination %s is a directory", dest)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	return &fileSession{format: fw.format, dest: dest, tmp: tmp}, nil
}

type fileSession struct {
	format  Format
	dest    string
	tmp     *os.File
	written bool
	closed  bool
}

func (s *fileSession) Write(doc *document.Document) error {
	if s.closed || s.written {
		return fmt.Errorf("%w: write after write or close", ErrSessionState)
	}

	bw := bufio.NewWriter(s.tmp)
	if err := s.format.Encode(bw, doc); err != nil {
		return fmt.Errorf("encoding %s: %w", s.format.Name(), err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", s.tmp.Name(), err)
	}

	s.written = true
	return nil
}

func (s *fileSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.written {
		err = s.tmp.Sync()
	}
	err = multierr.Append(err, s.tmp.Close())

	if !s.written || err != nil {
		os.Remove(s.tmp.Name())
		return err
	}

	if err := os.Rename(s.tmp.Name(), s.dest); err != nil {
		os.Remove(s.tmp.Name())
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}
