// Package grf reads Ragnarok Online GRF archives, the container the game
// ships its models in.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/Faultbox/scenexport/pkg/encoding"
)

const (
	grfMagic   = "Master of Magic"
	headerSize = 46
	entrySize  = 17 // fixed part after the name

	// Version is the only supported archive version.
	Version = 0x200
)

// Entry flags.
const (
	FlagFile      = 0x01
	FlagEncrypted = 0x02
)

// Errors returned by the archive reader.
var (
	ErrInvalidMagic       = errors.New("invalid GRF magic")
	ErrUnsupportedVersion = errors.New("unsupported GRF version")
	ErrCorruptTable       = errors.New("corrupt GRF file table")
	ErrNotFound           = errors.New("file not found in archive")
	ErrEncrypted          = errors.New("encrypted GRF entries are not supported")
)

// Header contains GRF file header information.
type Header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entry describes one file in the archive.
type Entry struct {
	Name             string // normalized, see Normalize
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Archive is an opened GRF archive.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	header  Header
	entries map[string]*Entry
}

// Open opens a GRF archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	a, err := NewArchive(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.closer = file
	return a, nil
}

// NewArchive reads the header and file table from r.
func NewArchive(r io.ReaderAt) (*Archive, error) {
	a := &Archive{r: r, entries: make(map[string]*Entry)}

	if err := a.readHeader(); err != nil {
		return nil, err
	}
	if err := a.readFileTable(); err != nil {
		return nil, err
	}
	return a, nil
}

// Close closes the underlying file, if the archive owns one.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Header returns the archive header.
func (a *Archive) Header() Header {
	return a.header
}

func (a *Archive) readHeader() error {
	sr := io.NewSectionReader(a.r, 0, headerSize)
	if err := binary.Read(sr, binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if string(a.header.Magic[:]) != grfMagic {
		return ErrInvalidMagic
	}
	if a.header.Version != Version {
		return fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, a.header.Version)
	}
	return nil
}

func (a *Archive) readFileTable() error {
	tableOffset := int64(a.header.TableOffset) + headerSize

	var sizes [8]byte
	if _, err := a.r.ReadAt(sizes[:], tableOffset); err != nil {
		return fmt.Errorf("%w: reading table sizes: %v", ErrCorruptTable, err)
	}
	compressedSize := binary.LittleEndian.Uint32(sizes[0:])
	uncompressedSize := binary.LittleEndian.Uint32(sizes[4:])

	table, err := inflate(io.NewSectionReader(a.r, tableOffset+8, int64(compressedSize)), uncompressedSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}

	if a.header.FileCount < a.header.Seed+7 {
		return fmt.Errorf("%w: file count %d below seed %d", ErrCorruptTable, a.header.FileCount, a.header.Seed)
	}
	fileCount := a.header.FileCount - a.header.Seed - 7

	offset := 0
	for i := uint32(0); i < fileCount; i++ {
		nameEnd := bytes.IndexByte(table[offset:], 0)
		if nameEnd < 0 || offset+nameEnd+1+entrySize > len(table) {
			return fmt.Errorf("%w: entry %d of %d truncated", ErrCorruptTable, i, fileCount)
		}
		name := encoding.EUCKRToUTF8(table[offset : offset+nameEnd])
		offset += nameEnd + 1

		entry := &Entry{
			Name:             Normalize(name),
			CompressedSize:   binary.LittleEndian.Uint32(table[offset:]),
			AlignedSize:      binary.LittleEndian.Uint32(table[offset+4:]),
			UncompressedSize: binary.LittleEndian.Uint32(table[offset+8:]),
			Flags:            table[offset+12],
			Offset:           binary.LittleEndian.Uint32(table[offset+13:]),
		}
		offset += entrySize

		// Directory entries have no file flag
		if entry.Flags&FlagFile != 0 {
			a.entries[entry.Name] = entry
		}
	}

	return nil
}

// List returns all file paths in the archive, sorted.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.entries))
	for name := range a.entries {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Glob returns the sorted paths matching a path.Match pattern. The pattern is
// normalized like a path.
func (a *Archive) Glob(pattern string) ([]string, error) {
	pattern = Normalize(pattern)
	var result []string
	for _, name := range a.List() {
		ok, err := path.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, name)
		}
	}
	return result, nil
}

// Stat returns the entry for a path.
func (a *Archive) Stat(name string) (*Entry, error) {
	entry, ok := a.entries[Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return entry, nil
}

// Contains checks if a file exists.
func (a *Archive) Contains(name string) bool {
	_, ok := a.entries[Normalize(name)]
	return ok
}

// Read reads and decompresses a file from the archive.
func (a *Archive) Read(name string) ([]byte, error) {
	entry, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if entry.Flags&FlagEncrypted != 0 {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, name)
	}

	data := io.NewSectionReader(a.r, int64(entry.Offset)+headerSize, int64(entry.CompressedSize))

	// Stored entries are not zlib wrapped
	if entry.CompressedSize == entry.UncompressedSize {
		out := make([]byte, entry.UncompressedSize)
		if _, err := io.ReadFull(data, out); err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return out, nil
	}

	out, err := inflate(data, entry.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return out, nil
}

func inflate(r io.Reader, size uint32) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Normalize converts an archive path to the form entries are stored under:
// forward slashes, lower case.
func Normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.ToLower(name)
}
