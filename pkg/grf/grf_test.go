package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Faultbox/scenexport/pkg/encoding"
)

type testFile struct {
	name    []byte // raw, as stored in the table
	content []byte
	flags   uint8
	stored  bool // write uncompressed
}

func zlibBytes(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// buildGRF assembles a version 0x200 archive in memory.
func buildGRF(files []testFile) []byte {
	var body, table bytes.Buffer

	for _, f := range files {
		data := f.content
		if !f.stored {
			data = zlibBytes(f.content)
		}
		aligned := len(data)
		if aligned%8 != 0 {
			aligned += 8 - aligned%8
		}

		table.Write(f.name)
		table.WriteByte(0)
		binary.Write(&table, binary.LittleEndian, uint32(len(data)))
		binary.Write(&table, binary.LittleEndian, uint32(aligned))
		binary.Write(&table, binary.LittleEndian, uint32(len(f.content)))
		table.WriteByte(f.flags)
		binary.Write(&table, binary.LittleEndian, uint32(body.Len()))

		body.Write(data)
		body.Write(make([]byte, aligned-len(data)))
	}

	header := make([]byte, headerSize)
	copy(header, grfMagic)
	binary.LittleEndian.PutUint32(header[30:], uint32(body.Len()))
	binary.LittleEndian.PutUint32(header[34:], 0)
	binary.LittleEndian.PutUint32(header[38:], uint32(len(files))+7)
	binary.LittleEndian.PutUint32(header[42:], Version)

	compressedTable := zlibBytes(table.Bytes())

	var out bytes.Buffer
	out.Write(header)
	out.Write(body.Bytes())
	binary.Write(&out, binary.LittleEndian, uint32(len(compressedTable)))
	binary.Write(&out, binary.LittleEndian, uint32(table.Len()))
	out.Write(compressedTable)
	return out.Bytes()
}

func testArchive(t *testing.T) *Archive {
	t.Helper()
	data := buildGRF([]testFile{
		{name: []byte(`data\model\House.rsm`), content: []byte("GRSM model"), flags: FlagFile},
		{name: []byte(`data\model\tree.rsm`), content: []byte("GRSM tree"), flags: FlagFile, stored: true},
		{name: []byte(`data\texture`), flags: 0},
		{name: []byte(`data\secret.rsm`), content: []byte("hidden"), flags: FlagFile | FlagEncrypted},
		{name: append([]byte(`data\model\`), append(encoding.UTF8ToEUCKR("검"), ".rsm"...)...), content: []byte("korean"), flags: FlagFile},
	})

	a, err := NewArchive(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	return a
}

func TestList(t *testing.T) {
	a := testArchive(t)

	want := []string{
		"data/model/house.rsm",
		"data/model/tree.rsm",
		"data/model/검.rsm",
		"data/secret.rsm",
	}
	if got := a.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if a.Header().Version != Version {
		t.Errorf("expected version 0x%x, got 0x%x", Version, a.Header().Version)
	}
}

func TestRead(t *testing.T) {
	a := testArchive(t)

	tests := []struct {
		path string
		want string
	}{
		{`data\model\house.rsm`, "GRSM model"},
		{"DATA/MODEL/HOUSE.RSM", "GRSM model"},
		{"data/model/tree.rsm", "GRSM tree"},
		{"data/model/검.rsm", "korean"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := a.Read(tt.path)
			if err != nil {
				t.Fatalf("Read(%q) failed: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("Read(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	a := testArchive(t)

	if _, err := a.Read("data/missing.rsm"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := a.Read("data/texture"); !errors.Is(err, ErrNotFound) {
		t.Errorf("directories are not files, got %v", err)
	}
	if _, err := a.Read("data/secret.rsm"); !errors.Is(err, ErrEncrypted) {
		t.Errorf("expected ErrEncrypted, got %v", err)
	}
}

func TestContainsAndStat(t *testing.T) {
	a := testArchive(t)

	if !a.Contains(`Data\Model\Tree.rsm`) {
		t.Error("expected archive to contain tree.rsm")
	}
	if a.Contains("data/model/rock.rsm") {
		t.Error("unexpected rock.rsm")
	}

	entry, err := a.Stat("data/model/tree.rsm")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if entry.CompressedSize != entry.UncompressedSize || entry.UncompressedSize != 9 {
		t.Errorf("unexpected stored entry sizes: %+v", entry)
	}
	if entry.AlignedSize%8 != 0 {
		t.Errorf("aligned size %d not a multiple of 8", entry.AlignedSize)
	}
}

func TestGlob(t *testing.T) {
	a := testArchive(t)

	got, err := a.Glob(`data\model\*.rsm`)
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	want := []string{"data/model/house.rsm", "data/model/tree.rsm", "data/model/검.rsm"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Glob() = %v, want %v", got, want)
	}

	if _, err := a.Glob("data/["); err == nil {
		t.Error("expected bad pattern error")
	}
}

func TestOpenErrors(t *testing.T) {
	good := buildGRF([]testFile{{name: []byte("a.rsm"), content: []byte("x"), flags: FlagFile}})

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "Master of Mushr")

	badVersion := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badVersion[42:], 0x103)

	badCount := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(badCount[38:], 3)

	tooMany := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(tooMany[38:], 2+7)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"magic", badMagic, ErrInvalidMagic},
		{"version", badVersion, ErrUnsupportedVersion},
		{"count below seed", badCount, ErrCorruptTable},
		{"truncated table", tooMany, ErrCorruptTable},
		{"truncated header", good[:20], nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArchive(bytes.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.grf")
	if err := os.WriteFile(path, buildGRF([]testFile{{name: []byte("a.rsm"), content: []byte("x"), flags: FlagFile}}), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()

	if !a.Contains("a.rsm") {
		t.Error("expected a.rsm")
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.grf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(`Data\Model\A.RSM`); got != "data/model/a.rsm" {
		t.Errorf("Normalize() = %q", got)
	}
}
