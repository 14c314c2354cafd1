// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func putU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func buildBinIndex(entries []PackEntry) []byte {
	var buf bytes.Buffer
	putU32(&buf, uint32(len(entries)))
	for _, e := range entries {
		name := []byte(e.Name)
		putU32(&buf, uint32(len(name)))
		buf.Write(name)
		putU32(&buf, e.Offset)
		putU32(&buf, e.Length)
	}

	return buf.Bytes()
}

func buildLB5Index(entries []PackEntry) []byte {
	var buf bytes.Buffer
	putU32(&buf, uint32(len(entries)))
	for _, e := range entries {
		putU32(&buf, e.Offset)
		putU32(&buf, e.Length)
		buf.WriteByte(0) // padding

		name := make([]byte, lb5NameSize)
		copy(name, e.Name)
		buf.Write(name)
	}

	return buf.Bytes()
}

func TestOpenPackBin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lump := []byte("HELLOWORLD")
	entries := []PackEntry{
		{Name: "a.txt", Offset: 0, Length: 5},
		{Name: "b.txt", Offset: 5, Length: 5},
	}

	lumpPath := filepath.Join(dir, "pack.bin")
	if err := os.WriteFile(lumpPath, lump, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pack.idx"), buildBinIndex(entries), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenPack(lumpPath)
	if err != nil {
		t.Fatalf("OpenPack: %v", err)
	}
	defer func() { _ = h.Close() }()

	got := h.Entries()
	if len(got) != 2 || got[0].Name != "a.txt" || got[1].Name != "b.txt" {
		t.Fatalf("Entries()=%+v, want a.txt then b.txt", got)
	}

	data, err := h.ReadEntry(got[0])
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if !bytes.Equal(data, []byte("HELLO")) {
		t.Fatalf("ReadEntry=%q, want %q", data, "HELLO")
	}

	data, err = h.ReadEntry(got[1])
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if !bytes.Equal(data, []byte("WORLD")) {
		t.Fatalf("ReadEntry=%q, want %q", data, "WORLD")
	}
}

func TestOpenPackLB5(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lump := []byte("HELLOWORLD")
	entries := []PackEntry{
		{Name: "a.txt", Offset: 0, Length: 5},
		{Name: "b.txt", Offset: 5, Length: 5},
	}

	lumpPath := filepath.Join(dir, "pack.lb5")
	if err := os.WriteFile(lumpPath, lump, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pack.idx"), buildLB5Index(entries), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := OpenPack(lumpPath)
	if err != nil {
		t.Fatalf("OpenPack: %v", err)
	}
	defer func() { _ = h.Close() }()

	got := h.Entries()
	if len(got) != 2 || got[0].Name != "a.txt" || got[1].Name != "b.txt" {
		t.Fatalf("Entries()=%+v, want a.txt then b.txt", got)
	}
}

func TestOpenPackSidecarMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lumpPath := filepath.Join(dir, "pack.bin")
	if err := os.WriteFile(lumpPath, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenPack(lumpPath)
	if !errors.Is(err, ErrSidecarMissing) {
		t.Fatalf("expected ErrSidecarMissing, got %v", err)
	}
}

func TestOpenPackInvalidExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lumpPath := filepath.Join(dir, "pack.dat")
	if err := os.WriteFile(lumpPath, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenPack(lumpPath)
	if !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}
}

func TestOpenPackFromReaders(t *testing.T) {
	t.Parallel()

	entries := []PackEntry{{Name: "a.txt", Offset: 0, Length: 5}}
	idx := bytes.NewReader(buildBinIndex(entries))
	lump := bytes.NewReader([]byte("HELLO"))

	h, err := OpenPackFromReaders(idx, lump, true)
	if err != nil {
		t.Fatalf("OpenPackFromReaders: %v", err)
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close on reader-backed handle: %v", err)
	}
}
