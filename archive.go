// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"fmt"
	"io"
	"os"
)

// PackHandle is a read-only, opened BIN or LB5 archive: a parsed directory
// of entries plus a random-access reader over the lump body. Concurrent
// calls on the same handle are not supported; independent handles to the
// same file are.
type PackHandle struct {
	entries []PackEntry
	lump    io.ReaderAt
	closer  io.Closer
}

// OpenPack opens path's archive (.bin or .lb5), locates its .idx sidecar
// next to it, and parses the directory. The lump body is read from path
// itself.
func OpenPack(path string) (*PackHandle, error) {
	isBin := extensionEqualFold(path, "bin")
	isLB5 := extensionEqualFold(path, "lb5")
	if !isBin && !isLB5 {
		return nil, fmt.Errorf("%w: unrecognized archive extension %q", ErrInvalidFile, Extension(path))
	}

	lump, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	idxPath := sidecarIndexPath(path)
	idxFile, err := os.Open(idxPath)
	if err != nil {
		_ = lump.Close()
		return nil, fmt.Errorf("%w: %s", ErrSidecarMissing, idxPath)
	}
	defer func() { _ = idxFile.Close() }()

	idxData, err := io.ReadAll(idxFile)
	if err != nil {
		_ = lump.Close()
		return nil, fmt.Errorf("read sidecar index: %w", err)
	}

	entries, err := parsePackIndex(idxData, isBin)
	if err != nil {
		_ = lump.Close()
		return nil, err
	}

	return &PackHandle{entries: entries, lump: lump, closer: lump}, nil
}

// OpenPackFromReaders parses an archive directory from an already-open
// sidecar index plus a lump reader, without touching the filesystem.
// isBin selects BIN index layout; false selects LB5.
func OpenPackFromReaders(idx io.Reader, lump io.ReaderAt, isBin bool) (*PackHandle, error) {
	idxData, err := io.ReadAll(idx)
	if err != nil {
		return nil, fmt.Errorf("read sidecar index: %w", err)
	}

	entries, err := parsePackIndex(idxData, isBin)
	if err != nil {
		return nil, err
	}

	return &PackHandle{entries: entries, lump: lump}, nil
}

// sidecarIndexPath replaces path's extension with a lowercase "idx",
// preserving the stem exactly (mirrors the original's fixed three-character
// in-place extension swap: "bin"/"lb5"/"idx" are all three characters).
func sidecarIndexPath(path string) string {
	ext := Extension(path)
	return path[:len(path)-len(ext)] + "idx"
}

// parsePackIndex parses a BIN or LB5 index body into ordered entries.
func parsePackIndex(idxData []byte, isBin bool) ([]PackEntry, error) {
	if isBin {
		return parseBinIndex(idxData)
	}

	return parseLB5Index(idxData)
}

// parseBinIndex parses the 1997 BIN index layout: u32 count, then per
// record u32 name_length, name bytes (CP932, no terminator), u32 offset,
// u32 length.
func parseBinIndex(data []byte) ([]PackEntry, error) {
	c := NewCursor(data)

	count, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read entry count: %w", err)
	}

	entries := make([]PackEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		nameLen, err := c.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("read entry %d name length: %w", i, err)
		}

		nameBytes, err := c.ReadExact(int(nameLen))
		if err != nil {
			return nil, fmt.Errorf("read entry %d name: %w", i, err)
		}

		offset, err := c.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("read entry %d offset: %w", i, err)
		}

		length, err := c.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("read entry %d length: %w", i, err)
		}

		entries = append(entries, PackEntry{
			Name:   DecodeCP932(nameBytes),
			Offset: offset,
			Length: length,
		})
	}

	return entries, nil
}

// lb5NameSize is the fixed CP932 name field width within one LB5 record.
const lb5NameSize = 15

// parseLB5Index parses the 2006 LB5 index layout: u32 count, then per
// record 24 fixed bytes: u32 offset, u32 length, 1 padding byte, 15 CP932
// bytes for the name (NUL-padded if shorter).
func parseLB5Index(data []byte) ([]PackEntry, error) {
	c := NewCursor(data)

	count, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read entry count: %w", err)
	}

	entries := make([]PackEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		offset, err := c.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("read entry %d offset: %w", i, err)
		}

		length, err := c.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("read entry %d length: %w", i, err)
		}

		if err := c.SeekRelative(1); err != nil {
			return nil, fmt.Errorf("skip entry %d padding: %w", i, err)
		}

		nameBytes, err := c.ReadExact(lb5NameSize)
		if err != nil {
			return nil, fmt.Errorf("read entry %d name: %w", i, err)
		}

		entries = append(entries, PackEntry{
			Name:   DecodeCP932NullTerminated(nameBytes),
			Offset: offset,
			Length: length,
		})
	}

	return entries, nil
}

// Entries returns a copy of the parsed directory, in on-disk order.
func (h *PackHandle) Entries() []PackEntry {
	out := make([]PackEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// ReadEntry seeks the lump reader to entry.Offset and returns exactly
// entry.Length bytes.
func (h *PackHandle) ReadEntry(entry PackEntry) ([]byte, error) {
	buf := make([]byte, entry.Length)
	n, err := h.lump.ReadAt(buf, int64(entry.Offset))
	if err != nil || n != int(entry.Length) {
		return nil, fmt.Errorf("%w: entry %q", ErrTruncated, entry.Name)
	}

	return buf, nil
}

// Close releases the lump reader if this handle owns one.
func (h *PackHandle) Close() error {
	if h.closer == nil {
		return nil
	}

	return h.closer.Close()
}
