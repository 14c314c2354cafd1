// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"fmt"
	"io"
)

// bp3Magic is the fixed magic value of a BP3 header.
const bp3Magic = 0x88888888

// BP3 tile quantisation modes.
const (
	bp3ModeSolid  = 0
	bp3ModeBGR332 = 1
	bp3ModeBGR233 = 2
	bp3ModeBGR323 = 3
	bp3ModeGray4  = 4
	bp3ModeGray8  = 5
	bp3ModeBGR555 = 6
	bp3ModeBGR888 = 7
)

// bp3ModeBPP gives bits-per-pixel for each tile mode.
var bp3ModeBPP = map[uint8]int{
	bp3ModeSolid:  0,
	bp3ModeBGR332: 8,
	bp3ModeBGR233: 8,
	bp3ModeBGR323: 8,
	bp3ModeGray4:  4,
	bp3ModeGray8:  8,
	bp3ModeBGR555: 16,
	bp3ModeBGR888: 24,
}

// alignUp8 rounds n up to the next multiple of 8.
func alignUp8(n int) int {
	return (n + 7) &^ 7
}

// LoadBP3 decodes a 2006-edition BP3 tiled bitmap into a cropped, top-origin BGR24 raster.
func LoadBP3(r io.Reader) (*Bitmap, error) {
	c, err := NewCursorFromReader(r)
	if err != nil {
		return nil, err
	}

	magic, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP3 magic: %w", err)
	}
	if magic != bp3Magic {
		return nil, fmt.Errorf("%w: BP3 expected %#x, got %#x", ErrBadMagic, bp3Magic, magic)
	}

	widthU, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP3 width: %w", err)
	}
	heightU, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP3 height: %w", err)
	}
	if _, err := c.ReadU32LE(); err != nil { // decompressed_length, not verified
		return nil, fmt.Errorf("read BP3 decompressed length: %w", err)
	}

	if _, err := readBMPFileHeader(c); err != nil {
		return nil, err
	}
	if _, err := readBMPInfoHeader(c); err != nil {
		return nil, err
	}

	width, height := int(widthU), int(heightU)
	paddedW, paddedH := alignUp8(width), alignUp8(height)
	tilesPerRow := paddedW / 8
	numTiles := (paddedW * paddedH) / 64

	modeTab, err := c.ReadExact(numTiles)
	if err != nil {
		return nil, fmt.Errorf("read BP3 mode table: %w", err)
	}
	paramTab, err := c.ReadExact(numTiles * 3)
	if err != nil {
		return nil, fmt.Errorf("read BP3 param table: %w", err)
	}

	gridRowBytes := 3 * paddedW
	padded := make([]byte, gridRowBytes*paddedH)

	for i := 0; i < numTiles; i++ {
		mode := modeTab[i]
		bpp, ok := bp3ModeBPP[mode]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTileMode, mode)
		}

		tileCol := i % tilesPerRow
		tileRow := i / tilesPerRow
		chunkW := partialTileExtent(tileCol, width)
		chunkH := partialTileExtent(tileRow, height)

		base := [3]uint8{paramTab[3*i+0], paramTab[3*i+1], paramTab[3*i+2]}

		var payload []byte
		storedRowBytes := 0
		if bpp > 0 {
			tight, err := c.ReadExact(bpp * chunkW * chunkH / 8)
			if err != nil {
				return nil, fmt.Errorf("read BP3 tile %d payload: %w", i, err)
			}

			if mode == bp3ModeGray4 {
				payload = unpackGray4Rows(tight, chunkW, chunkH)
				storedRowBytes = gray4FullRowBytes
			} else {
				payload = tight
				storedRowBytes = bpp * chunkW / 8
			}
		}

		tileRowBase := gridRowBytes * 8 * tileRow
		tileColBase := 24 * tileCol
		for ty := 0; ty < chunkH; ty++ {
			rowOff := tileRowBase + tileColBase + ty*gridRowBytes
			for tx := 0; tx < chunkW; tx++ {
				b, g, r := bp3DecodePixel(mode, payload, storedRowBytes, tx, ty, base)
				off := rowOff + tx*3
				padded[off+0] = b
				padded[off+1] = g
				padded[off+2] = r
			}
		}
	}

	pixels := make([]byte, width*height*3)
	rowBytes := width * 3
	for y := 0; y < height; y++ {
		srcRow := padded[y*gridRowBytes : y*gridRowBytes+rowBytes]
		dstY := height - 1 - y
		copy(pixels[dstY*rowBytes:(dstY+1)*rowBytes], srcRow)
	}

	return &Bitmap{
		Width:  width,
		Height: height,
		Format: PixelFormatBGR24,
		Pixels: pixels,
	}, nil
}

// gray4FullRowBytes is the byte width of one full (8-pixel) GRAY4 tile row.
const gray4FullRowBytes = 4

// unpackGray4Rows takes tight, a GRAY4 tile payload packed as a continuous
// nibble stream in row-major order over a chunkW x chunkH visible region
// (no per-row byte alignment on disk), and lays it out as chunkH rows each
// padded to gray4FullRowBytes, zero-filling nibbles beyond chunkW. This
// lets bp3DecodePixel address any row at a fixed stride even when chunkW
// is odd and the on-disk row boundaries aren't byte-aligned.
func unpackGray4Rows(tight []byte, chunkW, chunkH int) []byte {
	padded := make([]byte, gray4FullRowBytes*chunkH)

	for ty := 0; ty < chunkH; ty++ {
		for tx := 0; tx < chunkW; tx++ {
			idx := ty*chunkW + tx
			byteOff, hiNibble := idx/2, idx%2 == 1

			var nibble byte
			if byteOff < len(tight) {
				if hiNibble {
					nibble = (tight[byteOff] >> 4) & 0x0F
				} else {
					nibble = tight[byteOff] & 0x0F
				}
			}

			outOff := ty*gray4FullRowBytes + tx/2
			if tx&1 == 1 {
				padded[outOff] |= nibble << 4
			} else {
				padded[outOff] |= nibble
			}
		}
	}

	return padded
}

// partialTileExtent returns the visible extent (1..8) of a tile at index
// tileIndex along one axis, given the axis's declared size.
func partialTileExtent(tileIndex, size int) int {
	if tileIndex*8+8 >= size {
		return size - tileIndex*8
	}

	return 8
}

// bp3DecodePixel decodes one quantised pixel at (tx, ty) within a tile's
// payload under mode, adding base where the mode calls for it.
func bp3DecodePixel(mode uint8, payload []byte, storedRowBytes, tx, ty int, base [3]uint8) (b, g, r uint8) {
	switch mode {
	case bp3ModeSolid:
		return base[0], base[1], base[2]

	case bp3ModeGray4:
		byteOff := ty*storedRowBytes + tx/2
		p := payload[byteOff]
		var nib uint8
		if tx&1 == 1 {
			nib = (p >> 4) & 0x0F
		} else {
			nib = p & 0x0F
		}
		return nib + base[0], nib + base[1], nib + base[2]

	case bp3ModeBGR332:
		p := payload[ty*storedRowBytes+tx]
		return ((p >> 0) & 7) + base[0], ((p >> 3) & 7) + base[1], ((p >> 6) & 3) + base[2]

	case bp3ModeBGR233:
		p := payload[ty*storedRowBytes+tx]
		return ((p >> 0) & 3) + base[0], ((p >> 2) & 7) + base[1], ((p >> 5) & 7) + base[2]

	case bp3ModeBGR323:
		p := payload[ty*storedRowBytes+tx]
		return ((p >> 0) & 7) + base[0], ((p >> 3) & 3) + base[1], ((p >> 5) & 7) + base[2]

	case bp3ModeGray8:
		p := payload[ty*storedRowBytes+tx]
		return p, p, p

	case bp3ModeBGR555:
		off := ty*storedRowBytes + tx*2
		p0, p1 := payload[off], payload[off+1]
		return (p0 & 0x1F) + base[0], ((p0 >> 5) + 8*(p1&3)) + base[1], ((p1 & 0x7C) >> 2) + base[2]

	case bp3ModeBGR888:
		off := ty*storedRowBytes + tx*3
		return payload[off], payload[off+1], payload[off+2]
	}

	return 0, 0, 0
}
