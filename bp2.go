// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"fmt"
	"io"
)

// bp2Magic is the fixed magic value of a BP2 header.
const bp2Magic = 999

// BP2 encoding field values.
const (
	bp2EncodingIndex8 = 1
	bp2EncodingBGR888 = 2
	bp2EncodingGray8  = 3
)

// alignUp4 rounds n up to the next multiple of 4.
func alignUp4(n int) int {
	return (n + 3) &^ 3
}

// LoadBP2 decodes a 1997-edition BP2 slice-RLE bitmap.
func LoadBP2(r io.Reader) (*Bitmap, error) {
	c, err := NewCursorFromReader(r)
	if err != nil {
		return nil, err
	}

	magic, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP2 magic: %w", err)
	}
	if magic != bp2Magic {
		return nil, fmt.Errorf("%w: BP2 expected %d, got %d", ErrBadMagic, bp2Magic, magic)
	}

	encoding, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP2 encoding: %w", err)
	}
	paletteLen, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP2 palette length: %w", err)
	}
	if _, err := c.ReadU32LE(); err != nil { // reserved, unused and never validated
		return nil, fmt.Errorf("read BP2 reserved field: %w", err)
	}
	sliceCount, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP2 slice count: %w", err)
	}
	extraSliceBytes, err := c.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("read BP2 extra slice byte count: %w", err)
	}

	if _, err := readBMPFileHeader(c); err != nil {
		return nil, err
	}
	bih, err := readBMPInfoHeader(c)
	if err != nil {
		return nil, err
	}
	width, height := int(bih.biWidth), int(bih.biHeight)

	palette, err := readBP2Palette(c, paletteLen)
	if err != nil {
		return nil, err
	}

	srcBPP, dstBPP, format, err := bp2EncodingLayout(encoding)
	if err != nil {
		return nil, err
	}
	if format != PixelFormatIndex8 {
		palette = nil
	}

	dstPitch := alignUp4(width * dstBPP)
	rowBytes := width * dstBPP
	preFlip := make([]byte, height*rowBytes)
	scratch := make([]byte, dstPitch*8)

	for i := uint32(0); i < sliceCount; i++ {
		chunkLen, err := c.ReadU32LE()
		if err != nil {
			return nil, fmt.Errorf("read BP2 slice %d chunk length: %w", i, err)
		}
		chunk, err := c.ReadExact(int(chunkLen))
		if err != nil {
			return nil, fmt.Errorf("read BP2 slice %d chunk: %w", i, err)
		}

		for j := range scratch {
			scratch[j] = 0
		}
		if err := bp2DecodeSlice(chunk, width, srcBPP, dstBPP, dstPitch, scratch); err != nil {
			return nil, err
		}

		base := int(i) * 8
		for y := 0; y < 8; y++ {
			row := base + y
			if row >= height {
				break
			}
			copy(preFlip[row*rowBytes:(row+1)*rowBytes], scratch[y*dstPitch:y*dstPitch+rowBytes])
		}
	}

	if height%8 != 0 {
		if err := bp2DecodeTrailer(c, preFlip, height, rowBytes, dstPitch, extraSliceBytes); err != nil {
			return nil, err
		}
	}

	pixels := make([]byte, len(preFlip))
	for y := 0; y < height; y++ {
		srcRow := preFlip[y*rowBytes : (y+1)*rowBytes]
		dstRow := pixels[(height-1-y)*rowBytes : (height-y)*rowBytes]
		copy(dstRow, srcRow)
	}

	return &Bitmap{
		Width:   width,
		Height:  height,
		Format:  format,
		Palette: palette,
		Pixels:  pixels,
	}, nil
}

// readBP2Palette reads paletteLen bytes of BGR0 quads and converts them to
// (r, g, b, 0xFF) colors. Returns nil if paletteLen is 0.
func readBP2Palette(c *Cursor, paletteLen uint32) (*Palette, error) {
	if paletteLen == 0 {
		return nil, nil
	}
	if paletteLen%4 != 0 {
		return nil, fmt.Errorf("%w: length %d not a multiple of 4", ErrMalformedPalette, paletteLen)
	}

	raw, err := c.ReadExact(int(paletteLen))
	if err != nil {
		return nil, fmt.Errorf("read BP2 palette: %w", err)
	}

	colors := make([]Color, paletteLen/4)
	for i := range colors {
		b, g, r := raw[i*4], raw[i*4+1], raw[i*4+2]
		colors[i] = Color{R: r, G: g, B: b, A: 0xFF}
	}

	return &Palette{Colors: colors}, nil
}

// bp2EncodingLayout maps a BP2 encoding field to its source/destination
// bytes-per-pixel and resulting Bitmap pixel format.
func bp2EncodingLayout(encoding uint32) (srcBPP, dstBPP int, format PixelFormat, err error) {
	switch encoding {
	case bp2EncodingIndex8:
		return 1, 1, PixelFormatIndex8, nil
	case bp2EncodingBGR888:
		return 3, 3, PixelFormatBGR24, nil
	case bp2EncodingGray8:
		return 1, 3, PixelFormatBGR24, nil
	default:
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrUnknownEncoding, encoding)
	}
}

// bp2DecodeSlice RLE-decodes one slice's chunk into an 8-row scratch buffer
// of stride dstPitch. Columns are decoded outer, rows inner, per spec §4.5.
func bp2DecodeSlice(chunk []byte, width, srcBPP, dstBPP, dstPitch int, scratch []byte) error {
	pos := 0
	remaining := 0
	isRepeat := false
	value := make([]byte, srcBPP)

	for x := 0; x < width; x++ {
		for y := 0; y < 8; y++ {
			for remaining == 0 {
				if pos+2 > len(chunk) {
					return fmt.Errorf("%w: chunk ended reading control word", ErrMalformedSlice)
				}
				ctrl := uint16(chunk[pos]) | uint16(chunk[pos+1])<<8
				pos += 2

				if ctrl&0x8000 != 0 {
					if pos+srcBPP > len(chunk) {
						return fmt.Errorf("%w: chunk ended reading repeat value", ErrMalformedSlice)
					}
					copy(value, chunk[pos:pos+srcBPP])
					pos += srcBPP
					remaining = int(ctrl & 0x7FFF)
					isRepeat = true
				} else {
					remaining = int(ctrl)
					isRepeat = false
				}
			}

			off := y*dstPitch + x*dstBPP
			if isRepeat {
				for plane := 0; plane < dstBPP; plane++ {
					scratch[off+plane] = value[plane%srcBPP]
				}
			} else {
				if pos+srcBPP > len(chunk) {
					return fmt.Errorf("%w: chunk ended reading literal", ErrMalformedSlice)
				}
				for plane := 0; plane < dstBPP; plane++ {
					scratch[off+plane] = chunk[pos+plane%srcBPP]
				}
				pos += srcBPP
			}

			remaining--
		}
	}

	return nil
}

// bp2DecodeTrailer reads and places the raw (non-RLE) trailing partial
// slice that covers the height%8 leftover rows.
func bp2DecodeTrailer(c *Cursor, preFlip []byte, height, rowBytes, dstPitch int, headerExtraBytes uint32) error {
	extra := height % 8
	if extra*dstPitch != int(headerExtraBytes) {
		return fmt.Errorf("%w: expected %d extra bytes, header declares %d", ErrMalformedTrailer, extra*dstPitch, headerExtraBytes)
	}

	extraBytes, err := c.ReadU32LE()
	if err != nil {
		return fmt.Errorf("read BP2 trailer byte count: %w", err)
	}
	if extraBytes != headerExtraBytes {
		return fmt.Errorf("%w: stream declares %d bytes, header declares %d", ErrMalformedTrailer, extraBytes, headerExtraBytes)
	}

	data, err := c.ReadExact(int(extraBytes))
	if err != nil {
		return fmt.Errorf("read BP2 trailer data: %w", err)
	}

	for y := 0; y < extra; y++ {
		row := height - extra + y
		copy(preFlip[row*rowBytes:(row+1)*rowBytes], data[y*dstPitch:y*dstPitch+rowBytes])
	}

	return nil
}
