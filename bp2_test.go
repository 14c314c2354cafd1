// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"bytes"
	"testing"
)

func putU16(buf *bytes.Buffer, v uint16) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
}

func buildBMPHeaders(buf *bytes.Buffer, width, height uint32) {
	// bmpFileHeader, 14 bytes, contents unchecked by the decoder.
	buf.WriteString("BM")
	putU32(buf, 0)
	putU16(buf, 0)
	putU16(buf, 0)
	putU32(buf, 0)

	// bmpInfoHeader, 40 bytes.
	putU32(buf, 40)
	putU32(buf, width)
	putU32(buf, height)
	putU16(buf, 1)
	putU16(buf, 8)
	putU32(buf, 0)
	putU32(buf, 0)
	putU32(buf, 0)
	putU32(buf, 0)
	putU32(buf, 0)
	putU32(buf, 0)
}

// buildBP2SolidIndex8 builds a width x height INDEX8 BP2 stream whose only
// slice is a single repeat run covering its width*8 pixels with palette
// index index. No trailer is written for heights beyond 8.
func buildBP2SolidIndex8(t *testing.T, width, height uint32, index uint8) []byte {
	t.Helper()

	var buf bytes.Buffer
	putU32(&buf, bp2Magic)
	putU32(&buf, bp2EncodingIndex8)
	putU32(&buf, 8) // palette length: 2 colors
	putU32(&buf, 0) // reserved
	putU32(&buf, 1) // slice count
	putU32(&buf, 0) // extra slice bytes

	buildBMPHeaders(&buf, width, height)

	// palette: color0 = (B=10,G=20,R=30), color1 = (B=40,G=50,R=60)
	buf.Write([]byte{10, 20, 30, 0})
	buf.Write([]byte{40, 50, 60, 0})

	var chunk bytes.Buffer
	ctrl := uint16(0x8000) | uint16(width*8)
	putU16(&chunk, ctrl)
	chunk.WriteByte(index)

	putU32(&buf, uint32(chunk.Len()))
	buf.Write(chunk.Bytes())

	return buf.Bytes()
}

func TestLoadBP2SolidIndex8(t *testing.T) {
	t.Parallel()

	data := buildBP2SolidIndex8(t, 8, 8, 0)

	bmp, err := LoadBP2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadBP2: %v", err)
	}

	if bmp.Width != 8 || bmp.Height != 8 {
		t.Fatalf("dimensions=%dx%d, want 8x8", bmp.Width, bmp.Height)
	}
	if bmp.Format != PixelFormatIndex8 {
		t.Fatalf("Format=%v, want PixelFormatIndex8", bmp.Format)
	}
	if len(bmp.Pixels) != 64 {
		t.Fatalf("len(Pixels)=%d, want 64", len(bmp.Pixels))
	}
	for i, p := range bmp.Pixels {
		if p != 0 {
			t.Fatalf("Pixels[%d]=%d, want 0", i, p)
		}
	}

	if bmp.Palette == nil || len(bmp.Palette.Colors) != 2 {
		t.Fatalf("Palette=%+v, want 2 colors", bmp.Palette)
	}
	want := Color{R: 30, G: 20, B: 10, A: 0xFF}
	if bmp.Palette.Colors[0] != want {
		t.Fatalf("Palette.Colors[0]=%+v, want %+v", bmp.Palette.Colors[0], want)
	}
}

func TestLoadBP2BadMagic(t *testing.T) {
	t.Parallel()

	data := buildBP2SolidIndex8(t, 8, 8, 0)
	data[0] = 0xFF // corrupt the magic's low byte

	_, err := LoadBP2(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for corrupted magic")
	}
}

func TestLoadBP2PartialSliceHeight(t *testing.T) {
	t.Parallel()

	// height=10 means one full slice (rows 0-7) plus a two-row trailer; we
	// only exercise the full-slice path here and confirm the trailer length
	// accounting kicks in (and fails without trailer bytes present).
	data := buildBP2SolidIndex8(t, 8, 10, 0)

	_, err := LoadBP2(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error: header omits the required trailer for height=10")
	}
}
