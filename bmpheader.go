// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "fmt"

// bmpFileHeader is the 14-byte BITMAPFILEHEADER block BP2 and BP3 both
// carry ahead of their payload. Neither decoder uses it beyond reading past
// it; BP2 takes width/height from bmpInfoHeader, BP3 from its own header.
type bmpFileHeader struct {
	bfType      [2]byte
	bfSize      uint32
	bfReserved1 uint16
	bfReserved2 uint16
	bfOffBits   uint32
}

// bmpInfoHeader is the 40-byte BITMAPINFOHEADER block following bmpFileHeader.
type bmpInfoHeader struct {
	biSize          uint32
	biWidth         uint32
	biHeight        uint32
	biPlanes        uint16
	biBitCount      uint16
	biCompression   uint32
	biSizeImage     uint32
	biXPelsPerMeter uint32
	biYPelsPerMeter uint32
	biClrUsed       uint32
	biClrImportant  uint32
}

// readBMPFileHeader reads the fixed 14-byte file header.
func readBMPFileHeader(c *Cursor) (bmpFileHeader, error) {
	var h bmpFileHeader

	b, err := c.ReadExact(2)
	if err != nil {
		return h, fmt.Errorf("read BMP file header type: %w", err)
	}
	h.bfType[0], h.bfType[1] = b[0], b[1]

	if h.bfSize, err = c.ReadU32LE(); err != nil {
		return h, fmt.Errorf("read BMP file header size: %w", err)
	}
	if h.bfReserved1, err = c.ReadU16LE(); err != nil {
		return h, fmt.Errorf("read BMP file header reserved1: %w", err)
	}
	if h.bfReserved2, err = c.ReadU16LE(); err != nil {
		return h, fmt.Errorf("read BMP file header reserved2: %w", err)
	}
	if h.bfOffBits, err = c.ReadU32LE(); err != nil {
		return h, fmt.Errorf("read BMP file header offbits: %w", err)
	}

	return h, nil
}

// readBMPInfoHeader reads the fixed 40-byte info header.
func readBMPInfoHeader(c *Cursor) (bmpInfoHeader, error) {
	var h bmpInfoHeader
	var err error

	fields := []*uint32{
		&h.biSize, &h.biWidth, &h.biHeight,
	}
	for i, f := range fields {
		if *f, err = c.ReadU32LE(); err != nil {
			return h, fmt.Errorf("read BMP info header field %d: %w", i, err)
		}
	}

	if h.biPlanes, err = c.ReadU16LE(); err != nil {
		return h, fmt.Errorf("read BMP info header planes: %w", err)
	}
	if h.biBitCount, err = c.ReadU16LE(); err != nil {
		return h, fmt.Errorf("read BMP info header bit count: %w", err)
	}

	rest := []*uint32{
		&h.biCompression, &h.biSizeImage, &h.biXPelsPerMeter,
		&h.biYPelsPerMeter, &h.biClrUsed, &h.biClrImportant,
	}
	for i, f := range rest {
		if *f, err = c.ReadU32LE(); err != nil {
			return h, fmt.Errorf("read BMP info header field %d: %w", i, err)
		}
	}

	return h, nil
}
