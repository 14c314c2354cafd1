// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"fmt"
	"io"
)

// txt1997Magic is the fixed leading byte of a TXT_1997 stream.
const txt1997Magic = 0x01

// DecodeTXT1997 decodes a 1997-edition obfuscated script stream: magic byte,
// u32 length, then length bytes each XORed with 0xFF to recover a CP932
// byte string, transcoded to UTF-8.
func DecodeTXT1997(r io.Reader) (string, error) {
	c, err := NewCursorFromReader(r)
	if err != nil {
		return "", err
	}

	magic, err := c.ReadU8()
	if err != nil {
		return "", fmt.Errorf("read TXT_1997 magic: %w", err)
	}
	if magic != txt1997Magic {
		return "", fmt.Errorf("%w: TXT_1997 expected %#x, got %#x", ErrBadMagic, txt1997Magic, magic)
	}

	length, err := c.ReadU32LE()
	if err != nil {
		return "", fmt.Errorf("read TXT_1997 length: %w", err)
	}

	payload, err := c.ReadExact(int(length))
	if err != nil {
		return "", fmt.Errorf("read TXT_1997 payload: %w", err)
	}

	cp932 := make([]byte, len(payload))
	for i, b := range payload {
		cp932[i] = b ^ 0xFF
	}

	return DecodeCP932(cp932), nil
}

// DecodeTXT2006 decodes a 2006-edition obfuscated script stream. The stream
// carries no explicit length; the caller's reader ends exactly at the
// payload's end. Each byte b with b > 0x0F becomes (0x0E - b) & 0xFF; bytes
// <= 0x0F pass through unchanged. The result is transcoded from CP932.
func DecodeTXT2006(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read TXT_2006 payload: %w", err)
	}

	cp932 := make([]byte, len(raw))
	for i, b := range raw {
		if b > 0x0F {
			cp932[i] = byte(0x0E - int(b))
		} else {
			cp932[i] = b
		}
	}

	return DecodeCP932(cp932), nil
}

// DecodeTXTUTF8 validates a modern UTF-8 script stream and returns it
// unchanged; no transcoding is performed.
func DecodeTXTUTF8(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read TXT_UTF8 payload: %w", err)
	}

	if !IsValidUTF8(raw) {
		return "", fmt.Errorf("%w: TXT_UTF8 payload is not valid UTF-8", ErrInvalidFile)
	}

	return string(raw), nil
}

// EncodeTXT1997 is the inverse of DecodeTXT1997's obfuscation step, taking a
// CP932 byte string and producing the on-disk stream. It exists to support
// round-trip testing against DecodeTXT1997.
func EncodeTXT1997(cp932 []byte) []byte {
	out := make([]byte, 5+len(cp932))
	out[0] = txt1997Magic
	putU32LE(out[1:5], uint32(len(cp932)))
	for i, b := range cp932 {
		out[5+i] = b ^ 0xFF
	}

	return out
}

// putU32LE writes v into dst as four little-endian bytes.
func putU32LE(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}
