// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// replacementCharUTF8 is U+FFFD encoded as UTF-8, the sequence x/text's
// ShiftJIS decoder substitutes for a byte or byte pair it can't map. It
// returns this with a nil error, so it has to be matched explicitly to
// tell "unmapped" apart from "decoded to U+FFFD".
var replacementCharUTF8 = []byte(string(utf8.RuneError))

// isCP932LeadByte reports whether b starts a two-byte Shift-JIS sequence.
func isCP932LeadByte(b byte) bool {
	return (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC)
}

// DecodeCP932 transcodes a CP932 (Shift-JIS) byte sequence to UTF-8.
// It is lenient by design: these are decades-old game assets, and a byte
// the table can't map is passed through unchanged (the "fixed single-byte
// fallback" the original vendored table implements) rather than failing
// the whole string or substituting U+FFFD.
func DecodeCP932(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(src))

	dec := japanese.ShiftJIS.NewDecoder()
	i := 0
	for i < len(src) {
		n := 1
		if isCP932LeadByte(src[i]) && i+1 < len(src) {
			n = 2
		}

		dec.Reset()
		out, err := dec.Bytes(src[i : i+n])
		if err != nil || len(out) == 0 || bytes.HasPrefix(out, replacementCharUTF8) {
			sb.WriteByte(src[i])
			i++
			continue
		}

		sb.Write(out)
		i += n
	}

	return sb.String()
}

// DecodeCP932NullTerminated transcodes a NUL-terminated CP932 byte sequence,
// stopping at (and excluding) the first NUL. Used for fixed-width name
// fields that are NUL-padded rather than NUL-terminated exactly at length.
func DecodeCP932NullTerminated(src []byte) string {
	if idx := bytes.IndexByte(src, 0); idx >= 0 {
		src = src[:idx]
	}

	return DecodeCP932(src)
}
