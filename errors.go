// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "errors"

// Sentinel errors surfaced by the decoder core. Use errors.Is in callers;
// wrapped messages carry format-specific detail (magic values, offsets).
var (
	// ErrTruncated means a read did not yield the requested bytes.
	ErrTruncated = errors.New("truncated read")
	// ErrBadMagic means a header magic value did not match the expected format.
	ErrBadMagic = errors.New("bad magic")
	// ErrUnknownEncoding means a BP2 encoding field was not INDEX8, BGR888, or GRAY8.
	ErrUnknownEncoding = errors.New("unknown BP2 encoding")
	// ErrUnknownTileMode means a BP3 tile mode was outside 0..7.
	ErrUnknownTileMode = errors.New("unknown BP3 tile mode")
	// ErrMalformedPalette means a BP2 palette length was not a multiple of 4.
	ErrMalformedPalette = errors.New("malformed palette")
	// ErrMalformedSlice means a BP2 RLE chunk ran out of bytes mid-run or mid-literal.
	ErrMalformedSlice = errors.New("malformed slice")
	// ErrMalformedTrailer means a BP2 trailing partial-slice byte count did not match the header.
	ErrMalformedTrailer = errors.New("malformed trailer")
	// ErrSidecarMissing means an archive was opened but its .idx sidecar could not be opened.
	ErrSidecarMissing = errors.New("sidecar index missing")
	// ErrInvalidFile means the archive opener did not recognize the path's
	// extension, or DecodeTXTUTF8 was given a payload that is not valid UTF-8.
	ErrInvalidFile = errors.New("invalid file")
)
