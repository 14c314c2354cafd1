// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "strings"

// bmpMagic is the leading two bytes of a standard Windows BMP file.
var bmpMagic = [2]byte{'B', 'M'}

// bp3MagicBytes is the leading four bytes of a BP3 bitmap, matching bp3Magic
// in little-endian byte order.
var bp3MagicBytes = [4]byte{0x88, 0x88, 0x88, 0x88}

// GuessFileType classifies a file by its path extension and, where the
// extension alone is ambiguous, its leading bytes. leading should carry at
// least 4 bytes when available. A ".bmp" with fewer than 2 leading bytes
// is FileKindUnknown; for ".txt" only the bytes given are checked, so an
// empty leading slice classifies as FileKindTXTUTF8.
func GuessFileType(path string, leading []byte) FileKind {
	ext := strings.ToLower(Extension(path))

	switch ext {
	case "bin":
		return FileKindBinArchive
	case "lb5":
		return FileKindLB5Archive
	case "bp2":
		return FileKindBP2Bitmap
	case "bmp":
		return guessBMPVariant(leading)
	case "txt":
		return guessTXTVariant(leading)
	default:
		return FileKindUnknown
	}
}

// guessBMPVariant disambiguates a ".bmp" file between BP3 and a standard BMP.
func guessBMPVariant(leading []byte) FileKind {
	if len(leading) >= 4 && [4]byte{leading[0], leading[1], leading[2], leading[3]} == bp3MagicBytes {
		return FileKindBP3Bitmap
	}
	if len(leading) >= 2 && [2]byte{leading[0], leading[1]} == bmpMagic {
		return FileKindBMP
	}

	return FileKindUnknown
}

// guessTXTVariant disambiguates a ".txt" file between the two obfuscated
// script encodings and plain UTF-8.
func guessTXTVariant(leading []byte) FileKind {
	if len(leading) >= 1 && leading[0] == txt1997Magic {
		return FileKindTXT1997
	}
	if IsValidUTF8(leading) {
		return FileKindTXTUTF8
	}

	return FileKindTXT2006
}
