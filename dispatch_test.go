// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import "testing"

func TestGuessFileType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		path    string
		leading []byte
		want    FileKind
	}{
		{name: "bin archive", path: "chars.bin", leading: nil, want: FileKindBinArchive},
		{name: "lb5 archive", path: "CHARS.LB5", leading: nil, want: FileKindLB5Archive},
		{name: "bp2 by extension", path: "face.bp2", leading: nil, want: FileKindBP2Bitmap},
		{name: "bp3 disguised as bmp", path: "face.bmp", leading: []byte{0x88, 0x88, 0x88, 0x88}, want: FileKindBP3Bitmap},
		{name: "standard bmp", path: "face.bmp", leading: []byte{'B', 'M', 0, 0}, want: FileKindBMP},
		{name: "unrecognized bmp content", path: "face.bmp", leading: []byte{0, 0, 0, 0}, want: FileKindUnknown},
		{name: "txt 1997", path: "scene01.txt", leading: []byte{0x01, 0, 0, 0}, want: FileKindTXT1997},
		{name: "txt utf8", path: "scene01.txt", leading: []byte("hello"), want: FileKindTXTUTF8},
		{name: "txt 2006 fallback", path: "scene01.txt", leading: []byte{0xC0, 0x80}, want: FileKindTXT2006},
		{name: "unknown extension", path: "readme.md", leading: nil, want: FileKindUnknown},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := GuessFileType(tc.path, tc.leading)
			if got != tc.want {
				t.Fatalf("GuessFileType(%q, %v)=%v, want %v", tc.path, tc.leading, got, tc.want)
			}
		})
	}
}
