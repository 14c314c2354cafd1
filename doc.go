// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

/*
Package fantatech decodes the asset formats of a two-edition 1997/2006
Japanese visual novel engine: BIN and LB5 archives with their sidecar .idx
index, BP2 slice-RLE bitmaps, BP3 tiled-quantised bitmaps, and the three TXT
script text encodings. It does not write any of these formats back out;
packing and editing are out of scope.

# Archives

Open a BIN or LB5 archive and read an entry by name:

	h, err := fantatech.OpenPack("chars.bin")
	if err != nil {
	    return err
	}
	defer h.Close()
	for _, e := range h.Entries() {
	    if e.Name == "face001.bp2" {
	        data, err := h.ReadEntry(e)
	        _, _ = data, err
	    }
	}

To select entries without reading them, filter the directory first:

	faces := fantatech.FindByWildcard(h.Entries(), "face*.bp2")

# Bitmaps

BP2 and BP3 both decode into the same Bitmap shape, top-left origin:

	bmp, err := fantatech.LoadBP2(bytes.NewReader(data))
	if err != nil {
	    return err
	}
	_ = bmp.Pixels

	bmp, err = fantatech.LoadBP3(bytes.NewReader(data))
	if err != nil {
	    return err
	}
	_ = bmp.Pixels

# Scripts

The dispatcher picks a TXT variant from a path and its leading bytes, after
which the caller invokes the matching decoder directly:

	switch fantatech.GuessFileType("scene01.txt", leading) {
	case fantatech.FileKindTXT1997:
	    text, err := fantatech.DecodeTXT1997(r)
	    _, _ = text, err
	case fantatech.FileKindTXT2006:
	    text, err := fantatech.DecodeTXT2006(r)
	    _, _ = text, err
	case fantatech.FileKindTXTUTF8:
	    text, err := fantatech.DecodeTXTUTF8(r)
	    _, _ = text, err
	}
*/
package fantatech
