package dbo

import (
	"io"

	"golang.org/x/text/encoding/charmap"
)

// NewDecoder wraps r so that it yields UTF-8 text decoded from Windows-1251.
//
// Decoding is streaming and never fails on content: the single byte without a
// Windows-1251 mapping (0x98) comes out as U+FFFD. Read errors of r are
// passed through unchanged.
func NewDecoder(r io.Reader) io.Reader {
	return charmap.Windows1251.NewDecoder().Reader(r)
}
