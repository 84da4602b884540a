package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with automatic character encoding detection and conversion to UTF-8.
// The sheet export is normally UTF-8, but a proxy or a re-hosted copy may serve
// another encoding, so the body is always decoded before it is split into lines.
//
// The charset is detected from:
// 1. The charset parameter of contentType (e.g. "text/csv; charset=utf-8")
// 2. Byte order marks (BOM)
// 3. Heuristic detection if none of the above are present
//
// If the content is already UTF-8, this is a no-op wrapper with minimal overhead.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
