package vfs

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrBinary is returned by Decode for content that is not text.
var ErrBinary = errors.New("binary file")

// Encoding is a file's character encoding.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF8BOM Encoding = "utf-8-bom"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	Latin1  Encoding = "latin1"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding guesses the encoding of content from its byte order mark,
// then UTF-8 validity. Anything else is taken as Latin-1, which accepts
// every byte.
func DetectEncoding(content []byte) Encoding {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(content, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(content):
		return UTF8
	}
	return Latin1
}

// IsBinary reports whether content looks binary: a NUL byte or more than
// 10% control characters in the first 8KB.
func IsBinary(content []byte) bool {
	sample := content[:min(len(content), 8192)]
	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	ctl := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			ctl++
		}
	}
	return ctl*10 > len(sample)
}

func codec(enc Encoding) encoding.Encoding {
	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Latin1:
		return charmap.ISO8859_1
	}
	return nil
}

// Decode converts file content to UTF-8 text and reports the encoding it
// was read with. UTF-16 files are recognized only by their byte order mark.
func Decode(content []byte) (string, Encoding, error) {
	enc := DetectEncoding(content)
	switch enc {
	case UTF8:
		if IsBinary(content) {
			return "", enc, ErrBinary
		}
		return string(content), enc, nil
	case UTF8BOM:
		return string(content[len(bomUTF8):]), enc, nil
	}

	if enc == Latin1 && IsBinary(content) {
		return "", enc, ErrBinary
	}
	out, err := codec(enc).NewDecoder().Bytes(content)
	if err != nil {
		return "", enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), enc, nil
}

// Encode converts text back to enc, restoring any byte order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case "", UTF8:
		return []byte(text), nil
	case UTF8BOM:
		return append(bytes.Clone(bomUTF8), text...), nil
	}
	c := codec(enc)
	if c == nil {
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}
	out, err := c.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}
