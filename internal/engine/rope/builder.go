package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Builder accumulates text and produces a balanced rope in one pass.
// Writes are buffered and cut into chunks on UTF-8 boundaries.
type Builder struct {
	chunks []Chunk
	buf    strings.Builder
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]Chunk, 0, 64)}
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b.buf.WriteString(s)
	if b.buf.Len() >= MaxChunkSize*2 {
		b.flush(false)
	}
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// WriteByte appends a single ASCII byte.
func (b *Builder) WriteByte(c byte) error {
	return b.buf.WriteByte(c)
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	return b.buf.WriteRune(r)
}

// flush moves buffered text into chunks. Unless final is set, a trailing
// incomplete UTF-8 sequence stays buffered for the next write.
func (b *Builder) flush(final bool) {
	if b.buf.Len() == 0 {
		return
	}
	s := b.buf.String()
	b.buf.Reset()

	if !final {
		cut := len(s)
		for i := len(s) - 1; i >= 0 && i >= len(s)-utf8.UTFMax; i-- {
			if isUTF8Start(s[i]) {
				if !utf8.FullRuneInString(s[i:]) {
					cut = i
				}
				break
			}
		}
		b.buf.WriteString(s[cut:])
		s = s[:cut]
	}
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = nil
	b.buf.Reset()
}

// Build returns the rope and resets the builder.
func (b *Builder) Build() Rope {
	b.flush(true)
	chunks := b.chunks
	b.Reset()
	return buildFromChunks(chunks)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// FromLines creates a rope by joining lines with "\n".
func FromLines(lines []string) Rope {
	var b Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.Build()
}

// Join concatenates ropes with a separator.
func Join(ropes []Rope, sep string) Rope {
	if len(ropes) == 0 {
		return New()
	}
	result := ropes[0]
	sepRope := FromString(sep)
	for _, r := range ropes[1:] {
		result = result.Concat(sepRope).Concat(r)
	}
	return result
}
