package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded, immutable string stored in a leaf node.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// Chars returns the rune count of the chunk.
func (c Chunk) Chars() int {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Split splits a chunk at a byte offset on a UTF-8 boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// byteOffset converts a character offset within the chunk to a byte offset.
func (c Chunk) byteOffset(chars int) int {
	if chars <= 0 {
		return 0
	}
	if chars >= c.summary.Chars {
		return len(c.data)
	}
	if c.summary.Flags&FlagASCII != 0 {
		return chars
	}
	n := 0
	for i := range c.data {
		if n == chars {
			return i
		}
		n++
	}
	return len(c.data)
}

// lineStart returns the byte and character offsets just after the nth
// newline in the chunk (n >= 1). ok is false when the chunk has fewer
// newlines.
func (c Chunk) lineStart(n int) (bytes, chars int, ok bool) {
	if n <= 0 {
		return 0, 0, true
	}
	if n > c.summary.Lines {
		return 0, 0, false
	}
	seen := 0
	for i, r := range c.data {
		chars++
		if r == '\n' {
			seen++
			if seen == n {
				return i + 1, chars, true
			}
		}
	}
	return 0, 0, false
}

// runeAt decodes the rune at a character offset within the chunk.
func (c Chunk) runeAt(chars int) rune {
	r, _ := utf8.DecodeRuneInString(c.data[c.byteOffset(chars):])
	return r
}

// coalesce joins two chunks when the result still fits in one chunk.
func coalesce(a, b Chunk) (Chunk, bool) {
	if a.Len()+b.Len() > MaxChunkSize {
		return Chunk{}, false
	}
	return Chunk{data: a.data + b.data, summary: a.summary.Add(b.summary)}, true
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		split := findUTF8Boundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}
	return chunks
}

// findUTF8Boundary finds a split point near target, preferring the byte
// after a newline and never splitting a multi-byte sequence.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	lo := max(target-MinChunkSize/4, 0)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start reports whether b begins a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
