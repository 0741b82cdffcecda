package rope

import "unicode/utf8"

type chunkFrame struct {
	node *Node
	idx  int
}

// ChunkIterator walks the chunks of a rope in order.
type ChunkIterator struct {
	stack []chunkFrame
	chunk Chunk
	start int
	next  int
}

// Chunks returns an iterator over the rope's chunks.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]chunkFrame, 0, 16)}
	if r.root != nil {
		it.stack = append(it.stack, chunkFrame{node: r.root})
	}
	return it
}

// Next advances to the next non-empty chunk.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			if top.idx < len(top.node.chunks) {
				c := top.node.chunks[top.idx]
				top.idx++
				if c.IsEmpty() {
					continue
				}
				it.chunk = c
				it.start = it.next
				it.next += c.Chars()
				return true
			}
		} else if top.idx < len(top.node.children) {
			child := top.node.children[top.idx]
			top.idx++
			it.stack = append(it.stack, chunkFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the character offset of the current chunk's start.
func (it *ChunkIterator) Offset() int {
	return it.start
}

// LineIterator walks the lines of a rope. An empty rope yields one empty
// line.
type LineIterator struct {
	rope Rope
	line int
	text string
}

// Lines returns an iterator over the rope's lines.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r, line: -1}
}

// Next advances to the next line.
func (it *LineIterator) Next() bool {
	if it.line+1 >= it.rope.LineCount() {
		return false
	}
	it.line++
	it.text = it.rope.LineText(it.line)
	return true
}

// Text returns the current line without its newline.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the zero-based index of the current line.
func (it *LineIterator) Line() int {
	return it.line
}

// RuneIterator walks the characters of a rope from a starting offset.
type RuneIterator struct {
	chunks *ChunkIterator
	data   string
	pos    int
	off    int
	r      rune
}

// RunesFrom returns an iterator starting at character offset off.
func (r Rope) RunesFrom(off int) *RuneIterator {
	off = r.clamp(off)
	it := &RuneIterator{chunks: r.Chunks(), off: off - 1}
	for it.chunks.Next() {
		c := it.chunks.Chunk()
		if off < it.chunks.Offset()+c.Chars() {
			it.data = c.String()
			it.pos = c.byteOffset(off - it.chunks.Offset())
			break
		}
	}
	return it
}

// Next advances to the next character.
func (it *RuneIterator) Next() bool {
	for it.pos >= len(it.data) {
		if !it.chunks.Next() {
			return false
		}
		it.data = it.chunks.Chunk().String()
		it.pos = 0
	}
	r, size := utf8.DecodeRuneInString(it.data[it.pos:])
	it.r = r
	it.pos += size
	it.off++
	return true
}

// Rune returns the current character.
func (it *RuneIterator) Rune() rune {
	return it.r
}

// Offset returns the character offset of the current character.
func (it *RuneIterator) Offset() int {
	return it.off
}
