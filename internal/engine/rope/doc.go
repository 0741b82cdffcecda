// Package rope provides an immutable rope for text storage and editing.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache a TextSummary (bytes, characters, newlines) for every
// child. All public positions are character offsets: seeking by character or
// by line descends the tree using the cached summaries, so insertion, deletion
// and line/offset conversion are O(log n) in the size of the text.
//
// Operations never modify a rope in place; they return a new rope that shares
// unchanged subtrees with the original. Keeping an old Rope value is therefore
// a free snapshot.
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")      // "hello, world"
//	r = r.Delete(0, 7)        // "world"
//	line := r.LineText(0)     // "world"
package rope
