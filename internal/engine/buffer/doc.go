// Package buffer provides the editor's text buffer, built on the rope.
//
// A Buffer stores its text with "\n" line separators regardless of the
// file's own convention. The detected line ending and whether the file ended
// with a newline are remembered on Load and restored by Text, so loading a
// file and writing it back reproduces it byte for byte.
//
// All positions are character offsets. Every offset in [0, Len()] is a valid
// insert point; anything outside that range fails with ErrOutOfBounds, which
// callers treat as a contract violation rather than a user error.
//
//	buf := buffer.NewFromString("Hello, World!\n")
//	_ = buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	_ = buf.Delete(0, 7)            // "Beautiful World!"
//	buf.Text()                      // "Beautiful World!\n"
//
// A Buffer is not safe for concurrent use. The editor mutates buffers only
// from its event loop; other goroutines read through Snapshot.
package buffer
