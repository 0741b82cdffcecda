// Package history records buffer edits and replays them for undo and redo.
//
// Every edit is captured as an Operation: the character offset it happened
// at, the text it removed and the text it inserted. Operations are collected
// into Entries; one Entry is one undo step.
//
//	h := history.New(1000)
//	h.Record(history.Operation{Offset: 0, Inserted: "hi"})
//	off, err := h.Undo(buf) // buf implements Editable
//
// # Grouping
//
// Edits made between BeginGroup and the matching EndGroup form a single
// Entry. Groups nest; only the outermost EndGroup closes the entry. An
// Insert-mode session or a multi-line paste is one group, so a single undo
// reverts all of it.
package history
