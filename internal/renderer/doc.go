// Package renderer draws editor frames onto a backend.
//
// The editor describes what to show as a Frame: windows stacked top to
// bottom, each with a status line, and a command line at the bottom that
// holds the typed command, a message or the finder prompt. The renderer
// owns no editor state; it only fits each window's viewport to the space
// the window gets and follows the cursor column.
package renderer
