package register

import "github.com/atotto/clipboard"

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboardAvailable reports whether a clipboard tool was found
// (xclip, xsel or wl-copy on Linux).
func SystemClipboardAvailable() bool {
	return !clipboard.Unsupported
}
