package editor

import "fmt"

// WatchedFiles returns the absolute paths of the open files.
func (e *Editor) WatchedFiles() []string {
	var out []string
	for _, d := range e.docs.all() {
		if d.abs != "" {
			out = append(out, d.abs)
		}
	}
	return out
}

// FileChanged handles a change notification for abs. Our own saves are
// recognized by the file stamp and ignored; anything else warns and leaves
// the buffer alone until the user reloads with :e!.
func (e *Editor) FileChanged(abs string, gone bool) {
	d, ok := e.docs.byPath(abs)
	if !ok {
		return
	}
	name := d.buf.Path()

	if gone {
		if e.fs.Exists(abs) {
			return
		}
		e.log.Warn("file removed", "path", abs)
		e.status = Status{
			Message:  fmt.Sprintf("E211: File %q no longer available", name),
			Severity: StatusError,
		}
		return
	}

	fi, err := e.fs.Stat(abs)
	if err != nil {
		e.log.Debug("stat after change failed", "path", abs, "error", err)
		return
	}
	if stampOf(fi).same(d.stamp) {
		return
	}
	d.stamp = stampOf(fi)
	e.log.Warn("file changed on disk", "path", abs, "dirty", d.buf.Dirty())
	e.status = Status{
		Message:  fmt.Sprintf("W11: Warning: File %q has changed since editing started (:e! reloads)", name),
		Severity: StatusError,
	}
}
