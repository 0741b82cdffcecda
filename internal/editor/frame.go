package editor

import (
	"github.com/dshills/kestrel/internal/input/fuzzy"
	"github.com/dshills/kestrel/internal/input/mode"
	"github.com/dshills/kestrel/internal/renderer"
	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/statusline"
)

// Frame describes what the screen should show now.
func (e *Editor) Frame() renderer.Frame {
	m := e.modes.Mode()
	f := renderer.Frame{CursorStyle: cursorStyle(m.CursorStyle())}

	for i, w := range e.windows {
		d, ok := e.docs.get(w.Buffer())
		if !ok {
			continue
		}
		active := i == e.active
		c := w.Cursor()
		info := statusline.Info{
			Name:      d.Name(),
			Dirty:     d.buf.Dirty(),
			ReadOnly:  d.buf.ReadOnly(),
			Line:      c.Line,
			Col:       c.Col,
			LineCount: d.buf.LineCount(),
		}
		rw := renderer.Window{
			Text:    d.buf,
			View:    w.Viewport(),
			Cursor:  c,
			Active:  active,
			Number:  e.opts.Number,
			TabStop: e.opts.TabStop,
		}
		if active {
			info.Mode = m.DisplayName()
			info.Pending = e.Pending()
			if m.IsVisual() {
				start, end := e.selection()
				rw.Selection = &renderer.Selection{Start: start, End: end, Linewise: m == mode.VisualLine}
			}
		}
		rw.Status = info
		f.Windows = append(f.Windows, rw)
	}

	switch m {
	case mode.Command:
		f.CommandActive = true
		f.Prompt = string(e.modes.Prompt())
		f.Command = e.modes.CommandText()
	case mode.Finder:
		f.Finder = e.finderFrame()
	}
	switch {
	case e.status.Message != "":
		f.Message = e.status.Message
		f.MessageError = e.status.Severity == StatusError
	case e.modes.Recording() != 0:
		f.Message = "recording @" + string(e.modes.Recording())
	}
	return f
}

func (e *Editor) finderFrame() *renderer.Finder {
	results := e.finder.Results()
	items := make([]renderer.FinderItem, len(results))
	for i, r := range results {
		items[i] = renderer.FinderItem{Text: r.Item.Text, Positions: r.Positions}
	}
	return &renderer.Finder{
		Prompt:   fuzzy.Prompt,
		Query:    e.finder.Query(),
		Items:    items,
		Selected: e.finder.SelectedIndex(),
		Total:    e.finder.Candidates(),
		Loading:  e.finder.Loading(),
	}
}

func cursorStyle(s mode.CursorStyle) backend.CursorStyle {
	switch s {
	case mode.CursorBar:
		return backend.CursorBar
	case mode.CursorUnderline:
		return backend.CursorUnderline
	}
	return backend.CursorBlock
}
