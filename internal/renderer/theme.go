package renderer

import "github.com/dshills/kestrel/internal/renderer/backend"

// Theme holds the styles the renderer draws with.
type Theme struct {
	Text           backend.Style
	Selection      backend.Style
	LineNumber     backend.Style
	CursorLineNr   backend.Style
	Filler         backend.Style
	Status         backend.Style
	StatusInactive backend.Style
	Modes          map[string]backend.Style
	Message        backend.Style
	Error          backend.Style
	FinderItem     backend.Style
	FinderSelected backend.Style
	FinderMatch    backend.Style
	FinderPrompt   backend.Style
}

// DefaultTheme works on 8-color terminals.
func DefaultTheme() Theme {
	d := backend.DefaultStyle
	mode := func(bg backend.Color) backend.Style {
		return d.Foreground(backend.ColorBlack).Background(bg).With(backend.AttrBold)
	}
	return Theme{
		Text:           d,
		Selection:      d.With(backend.AttrReverse),
		LineNumber:     d.Foreground(backend.ColorGray),
		CursorLineNr:   d.Foreground(backend.ColorYellow).With(backend.AttrBold),
		Filler:         d.Foreground(backend.ColorBlue),
		Status:         d.With(backend.AttrReverse).With(backend.AttrBold),
		StatusInactive: d.With(backend.AttrReverse),
		Modes: map[string]backend.Style{
			"NORMAL":  mode(backend.ColorBlue),
			"INSERT":  mode(backend.ColorGreen),
			"VISUAL":  mode(backend.ColorMagenta),
			"V-LINE":  mode(backend.ColorMagenta),
			"COMMAND": mode(backend.ColorYellow),
			"FINDER":  mode(backend.ColorCyan),
		},
		Message:        d,
		Error:          d.Foreground(backend.ColorWhite).Background(backend.ColorRed),
		FinderItem:     d,
		FinderSelected: d.With(backend.AttrReverse),
		FinderMatch:    d.Foreground(backend.ColorYellow).With(backend.AttrBold),
		FinderPrompt:   d.Foreground(backend.ColorCyan).With(backend.AttrBold),
	}
}
