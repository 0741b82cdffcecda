// Package statusline composes the per-window status line and fits text to
// a cell width by grapheme cluster.
package statusline

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Info is what a status line shows.
type Info struct {
	// Mode is the mode's display name, such as "NORMAL". It is only shown
	// for the active window.
	Mode string

	Name     string
	Dirty    bool
	ReadOnly bool

	// Line and Col are 0-based.
	Line      int
	Col       int
	LineCount int

	// Pending holds keys typed toward an unfinished command.
	Pending string
}

// Percent returns how far through the buffer the cursor line is.
func (i Info) Percent() int {
	if i.LineCount <= 1 {
		return 100
	}
	return (i.Line + 1) * 100 / i.LineCount
}

// Compose lays out the status line in width cells: mode, name and flags on
// the left; pending keys, position and percentage on the right. The name is
// shortened from the left when space runs out.
func Compose(i Info, width int) string {
	var left strings.Builder
	if i.Mode != "" {
		fmt.Fprintf(&left, " %s  ", i.Mode)
	} else {
		left.WriteString(" ")
	}
	flags := ""
	if i.Dirty {
		flags += " [+]"
	}
	if i.ReadOnly {
		flags += " [RO]"
	}

	right := fmt.Sprintf("%d:%d  %3d%% ", i.Line+1, i.Col+1, i.Percent())
	if i.Pending != "" {
		right = i.Pending + "  " + right
	}

	room := width - Width(left.String()) - Width(flags) - Width(right) - 1
	name := i.Name
	if room < Width(name) {
		name = TruncateLeft(name, max(room, 0))
	}
	text := left.String() + name + flags
	gap := width - Width(text) - Width(right)
	if gap < 1 {
		return Truncate(text+" "+right, width)
	}
	return text + strings.Repeat(" ", gap) + right
}

// Width returns the cell width of s.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate cuts s to at most width cells without splitting a grapheme
// cluster.
func Truncate(s string, width int) string {
	if Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return b.String()
}

// TruncateLeft keeps the end of s, marking the cut with '<', in at most
// width cells.
func TruncateLeft(s string, width int) string {
	if Width(s) <= width {
		return s
	}
	if width <= 1 {
		return strings.Repeat("<", width)
	}
	var clusters []string
	var widths []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
		widths = append(widths, g.Width())
	}
	used := 1
	start := len(clusters)
	for start > 0 && used+widths[start-1] <= width {
		start--
		used += widths[start]
	}
	return "<" + strings.Join(clusters[start:], "")
}
