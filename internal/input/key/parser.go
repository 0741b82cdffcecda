package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a single key specification such as "a", "<Esc>" or "<C-p>".
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	events, err := ParseKeys(spec)
	if err != nil {
		return Event{}, err
	}
	if len(events) != 1 {
		return Event{}, fmt.Errorf("%w: %q is %d keys", ErrInvalidSpec, spec, len(events))
	}
	return events[0], nil
}

// MustParse parses a key specification and panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return e
}

// ParseKeys parses a keystroke string into events. Bracketed names are one
// key each; every other character is typed as itself. A "<" that does not
// start a known name is the character '<'.
func ParseKeys(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end > 1 {
				if e, err := parseBracketed(s[1:end]); err == nil {
					events = append(events, e)
					s = s[end+1:]
					continue
				} else if strings.Contains(s[1:end], "-") {
					return nil, err
				}
			} else if end < 0 && len(s) > 1 && isNameStart(s[1]) {
				return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, s)
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8", ErrInvalidSpec)
		}
		events = append(events, NewRuneEvent(r, ModNone))
		s = s[size:]
	}
	return events, nil
}

// MustParseKeys parses a keystroke string and panics on error.
func MustParseKeys(s string) []Event {
	events, err := ParseKeys(s)
	if err != nil {
		panic("invalid keys: " + s + ": " + err.Error())
	}
	return events
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// parseBracketed parses the inside of "<...>": modifiers separated by
// hyphens, then a key name or a single character.
func parseBracketed(inner string) (Event, error) {
	var mods Modifier
	name := inner
	for {
		i := strings.IndexByte(name, '-')
		if i <= 0 || i == len(name)-1 {
			break
		}
		m := modifierFromName(name[:i])
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name[:i])
		}
		mods = mods.With(m)
		name = name[i+1:]
	}

	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if r, ok := runeNameMap[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if utf8.RuneCountInString(name) == 1 && mods != ModNone {
		r, _ := utf8.DecodeRuneInString(name)
		if mods.Has(ModCtrl) {
			return Ctrl(r).withMods(mods), nil
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

func (e Event) withMods(m Modifier) Event {
	e.Modifiers = m
	return e
}

// FormatKeys renders events back into a keystroke string.
func FormatKeys(events []Event) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.String())
	}
	return b.String()
}
