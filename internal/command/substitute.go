package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Substitution is a parsed :s command. Patterns use Go regexp syntax.
// The replacement understands Vim's & (whole match) and \1-\9 (groups).
type Substitution struct {
	Pattern     string
	Replacement string
	Global      bool
	IgnoreCase  bool
	AllLines    bool

	re  *regexp.Regexp
	tpl string
}

// parseSubstitution parses "/pat/rep/flags" with any non-alphanumeric
// delimiter. The closing delimiters are optional.
func parseSubstitution(s string) (*Substitution, error) {
	s = strings.TrimLeft(s, " ")
	if s == "" {
		return nil, errors.New("pattern required")
	}
	delim := rune(s[0])
	if unicode.IsLetter(delim) || unicode.IsDigit(delim) || delim == '\\' || delim == '"' || delim == ' ' {
		return nil, errors.New("invalid delimiter")
	}

	parts := splitUnescaped(s[1:], delim)
	sub := &Substitution{Pattern: parts[0]}
	if len(parts) > 1 {
		sub.Replacement = parts[1]
	}
	if len(parts) > 2 {
		for _, f := range strings.TrimSpace(parts[2]) {
			switch f {
			case 'g':
				sub.Global = true
			case 'i':
				sub.IgnoreCase = true
			case 'I':
				sub.IgnoreCase = false
			default:
				return nil, fmt.Errorf("invalid flag %q", f)
			}
		}
	}
	if len(parts) > 3 {
		return nil, errors.New("trailing characters")
	}
	if sub.Pattern == "" {
		return nil, errors.New("pattern required")
	}

	pat := sub.Pattern
	if sub.IgnoreCase {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	sub.re = re
	sub.tpl = expandTemplate(sub.Replacement)
	return sub, nil
}

// splitUnescaped splits s at unescaped delim. An escaped delimiter loses its
// backslash; other escapes are kept for the regexp or the template.
func splitUnescaped(s string, delim rune) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			if r != delim {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == delim:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	return append(parts, cur.String())
}

// expandTemplate converts a Vim replacement into a regexp template.
func expandTemplate(rep string) string {
	var b strings.Builder
	rs := []rune(rep)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs):
			i++
			n := rs[i]
			switch {
			case n >= '0' && n <= '9':
				fmt.Fprintf(&b, "${%c}", n)
			case n == 'n':
				b.WriteByte('\n')
			case n == 't':
				b.WriteByte('\t')
			case n == '$':
				b.WriteString("$$")
			default:
				b.WriteRune(n)
			}
		case r == '&':
			b.WriteString("${0}")
		case r == '$':
			b.WriteString("$$")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Apply substitutes in one line and returns the result and the number of
// replacements made.
func (s *Substitution) Apply(line string) (string, int) {
	locs := s.re.FindAllStringSubmatchIndex(line, -1)
	if len(locs) == 0 {
		return line, 0
	}
	if !s.Global {
		locs = locs[:1]
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(line[last:loc[0]])
		b.Write(s.re.ExpandString(nil, s.tpl, line, loc))
		last = loc[1]
	}
	b.WriteString(line[last:])
	return b.String(), len(locs)
}
