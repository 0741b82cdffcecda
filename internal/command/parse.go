package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrParse is matched by every ParseError.
var ErrParse = errors.New("parse error")

// ParseError reports command text that is not a valid command. Nothing has
// been executed when it is returned.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Input)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseError(input, reason string) *ParseError {
	return &ParseError{Input: input, Reason: reason}
}

// Kind identifies a command.
type Kind uint8

const (
	Write Kind = iota + 1
	Quit
	WriteQuit
	Exit
	Edit
	GoToLine
	LastLine
	Substitute
	Set
	Help
	Registers
	Split
	Close
)

var kindNames = map[Kind]string{
	Write:      "write",
	Quit:       "quit",
	WriteQuit:  "wq",
	Exit:       "xit",
	Edit:       "edit",
	GoToLine:   "goto",
	LastLine:   "last",
	Substitute: "substitute",
	Set:        "set",
	Help:       "help",
	Registers:  "registers",
	Split:      "split",
	Close:      "close",
}

// String returns the full command name.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Command is a parsed command line.
type Command struct {
	Kind Kind
	Bang bool

	// Arg is the trimmed argument text: a path, a help topic.
	Arg string

	// Line is the 1-based target of GoToLine.
	Line int

	// Sub is set for Substitute.
	Sub *Substitution

	// Options is set for Set.
	Options []SetArg
}

// name is an ex command name with its shortest accepted abbreviation.
type name struct {
	full string
	min  int
	kind Kind
}

// names is searched in order, so ambiguous prefixes resolve to the first
// entry, as "s" does to "substitute" in Vim.
var names = []name{
	{"write", 1, Write},
	{"wq", 2, WriteQuit},
	{"quit", 1, Quit},
	{"xit", 1, Exit},
	{"exit", 3, Exit},
	{"edit", 1, Edit},
	{"substitute", 1, Substitute},
	{"set", 2, Set},
	{"help", 1, Help},
	{"registers", 3, Registers},
	{"display", 2, Registers},
	{"split", 2, Split},
	{"close", 3, Close},
}

func lookup(word string) (Kind, bool) {
	for _, n := range names {
		if len(word) >= n.min && strings.HasPrefix(n.full, word) {
			return n.kind, true
		}
	}
	return 0, false
}

// Parse parses command line text. A leading ':' is ignored.
func Parse(input string) (Command, error) {
	text := strings.TrimSpace(input)
	text = strings.TrimSpace(strings.TrimLeft(text, ":"))
	if text == "" {
		return Command{}, parseError("", "empty command")
	}

	if text == "$" {
		return Command{Kind: LastLine}, nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		if n < 0 {
			return Command{}, parseError(input, "invalid line number")
		}
		return Command{Kind: GoToLine, Line: n}, nil
	}

	all := false
	if strings.HasPrefix(text, "%") {
		all = true
		text = text[1:]
	}

	i := 0
	for i < len(text) && unicode.IsLetter(rune(text[i])) {
		i++
	}
	word, rest := text[:i], text[i:]
	if word == "" {
		return Command{}, parseError(input, "not an editor command")
	}

	kind, ok := lookup(word)
	if !ok {
		return Command{}, parseError(input, "not an editor command")
	}
	if all && kind != Substitute {
		return Command{}, parseError(input, "range not allowed")
	}

	if kind == Substitute {
		sub, err := parseSubstitution(rest)
		if err != nil {
			return Command{}, parseError(input, err.Error())
		}
		sub.AllLines = all
		return Command{Kind: Substitute, Sub: sub}, nil
	}

	cmd := Command{Kind: kind}
	if strings.HasPrefix(rest, "!") {
		cmd.Bang = true
		rest = rest[1:]
	}
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return Command{}, parseError(input, "trailing characters")
	}
	cmd.Arg = strings.TrimSpace(rest)

	switch kind {
	case Registers:
		if cmd.Bang {
			return Command{}, parseError(input, "no ! allowed")
		}
		if cmd.Arg != "" {
			return Command{}, parseError(input, "trailing characters")
		}
	case Quit, Exit, Close:
		if cmd.Arg != "" {
			return Command{}, parseError(input, "trailing characters")
		}
	case Set:
		opts, err := parseSetArgs(cmd.Arg)
		if err != nil {
			return Command{}, parseError(input, err.Error())
		}
		cmd.Options = opts
	case Help:
		if cmd.Bang {
			return Command{}, parseError(input, "no ! allowed")
		}
	}
	return cmd, nil
}

// SetArg is one argument of :set.
type SetArg struct {
	Name string

	// Value is the text after '=' when HasValue is set.
	Value    string
	HasValue bool

	// Negate is set for "noname".
	Negate bool

	// Query is set for "name?".
	Query bool
}

// String renders the argument as typed.
func (a SetArg) String() string {
	switch {
	case a.Query:
		return a.Name + "?"
	case a.HasValue:
		return a.Name + "=" + a.Value
	case a.Negate:
		return "no" + a.Name
	}
	return a.Name
}

func parseSetArgs(s string) ([]SetArg, error) {
	var args []SetArg
	for _, f := range strings.Fields(s) {
		var a SetArg
		switch {
		case strings.Contains(f, "="):
			a.Name, a.Value, _ = strings.Cut(f, "=")
			a.HasValue = true
		case strings.HasSuffix(f, "?"):
			a.Name = strings.TrimSuffix(f, "?")
			a.Query = true
		case strings.HasPrefix(f, "no") && len(f) > 2:
			a.Name = f[2:]
			a.Negate = true
		default:
			a.Name = f
		}
		if a.Name == "" {
			return nil, fmt.Errorf("invalid argument %q", f)
		}
		args = append(args, a)
	}
	return args, nil
}
