package command

import "strings"

// HelpName is the display name of the help buffer.
const HelpName = "[Help]"

// HelpText is the content of the read-only help buffer. Each topic starts
// with a line of the form "*topic*".
const HelpText = `*kestrel*  modal text editor

Type :help {topic} to jump to a topic, :e {file} to go back to editing.
Topics: motions operators modes commands registers search marks repeat finder

*motions*
  h j k l        left, down, up, right
  w b e          next word, previous word, end of word
  W B E          the same for blank-delimited WORDs
  0 ^ $          line start, first non-blank, line end
  ge gE          end of previous word, WORD
  gg G           first line, last line; {count}G goes to line {count}
  { }            previous, next blank line
  %              matching bracket; {count}% goes {count} percent down
  f{c} F{c}      next, previous {c} on the line
  t{c} T{c}      just before next, just after previous {c}
  ; ,            repeat the last f F t T, in the other direction
  Ctrl-d Ctrl-u  scroll half a page down, up
  A count repeats a motion: 3w, 5j.

*operators*
  d y c          delete, yank, change; followed by a motion or text object
  dd yy cc       whole lines; 3dd deletes three lines
  D C Y          to end of line, to end of line, whole line
  x X            delete character under, before the cursor
  p P            paste after, before the cursor
  > <            indent, outdent by shiftwidth; >> << for lines
  gu gU g~       lowercase, uppercase, switch case; guu gUU g~~
  ~              switch case of the character under the cursor
  J              join lines
  r{char}        replace the character under the cursor
  u Ctrl-r       undo, redo
  Text objects: iw aw iW aW  i" a" i' a'  i( a( ib ab  i[ a[  i{ a{ iB aB

*modes*
  i I a A o O    enter Insert mode
  v V            Visual, Visual Line; o swaps the selection ends
  :              Command mode
  Ctrl-p         file finder
  Esc            back to Normal mode, cancelling anything pending

*commands*
  :w [path]      write       :w! overwrite a read-only buffer's file
  :q  :q!        quit, quit discarding changes
  :wq  :x        write and quit, write only if changed and quit
  :e path  :e!   edit a file, reload the current file
  :{n}  :$       go to line {n}, go to the last line
  :s/pat/rep/g   substitute on the current line; :%s for every line
  :set opt  :set noopt  :set opt=val  :set opt?
                 options: number tabstop shiftwidth expandtab
                 scrolloff ignorecase smartcase
  :reg           show registers
  :split [path]  :close  Ctrl-w w   windows

*registers*
  "              unnamed, written by every yank and delete
  a-z  A-Z       named; uppercase appends
  0              last yank
  1-9            line-wise and multi-line deletes, newest first
  -              small deletes
  _              black hole
  + *            system clipboard
  :              last command line
  Prefix a command with "x to use register x: "ayy "ap

*search*
  /pattern       search forward for a Go regular expression
  ?pattern       search backward; an empty pattern reuses the last one
  n N            next match, in the same or the other direction
  * #            next, previous whole word under the cursor
  Searches wrap around the ends of the buffer.
  :set ignorecase matches either case; smartcase undoes it when the
  pattern has an uppercase letter.

*marks*
  m{a-z}         set a mark at the cursor
  '{a-z}         jump to the mark's line
  ` + "`" + `{a-z}         jump to the mark's position
  '' ` + "``" + `          back to where the last jump started
  Marks belong to a buffer. They stay at the same line and column when
  text is edited around them.

*repeat*
  .              repeat the last change; a count replaces its count
  q{reg} ... q   record typed keys into register {reg}
  @{reg}         play the keys in {reg}; @@ plays the last one again
  A macro stops at the first command that fails.

*finder*
  Ctrl-p opens the finder over the working directory.
  Type to filter, Ctrl-n Ctrl-p or the arrows to move, Enter to open,
  Ctrl-u to clear the query, Esc to close.
`

// HelpTopics lists the topics of HelpText in order.
var HelpTopics = []string{"motions", "operators", "modes", "commands", "registers", "search", "marks", "repeat", "finder"}

// HelpLine returns the line of HelpText where topic starts. A unique
// prefix of a topic is accepted. An empty topic is line 0.
func HelpLine(topic string) (int, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return 0, true
	}
	match := ""
	for _, t := range HelpTopics {
		if t == topic {
			match = t
			break
		}
		if strings.HasPrefix(t, topic) {
			if match != "" {
				return 0, false
			}
			match = t
		}
	}
	if match == "" {
		return 0, false
	}
	for i, line := range strings.Split(HelpText, "\n") {
		if line == "*"+match+"*" {
			return i, true
		}
	}
	return 0, false
}
