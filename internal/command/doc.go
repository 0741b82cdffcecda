// Package command parses and runs ex command lines.
//
// Parse turns the text typed after ':' into a Command. A Processor runs
// commands against a Host, which the editor implements. The processor owns
// the policy (a dirty buffer blocks :q and :e, :x writes only when needed);
// the host performs the edits and file I/O.
//
// Supported commands:
//
//	:w[rite][!] [path]   :q[uit][!]   :wq[!] [path]   :x[it][!]
//	:e[dit][!] [path]    :{n}   :$   :[%]s/pat/rep/[gi]
//	:se[t] [opt|noopt|opt=val|opt?]...   :h[elp] [topic]
//	:reg[isters]   :sp[lit] [path]   :clo[se][!]
package command
