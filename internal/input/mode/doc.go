// Package mode provides the modal state of the editor.
//
// The state is one tagged value: a Machine holds the current Mode and the
// Pending record of a partially typed command. There is no per-mode object
// hierarchy; the key interpreter switches on the tag.
//
// # Transitions
//
//	Normal ──i I a A o O──▶ Insert ──Esc──▶ Normal
//	Normal ──v──▶ Visual ◀──v/V──▶ VisualLine ──Esc──▶ Normal
//	Normal ──:──▶ Command ──Enter/Esc──▶ Normal
//	Normal ──Ctrl+p──▶ Finder ──Enter/Esc──▶ Normal
//
// Every transition clears the pending record. Operator-pending is not a
// mode of its own: it is Normal with a pending operator.
package mode
