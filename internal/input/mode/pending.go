package mode

import (
	"strings"

	"github.com/dshills/kestrel/internal/input/key"
)

// Pending is the partially typed command in Normal and Visual mode:
// [register][count][operator][count][prefix].
type Pending struct {
	// Count is the count typed before the operator, 0 if none.
	Count int

	// Register is the register selected with '"', 0 if none.
	Register rune

	// Operator is the pending operator key ('d', 'y', 'c', '>', '<', or
	// 'u', 'U', '~' after 'g'), 0 if none.
	Operator rune

	// OperatorCount is the count typed after the operator, 0 if none.
	OperatorCount int

	// Prefix is the first key of a two-key command ('g', 'r', '"', 'f',
	// 'm', 'q', '@', a mark quote, or 'i' or 'a' after an operator), 0 if
	// none.
	Prefix rune

	// Keys holds every key of the sequence so far, for display.
	Keys []key.Event
}

// IsEmpty reports whether nothing is pending.
func (p *Pending) IsEmpty() bool {
	return len(p.Keys) == 0
}

// IsOperatorPending reports whether an operator waits for its motion.
func (p *Pending) IsOperatorPending() bool {
	return p.Operator != 0
}

// Reset clears the record.
func (p *Pending) Reset() {
	*p = Pending{Keys: p.Keys[:0]}
}

// TotalCount returns the effective count: both counts multiplied, where a
// missing count is 1. It returns 0 when neither count was typed.
func (p *Pending) TotalCount() int {
	switch {
	case p.Count == 0 && p.OperatorCount == 0:
		return 0
	case p.Count == 0:
		return p.OperatorCount
	case p.OperatorCount == 0:
		return p.Count
	}
	return MultiplyCounts(p.Count, p.OperatorCount)
}

// String renders the keys typed so far, such as `"a2d`.
func (p *Pending) String() string {
	var b strings.Builder
	for _, e := range p.Keys {
		b.WriteString(e.String())
	}
	return b.String()
}

// MaxCount caps counts so arithmetic on them cannot overflow.
const MaxCount = 999999

// MultiplyCounts multiplies two counts, saturating at MaxCount.
func MultiplyCounts(a, b int) int {
	if a <= 0 {
		a = 1
	}
	if b <= 0 {
		b = 1
	}
	if a > MaxCount/b {
		return MaxCount
	}
	return a * b
}

// AccumulateDigit appends digit d to count, saturating at MaxCount.
func AccumulateDigit(count int, d rune) int {
	n := count*10 + int(d-'0')
	if n > MaxCount || n < count {
		return MaxCount
	}
	return n
}
