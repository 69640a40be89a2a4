package parser

import (
	"fmt"
)

// Warning is a problem the parser recovered from. Pos is the byte offset in
// the element text.
type Warning struct {
	Issue       Issue  `json:"issue"`
	Pos         int    `json:"pos"`
	Description string `json:"description"`
}

// WarningPolicy decides which warnings a parse keeps.
type WarningPolicy uint8

const (
	// WarnAll keeps every warning. The cap is ignored.
	WarnAll WarningPolicy = iota

	// WarnNone keeps nothing.
	WarnNone

	// WarnTruncate keeps at most cap warnings. Once more arrive, the last
	// slot holds an [IssueWarningsTruncated] warning counting what was lost.
	WarnTruncate
)

func (p WarningPolicy) String() string {
	switch p {
	case WarnAll:
		return "all"
	case WarnNone:
		return "none"
	case WarnTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("WarningPolicy(%d)", uint8(p))
	}
}

// Warnings collects the warnings of one parse.
type Warnings struct {
	policy WarningPolicy
	cap    int
	list   []Warning

	// suppressed counts warnings past the cap; first is the earliest of them.
	suppressed int
	first      Warning
}

// NewWarnings returns an empty collector. A negative cap is a [ConfigError].
func NewWarnings(policy WarningPolicy, cap int) (Warnings, error) {
	if cap < 0 {
		return Warnings{}, NewConfigError(
			IssueNegativeWarningsCap,
			fmt.Errorf("warnings cap must be non-negative, got %d", cap),
		)
	}

	return Warnings{policy: policy, cap: cap}, nil
}

func (w *Warnings) Add(item Warning) {
	switch w.policy {
	case WarnNone:
		return
	case WarnAll:
		w.list = append(w.list, item)
		return
	}

	// one slot is kept for the truncation warning
	if w.suppressed == 0 && len(w.list) < w.cap-1 {
		w.list = append(w.list, item)
		return
	}

	if w.suppressed == 0 {
		w.first = item
	}
	w.suppressed++
}

// Suppressed is the number of warnings that arrived after the kept slots
// were full.
func (w *Warnings) Suppressed() int {
	return w.suppressed
}

// List returns the kept warnings, ending with the truncation warning if any
// were suppressed. With a cap of zero the list stays empty.
func (w *Warnings) List() []Warning {
	if w.suppressed == 0 || w.cap == 0 {
		return w.list
	}

	list := w.list[:len(w.list):len(w.list)]

	// a single warning over the cap fits in the reserved slot as is
	if w.suppressed == 1 {
		return append(list, w.first)
	}

	return append(list, Warning{
		Issue:       IssueWarningsTruncated,
		Pos:         w.first.Pos,
		Description: fmt.Sprintf("%d more warnings suppressed", w.suppressed),
	})
}
