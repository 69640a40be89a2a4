package parser

import (
	"github.com/Drolfothesgnir/hintstack/param"
)

// NoparseSettings selects what is still parsed inside a noparse region.
type NoparseSettings uint8

const (
	ParsesEscapeSequences NoparseSettings = 1 << iota
	ParsesFormatItems

	ParsesNone NoparseSettings = 0
	ParsesAll                  = ParsesEscapeSequences | ParsesFormatItems
)

// Settings are the element properties that change how its text is parsed.
type Settings struct {
	// Parameters resolve {n} placeholders by index.
	Parameters []param.Parameter

	Noparse NoparseSettings

	// ResolutionAlign pads left and right aligned lines so they reach the
	// real screen edge of the viewer instead of the reference canvas edge.
	ResolutionAlign bool

	WarningPolicy WarningPolicy
	MaxWarnings   int
}

// Validate reports settings the parser cannot honour.
func (s Settings) Validate() error {
	_, err := NewWarnings(s.WarningPolicy, s.MaxWarnings)
	return err
}

func (s Settings) parses(flag NoparseSettings) bool {
	return s.Noparse&flag != 0
}
