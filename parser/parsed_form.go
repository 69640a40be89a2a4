package parser

import (
	"github.com/Drolfothesgnir/hintstack/cumfloat"
)

// ParsedForm is the cacheable result of parsing one element.
type ParsedForm struct {
	// Text is the source text the modifications refer to.
	Text string

	// Offset is the total height of the line breaks in Text.
	Offset *cumfloat.Float

	// Modifications are sorted by Pos and never overlap.
	Modifications []Modification

	// OpenSizes is the number of size tags left open at the end of Text.
	OpenSizes int

	Warnings []Warning
}
