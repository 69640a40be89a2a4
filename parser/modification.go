package parser

import (
	"fmt"

	"github.com/Drolfothesgnir/hintstack/cumfloat"
)

// Kind selects what a [Modification] does.
type Kind uint8

const (
	// KindInsert writes Text. When Zone is positive, Zone bytes starting at
	// the inserted text form a no-break zone.
	KindInsert Kind = iota

	// KindNoBreak marks Zone source bytes at Pos as a no-break zone.
	KindNoBreak

	// KindNoparse writes <noparse>.
	KindNoparse

	// KindCloseNoparse writes </noparse>.
	KindCloseNoparse

	// KindLinebreak writes a line break of height Value, followed by a reset
	// of the line height to zero.
	KindLinebreak

	// KindTag writes <Name=Value>.
	KindTag

	// KindFormatItem writes the placeholder of element parameter Index,
	// renumbered to its index in the payload.
	KindFormatItem

	// KindInvalidFormatItem writes a placeholder the client renders as nothing.
	KindInvalidFormatItem

	// KindAlignSpace writes the padding that moves aligned text to the
	// viewer's screen edge.
	KindAlignSpace

	// KindSkip writes nothing.
	KindSkip
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindNoBreak:
		return "nobreak"
	case KindNoparse:
		return "noparse"
	case KindCloseNoparse:
		return "close_noparse"
	case KindLinebreak:
		return "linebreak"
	case KindTag:
		return "tag"
	case KindFormatItem:
		return "format_item"
	case KindInvalidFormatItem:
		return "invalid_format_item"
	case KindAlignSpace:
		return "align_space"
	case KindSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Modification is one edit of the source text, applied at byte Pos. After it
// is applied, Skip source bytes starting at Pos are not copied.
//
// Only the fields listed for each [Kind] are meaningful.
type Modification struct {
	Kind Kind
	Pos  int
	Skip int

	Text string
	Zone int

	// Name is the tag name for KindTag.
	Name string

	// Value is the height for KindLinebreak and the value for KindTag.
	Value cumfloat.AnimatableFloat

	// Index is the element-local parameter index for KindFormatItem.
	Index int

	// InNoparse makes KindLinebreak leave and re-enter noparse around the
	// line-height tags.
	InNoparse bool

	// Right selects trailing padding for KindAlignSpace.
	Right bool
}

// Equal compares modifications field by field. Parameters are compared by
// identity.
func (m Modification) Equal(o Modification) bool {
	return m == o
}

func (m Modification) String() string {
	switch m.Kind {
	case KindInsert:
		return fmt.Sprintf("%d %s %q zone=%d", m.Pos, m.Kind, m.Text, m.Zone)
	case KindNoBreak:
		return fmt.Sprintf("%d %s len=%d", m.Pos, m.Kind, m.Zone)
	case KindLinebreak:
		return fmt.Sprintf("%d %s skip=%d %s noparse=%t", m.Pos, m.Kind, m.Skip, valueString(m.Value), m.InNoparse)
	case KindTag:
		return fmt.Sprintf("%d %s <%s=%s> skip=%d", m.Pos, m.Kind, m.Name, valueString(m.Value), m.Skip)
	case KindFormatItem:
		return fmt.Sprintf("%d %s {%d} skip=%d", m.Pos, m.Kind, m.Index, m.Skip)
	case KindAlignSpace:
		return fmt.Sprintf("%d %s right=%t", m.Pos, m.Kind, m.Right)
	default:
		return fmt.Sprintf("%d %s skip=%d", m.Pos, m.Kind, m.Skip)
	}
}

func valueString(v cumfloat.AnimatableFloat) string {
	if !v.IsAnimated() {
		return fmt.Sprintf("%g", v.Addend)
	}
	return fmt.Sprintf("curve*%g%+g abs=%t", v.Multiplier, v.Addend, v.Absolute)
}
