// Package param defines the values an element substitutes into its {n}
// placeholders and their wire encoding.
package param

import (
	"github.com/Drolfothesgnir/hintstack/wire"
)

// Type is the one byte tag written before every parameter.
type Type byte

const (
	TypeText Type = iota
	TypeItem
	TypeKeybind
	TypeAnimationCurve
)

func (t Type) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeItem:
		return "item"
	case TypeKeybind:
		return "keybind"
	case TypeAnimationCurve:
		return "animation_curve"
	default:
		return "unknown"
	}
}

// DefaultKeybindFormat renders the key name in brackets.
const DefaultKeybindFormat = "[{0}]"

// Parameter is one entry of an element's parameter list.
type Parameter interface {
	Type() Type
	// Write encodes the body of the parameter, without the type byte.
	Write(w *wire.Writer) error
}

// String is a literal string substituted verbatim.
type String struct {
	Value string
}

func (String) Type() Type { return TypeText }

func (p String) Write(w *wire.Writer) error {
	return w.WriteString(p.Value)
}

// Item resolves to the display name of an item type on the client.
type Item struct {
	ItemType int32
}

func (Item) Type() Type { return TypeItem }

func (p Item) Write(w *wire.Writer) error {
	w.WriteInt32(p.ItemType)
	return nil
}

// Keybind resolves to the key the viewer bound to an action.
type Keybind struct {
	ID     int32
	Format string
}

// NewKeybind returns a Keybind using [DefaultKeybindFormat].
func NewKeybind(id int32) Keybind {
	return Keybind{ID: id, Format: DefaultKeybindFormat}
}

func (Keybind) Type() Type { return TypeKeybind }

func (p Keybind) Write(w *wire.Writer) error {
	w.WriteInt32(p.ID)
	return w.WriteString(p.Format)
}

// Animated is a number sampled from a curve by the client.
type Animated struct {
	Value AnimatedValue

	// Format is a numeric format string applied by the client, nil for none.
	Format *string

	// RoundToInt makes the client round the sampled value.
	RoundToInt bool

	// Offset shifts the curve time, in seconds.
	Offset float64
}

func (*Animated) Type() Type { return TypeAnimationCurve }

func (p *Animated) Write(w *wire.Writer) error {
	return p.WriteTransformed(w, 1, 0)
}

// WriteTransformed writes the parameter with every sampled value mapped to
// value*multiplier + addend.
func (p *Animated) WriteTransformed(w *wire.Writer, multiplier, addend float32) error {
	w.WriteFloat64(p.Offset)
	if err := w.WriteNullableString(p.Format); err != nil {
		return err
	}
	w.WriteBool(p.RoundToInt)
	p.Value.WriteTransformed(w, multiplier, addend)
	return nil
}

// Linear reports whether the parameter can be re-expressed as a linear
// transform of its curve, which is required to use it inside a tag value.
func (p *Animated) Linear() bool {
	return p.Format == nil && !p.RoundToInt
}
