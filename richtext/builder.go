package richtext

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/Drolfothesgnir/hintstack/parser"
)

// Align is a horizontal alignment.
type Align string

const (
	AlignLeft      Align = "left"
	AlignCenter    Align = "center"
	AlignRight     Align = "right"
	AlignJustified Align = "justified"
	AlignFlush     Align = "flush"
)

// Case is a letter case style.
type Case string

const (
	CaseSmallcaps Case = "smallcaps"
	CaseLowercase Case = "lowercase"
	// CaseUppercase uses allcaps, which renders slightly smaller than
	// uppercase.
	CaseUppercase Case = "allcaps"
)

// Builder appends text and tags. The zero value is ready to use.
type Builder struct {
	sb strings.Builder
}

func (b *Builder) String() string {
	return b.sb.String()
}

func (b *Builder) Len() int {
	return b.sb.Len()
}

func (b *Builder) Text(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Literal appends s inside noparse.
func (b *Builder) Literal(s string) *Builder {
	b.sb.WriteString(Sanitize(s))
	return b
}

func (b *Builder) Linebreak() *Builder {
	b.sb.WriteByte('\n')
	return b
}

// Open appends <name>.
func (b *Builder) Open(name string) *Builder {
	b.sb.WriteByte('<')
	b.sb.WriteString(name)
	b.sb.WriteByte('>')
	return b
}

// OpenValue appends <name=value>.
func (b *Builder) OpenValue(name, value string) *Builder {
	b.sb.WriteByte('<')
	b.sb.WriteString(name)
	b.sb.WriteByte('=')
	b.sb.WriteString(value)
	b.sb.WriteByte('>')
	return b
}

// Close appends </name>.
func (b *Builder) Close(name string) *Builder {
	b.sb.WriteString("</")
	b.sb.WriteString(name)
	b.sb.WriteByte('>')
	return b
}

// Measure appends <name=value> with value in unit, rounded to three
// decimals.
func (b *Builder) Measure(name string, value float64, unit parser.Unit) *Builder {
	return b.OpenValue(name, FormatMeasurement(value, unit))
}

func (b *Builder) Size(v float64, unit parser.Unit) *Builder {
	return b.Measure("size", v, unit)
}

func (b *Builder) LineHeight(v float64, unit parser.Unit) *Builder {
	return b.Measure("line-height", v, unit)
}

func (b *Builder) CharacterSpace(v float64, unit parser.Unit) *Builder {
	return b.Measure("cspace", v, unit)
}

func (b *Builder) Indent(v float64, unit parser.Unit) *Builder {
	return b.Measure("indent", v, unit)
}

func (b *Builder) Monospace(v float64, unit parser.Unit) *Builder {
	return b.Measure("mspace", v, unit)
}

func (b *Builder) Margins(v float64, unit parser.Unit) *Builder {
	return b.Measure("margins", v, unit)
}

func (b *Builder) HorizontalPos(v float64, unit parser.Unit) *Builder {
	return b.Measure("pos", v, unit)
}

func (b *Builder) VOffset(v float64, unit parser.Unit) *Builder {
	return b.Measure("voffset", v, unit)
}

func (b *Builder) Space(v float64, unit parser.Unit) *Builder {
	return b.Measure("space", v, unit)
}

func (b *Builder) Align(a Align) *Builder {
	return b.OpenValue("align", string(a))
}

func (b *Builder) Case(c Case) *Builder {
	return b.Open(string(c))
}

func (b *Builder) Color(c color.Color) *Builder {
	return b.OpenValue("color", Hex(c))
}

func (b *Builder) Mark(c color.Color) *Builder {
	return b.OpenValue("mark", Hex(c))
}

func (b *Builder) Alpha(a uint8) *Builder {
	return b.OpenValue("alpha", fmt.Sprintf("#%02X", a))
}

func (b *Builder) Scale(v float64) *Builder {
	return b.OpenValue("scale", formatNumber(v))
}

func (b *Builder) Rotation(degrees int) *Builder {
	return b.OpenValue("rotate", strconv.Quote(strconv.Itoa(degrees)))
}

func (b *Builder) Sprite(index int) *Builder {
	return b.OpenValue("sprite", strconv.Itoa(index))
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}

// FormatMeasurement renders a tag value the parser reads back as value.
func FormatMeasurement(value float64, unit parser.Unit) string {
	s := formatNumber(value)
	switch unit {
	case parser.UnitPercent:
		return s + "%"
	case parser.UnitEms:
		return s + "em"
	default:
		return s
	}
}

func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
