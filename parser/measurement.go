package parser

import (
	"fmt"
	"strconv"

	"github.com/Drolfothesgnir/hintstack/cumfloat"
	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/trie"
)

// Unit is the unit of a tag value.
type Unit uint8

const (
	UnitPixels Unit = iota
	UnitPercent
	UnitEms
)

// Sign is the explicit sign written before a tag value, if any.
type Sign uint8

const (
	SignNone Sign = iota
	SignPlus
	SignMinus
)

// Measurement is a parsed tag value: a number, or a reference to an animated
// parameter, with a sign and a unit.
type Measurement struct {
	Value float64
	Unit  Unit
	Sign  Sign

	// Param is set when the value is a {n} reference.
	Param      *param.Animated
	ParamIndex int
}

// ToAnimatable converts the measurement to pixels. For size a signed value is
// relative to [EmSize]; for line-height the sign is kept as written and an
// animated value with an explicit sign is absolute.
func (m Measurement) ToAnimatable(size bool) cumfloat.AnimatableFloat {
	ref := DefaultLineHeight
	if size {
		ref = EmSize
	}

	scale := 1.0
	switch m.Unit {
	case UnitPercent:
		scale = ref / 100
	case UnitEms:
		scale = EmSize
	}

	sign := 1.0
	if m.Sign == SignMinus {
		sign = -1
	}

	relative := size && m.Sign != SignNone

	if m.Param == nil {
		v := m.Value * scale * sign
		if relative {
			v += EmSize
		}
		return cumfloat.Scalar(v)
	}

	switch {
	case relative:
		return cumfloat.Animated(m.Param, scale*sign, EmSize, false)
	case size:
		return cumfloat.Animated(m.Param, scale, 0, false)
	default:
		return cumfloat.Animated(m.Param, scale*sign, 0, m.Sign != SignNone)
	}
}

// parseMeasurement reads the value of the tag at start from i up to the
// closing '>'. Commas between digits are accepted and ignored. It returns the
// index of the '>'.
func (p *Parser) parseMeasurement(start, i int) (Measurement, int, bool) {
	text := p.cur.text
	limit := min(len(text), start+MaxTagLength)

	m := Measurement{ParamIndex: -1}
	fail := func(issue Issue, format string, args ...any) (Measurement, int, bool) {
		p.warn(issue, start, fmt.Sprintf(format, args...))
		return Measurement{}, 0, false
	}

	j := i
	if j < limit {
		switch text[j] {
		case '+':
			m.Sign = SignPlus
			j++
		case '-':
			m.Sign = SignMinus
			j++
		}
	}

	digits := p.digits[:0]
	defer func() { p.digits = digits[:0] }()

	seenDigit, seenPoint := false, false

number:
	for ; j < limit; j++ {
		c := text[j]
		switch {
		case c >= '0' && c <= '9':
			if m.Param != nil {
				return fail(IssueInvalidMeasurement, "digit after a parameter reference")
			}
			digits = append(digits, c)
			seenDigit = true

		case c == '.':
			if seenPoint || m.Param != nil {
				return fail(IssueInvalidMeasurement, "unexpected '.'")
			}
			digits = append(digits, c)
			seenPoint = true

		case c == ',':
			if m.Param != nil {
				return fail(IssueInvalidMeasurement, "unexpected ','")
			}

		case c == '{':
			if seenDigit || seenPoint || m.Param != nil {
				return fail(IssueInvalidMeasurement, "parameter reference mixed with a number")
			}
			n, end, ok := scanFormatIndex(text, j)
			if !ok {
				return fail(IssueInvalidMeasurement, "malformed parameter reference")
			}
			animated, err := p.animatedParameter(n)
			if err != nil {
				return fail(IssueInvalidParameter, "%v", err)
			}
			m.Param = animated
			m.ParamIndex = n
			j = end

		default:
			break number
		}
	}

	if j < limit {
		switch trie.Lower(text[j]) {
		case 'p':
			m.Unit = UnitPixels
			j++
			if j < limit && trie.Lower(text[j]) == 'x' {
				j++
			}
		case '%':
			m.Unit = UnitPercent
			j++
		case 'e':
			m.Unit = UnitEms
			j++
			if j < limit && trie.Lower(text[j]) == 'm' {
				j++
				if j < limit && trie.Lower(text[j]) == 's' {
					j++
				}
			}
		}
	}

	for j < limit && text[j] == ' ' {
		j++
	}

	if j >= limit {
		if limit < len(text) {
			return fail(IssueTagTooLong, "tag is longer than %d bytes", MaxTagLength)
		}
		return fail(IssueInvalidMeasurement, "tag is not closed")
	}

	if text[j] != '>' {
		return fail(IssueInvalidMeasurement, "unexpected %q in value", text[j])
	}

	if m.Param != nil {
		return m, j, true
	}

	if !seenDigit {
		return fail(IssueInvalidMeasurement, "value has no digits")
	}

	v, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return fail(IssueInvalidMeasurement, "%v", err)
	}

	if v > MaxValueSize {
		return fail(IssueValueTooLarge, "value %g is larger than %d", v, MaxValueSize)
	}

	m.Value = v
	return m, j, true
}

// animatedParameter returns parameter n if it can be used inside a tag value.
func (p *Parser) animatedParameter(n int) (*param.Animated, error) {
	params := p.settings.Parameters
	if n >= len(params) {
		return nil, fmt.Errorf("parameter %d does not exist", n)
	}

	animated, ok := params[n].(*param.Animated)
	if !ok {
		return nil, fmt.Errorf("parameter %d is %s, not animated", n, params[n].Type())
	}

	if !animated.Linear() {
		return nil, fmt.Errorf("parameter %d has a format or rounding", n)
	}

	if animated.Value.MaxAbs() > MaxValueSize/2 {
		return nil, fmt.Errorf("parameter %d exceeds %d", n, MaxValueSize/2)
	}

	return animated, nil
}
