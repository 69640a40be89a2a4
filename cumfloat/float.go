package cumfloat

import (
	"slices"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/wire"
)

// MaxLineHeight is the largest magnitude the client accepts in one
// line-height tag.
const MaxLineHeight = 32768

// Registrar adds a transformed curve to the payload parameters and returns
// its global index.
type Registrar interface {
	AddAnimated(p *param.Animated, multiplier, addend float32) (int, error)
}

// Float is value + the sum of terms. The zero value is 0.
//
// Terms are never shared between two Floats: every operation that takes
// terms from another Float copies them.
type Float struct {
	value float64
	terms []AnimatableFloat
}

func New(v float64) *Float {
	return &Float{value: v}
}

// Value returns the constant part.
func (f *Float) Value() float64 {
	return f.value
}

// Terms returns a copy of the animated terms.
func (f *Float) Terms() []AnimatableFloat {
	return slices.Clone(f.terms)
}

func (f *Float) IsAnimated() bool {
	return len(f.terms) > 0
}

// Add adds o to f. o is not modified.
func (f *Float) Add(o *Float) {
	f.terms = append(f.terms, o.terms...)
	f.value += o.value
}

// Subtract subtracts o from f. Terms of o are appended negated.
func (f *Float) Subtract(o *Float) {
	f.terms = slices.Grow(f.terms, len(o.terms))
	for _, t := range o.terms {
		f.terms = append(f.terms, t.Negate())
	}
	f.value -= o.value
}

// AddAnimatable adds a single value, folding it into the constant when it is
// not animated.
func (f *Float) AddAnimatable(a AnimatableFloat) {
	if a.IsAnimated() {
		f.terms = append(f.terms, a)
		return
	}
	f.value += a.Addend
}

func (f *Float) SubtractAnimatable(a AnimatableFloat) {
	f.AddAnimatable(a.Negate())
}

func (f *Float) AddScalar(v float64) {
	f.value += v
}

// Multiply scales the constant and every term.
func (f *Float) Multiply(k float64) {
	for i := range f.terms {
		f.terms[i] = f.terms[i].Scale(k)
	}
	f.value *= k
}

// Divide is Multiply by 1/k, applied term by term.
func (f *Float) Divide(k float64) {
	for i := range f.terms {
		f.terms[i].Multiplier /= k
		f.terms[i].Addend /= k
	}
	f.value /= k
}

func (f *Float) Clear() {
	f.terms = f.terms[:0]
	f.value = 0
}

// Clone returns a deep copy.
func (f *Float) Clone() *Float {
	return &Float{value: f.value, terms: slices.Clone(f.terms)}
}

// Evaluate samples the whole sum at time t.
func (f *Float) Evaluate(t float32) float64 {
	v := f.value
	for _, term := range f.terms {
		v += term.Evaluate(t)
	}
	return v
}

// Equal reports whether f and o have the same constant and the same terms in
// the same order.
func (f *Float) Equal(o *Float) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.value == o.value && slices.Equal(f.terms, o.terms)
}

// WriteAsLineHeight emits f as a run of line-height linebreaks. Each term
// becomes one linebreak whose height is a new curve parameter. The constant
// is written last, split into tags of at most [MaxLineHeight], each followed
// by a reset to zero.
func (f *Float) WriteAsLineHeight(w *wire.Writer, reg Registrar, zones *wire.NoBreaks) error {
	for _, term := range f.terms {
		id, err := reg.AddAnimated(term.Param, float32(term.Multiplier), float32(term.Addend))
		if err != nil {
			return err
		}

		w.WriteRaw("<line-height=")
		if term.Absolute {
			// only a leading sign is read, so any other char keeps the value positive
			if term.Multiplier < 0 {
				w.WriteUint8('-')
			} else {
				w.WriteUint8('A')
			}
		}
		w.WriteFormatItemNoBreak(id, zones)
		w.WriteRaw(">\n")
	}

	WriteLineHeight(w, f.value)
	return nil
}

// WriteLineHeight writes a linebreak of height v followed by a reset to
// zero. Heights beyond [MaxLineHeight] are split over several linebreaks
// with the same sign.
func WriteLineHeight(w *wire.Writer, v float64) {
	if v < MaxLineHeight && v > -MaxLineHeight {
		writeLineHeight(w, float32(v))
		return
	}

	sign := 1.0
	if v < 0 {
		sign, v = -1, -v
	}

	for {
		writeLineHeight(w, float32(sign*min(v, MaxLineHeight)))
		if v -= MaxLineHeight; v <= 0 {
			break
		}
	}
}

func writeLineHeight(w *wire.Writer, v float32) {
	w.WriteRaw("<line-height=")
	w.WriteFloatAsString(v)
	w.WriteRaw(">\n<line-height=0>")
}
