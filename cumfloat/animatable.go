// Package cumfloat tracks vertical offsets as a constant plus a sum of
// linearly transformed animation curves.
package cumfloat

import (
	"math"

	"github.com/Drolfothesgnir/hintstack/param"
)

// AnimatableFloat is either a plain number, held in Addend, or the curve of
// Param mapped to value*Multiplier + Addend.
type AnimatableFloat struct {
	Param      *param.Animated
	Multiplier float64
	Addend     float64

	// Absolute makes the client ignore the sign of the sampled value. The
	// sign of Multiplier is then written explicitly.
	Absolute bool
}

// Scalar returns a non-animated value.
func Scalar(v float64) AnimatableFloat {
	return AnimatableFloat{Addend: v}
}

// Animated returns the curve of p mapped to value*multiplier + addend.
func Animated(p *param.Animated, multiplier, addend float64, absolute bool) AnimatableFloat {
	return AnimatableFloat{
		Param:      p,
		Multiplier: multiplier,
		Addend:     addend,
		Absolute:   absolute,
	}
}

func (a AnimatableFloat) IsAnimated() bool {
	return a.Param != nil
}

// Negate returns -a.
func (a AnimatableFloat) Negate() AnimatableFloat {
	a.Multiplier = -a.Multiplier
	a.Addend = -a.Addend
	return a
}

// Scale returns a*k.
func (a AnimatableFloat) Scale(k float64) AnimatableFloat {
	a.Multiplier *= k
	a.Addend *= k
	return a
}

// Evaluate samples the value at time t the way the client reads it.
func (a AnimatableFloat) Evaluate(t float32) float64 {
	if a.Param == nil {
		return a.Addend
	}
	v := float64(a.Param.Value.Evaluate(t))*a.Multiplier + a.Addend
	if a.Absolute {
		return math.Copysign(math.Abs(v), a.Multiplier)
	}
	return v
}
