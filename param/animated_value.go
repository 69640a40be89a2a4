package param

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Drolfothesgnir/hintstack/wire"
)

const (
	MinKeyframes = 2
	MaxKeyframes = 257
)

var (
	ErrTooFewKeyframes  = errors.New("animated value needs at least 2 keyframes")
	ErrTooManyKeyframes = errors.New("animated value has too many keyframes")
)

// KeyframeMode tells which optional fields of a [Keyframe] are sent.
type KeyframeMode byte

const (
	ModeTangents KeyframeMode = 1 << iota
	ModeWeights
)

// Keyframe is one point of an animation curve.
type Keyframe struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
	InWeight   float32
	OutWeight  float32
	Mode       KeyframeMode
}

// AnimatedValue is an immutable curve of 2 to 257 keyframes sorted by time.
type AnimatedValue struct {
	frames []Keyframe
}

// NewAnimatedValue copies frames and sorts them by time.
func NewAnimatedValue(frames ...Keyframe) (AnimatedValue, error) {
	switch {
	case len(frames) < MinKeyframes:
		return AnimatedValue{}, fmt.Errorf("%w: got %d", ErrTooFewKeyframes, len(frames))
	case len(frames) > MaxKeyframes:
		return AnimatedValue{}, fmt.Errorf("%w: got %d, max %d", ErrTooManyKeyframes, len(frames), MaxKeyframes)
	}

	cp := slices.Clone(frames)
	slices.SortStableFunc(cp, func(a, b Keyframe) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})

	return AnimatedValue{frames: cp}, nil
}

// Linear returns a two-frame curve going from -> to over duration seconds.
func Linear(from, to, duration float32) (AnimatedValue, error) {
	if duration <= 0 {
		return AnimatedValue{}, fmt.Errorf("duration must be positive, got %v", duration)
	}
	slope := (to - from) / duration
	return NewAnimatedValue(
		Keyframe{Time: 0, Value: from, OutTangent: slope, InTangent: slope, Mode: ModeTangents},
		Keyframe{Time: duration, Value: to, OutTangent: slope, InTangent: slope, Mode: ModeTangents},
	)
}

func (v AnimatedValue) Len() int {
	return len(v.frames)
}

// Frames returns a copy of the keyframes.
func (v AnimatedValue) Frames() []Keyframe {
	return slices.Clone(v.frames)
}

// MaxAbs returns the largest absolute keyframe value.
func (v AnimatedValue) MaxAbs() float32 {
	var m float32
	for _, f := range v.frames {
		m = max(m, float32(math.Abs(float64(f.Value))))
	}
	return m
}

// WriteTransformed writes the curve with values mapped to value*multiplier +
// addend. Tangents are scaled but not shifted.
func (v AnimatedValue) WriteTransformed(w *wire.Writer, multiplier, addend float32) {
	n := len(v.frames)
	w.WriteUint8(byte(n - 2))

	// two mode bits per frame, four frames per byte
	for i := 0; i < n; i += 4 {
		var flags byte
		for j := 0; j < 4 && i+j < n; j++ {
			flags |= byte(v.frames[i+j].Mode&(ModeTangents|ModeWeights)) << (2 * j)
		}
		w.WriteUint8(flags)
	}

	for _, f := range v.frames {
		w.WriteFloat32(f.Time)
		w.WriteFloat32(f.Value*multiplier + addend)

		if f.Mode&ModeTangents != 0 {
			w.WriteFloat32(f.InTangent * multiplier)
			w.WriteFloat32(f.OutTangent * multiplier)
		}

		if f.Mode&ModeWeights != 0 {
			w.WriteFloat32(f.InWeight)
			w.WriteFloat32(f.OutWeight)
		}
	}
}

// Evaluate samples the curve at t. Outside the keyframe range the curve is
// clamped to its first or last value. Segments are cubic Hermite splines,
// frames without tangents are treated as having a zero slope.
func (v AnimatedValue) Evaluate(t float32) float32 {
	if len(v.frames) == 0 {
		return 0
	}

	first, last := v.frames[0], v.frames[len(v.frames)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	i, _ := slices.BinarySearchFunc(v.frames, t, func(f Keyframe, t float32) int {
		switch {
		case f.Time < t:
			return -1
		case f.Time > t:
			return 1
		}
		return 0
	})

	a, b := v.frames[i-1], v.frames[i]
	if b.Time == t {
		return b.Value
	}

	dt := b.Time - a.Time
	if dt <= 0 {
		return b.Value
	}

	var m0, m1 float32
	if a.Mode&ModeTangents != 0 {
		m0 = a.OutTangent * dt
	}
	if b.Mode&ModeTangents != 0 {
		m1 = b.InTangent * dt
	}

	s := (t - a.Time) / dt
	s2 := s * s
	s3 := s2 * s

	return (2*s3-3*s2+1)*a.Value + (s3-2*s2+s)*m0 + (-2*s3+3*s2)*b.Value + (s3-s2)*m1
}

// DecodeAnimatedValue reads a curve written by WriteTransformed.
func DecodeAnimatedValue(r *wire.Reader) (AnimatedValue, error) {
	count, err := r.ReadUint8()
	if err != nil {
		return AnimatedValue{}, err
	}
	n := int(count) + 2

	frames := make([]Keyframe, n)
	for i := 0; i < n; i += 4 {
		flags, err := r.ReadUint8()
		if err != nil {
			return AnimatedValue{}, err
		}
		for j := 0; j < 4 && i+j < n; j++ {
			frames[i+j].Mode = KeyframeMode(flags>>(2*j)) & (ModeTangents | ModeWeights)
		}
	}

	for i := range frames {
		f := &frames[i]
		if f.Time, err = r.ReadFloat32(); err != nil {
			return AnimatedValue{}, err
		}
		if f.Value, err = r.ReadFloat32(); err != nil {
			return AnimatedValue{}, err
		}
		if f.Mode&ModeTangents != 0 {
			if f.InTangent, err = r.ReadFloat32(); err != nil {
				return AnimatedValue{}, err
			}
			if f.OutTangent, err = r.ReadFloat32(); err != nil {
				return AnimatedValue{}, err
			}
		}
		if f.Mode&ModeWeights != 0 {
			if f.InWeight, err = r.ReadFloat32(); err != nil {
				return AnimatedValue{}, err
			}
			if f.OutWeight, err = r.ReadFloat32(); err != nil {
				return AnimatedValue{}, err
			}
		}
	}

	return AnimatedValue{frames: frames}, nil
}
