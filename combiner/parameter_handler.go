package combiner

import (
	"errors"
	"fmt"
	"math"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/wire"
)

// ErrPayloadOverflow means a payload cannot be represented on the wire.
var ErrPayloadOverflow = errors.New("payload overflow")

// maxParameters keeps every index below the invalid placeholder index.
const maxParameters = math.MaxInt32 - 1

// ParameterHandler writes the parameter block of a payload and hands out
// global parameter indexes.
type ParameterHandler struct {
	w        *wire.Writer
	countPos int
	count    int
	base     int
}

// Setup starts a parameter block at the end of w. The count is written as a
// placeholder and patched by Finish.
func (h *ParameterHandler) Setup(w *wire.Writer) {
	h.w = w
	h.countPos = w.Len()
	h.count = 0
	h.base = 0
	w.WriteInt32(0)
}

// Count is the number of parameters written so far.
func (h *ParameterHandler) Count() int {
	return h.count
}

// SetElementParameters writes the parameters of an element and makes them
// the target of Mapped. It returns the global index of the first one. On
// error nothing is written.
func (h *ParameterHandler) SetElementParameters(params []param.Parameter) (int, error) {
	if h.count+len(params) > maxParameters {
		return 0, fmt.Errorf("%w: more than %d parameters", ErrPayloadOverflow, maxParameters)
	}

	start := h.w.Len()
	for i, p := range params {
		h.w.WriteUint8(byte(p.Type()))
		if err := p.Write(h.w); err != nil {
			h.w.Truncate(start)
			return 0, fmt.Errorf("parameter %d: %w", i, err)
		}
	}

	h.base = h.count
	h.count += len(params)
	return h.base, nil
}

// Mapped returns the global index of parameter i of the current element.
func (h *ParameterHandler) Mapped(i int) int {
	return h.base + i
}

// AddString appends a text parameter and returns its index.
func (h *ParameterHandler) AddString(b []byte) (int, error) {
	if h.count >= maxParameters {
		return 0, fmt.Errorf("%w: more than %d parameters", ErrPayloadOverflow, maxParameters)
	}

	start := h.w.Len()
	h.w.WriteUint8(byte(param.TypeText))
	if err := h.w.WriteBytes(b); err != nil {
		h.w.Truncate(start)
		return 0, err
	}

	h.count++
	return h.count - 1, nil
}

// AddAnimated appends the curve of p mapped to value*multiplier + addend and
// returns its index.
func (h *ParameterHandler) AddAnimated(p *param.Animated, multiplier, addend float32) (int, error) {
	if h.count >= maxParameters {
		return 0, fmt.Errorf("%w: more than %d parameters", ErrPayloadOverflow, maxParameters)
	}

	start := h.w.Len()
	h.w.WriteUint8(byte(param.TypeAnimationCurve))
	if err := p.WriteTransformed(h.w, multiplier, addend); err != nil {
		h.w.Truncate(start)
		return 0, err
	}

	h.count++
	return h.count - 1, nil
}

// Finish patches the parameter count. A payload always carries at least one
// parameter; an empty string is added when there is none.
func (h *ParameterHandler) Finish() error {
	if h.count == 0 {
		if _, err := h.AddString(nil); err != nil {
			return err
		}
	}

	h.w.PutInt32At(h.countPos, int32(h.count))
	return nil
}
