// Package combiner merges the elements of one viewer into a single hint
// payload.
package combiner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Drolfothesgnir/hintstack/cumfloat"
	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/Drolfothesgnir/hintstack/parser"
	"github.com/Drolfothesgnir/hintstack/sink"
	"github.com/Drolfothesgnir/hintstack/wire"
	"github.com/rs/zerolog/log"
)

// terminator keeps the client from trimming trailing line breaks.
const terminator = "<size=0><alpha=#00>.</alpha></size>"

// Viewer is the receiver of a payload.
type Viewer struct {
	ID string

	// AspectRatio is width / height of the viewer's screen.
	AspectRatio float64
}

// Combiner builds payloads and hands them to a sink. It is safe for
// concurrent use; every call works on its own scratch state.
type Combiner struct {
	opts Options
	sink sink.Sink
	pool sync.Pool
}

func New(opts Options, s sink.Sink) *Combiner {
	c := &Combiner{opts: opts.withDefaults(), sink: s}
	c.pool.New = func() any { return newScope() }
	return c
}

func (c *Combiner) Options() Options {
	return c.opts
}

// Combine builds the payload of elements and sends it to the viewer.
// Elements must be in paint order, lowest first.
func (c *Combiner) Combine(ctx context.Context, viewer Viewer, elements []*element.Element) error {
	payload, err := c.Build(viewer, elements)
	if err != nil {
		return err
	}

	if err := c.sink.Send(ctx, viewer.ID, payload); err != nil {
		log.Error().Err(err).Str("viewer", viewer.ID).Msg("failed to send payload")
		return fmt.Errorf("send payload: %w", err)
	}

	return nil
}

// Build returns the payload of elements without sending it. An element whose
// content cannot be produced is logged and left out. When the content does
// not fit on the wire, the element with the most unbreakable content is
// dropped and the payload is built again.
func (c *Combiner) Build(viewer Viewer, elements []*element.Element) ([]byte, error) {
	for i, el := range elements {
		if el == nil {
			return nil, fmt.Errorf("%w: element %d is nil", element.ErrInvalidArgument, i)
		}
	}

	s := c.pool.Get().(*scope)
	defer c.pool.Put(s)

	var dropped []bool

	for {
		failed, err := s.build(c.opts, viewer, elements, dropped)
		if err == nil {
			return slices.Clone(s.payload.Bytes()), nil
		}
		if !errors.Is(err, ErrPayloadOverflow) {
			return nil, err
		}

		if failed < 0 {
			failed = s.heaviest()
		}
		if failed < 0 {
			return nil, err
		}

		log.Warn().Err(err).
			Str("viewer", viewer.ID).
			Int("index", failed).
			Int("z_index", elements[failed].ZIndex()).
			Msg("dropping element that does not fit in the payload")

		if dropped == nil {
			dropped = make([]bool, len(elements))
		}
		dropped[failed] = true
	}
}

// build writes the payload of every element not marked in dropped. When
// writing an element fails, its index is returned with the error; a failure
// after all elements are written returns -1.
func (s *scope) build(opts Options, viewer Viewer, elements []*element.Element, dropped []bool) (int, error) {
	s.begin(opts, viewer)

	for i, el := range elements {
		if dropped != nil && dropped[i] {
			continue
		}

		pf, err := el.ParsedForm(viewer.ID)
		if err != nil {
			log.Warn().Err(err).
				Str("viewer", viewer.ID).
				Int("index", i).
				Int("z_index", el.ZIndex()).
				Msg("skipping element")
			continue
		}

		settings := el.Settings()

		base, err := s.params.SetElementParameters(settings.Parameters)
		if err != nil {
			log.Warn().Err(err).
				Str("viewer", viewer.ID).
				Int("index", i).
				Int("z_index", el.ZIndex()).
				Msg("skipping element with unwritable parameters")
			continue
		}

		zones := s.zones.Bytes()
		if err := s.writeElement(settings, pf, base); err != nil {
			return i, err
		}
		s.costs = append(s.costs, elementCost{index: i, fixed: s.zones.Bytes() - zones})
	}

	return -1, s.finish()
}

// elementCost is the number of content bytes an element adds that can never
// be moved out of the content.
type elementCost struct {
	index int
	fixed int
}

// heaviest returns the index of the written element with the most
// unbreakable content, or -1 when no element was written.
func (s *scope) heaviest() int {
	best := -1
	most := -1
	for _, c := range s.costs {
		if c.fixed > most {
			best, most = c.index, c.fixed
		}
	}
	return best
}

// scope is the scratch state of one Build call.
type scope struct {
	opts   Options
	viewer Viewer

	payload *wire.Writer
	content *wire.Writer
	chunked *wire.Writer
	zones   wire.NoBreaks
	params  ParameterHandler

	costs []elementCost

	placed     bool
	total      *cumfloat.Float
	prevAnchor *cumfloat.Float
	prevOffset *cumfloat.Float
}

func newScope() *scope {
	return &scope{
		payload: wire.NewWriter(1024),
		content: wire.NewWriter(1024),
		chunked: wire.NewWriter(0),
		total:   cumfloat.New(0),
	}
}

func (s *scope) begin(opts Options, viewer Viewer) {
	s.opts = opts
	s.viewer = viewer
	if s.viewer.AspectRatio <= 0 {
		s.viewer.AspectRatio = parser.ReferenceAspectRatio
	}

	s.payload.Reset()
	s.content.Reset()
	s.chunked.Reset()
	s.zones = s.zones[:0]
	s.costs = s.costs[:0]

	s.placed = false
	s.total.Clear()
	s.prevAnchor = nil
	s.prevOffset = nil

	s.payload.WriteUint16(opts.MessageID)
	s.payload.WriteUint8(TextHint)
	s.payload.WriteFloat32(float32(opts.Duration.Seconds()))
	s.params.Setup(s.payload)
}

// writeElement places the element below the previous one and writes its
// text.
func (s *scope) writeElement(settings element.Settings, pf parser.ParsedForm, base int) error {
	anchor := anchorOf(settings)
	switch settings.VerticalAlign {
	case element.AlignTop:
		anchor.Subtract(pf.Offset)
		anchor.Subtract(pf.Offset)
	case element.AlignCenter:
		anchor.Subtract(pf.Offset)
	}

	if !s.placed {
		s.total.Add(anchor)
		s.placed = true
	} else {
		sub := spacing(s.prevOffset, s.prevAnchor, anchor)
		if err := sub.WriteAsLineHeight(s.content, &s.params, &s.zones); err != nil {
			return err
		}
		s.total.Add(sub)
	}

	if err := s.apply(pf, base); err != nil {
		return err
	}

	s.total.Add(pf.Offset)
	s.prevAnchor = anchor
	s.prevOffset = pf.Offset
	return nil
}

// anchorOf converts the position of an element to distance from the top of
// the canvas.
func anchorOf(settings element.Settings) *cumfloat.Float {
	if settings.AnimatedPosition != nil {
		f := cumfloat.New(0)
		f.AddAnimatable(cumfloat.Animated(settings.AnimatedPosition, -1, BaselineOrigin, false))
		return f
	}
	return cumfloat.New(BaselineOrigin - settings.Position)
}

// spacing is the line height that moves the baseline from the end of the
// previous element to anchor: (prevOffset*2 + prevAnchor - anchor) / -2.
func spacing(prevOffset, prevAnchor, anchor *cumfloat.Float) *cumfloat.Float {
	sub := prevOffset.Clone()
	sub.Multiply(2)
	sub.Add(prevAnchor)
	sub.Subtract(anchor)
	sub.Divide(-2)
	return sub
}

func (s *scope) finish() error {
	s.content.WriteRaw(terminator)
	if err := s.total.WriteAsLineHeight(s.content, &s.params, &s.zones); err != nil {
		return err
	}

	content := s.content.Bytes()
	if len(content) > s.opts.MaxContentLength {
		if err := rechunk(content, s.zones, s.opts.MaxContentLength, &s.params, s.chunked); err != nil {
			return err
		}
		content = s.chunked.Bytes()
	}

	if err := s.params.Finish(); err != nil {
		return err
	}

	if err := s.payload.WriteBytes(content); err != nil {
		return fmt.Errorf("%w: %w", ErrPayloadOverflow, err)
	}

	return nil
}
