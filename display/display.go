package display

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/rs/zerolog/log"
)

type stored struct {
	tag        element.Tag
	el         *element.Element
	seq        uint64
	nextUpdate time.Time
}

// Display is the set of elements shown to one viewer. Changes are sent on
// the next tick of the owning [Registry].
type Display struct {
	viewer   string
	combiner *combiner.Combiner
	now      func() time.Time

	mu             sync.Mutex
	aspectRatio    float64
	seq            uint64
	elements       map[element.Tag]*stored
	hidden         map[element.Tag]struct{}
	expiries       expiryHeap
	dirty          bool
	suspendedUntil time.Time
}

func newDisplay(viewer string, c *combiner.Combiner, now func() time.Time, aspectRatio float64) *Display {
	return &Display{
		viewer:      viewer,
		combiner:    c,
		now:         now,
		aspectRatio: aspectRatio,
		elements:    make(map[element.Tag]*stored),
		hidden:      make(map[element.Tag]struct{}),
	}
}

func (d *Display) Viewer() string {
	return d.viewer
}

// Show adds el under tag until it is removed, replacing any element with the
// same tag. The element is placed above elements of the same z-index that
// were shown before it.
func (d *Display) Show(tag element.Tag, el *element.Element) error {
	return d.show(tag, el, 0)
}

// ShowFor is Show with the element removed after duration.
func (d *Display) ShowFor(tag element.Tag, el *element.Element, duration time.Duration) error {
	if duration <= 0 {
		return &element.ArgumentError{Field: "duration", Reason: "must be positive"}
	}
	return d.show(tag, el, duration)
}

func (d *Display) show(tag element.Tag, el *element.Element, duration time.Duration) error {
	if el == nil {
		return &element.ArgumentError{Field: "element", Reason: "element is nil"}
	}

	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	s := &stored{tag: tag, el: el, seq: d.seq}
	if interval := el.UpdateInterval(); interval > 0 {
		s.nextUpdate = now.Add(interval)
	}
	d.elements[tag] = s

	if duration > 0 {
		d.expiries.push(expiry{at: now.Add(duration), tag: tag, seq: s.seq})
	}

	d.dirty = true
	return nil
}

// Remove takes the element with tag off the display. It reports whether
// there was one.
func (d *Display) Remove(tag element.Tag) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.elements[tag]; !ok {
		return false
	}

	delete(d.elements, tag)
	d.dirty = true
	return true
}

// SetVisible hides or shows the element with tag without removing it. A tag
// stays hidden across replacements until it is made visible again.
func (d *Display) SetVisible(tag element.Tag, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, hidden := d.hidden[tag]
	if hidden == !visible {
		return
	}

	if visible {
		delete(d.hidden, tag)
	} else {
		d.hidden[tag] = struct{}{}
	}

	if _, ok := d.elements[tag]; ok {
		d.dirty = true
	}
}

// SetAspectRatio records the screen shape of the viewer.
func (d *Display) SetAspectRatio(r float64) error {
	if r <= 0 {
		return &element.ArgumentError{Field: "aspect_ratio", Reason: "must be positive"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.aspectRatio != r {
		d.aspectRatio = r
		d.dirty = true
	}
	return nil
}

func (d *Display) AspectRatio() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.aspectRatio
}

// Update requests a refresh on the next tick.
func (d *Display) Update() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// SuspendFor holds back refreshes for duration, while a hint from elsewhere
// occupies the viewer's screen. The display is refreshed once it ends.
func (d *Display) SuspendFor(duration time.Duration) {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if until := now.Add(duration); until.After(d.suspendedUntil) {
		d.suspendedUntil = until
	}
	d.dirty = true
}

// Len returns the number of elements on the display, hidden ones included.
func (d *Display) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.elements)
}

// Preview builds the payload the viewer would receive now without sending
// it.
func (d *Display) Preview() ([]byte, error) {
	d.mu.Lock()
	d.expire(d.now())
	viewer, elements := d.snapshot()
	d.mu.Unlock()

	return d.combiner.Build(viewer, elements)
}

// tick sends the display if anything changed, an update interval elapsed,
// or an element expired.
func (d *Display) tick(ctx context.Context, now time.Time) {
	d.mu.Lock()

	d.expire(now)

	for _, s := range d.elements {
		if s.nextUpdate.IsZero() || now.Before(s.nextUpdate) {
			continue
		}
		s.nextUpdate = now.Add(s.el.UpdateInterval())
		d.dirty = true
	}

	if !d.dirty || now.Before(d.suspendedUntil) {
		d.mu.Unlock()
		return
	}

	d.dirty = false
	viewer, elements := d.snapshot()
	d.mu.Unlock()

	if err := d.combiner.Combine(ctx, viewer, elements); err != nil {
		log.Error().Err(err).Str("viewer", d.viewer).Msg("failed to refresh display")
	}
}

// expire removes the elements due at now. Must be called with mu held.
func (d *Display) expire(now time.Time) {
	d.expiries.popDue(now, func(e expiry) {
		if s, ok := d.elements[e.tag]; ok && s.seq == e.seq {
			delete(d.elements, e.tag)
			d.dirty = true
		}
	})
}

// snapshot returns the visible elements in paint order. Must be called with
// mu held.
func (d *Display) snapshot() (combiner.Viewer, []*element.Element) {
	list := make([]*stored, 0, len(d.elements))
	for tag, s := range d.elements {
		if _, hidden := d.hidden[tag]; !hidden {
			list = append(list, s)
		}
	}

	slices.SortFunc(list, func(a, b *stored) int {
		if c := cmp.Compare(a.el.ZIndex(), b.el.ZIndex()); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	elements := make([]*element.Element, len(list))
	for i, s := range list {
		elements[i] = s.el
	}

	return combiner.Viewer{ID: d.viewer, AspectRatio: d.aspectRatio}, elements
}
