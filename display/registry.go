// Package display keeps the elements shown to each viewer and refreshes
// viewers whose display changed.
package display

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/parser"
	"golang.org/x/sync/errgroup"
)

// Options configure a [Registry]. Zero fields take their defaults.
type Options struct {
	// Now is the clock used for expirations and update intervals.
	Now func() time.Time

	// AspectRatio is the screen shape assumed for a new viewer.
	AspectRatio float64

	// Concurrency bounds how many displays are combined at once per tick.
	Concurrency int
}

// Registry owns the display of every viewer.
type Registry struct {
	combiner *combiner.Combiner
	opts     Options

	mu       sync.Mutex
	displays map[string]*Display
}

func NewRegistry(c *combiner.Combiner, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AspectRatio <= 0 {
		opts.AspectRatio = parser.ReferenceAspectRatio
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	return &Registry{
		combiner: c,
		opts:     opts,
		displays: make(map[string]*Display),
	}
}

// Get returns the display of viewer, creating it if needed.
func (r *Registry) Get(viewer string) *Display {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.displays[viewer]
	if !ok {
		d = newDisplay(viewer, r.combiner, r.opts.Now, r.opts.AspectRatio)
		r.displays[viewer] = d
	}
	return d
}

// Lookup returns the display of viewer if it exists.
func (r *Registry) Lookup(viewer string) (*Display, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.displays[viewer]
	return d, ok
}

// Forget drops the display of a viewer that left.
func (r *Registry) Forget(viewer string) {
	r.mu.Lock()
	delete(r.displays, viewer)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.displays)
}

// Tick refreshes every display that needs it. Failures are logged per
// viewer; one viewer never blocks the others.
func (r *Registry) Tick(ctx context.Context, now time.Time) {
	r.mu.Lock()
	displays := make([]*Display, 0, len(r.displays))
	for _, d := range r.displays {
		displays = append(displays, d)
	}
	r.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for _, d := range displays {
		g.Go(func() error {
			d.tick(ctx, now)
			return nil
		})
	}

	_ = g.Wait()
}

// Run ticks every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Tick(ctx, r.opts.Now())
		}
	}
}
