package display

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/Drolfothesgnir/hintstack/sink"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	frames map[string][]combiner.Frame
}

func (r *recorder) send(t *testing.T) sink.Func {
	return func(_ context.Context, viewer string, payload []byte) error {
		frame, err := combiner.Decode(payload)
		require.NoError(t, err)

		r.mu.Lock()
		defer r.mu.Unlock()
		r.frames[viewer] = append(r.frames[viewer], frame)
		return nil
	}
}

func (r *recorder) count(viewer string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames[viewer])
}

func (r *recorder) last(t *testing.T, viewer string) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	frames := r.frames[viewer]
	require.NotEmpty(t, frames)
	return frames[len(frames)-1].Content
}

type fixture struct {
	now      time.Time
	rec      *recorder
	registry *Registry
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		now: time.Unix(1_700_000_000, 0),
		rec: &recorder{frames: make(map[string][]combiner.Frame)},
	}
	c := combiner.New(combiner.Options{}, f.rec.send(t))
	f.registry = NewRegistry(c, Options{
		Now:         func() time.Time { return f.now },
		Concurrency: 1,
	})
	return f
}

func (f *fixture) tick(d time.Duration) {
	f.now = f.now.Add(d)
	f.registry.Tick(context.Background(), f.now)
}

func text(t *testing.T, s string, z int) *element.Element {
	t.Helper()
	settings := element.DefaultSettings(500)
	settings.ZIndex = z
	el, err := element.NewBasic(s, settings)
	require.NoError(t, err)
	return el
}

func TestDisplay_ShowSendsOnNextTick(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	require.NoError(t, d.Show(element.NewTag("a"), text(t, "hello", 1)))
	require.Zero(t, f.rec.count("v"))

	f.tick(0)
	require.Equal(t, 1, f.rec.count("v"))
	require.True(t, strings.HasPrefix(f.rec.last(t, "v"), "hello"))

	f.tick(time.Second)
	require.Equal(t, 1, f.rec.count("v"))
}

func TestDisplay_PaintOrder(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	require.NoError(t, d.Show(element.NewTag("high"), text(t, "HIGH", 2)))
	require.NoError(t, d.Show(element.NewTag("low"), text(t, "LOW", 1)))
	require.NoError(t, d.Show(element.NewTag("later"), text(t, "LATER", 1)))

	f.tick(0)
	content := f.rec.last(t, "v")

	low, later, high := strings.Index(content, "LOW"), strings.Index(content, "LATER"), strings.Index(content, "HIGH")
	require.True(t, low >= 0 && low < later && later < high, content)

	// replacing an element moves it above its z-index peers
	require.NoError(t, d.Show(element.NewTag("low"), text(t, "LOW", 1)))
	f.tick(0)
	content = f.rec.last(t, "v")
	require.Less(t, strings.Index(content, "LATER"), strings.Index(content, "LOW"))
}

func TestDisplay_ShowForExpires(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	require.NoError(t, d.Show(element.NewTag("keep"), text(t, "keep", 1)))
	require.NoError(t, d.ShowFor(element.NewTag("temp"), text(t, "temp", 1), 5*time.Second))

	f.tick(0)
	require.Contains(t, f.rec.last(t, "v"), "temp")

	f.tick(4 * time.Second)
	require.Equal(t, 1, f.rec.count("v"))

	f.tick(time.Second)
	require.Equal(t, 2, f.rec.count("v"))
	require.NotContains(t, f.rec.last(t, "v"), "temp")
	require.Equal(t, 1, d.Len())
}

func TestDisplay_ReplacedElementIgnoresOldExpiry(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")
	tag := element.NewTag("t")

	require.NoError(t, d.ShowFor(tag, text(t, "first", 1), time.Second))
	require.NoError(t, d.Show(tag, text(t, "second", 1)))

	f.tick(0)
	f.tick(2 * time.Second)

	require.Equal(t, 1, f.rec.count("v"))
	require.Equal(t, 1, d.Len())

	payload, err := d.Preview()
	require.NoError(t, err)
	frame, err := combiner.Decode(payload)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(frame.Content, "second"))
}

func TestDisplay_SetVisible(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")
	tag := element.NewTag("secret")

	require.NoError(t, d.Show(tag, text(t, "secret", 1)))
	d.SetVisible(tag, false)
	f.tick(0)
	require.NotContains(t, f.rec.last(t, "v"), "secret")

	// hiding twice changes nothing
	d.SetVisible(tag, false)
	f.tick(0)
	require.Equal(t, 1, f.rec.count("v"))

	// the tag stays hidden across a replacement
	require.NoError(t, d.Show(tag, text(t, "secret", 1)))
	f.tick(0)
	require.NotContains(t, f.rec.last(t, "v"), "secret")

	d.SetVisible(tag, true)
	f.tick(0)
	require.Contains(t, f.rec.last(t, "v"), "secret")
}

func TestDisplay_UpdateInterval(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	calls := 0
	settings := element.DefaultSettings(0)
	settings.UpdateInterval = time.Second
	el, err := element.NewDynamic(func(string) (string, error) {
		calls++
		return "tick", nil
	}, settings)
	require.NoError(t, err)

	require.NoError(t, d.Show(element.NewTag("clock"), el))

	f.tick(0)
	require.Equal(t, 1, f.rec.count("v"))

	f.tick(500 * time.Millisecond)
	require.Equal(t, 1, f.rec.count("v"))

	f.tick(500 * time.Millisecond)
	require.Equal(t, 2, f.rec.count("v"))
	require.Equal(t, 2, calls)
}

func TestDisplay_SuspendFor(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	require.NoError(t, d.Show(element.NewTag("a"), text(t, "a", 1)))
	d.SuspendFor(3 * time.Second)

	f.tick(0)
	f.tick(2 * time.Second)
	require.Zero(t, f.rec.count("v"))

	f.tick(time.Second)
	require.Equal(t, 1, f.rec.count("v"))
}

func TestDisplay_SetAspectRatio(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	require.ErrorIs(t, d.SetAspectRatio(0), element.ErrInvalidArgument)

	require.NoError(t, d.SetAspectRatio(4.0/3))
	require.Equal(t, 4.0/3, d.AspectRatio())
	f.tick(0)
	require.Equal(t, 1, f.rec.count("v"))

	require.NoError(t, d.SetAspectRatio(4.0/3))
	f.tick(0)
	require.Equal(t, 1, f.rec.count("v"))
}

func TestDisplay_Remove(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")
	tag := element.NewUniqueTag()

	require.False(t, d.Remove(tag))
	require.NoError(t, d.Show(tag, text(t, "x", 1)))
	require.True(t, d.Remove(tag))
	require.Zero(t, d.Len())
}

func TestDisplay_InvalidArguments(t *testing.T) {
	f := newFixture(t)
	d := f.registry.Get("v")

	require.ErrorIs(t, d.Show(element.NewTag("a"), nil), element.ErrInvalidArgument)
	require.ErrorIs(t, d.ShowFor(element.NewTag("a"), text(t, "x", 1), 0), element.ErrInvalidArgument)
	require.Zero(t, d.Len())
}

func TestRegistry(t *testing.T) {
	f := newFixture(t)

	a := f.registry.Get("a")
	require.Same(t, a, f.registry.Get("a"))
	require.NotSame(t, a, f.registry.Get("b"))
	require.Equal(t, 2, f.registry.Len())

	f.registry.Forget("a")
	_, ok := f.registry.Lookup("a")
	require.False(t, ok)
	_, ok = f.registry.Lookup("b")
	require.True(t, ok)
}

func TestRegistry_TicksEveryViewer(t *testing.T) {
	f := newFixture(t)

	for _, viewer := range []string{"a", "b", "c"} {
		require.NoError(t, f.registry.Get(viewer).Show(element.NewTag("x"), text(t, viewer, 1)))
	}

	f.tick(0)
	for _, viewer := range []string{"a", "b", "c"} {
		require.Equal(t, 1, f.rec.count(viewer))
		require.True(t, strings.HasPrefix(f.rec.last(t, viewer), viewer))
	}
}
