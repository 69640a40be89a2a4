package element

import (
	"errors"
	"testing"
	"time"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/parser"
	"github.com/stretchr/testify/require"
)

func TestNewBasic_ParsesOnce(t *testing.T) {
	s := DefaultSettings(500)
	s.Parameters = []param.Parameter{param.String{Value: "Alice"}}

	el, err := NewBasic("Hi {0}!\n", s)
	require.NoError(t, err)

	first, err := el.ParsedForm("viewer-1")
	require.NoError(t, err)
	second, err := el.ParsedForm("viewer-2")
	require.NoError(t, err)

	require.Same(t, first.Offset, second.Offset)
	require.Len(t, first.Modifications, 2)
	require.Equal(t, parser.KindFormatItem, first.Modifications[0].Kind)
}

func TestNewDynamic_ParsesEveryTime(t *testing.T) {
	calls := 0
	el, err := NewDynamic(func(viewer string) (string, error) {
		calls++
		return "hello " + viewer, nil
	}, DefaultSettings(0))
	require.NoError(t, err)

	for range 3 {
		pf, err := el.ParsedForm("bob")
		require.NoError(t, err)
		require.Equal(t, "hello bob", pf.Text)
	}
	require.Equal(t, 3, calls)
}

func TestNewCached_ReusesUntilExpired(t *testing.T) {
	calls := map[string]int{}
	el, err := NewCached(func(viewer string) (string, error) {
		calls[viewer]++
		return viewer, nil
	}, time.Second, DefaultSettings(0))
	require.NoError(t, err)

	now := time.Unix(1000, 0)
	el.now = func() time.Time { return now }

	_, err = el.ParsedForm("a")
	require.NoError(t, err)
	_, err = el.ParsedForm("a")
	require.NoError(t, err)
	_, err = el.ParsedForm("b")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1, "b": 1}, calls)

	now = now.Add(time.Second)
	_, err = el.ParsedForm("a")
	require.NoError(t, err)
	require.Equal(t, 2, calls["a"])

	el.Invalidate()
	_, err = el.ParsedForm("a")
	require.NoError(t, err)
	_, err = el.ParsedForm("b")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 3, "b": 2}, calls)
}

func TestNewCached_ErrorIsNotCached(t *testing.T) {
	fail := true
	el, err := NewCached(func(string) (string, error) {
		if fail {
			return "", errors.New("not ready")
		}
		return "ready", nil
	}, time.Hour, DefaultSettings(0))
	require.NoError(t, err)

	_, err = el.ParsedForm("a")
	require.Error(t, err)

	fail = false
	pf, err := el.ParsedForm("a")
	require.NoError(t, err)
	require.Equal(t, "ready", pf.Text)
}

func TestParsedForm_ContentFaults(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name  string
		fn    ContentFunc
		check func(t *testing.T, err error)
	}{
		{
			name: "Error",
			fn:   func(string) (string, error) { return "", errBoom },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errBoom)
			},
		},
		{
			name: "Panic",
			fn:   func(string) (string, error) { panic("nil map") },
			check: func(t *testing.T, err error) {
				require.ErrorContains(t, err, "nil map")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dynamic, err := NewDynamic(tc.fn, DefaultSettings(0))
			require.NoError(t, err)
			_, err = dynamic.ParsedForm("v")
			tc.check(t, err)

			cached, err := NewCached(tc.fn, time.Minute, DefaultSettings(0))
			require.NoError(t, err)
			_, err = cached.ParsedForm("v")
			tc.check(t, err)
		})
	}
}

func TestConstructors_RejectInvalidArguments(t *testing.T) {
	content := func(string) (string, error) { return "", nil }

	testCases := []struct {
		name  string
		build func() error
		field string
	}{
		{
			name: "DynamicNilContent",
			build: func() error {
				_, err := NewDynamic(nil, DefaultSettings(0))
				return err
			},
			field: "content",
		},
		{
			name: "CachedNilContent",
			build: func() error {
				_, err := NewCached(nil, time.Second, DefaultSettings(0))
				return err
			},
			field: "content",
		},
		{
			name: "CachedZeroTTL",
			build: func() error {
				_, err := NewCached(content, 0, DefaultSettings(0))
				return err
			},
			field: "ttl",
		},
		{
			name: "NilParameter",
			build: func() error {
				s := DefaultSettings(0)
				s.Parameters = []param.Parameter{param.String{}, nil}
				_, err := NewBasic("x", s)
				return err
			},
			field: "parameters",
		},
		{
			name: "NegativeUpdateInterval",
			build: func() error {
				s := DefaultSettings(0)
				s.UpdateInterval = -time.Second
				_, err := NewBasic("x", s)
				return err
			},
			field: "update_interval",
		},
		{
			name: "UnknownAlign",
			build: func() error {
				s := DefaultSettings(0)
				s.VerticalAlign = 7
				_, err := NewBasic("x", s)
				return err
			},
			field: "vertical_align",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			require.ErrorIs(t, err, ErrInvalidArgument)

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			require.Equal(t, tc.field, argErr.Field)
		})
	}
}

func TestInvalidate_NoopForBasic(t *testing.T) {
	el, err := NewBasic("x", DefaultSettings(0))
	require.NoError(t, err)

	before, err := el.ParsedForm("v")
	require.NoError(t, err)
	el.Invalidate()
	after, err := el.ParsedForm("v")
	require.NoError(t, err)

	require.Same(t, before.Offset, after.Offset)
}

func TestParseVerticalAlign(t *testing.T) {
	testCases := []struct {
		in   string
		want VerticalAlign
	}{
		{"", AlignBottom},
		{"bottom", AlignBottom},
		{"Center", AlignCenter},
		{"TOP", AlignTop},
	}

	for _, tc := range testCases {
		got, err := ParseVerticalAlign(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)

		back, err := ParseVerticalAlign(got.String())
		require.NoError(t, err)
		require.Equal(t, got, back)
	}

	_, err := ParseVerticalAlign("middle")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTag(t *testing.T) {
	require.Equal(t, NewTag("score"), NewTag("score"))
	require.NotEqual(t, NewTag("score"), NewTag("timer"))

	a, b := NewUniqueTag(), NewUniqueTag()
	require.NotEqual(t, a, b)
	require.True(t, a.Unique())

	// a named tag never collides with a unique one, even with the same id
	require.NotEqual(t, a, NewTag(a.ID()))

	shown := map[Tag]string{NewTag("score"): "old", a: "unique"}
	shown[NewTag("score")] = "new"
	require.Len(t, shown, 2)
	require.Equal(t, "new", shown[NewTag("score")])
}

func TestParseTag(t *testing.T) {
	named := NewTag("score")
	require.Equal(t, named, ParseTag(named.String()))

	unique := NewUniqueTag()
	require.Equal(t, unique, ParseTag(unique.String()))
	require.NotEqual(t, NewTag(unique.ID()), ParseTag(unique.String()))
}
