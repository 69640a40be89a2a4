package element

import (
	"testing"
	"time"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/parser"
	"github.com/stretchr/testify/require"
)

func TestDefinition_Build(t *testing.T) {
	z := 7
	format := "<{0}>"
	d := Definition{
		Tag:                "score",
		Text:               "Score {0} {1} {2}",
		Position:           300,
		VerticalAlign:      "top",
		ZIndex:             &z,
		DurationMS:         1500,
		UpdateIntervalMS:   250,
		NoparseFormatItems: true,
		ResolutionAlign:    true,
		Parameters: []ParameterDefinition{
			{Type: ParameterText, Value: "42"},
			{Type: ParameterItem, ItemType: 3},
			{Type: ParameterKeybind, KeybindID: 9, Format: &format},
		},
	}

	el, err := d.Build()
	require.NoError(t, err)
	require.Equal(t, NewTag("score"), d.ElementTag())
	require.Equal(t, 1500*time.Millisecond, d.Duration())

	s := el.Settings()
	require.Equal(t, 300.0, s.Position)
	require.Equal(t, AlignTop, s.VerticalAlign)
	require.Equal(t, 7, s.ZIndex)
	require.Equal(t, 250*time.Millisecond, s.UpdateInterval)
	require.Equal(t, parser.ParsesFormatItems, s.Noparse)
	require.True(t, s.ResolutionAlign)
	require.Equal(t, []param.Parameter{
		param.String{Value: "42"},
		param.Item{ItemType: 3},
		param.Keybind{ID: 9, Format: "<{0}>"},
	}, s.Parameters)
}

func TestDefinition_Defaults(t *testing.T) {
	d := Definition{Text: "hi", Parameters: []ParameterDefinition{{Type: ParameterKeybind, KeybindID: 1}}}

	s, err := d.Settings()
	require.NoError(t, err)
	require.Equal(t, DefaultZIndex, s.ZIndex)
	require.Equal(t, AlignBottom, s.VerticalAlign)
	require.Equal(t, param.NewKeybind(1), s.Parameters[0])

	tag := d.ElementTag()
	require.True(t, tag.Unique())
	require.NotEqual(t, tag, d.ElementTag())
}

func TestDefinition_Curves(t *testing.T) {
	d := Definition{
		Text: "<size={0}>x",
		AnimatedPosition: &CurveDefinition{Keyframes: []KeyframeDefinition{
			{Time: 0, Value: 100},
			{Time: 1, Value: 200, InTangent: 100},
		}},
		Parameters: []ParameterDefinition{{
			Type: ParameterCurve,
			Curve: &CurveDefinition{
				Keyframes: []KeyframeDefinition{{Time: 2, Value: 1}, {Time: 0, Value: 0}},
				Offset:    0.5,
			},
		}},
	}

	s, err := d.Settings()
	require.NoError(t, err)

	require.NotNil(t, s.AnimatedPosition)
	frames := s.AnimatedPosition.Value.Frames()
	require.Len(t, frames, 2)
	require.Equal(t, param.KeyframeMode(0), frames[0].Mode)
	require.Equal(t, param.ModeTangents, frames[1].Mode)

	curve, ok := s.Parameters[0].(*param.Animated)
	require.True(t, ok)
	require.True(t, curve.Linear())
	require.Equal(t, 0.5, curve.Offset)
	// keyframes are sorted by time
	require.Equal(t, float32(0), curve.Value.Frames()[0].Time)
}

func TestDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		def   Definition
		field string
	}{
		{
			name:  "vertical_align",
			def:   Definition{Text: "x", VerticalAlign: "middle"},
			field: "vertical_align",
		},
		{
			name:  "curve_without_curve",
			def:   Definition{Text: "x", Parameters: []ParameterDefinition{{Type: ParameterCurve}}},
			field: "parameters[0]",
		},
		{
			name: "single_keyframe",
			def: Definition{Text: "x", Parameters: []ParameterDefinition{
				{Type: ParameterText},
				{Type: ParameterCurve, Curve: &CurveDefinition{Keyframes: []KeyframeDefinition{{}}}},
			}},
			field: "parameters[1]",
		},
		{
			name:  "unknown_parameter",
			def:   Definition{Text: "x", Parameters: []ParameterDefinition{{Type: "sound"}}},
			field: "parameters[0]",
		},
		{
			name:  "animated_position",
			def:   Definition{Text: "x", AnimatedPosition: &CurveDefinition{}},
			field: "animated_position",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.def.Build()
			require.ErrorIs(t, err, ErrInvalidArgument)

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			require.Equal(t, tc.field, argErr.Field)
		})
	}
}
