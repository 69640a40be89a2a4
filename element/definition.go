package element

import (
	"fmt"
	"time"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/parser"
)

// Parameter kinds accepted in [ParameterDefinition.Type].
const (
	ParameterText    = "text"
	ParameterItem    = "item"
	ParameterKeybind = "keybind"
	ParameterCurve   = "curve"
)

// Definition is the serialized form of a basic element, as accepted by the
// HTTP API and element files. Field checks use the `binding` tag.
type Definition struct {
	// Tag names the element on its display; empty means a unique tag.
	Tag string `json:"tag" yaml:"tag" binding:"omitempty,max=128,startsnotwith=unique:"`

	Text string `json:"text" yaml:"text" binding:"required,max=32768"`

	Position         float64          `json:"position" yaml:"position" binding:"gte=0,lte=1000"`
	AnimatedPosition *CurveDefinition `json:"animated_position,omitempty" yaml:"animated_position" binding:"omitempty"`
	VerticalAlign    string           `json:"vertical_align" yaml:"vertical_align" binding:"omitempty,oneof=bottom center top"`
	ZIndex           *int             `json:"z_index,omitempty" yaml:"z_index"`

	// DurationMS removes the element after this many milliseconds; 0 keeps
	// it until removed.
	DurationMS       int64 `json:"duration_ms" yaml:"duration_ms" binding:"gte=0"`
	UpdateIntervalMS int64 `json:"update_interval_ms" yaml:"update_interval_ms" binding:"gte=0"`

	NoparseEscapes     bool `json:"noparse_escapes" yaml:"noparse_escapes"`
	NoparseFormatItems bool `json:"noparse_format_items" yaml:"noparse_format_items"`
	ResolutionAlign    bool `json:"resolution_align" yaml:"resolution_align"`

	Parameters []ParameterDefinition `json:"parameters" yaml:"parameters" binding:"max=64,dive"`
}

type ParameterDefinition struct {
	Type string `json:"type" yaml:"type" binding:"required,oneof=text item keybind curve"`

	// Value is the text of a text parameter.
	Value string `json:"value" yaml:"value" binding:"max=32768"`

	ItemType int32 `json:"item_type" yaml:"item_type"`

	KeybindID int32 `json:"keybind_id" yaml:"keybind_id"`

	// Format is the keybind format, or the numeric format of a curve.
	Format *string `json:"format,omitempty" yaml:"format"`

	Curve *CurveDefinition `json:"curve,omitempty" yaml:"curve" binding:"omitempty"`
}

type CurveDefinition struct {
	Keyframes  []KeyframeDefinition `json:"keyframes" yaml:"keyframes" binding:"min=2,max=257,dive"`
	Offset     float64              `json:"offset" yaml:"offset"`
	RoundToInt bool                 `json:"round_to_int" yaml:"round_to_int"`
}

type KeyframeDefinition struct {
	Time       float32 `json:"time" yaml:"time"`
	Value      float32 `json:"value" yaml:"value"`
	InTangent  float32 `json:"in_tangent" yaml:"in_tangent"`
	OutTangent float32 `json:"out_tangent" yaml:"out_tangent"`
}

// ElementTag returns the tag the element is shown under.
func (d Definition) ElementTag() Tag {
	if d.Tag == "" {
		return NewUniqueTag()
	}
	return NewTag(d.Tag)
}

func (d Definition) Duration() time.Duration {
	return time.Duration(d.DurationMS) * time.Millisecond
}

// Settings converts the definition. Struct tag checks are assumed to have
// run; Settings still rejects what they cannot see.
func (d Definition) Settings() (Settings, error) {
	s := DefaultSettings(d.Position)

	if d.ZIndex != nil {
		s.ZIndex = *d.ZIndex
	}

	if d.VerticalAlign != "" {
		align, err := ParseVerticalAlign(d.VerticalAlign)
		if err != nil {
			return Settings{}, err
		}
		s.VerticalAlign = align
	}

	if d.AnimatedPosition != nil {
		p, err := d.AnimatedPosition.build(nil)
		if err != nil {
			return Settings{}, newArgumentError("animated_position", err.Error())
		}
		s.AnimatedPosition = p
	}

	if d.NoparseEscapes {
		s.Noparse |= parser.ParsesEscapeSequences
	}
	if d.NoparseFormatItems {
		s.Noparse |= parser.ParsesFormatItems
	}
	s.ResolutionAlign = d.ResolutionAlign
	s.UpdateInterval = time.Duration(d.UpdateIntervalMS) * time.Millisecond

	s.Parameters = make([]param.Parameter, 0, len(d.Parameters))
	for i, pd := range d.Parameters {
		p, err := pd.build()
		if err != nil {
			return Settings{}, newArgumentError(fmt.Sprintf("parameters[%d]", i), err.Error())
		}
		s.Parameters = append(s.Parameters, p)
	}

	return s, s.Validate()
}

// Build returns a basic element with the definition's text and settings.
func (d Definition) Build() (*Element, error) {
	s, err := d.Settings()
	if err != nil {
		return nil, err
	}
	return NewBasic(d.Text, s)
}

func (pd ParameterDefinition) build() (param.Parameter, error) {
	switch pd.Type {
	case ParameterText:
		return param.String{Value: pd.Value}, nil

	case ParameterItem:
		return param.Item{ItemType: pd.ItemType}, nil

	case ParameterKeybind:
		kb := param.NewKeybind(pd.KeybindID)
		if pd.Format != nil {
			kb.Format = *pd.Format
		}
		return kb, nil

	case ParameterCurve:
		if pd.Curve == nil {
			return nil, fmt.Errorf("curve parameter has no curve")
		}
		return pd.Curve.build(pd.Format)
	}

	return nil, fmt.Errorf("unknown parameter type %q", pd.Type)
}

func (cd CurveDefinition) build(format *string) (*param.Animated, error) {
	frames := make([]param.Keyframe, len(cd.Keyframes))
	for i, kf := range cd.Keyframes {
		frames[i] = param.Keyframe{
			Time:       kf.Time,
			Value:      kf.Value,
			InTangent:  kf.InTangent,
			OutTangent: kf.OutTangent,
		}
		if kf.InTangent != 0 || kf.OutTangent != 0 {
			frames[i].Mode = param.ModeTangents
		}
	}

	value, err := param.NewAnimatedValue(frames...)
	if err != nil {
		return nil, err
	}

	return &param.Animated{
		Value:      value,
		Format:     format,
		RoundToInt: cd.RoundToInt,
		Offset:     cd.Offset,
	}, nil
}
