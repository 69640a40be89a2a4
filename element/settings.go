package element

import (
	"fmt"
	"strings"
	"time"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/parser"
)

// DefaultZIndex is the z-index of an element that does not set one.
const DefaultZIndex = 1

// VerticalAlign selects which edge of the element sits on its position.
type VerticalAlign uint8

const (
	// AlignBottom puts the last line on the position.
	AlignBottom VerticalAlign = iota

	// AlignCenter centers the element on the position.
	AlignCenter

	// AlignTop puts the first line on the position.
	AlignTop
)

func (a VerticalAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignTop:
		return "top"
	default:
		return "bottom"
	}
}

// ParseVerticalAlign accepts "top", "center" and "bottom". An empty string is
// bottom.
func ParseVerticalAlign(s string) (VerticalAlign, error) {
	switch strings.ToLower(s) {
	case "", "bottom":
		return AlignBottom, nil
	case "center":
		return AlignCenter, nil
	case "top":
		return AlignTop, nil
	default:
		return 0, newArgumentError("vertical_align", fmt.Sprintf("unknown alignment %q", s))
	}
}

// Settings describe where and how an element is shown.
type Settings struct {
	// Position is the vertical position, from 0 at the bottom of the screen
	// to 1000 at the top.
	Position float64

	// AnimatedPosition overrides Position when set.
	AnimatedPosition *param.Animated

	VerticalAlign VerticalAlign

	// ZIndex orders elements; higher shows above lower. Elements with the
	// same ZIndex are ordered by when they were shown.
	ZIndex int

	Noparse parser.NoparseSettings

	// ResolutionAlign enables screen-edge padding for <align> tags.
	ResolutionAlign bool

	// Parameters resolve the {n} placeholders of the text.
	Parameters []param.Parameter

	// UpdateInterval forces the display to refresh at this interval while
	// the element is shown. Zero disables it.
	UpdateInterval time.Duration
}

// DefaultSettings returns the settings of a bottom-aligned element at
// position with [DefaultZIndex].
func DefaultSettings(position float64) Settings {
	return Settings{Position: position, ZIndex: DefaultZIndex}
}

// Validate checks the fields that cannot be fixed up later.
func (s Settings) Validate() error {
	for i, p := range s.Parameters {
		if p == nil {
			return newArgumentError("parameters", fmt.Sprintf("parameter %d is nil", i))
		}
	}

	if s.VerticalAlign > AlignTop {
		return newArgumentError("vertical_align", fmt.Sprintf("unknown alignment %d", s.VerticalAlign))
	}

	if s.UpdateInterval < 0 {
		return newArgumentError("update_interval", "must not be negative")
	}

	return nil
}

func (s Settings) parserSettings() parser.Settings {
	return parser.Settings{
		Parameters:      s.Parameters,
		Noparse:         s.Noparse,
		ResolutionAlign: s.ResolutionAlign,
		WarningPolicy:   parser.WarnTruncate,
		MaxWarnings:     maxWarnings,
	}
}

// maxWarnings bounds the warnings kept per parse of an element.
const maxWarnings = 32
