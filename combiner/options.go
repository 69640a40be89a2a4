package combiner

import (
	"time"

	"github.com/Drolfothesgnir/hintstack/wire"
)

const (
	// HintMessageID is the network message id of a hint.
	HintMessageID uint16 = 0x2E5D

	// TextHint is the hint type byte of a text hint.
	TextHint uint8 = 1

	// BaselineOrigin is where an element at position 0 has its baseline, in
	// canvas pixels from the top.
	BaselineOrigin = 755

	// DefaultDuration keeps a hint up until the next payload replaces it.
	DefaultDuration = 99999 * time.Second
)

// Options configure a [Combiner]. Zero fields take their defaults.
type Options struct {
	// MaxContentLength is the content size above which breakable runs are
	// moved into parameters. It cannot exceed [wire.MaxStringLength].
	MaxContentLength int

	// Duration is how long the client shows the hint.
	Duration time.Duration

	MessageID uint16
}

func DefaultOptions() Options {
	return Options{
		MaxContentLength: wire.MaxStringLength,
		Duration:         DefaultDuration,
		MessageID:        HintMessageID,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxContentLength <= 0 || o.MaxContentLength > wire.MaxStringLength {
		o.MaxContentLength = def.MaxContentLength
	}
	if o.Duration <= 0 {
		o.Duration = def.Duration
	}
	if o.MessageID == 0 {
		o.MessageID = def.MessageID
	}
	return o
}
