// Package sink delivers finished payloads to viewers.
package sink

import (
	"context"
	"errors"
)

//go:generate mockgen -package mocksink -destination mock/sink.go github.com/Drolfothesgnir/hintstack/sink Sink

// ErrNoPayload is returned when no payload was sent to a viewer recently.
var ErrNoPayload = errors.New("no payload for viewer")

// Sink sends a payload to one viewer.
type Sink interface {
	Send(ctx context.Context, viewer string, payload []byte) error
}

// Func adapts a function to [Sink].
type Func func(ctx context.Context, viewer string, payload []byte) error

func (f Func) Send(ctx context.Context, viewer string, payload []byte) error {
	return f(ctx, viewer, payload)
}
