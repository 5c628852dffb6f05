//Package audit describes the event emitted after every relay call
package audit

import (
	"context"
	"time"
)

type Event struct {
	RequestID  string    `json:"requestId,omitempty"`
	Method     string    `json:"method"`
	APIPath    string    `json:"apiPath"`
	Status     int       `json:"status"`
	Outcome    string    `json:"outcome"`
	DurationMs int64     `json:"durationMs"`
	Timestamp  time.Time `json:"timestamp"`
}

//Publisher sends relay events somewhere. Publish must not block on the network.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

//PublisherFunc adapts a function to Publisher
type PublisherFunc func(ctx context.Context, event Event) error

func (f PublisherFunc) Publish(ctx context.Context, event Event) error {
	return f(ctx, event)
}

//Nop discards every event
var Nop Publisher = PublisherFunc(func(ctx context.Context, event Event) error { return nil })
