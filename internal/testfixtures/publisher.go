package testfixtures

import (
	"context"
	"sync"

	"github.com/yeyakmania/booking-api/internal/events"
)

type Published struct {
	Topic   string
	Payload any
}

// Recorder is an events.Publisher that keeps every message.
type Recorder struct {
	mu   sync.Mutex
	msgs []Published
	Err  error
}

var _ events.Publisher = (*Recorder)(nil)

func (r *Recorder) Publish(_ context.Context, topic string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Published{Topic: topic, Payload: payload})
	return r.Err
}

func (r *Recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Topic)
	}
	return out
}

func (r *Recorder) Messages() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Published(nil), r.msgs...)
}
