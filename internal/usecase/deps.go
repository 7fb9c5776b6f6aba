package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/domain/calendar"
	"github.com/yeyakmania/booking-api/internal/domain/store"
	"github.com/yeyakmania/booking-api/internal/events"
)

// Deps carries the collaborators shared by use cases. Calendar, Events and
// Audit may be nil; their side effects are then skipped.
type Deps struct {
	Store    store.Store
	Calendar calendar.Calendar
	Events   events.Publisher
	Audit    *audit.Dispatcher
	Logger   *slog.Logger

	Now             func() time.Time
	OutboundTimeout time.Duration
	RefundWindow    time.Duration
}

func (d Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Outbound derives a context for a third-party call. It survives the
// caller's cancellation but never outlives the outbound timeout.
func (d Deps) Outbound(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := d.OutboundTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// Publish sends an event and only logs a failure.
func (d Deps) Publish(ctx context.Context, topic string, payload any) {
	if d.Events == nil {
		return
	}
	if err := d.Events.Publish(ctx, topic, payload); err != nil {
		d.Log().Warn("event publish failed", "topic", topic, "error", err)
	}
}

func (d Deps) Log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
