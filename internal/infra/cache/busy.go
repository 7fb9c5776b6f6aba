package cache

import (
	"context"
	"errors"
	"time"

	"github.com/yeyakmania/booking-api/internal/domain/calendar"
	"github.com/yeyakmania/booking-api/internal/usecase/availability"
)

// BusyCache memoises Google free/busy answers.
type BusyCache struct {
	helper *Helper
}

var _ availability.BusyCache = (*BusyCache)(nil)

func NewBusyCache(helper *Helper) *BusyCache {
	return &BusyCache{helper: helper}
}

func (c *BusyCache) GetBusy(ctx context.Context, key string) ([]calendar.Interval, bool, error) {
	var busy []calendar.Interval
	err := c.helper.Get(ctx, key, &busy)
	switch {
	case err == nil:
		return busy, true, nil
	case errors.Is(err, ErrCacheNotFound), errors.Is(err, ErrCacheNotAvailable):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

func (c *BusyCache) SetBusy(ctx context.Context, key string, busy []calendar.Interval, ttl time.Duration) error {
	if busy == nil {
		busy = []calendar.Interval{}
	}
	return c.helper.Set(ctx, key, busy, ttl)
}
