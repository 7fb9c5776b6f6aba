package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yeyakmania/booking-api/internal/domain/account"
)

const statePrefix = "oauth_state:"

// RedisStates keeps OAuth state values in redis so any replica can finish
// the callback.
type RedisStates struct {
	client *redis.Client
}

var _ account.StateStore = (*RedisStates)(nil)

func NewRedisStates(client *redis.Client) *RedisStates {
	return &RedisStates{client: client}
}

func (s *RedisStates) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.SetNX(ctx, statePrefix+state, 1, ttl).Err()
}

func (s *RedisStates) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, statePrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryStates is the single-process fallback used when no redis is
// configured.
type MemoryStates struct {
	mu     sync.Mutex
	states map[string]time.Time
	now    func() time.Time
}

var _ account.StateStore = (*MemoryStates)(nil)

func NewMemoryStates() *MemoryStates {
	return &MemoryStates{states: map[string]time.Time{}, now: time.Now}
}

func (s *MemoryStates) Save(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.states {
		if !now.Before(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(ttl)
	return nil
}

func (s *MemoryStates) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.states[state]
	delete(s.states, state)
	return ok && s.now().Before(exp), nil
}
