package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"

	"github.com/stefanautomateed/sportsdata/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a process-local TTL cache. Entries carry an absolute expiry
// checked lazily on read; there is no background sweep. A nil *Store is a
// valid always-miss cache, which is how callers disable caching.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
}

// NewStore builds a store whose Set uses the given default TTL. A zero or
// negative TTL means entries never expire.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Key builds the deterministic cache signature for an operation and its
// parameters. Identical params always hash identically because sonic
// serializes struct fields in declaration order.
func Key(op string, params any) string {
	raw, err := sonic.Marshal(params)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", params))
	}
	digest := xxhash.New()
	_, _ = digest.WriteString(op)
	_, _ = digest.WriteString(":")
	_, _ = digest.Write(raw)
	return fmt.Sprintf("%s:%016x", op, digest.Sum64())
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if s == nil || key == "" {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	if s == nil {
		return
	}
	s.SetTTL(ctx, key, value, s.ttl)
}

// SetTTL stores a value under a caller-chosen TTL, overriding the store
// default. The verification overlay uses this for its long identity TTL and
// short stat-snapshot TTL.
func (s *Store) SetTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if s == nil || key == "" {
		return
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if s == nil || key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or runs loader exactly once across
// concurrent callers of the same key, caching a successful result.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
