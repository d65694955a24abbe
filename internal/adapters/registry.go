package adapters

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
)

// Registry holds one adapter per sport. It is built once at process start
// and injected wherever dispatch by sport is needed; adding a sport is one
// adapter plus one Register call, nothing else changes.
type Registry struct {
	mu       sync.RWMutex
	adapters map[sport.Sport]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[sport.Sport]Adapter)}
}

func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return fmt.Errorf("adapter is required")
	}
	s := a.Sport()
	if !s.Valid() {
		return fmt.Errorf("adapter sport %q is not supported", s)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[s]; exists {
		return fmt.Errorf("adapter for %s already registered", s)
	}
	r.adapters[s] = a
	return nil
}

// Get returns the adapter for the sport, or ErrSportNotSupported.
func (r *Registry) Get(s sport.Sport) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[s]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSportNotSupported, s)
	}
	return a, nil
}

// Available lists the sports whose adapters pass their configuration check,
// sorted for stable output.
func (r *Registry) Available() []sport.Sport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sport.Sport, 0, len(r.adapters))
	for s, a := range r.adapters {
		if a.Available() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
