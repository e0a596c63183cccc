package rates

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

// circuitState tracks the cooldown of one lookup after a failure.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpen(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

func (c *circuitState) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = time.Time{}
}

// FallbackLookup tries lookups in order, skipping those whose circuit is
// open. A lookup that errors (other than "not found") is skipped for the
// cooldown period. It implements port.RateLookup.
type FallbackLookup struct {
	lookups  []port.RateLookup
	names    []string
	circuits []*circuitState
	cooldown time.Duration
	now      func() time.Time
}

// NewFallbackLookup creates a FallbackLookup from an ordered list of lookups
// and their names.
func NewFallbackLookup(lookups []port.RateLookup, names []string, cooldown time.Duration) *FallbackLookup {
	circuits := make([]*circuitState, len(lookups))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &FallbackLookup{
		lookups:  lookups,
		names:    names,
		circuits: circuits,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Lookup implements port.RateLookup.
func (f *FallbackLookup) Lookup(ctx context.Context, keyword string) (string, error) {
	var lastErr error
	for i, l := range f.lookups {
		if f.circuits[i].isOpen(f.now()) {
			log.Printf("rates.FallbackLookup: skipping %s (circuit open)", f.names[i])
			continue
		}

		raw, err := l.Lookup(ctx, keyword)
		if err == nil {
			f.circuits[i].close()
			return raw, nil
		}
		lastErr = err
		if errors.Is(err, domain.ErrRateNotFound) {
			continue
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		log.Printf("rates.FallbackLookup: %s failed, opening circuit for %s: %v", f.names[i], f.cooldown, err)
		f.circuits[i].open(f.now().Add(f.cooldown))
	}

	if lastErr == nil || errors.Is(lastErr, domain.ErrRateNotFound) {
		return "", domain.ErrRateNotFound
	}
	return "", fmt.Errorf("all rate lookups failed: %w", lastErr)
}
