package oracle

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type rateEntry struct {
	rate       decimal.Decimal
	obtainedAt time.Time
}

// RateCache holds the last valid rate per currency pair. It is an explicit
// process-owned instance with an injected clock, shared between the request
// path and the background refresher.
type RateCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]rateEntry
}

func NewRateCache(ttl time.Duration, now func() time.Time) *RateCache {
	if now == nil {
		now = time.Now
	}
	return &RateCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]rateEntry),
	}
}

func (c *RateCache) Put(pair string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pair] = rateEntry{rate: rate, obtainedAt: c.now()}
}

// Fresh returns the cached rate only while it is within the TTL.
func (c *RateCache) Fresh(pair string) (decimal.Decimal, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[pair]
	if !ok || c.now().Sub(entry.obtainedAt) > c.ttl {
		return decimal.Zero, time.Time{}, false
	}
	return entry.rate, entry.obtainedAt, true
}

// Last returns the most recent cached rate regardless of age. Stale values
// back up the request path when the live oracle is down.
func (c *RateCache) Last(pair string) (decimal.Decimal, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[pair]
	if !ok {
		return decimal.Zero, time.Time{}, false
	}
	return entry.rate, entry.obtainedAt, true
}
