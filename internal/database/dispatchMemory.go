package database

import (
	"context"
	"sync"
	"time"
)

type memoryClaim struct {
	claimedAt time.Time
	expiresAt time.Time // zero = permanent
}

// memoryDispatchGate is the fallback used when Redis is not configured. It
// gives exactly-once guarantees within a single process only; deployments
// running more than one engine instance need the Redis gate.
type memoryDispatchGate struct {
	mu     sync.Mutex
	claims map[string]memoryClaim
}

func NewMemoryDispatchGate() *memoryDispatchGate {
	return &memoryDispatchGate{claims: make(map[string]memoryClaim)}
}

func (g *memoryDispatchGate) TryClaim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if claim, exists := g.claims[key]; exists {
		if claim.expiresAt.IsZero() || now.Before(claim.expiresAt) {
			return false, nil
		}
		// Claim expired, eligible again.
	}

	claim := memoryClaim{claimedAt: now}
	if ttl > 0 {
		claim.expiresAt = now.Add(ttl)
	}
	g.claims[key] = claim

	return true, nil
}

// Sweep drops expired claims so the map does not grow without bound. Redis
// handles this with key TTLs; the in-memory gate needs a periodic pass.
func (g *memoryDispatchGate) Sweep(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for key, claim := range g.claims {
		if !claim.expiresAt.IsZero() && now.After(claim.expiresAt) {
			delete(g.claims, key)
			removed++
		}
	}
	return removed
}
