package database

import (
	"context"
	"time"
)

// DispatchGate is the single synchronization point between overlapping ticks.
// TryClaim is an atomic create-if-absent on the occurrence key: exactly one
// caller gets true, every other caller (including a concurrent tick) gets
// false. A ttl of zero makes the claim permanent, which is how one-shot
// occurrences are kept from ever re-firing; daily occurrences pass a ttl
// reaching past their calendar date so tomorrow's key is claimable fresh.
type DispatchGate interface {
	TryClaim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
