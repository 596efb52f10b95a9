package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const claimKeyPrefix = "reminder:claim:"

type redisDispatchGate struct {
	client *redis.Client
}

func NewRedisDispatchGate(client *redis.Client) DispatchGate {
	return &redisDispatchGate{client: client}
}

// TryClaim relies on SET NX for the atomic check-and-set; a read-then-write
// sequence here would let two overlapping ticks both observe "not claimed".
func (g *redisDispatchGate) TryClaim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	claimedAt := time.Now().UTC().Format(time.RFC3339)

	ok, err := g.client.SetNX(ctx, claimKeyPrefix+key, claimedAt, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim occurrence %s: %v", key, err)
	}
	return ok, nil
}
