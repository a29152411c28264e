package memory

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InboundDedup guards against carrier redelivery of the same inbound SMS.
// First claim of a carrier message id wins; replays within the TTL are
// dropped. A nil client degrades to always-first, which is acceptable when
// Redis is down since double answers beat no answers.
type InboundDedup struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewInboundDedup(rdb *redis.Client, ttl time.Duration) *InboundDedup {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &InboundDedup{rdb: rdb, ttl: ttl}
}

// Claim returns true when this carrier message id has not been seen within
// the TTL. SETNX makes the claim atomic across instances.
func (d *InboundDedup) Claim(ctx context.Context, carrierId string) (bool, error) {
	if d.rdb == nil || carrierId == "" {
		return true, nil
	}

	ok, err := d.rdb.SetNX(ctx, "sms:inbound:"+carrierId, 1, d.ttl).Result()
	if err != nil {
		return true, err
	}
	return ok, nil
}
