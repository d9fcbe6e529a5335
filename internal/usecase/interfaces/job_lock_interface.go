package interfaces

import (
	"context"
	"time"
)

// IJobLock guards periodic jobs across replicas. Acquire returns ok=false
// when another holder owns the key; release must be called when ok is true.
type IJobLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
