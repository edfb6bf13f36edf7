// Package cache stores computed calculations keyed by a digest of the
// request. Calculations are pure functions of their inputs, so a cached
// result is always valid until it is evicted.
//
// Implementations include an in-process cache (go-cache), Redis, and a
// two-level read-through combination of both.
package cache

import (
	"context"
	"fmt"

	"github.com/atmx/payoff-engine/internal/model"
)

// Cache is the result cache interface.
type Cache interface {
	// Get returns the cached calculation for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) (*model.Calculation, bool, error)

	// Set stores calc under key.
	Set(ctx context.Context, key string, calc *model.Calculation) error
}

// Tiered checks a near cache first and falls back to a far cache,
// re-populating the near cache on a far hit. Writes go to both.
type Tiered struct {
	near Cache
	far  Cache
}

// NewTiered creates a two-level cache.
func NewTiered(near, far Cache) *Tiered {
	return &Tiered{near: near, far: far}
}

func (t *Tiered) Get(ctx context.Context, key string) (*model.Calculation, bool, error) {
	if calc, ok, err := t.near.Get(ctx, key); err == nil && ok {
		return calc, true, nil
	}

	// Near miss: read from far.
	calc, ok, err := t.far.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.near.Set(ctx, key, calc)
	return calc, true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, calc *model.Calculation) error {
	if err := t.near.Set(ctx, key, calc); err != nil {
		return err
	}
	return t.far.Set(ctx, key, calc)
}

func calcKey(key string) string { return fmt.Sprintf("payoff:calc:%s", key) }
