// Package limits enforces per-request size limits on payoff calculations.
//
// The engine itself accepts any positive position; these guard rails keep a
// single request from asking the service for an absurd position or a curve
// too large to serialise.
package limits

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrLotsExceeded is returned when a request asks for more lots than allowed.
	ErrLotsExceeded = errors.New("limits: lots limit exceeded")

	// ErrMultiplierExceeded is returned when lots * lotSize exceeds the maximum.
	ErrMultiplierExceeded = errors.New("limits: position multiplier limit exceeded")

	// ErrNotionalExceeded is returned when lots * lotSize * reference price
	// exceeds the maximum notional.
	ErrNotionalExceeded = errors.New("limits: notional limit exceeded")

	// ErrCurveTooLarge is returned when a request samples too many spots.
	ErrCurveTooLarge = errors.New("limits: curve point limit exceeded")
)

// Limiter holds the configured maxima. A zero or negative maximum disables
// that check.
type Limiter struct {
	// MaxLots caps the number of contracts.
	MaxLots int64

	// MaxMultiplier caps lots * lotSize.
	MaxMultiplier int64

	// MaxNotional caps lots * lotSize * reference price.
	MaxNotional decimal.Decimal

	// MaxPoints caps the number of sampled spot prices.
	MaxPoints int
}

// NewLimiter creates a limiter with the given maxima.
func NewLimiter(maxLots, maxMultiplier int64, maxNotional decimal.Decimal, maxPoints int) *Limiter {
	return &Limiter{
		MaxLots:       maxLots,
		MaxMultiplier: maxMultiplier,
		MaxNotional:   maxNotional,
		MaxPoints:     maxPoints,
	}
}

// CheckPosition validates lots and lot size against the limits.
//
// reference is the price the position is centred on; it is only used for
// the notional check.
func (l *Limiter) CheckPosition(lots, lotSize int64, reference decimal.Decimal) error {
	if l == nil {
		return nil
	}

	// 1. Contract count.
	if l.MaxLots > 0 && lots > l.MaxLots {
		return fmt.Errorf("%w: %d > %d", ErrLotsExceeded, lots, l.MaxLots)
	}

	// 2. Share multiplier.
	mult := decimal.NewFromInt(lots).Mul(decimal.NewFromInt(lotSize))
	if l.MaxMultiplier > 0 && mult.GreaterThan(decimal.NewFromInt(l.MaxMultiplier)) {
		return fmt.Errorf("%w: %s > %d", ErrMultiplierExceeded, mult, l.MaxMultiplier)
	}

	// 3. Notional exposure.
	if l.MaxNotional.IsPositive() {
		notional := mult.Mul(reference.Abs())
		if notional.GreaterThan(l.MaxNotional) {
			return fmt.Errorf("%w: %s > %s", ErrNotionalExceeded, notional, l.MaxNotional)
		}
	}

	return nil
}

// CheckPoints validates the number of sampled spots.
func (l *Limiter) CheckPoints(n int) error {
	if l == nil || l.MaxPoints <= 0 {
		return nil
	}
	if n > l.MaxPoints {
		return fmt.Errorf("%w: %d > %d", ErrCurveTooLarge, n, l.MaxPoints)
	}
	return nil
}

// IsLimit reports whether err is one of the limit errors.
func IsLimit(err error) bool {
	return errors.Is(err, ErrLotsExceeded) ||
		errors.Is(err, ErrMultiplierExceeded) ||
		errors.Is(err, ErrNotionalExceeded) ||
		errors.Is(err, ErrCurveTooLarge)
}
