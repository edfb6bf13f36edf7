// Package grid generates the ascending spot-price sequence a payoff curve
// is sampled on, centred on a strategy's reference price.
package grid

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidReference is returned when the reference price is not positive.
	ErrInvalidReference = errors.New("grid: reference price must be positive")

	// ErrInvalidConfig is returned for impossible factor/step settings.
	ErrInvalidConfig = errors.New("grid: invalid configuration")

	// ErrTooManyPoints is returned when the range would exceed MaxPoints.
	ErrTooManyPoints = errors.New("grid: too many points")
)

// Config controls the sampled range [LowerFactor*ref, UpperFactor*ref].
type Config struct {
	LowerFactor decimal.Decimal
	UpperFactor decimal.Decimal
	Step        decimal.Decimal
	Precision   int32 // decimal places each spot is rounded to
	MaxPoints   int   // 0 means no cap
}

// Default samples 85%..115% of the reference in whole-unit steps.
func Default() Config {
	return Config{
		LowerFactor: decimal.NewFromFloat(0.85),
		UpperFactor: decimal.NewFromFloat(1.15),
		Step:        decimal.NewFromInt(1),
		Precision:   0,
		MaxPoints:   5000,
	}
}

// Validate rejects configurations that cannot produce a grid.
func (c Config) Validate() error {
	switch {
	case c.LowerFactor.IsNegative():
		return fmt.Errorf("%w: lower factor %s is negative", ErrInvalidConfig, c.LowerFactor)
	case !c.LowerFactor.LessThan(c.UpperFactor):
		return fmt.Errorf("%w: lower factor %s must be below upper factor %s", ErrInvalidConfig, c.LowerFactor, c.UpperFactor)
	case !c.Step.IsPositive():
		return fmt.Errorf("%w: step %s must be positive", ErrInvalidConfig, c.Step)
	case c.Precision < 0:
		return fmt.Errorf("%w: precision %d is negative", ErrInvalidConfig, c.Precision)
	case c.MaxPoints < 0:
		return fmt.Errorf("%w: max points %d is negative", ErrInvalidConfig, c.MaxPoints)
	}
	return nil
}

// Spots walks from LowerFactor*ref to UpperFactor*ref in Step increments,
// rounding each value to Precision places. Values that collapse onto the
// previous one after rounding are dropped, so the result is strictly ascending.
func (c Config) Spots(reference decimal.Decimal) ([]decimal.Decimal, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !reference.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReference, reference)
	}

	start := reference.Mul(c.LowerFactor)
	end := reference.Mul(c.UpperFactor)

	if c.MaxPoints > 0 {
		n := end.Sub(start).Div(c.Step).Floor().IntPart() + 1
		if n > int64(c.MaxPoints) {
			return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyPoints, n, c.MaxPoints)
		}
	}

	var out []decimal.Decimal
	for s := start; s.LessThanOrEqual(end); s = s.Add(c.Step) {
		v := s.Round(c.Precision)
		if len(out) > 0 && !out[len(out)-1].LessThan(v) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Spots generates a grid with the default configuration.
func Spots(reference decimal.Decimal) ([]decimal.Decimal, error) {
	return Default().Spots(reference)
}
