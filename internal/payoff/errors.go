package payoff

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownStrategy is returned for identifiers missing from the registry.
	ErrUnknownStrategy = errors.New("payoff: unknown strategy")

	// ErrInvalidPosition is returned when lots or lotSize is not positive.
	ErrInvalidPosition = errors.New("payoff: lots and lot size must be positive")

	// ErrInvalidStrike is returned when a strike or stock price is not positive.
	ErrInvalidStrike = errors.New("payoff: strike must be positive")

	// ErrInvalidPremium is returned when a premium is negative.
	ErrInvalidPremium = errors.New("payoff: premium must be non-negative")

	// ErrStrikeOrder is returned when multi-leg strikes are not in the
	// strategy's canonical order.
	ErrStrikeOrder = errors.New("payoff: strikes out of order")

	// ErrUnequalWings is returned for call butterflies whose wings differ in width.
	ErrUnequalWings = errors.New("payoff: butterfly wings must be equal")

	// ErrNoSpots is returned when there is nothing to sample.
	ErrNoSpots = errors.New("payoff: spot price sequence is empty")

	// ErrInvalidSpots is returned when spots are negative or not strictly ascending.
	ErrInvalidSpots = errors.New("payoff: spot prices must be non-negative and strictly ascending")
)

func checkStrike(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s = %s", ErrInvalidStrike, name, v)
	}
	return nil
}

func checkPremium(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s = %s", ErrInvalidPremium, name, v)
	}
	return nil
}

// checkAscending requires strictly ascending strikes, named for the error message.
func checkAscending(names []string, values ...decimal.Decimal) error {
	for i := 1; i < len(values); i++ {
		if !values[i-1].LessThan(values[i]) {
			return fmt.Errorf("%w: %s (%s) must be below %s (%s)",
				ErrStrikeOrder, names[i-1], values[i-1], names[i], values[i])
		}
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
