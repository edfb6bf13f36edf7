package limits

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestCheckPosition_WithinLimits(t *testing.T) {
	limiter := NewLimiter(100, 10000, d(1_000_000), 1000)

	if err := limiter.CheckPosition(10, 50, d(100)); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCheckPosition_LotsExceeded(t *testing.T) {
	limiter := NewLimiter(100, 0, decimal.Zero, 0)

	err := limiter.CheckPosition(101, 1, d(100))
	if !errors.Is(err, ErrLotsExceeded) {
		t.Errorf("expected ErrLotsExceeded, got %v", err)
	}
}

func TestCheckPosition_MultiplierExceeded(t *testing.T) {
	limiter := NewLimiter(100, 1000, decimal.Zero, 0)

	// 20 lots of 75 = 1500 > 1000.
	err := limiter.CheckPosition(20, 75, d(100))
	if !errors.Is(err, ErrMultiplierExceeded) {
		t.Errorf("expected ErrMultiplierExceeded, got %v", err)
	}
}

func TestCheckPosition_NotionalExceeded(t *testing.T) {
	limiter := NewLimiter(0, 0, d(10000), 0)

	// 2 * 50 * 150 = 15000 > 10000.
	err := limiter.CheckPosition(2, 50, d(150))
	if !errors.Is(err, ErrNotionalExceeded) {
		t.Errorf("expected ErrNotionalExceeded, got %v", err)
	}

	// 1 * 50 * 150 = 7500.
	if err := limiter.CheckPosition(1, 50, d(150)); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCheckPosition_ZeroDisables(t *testing.T) {
	limiter := NewLimiter(0, 0, decimal.Zero, 0)

	if err := limiter.CheckPosition(1_000_000, 1_000_000, d(1e6)); err != nil {
		t.Errorf("expected no error with limits disabled, got %v", err)
	}
	if err := limiter.CheckPoints(1 << 20); err != nil {
		t.Errorf("expected no error with limits disabled, got %v", err)
	}
}

func TestCheckPoints(t *testing.T) {
	limiter := NewLimiter(0, 0, decimal.Zero, 31)

	if err := limiter.CheckPoints(31); err != nil {
		t.Errorf("expected no error at the limit, got %v", err)
	}
	if err := limiter.CheckPoints(32); !errors.Is(err, ErrCurveTooLarge) {
		t.Errorf("expected ErrCurveTooLarge, got %v", err)
	}
}

func TestNilLimiter(t *testing.T) {
	var limiter *Limiter
	if err := limiter.CheckPosition(1, 1, d(1)); err != nil {
		t.Errorf("nil limiter should allow everything, got %v", err)
	}
}

func TestIsLimit(t *testing.T) {
	wrapped := fmt.Errorf("request: %w", ErrCurveTooLarge)
	if !IsLimit(wrapped) {
		t.Error("wrapped limit error not recognised")
	}
	if IsLimit(errors.New("other")) {
		t.Error("unrelated error recognised as limit")
	}
}
