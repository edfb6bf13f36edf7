// Package calc is the transport around the payoff engine: it turns decoded
// requests into calculations, serves them over HTTP, and broadcasts each
// computed summary to WebSocket subscribers.
//
// The engine is stateless, so Service holds no locks on the calculation
// path; concurrent requests share only the optional cache and hub.
package calc

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/cache"
	"github.com/atmx/payoff-engine/internal/grid"
	"github.com/atmx/payoff-engine/internal/limits"
	"github.com/atmx/payoff-engine/internal/logging"
	"github.com/atmx/payoff-engine/internal/metrics"
	"github.com/atmx/payoff-engine/internal/model"
	"github.com/atmx/payoff-engine/internal/payoff"
	"github.com/atmx/payoff-engine/internal/request"
)

// Default batch bounds.
const (
	DefaultBatchMaxItems    = 20
	DefaultBatchConcurrency = 4
)

// Service computes payoff calculations.
type Service struct {
	grid    grid.Config
	limiter *limits.Limiter
	cache   cache.Cache // optional result cache
	wsHub   *WSHub      // optional WebSocket hub for live summaries

	batchMaxItems    int
	batchConcurrency int

	now   func() time.Time
	newID func() string
}

// NewService creates a calculation service.
// Pass nil for c or hub to disable caching or broadcasting.
func NewService(g grid.Config, limiter *limits.Limiter, c cache.Cache, hub *WSHub) *Service {
	return &Service{
		grid:             g,
		limiter:          limiter,
		cache:            c,
		wsHub:            hub,
		batchMaxItems:    DefaultBatchMaxItems,
		batchConcurrency: DefaultBatchConcurrency,
		now:              time.Now,
		newID:            func() string { return uuid.New().String() },
	}
}

// SetBatchLimits bounds the batch endpoint. Non-positive values keep the
// current setting.
func (s *Service) SetBatchLimits(maxItems, concurrency int) {
	if maxItems > 0 {
		s.batchMaxItems = maxItems
	}
	if concurrency > 0 {
		s.batchConcurrency = concurrency
	}
}

// Spots returns the spots a request is sampled on: its explicit spotPrices,
// or the default grid around its reference price.
func (s *Service) Spots(req *request.Request) ([]decimal.Decimal, error) {
	if req.Spots != nil {
		return req.Spots, nil
	}
	return s.grid.Spots(req.Reference())
}

// Compute runs the full pipeline for one request: validation, limits,
// spot grid, cache lookup, engine, cache store, broadcast.
func (s *Service) Compute(ctx context.Context, req *request.Request) (*model.Calculation, error) {
	start := time.Now()
	strategy := string(req.Strategy)
	logger := logging.FromContext(ctx)

	calc, err := s.compute(ctx, req)
	metrics.CalculationsTotal.WithLabelValues(strategy, outcome(err)).Inc()
	if err != nil {
		if limits.IsLimit(err) {
			metrics.LimitRejections.Inc()
		}
		logger.Debug("payoff rejected", "strategy", strategy, "err", err)
		return nil, err
	}
	metrics.CalculationLatency.WithLabelValues(strategy).Observe(time.Since(start).Seconds())

	logger.Info("payoff calculated",
		"id", calc.ID,
		"strategy", strategy,
		"lots", calc.Lots,
		"lot_size", calc.LotSize,
		"points", len(calc.Curve),
		"max_profit", calc.MaxProfit.String(),
		"max_loss", calc.MaxLoss.String(),
		"cached", calc.Cached,
	)
	return calc, nil
}

func (s *Service) compute(ctx context.Context, req *request.Request) (*model.Calculation, error) {
	// 1. Inputs, before anything is sized or sampled.
	if err := req.Position.Validate(); err != nil {
		return nil, err
	}
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}

	// 2. Limits.
	if err := s.limiter.CheckPosition(req.Position.Lots, req.Position.LotSize, req.Reference()); err != nil {
		return nil, err
	}
	spots, err := s.Spots(req)
	if err != nil {
		return nil, err
	}
	if err := s.limiter.CheckPoints(len(spots)); err != nil {
		return nil, err
	}
	metrics.CurvePoints.Observe(float64(len(spots)))

	// 3. Cache.
	key := req.Key()
	if s.cache != nil {
		hit, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			logging.FromContext(ctx).Warn("cache lookup failed", "err", err)
		case ok:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			hit.Cached = true
			return hit, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	// 4. Engine.
	res, err := payoff.Calculate(req.Params, req.Position, spots)
	if err != nil {
		return nil, err
	}
	calc := model.NewCalculation(s.newID(), req.Position, res, s.now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, calc); err != nil {
			logging.FromContext(ctx).Warn("cache store failed", "err", err)
		}
	}

	// 5. Broadcast.
	if s.wsHub != nil {
		s.wsHub.Broadcast(WSMessage{Type: MsgPayoffCalculated, Calculation: calc.Summary()})
	}
	return calc, nil
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case limits.IsLimit(err), errors.Is(err, grid.ErrTooManyPoints), errors.Is(err, errBatchTooLarge):
		return http.StatusConflict
	case request.IsValidation(err), errors.Is(err, grid.ErrInvalidReference):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch statusFor(err) {
	case http.StatusConflict:
		return "limited"
	case http.StatusBadRequest:
		return "invalid"
	}
	return "error"
}
