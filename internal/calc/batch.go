package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sourcegraph/conc/iter"

	"github.com/atmx/payoff-engine/internal/model"
	"github.com/atmx/payoff-engine/internal/request"
)

var errBatchTooLarge = errors.New("batch: too many requests")

// BatchRequest is the body of POST /api/v1/calculate/batch.
type BatchRequest struct {
	Requests []json.RawMessage `json:"requests"`
}

// BatchItem is the outcome of one request in a batch. Exactly one of
// Calculation and Error is set.
type BatchItem struct {
	Index       int                `json:"index"`
	Status      int                `json:"status"`
	Calculation *model.Calculation `json:"calculation,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// BatchResponse preserves request order.
type BatchResponse struct {
	Results []BatchItem `json:"results"`
}

// CalculateBatch handles POST /api/v1/calculate/batch. Items are computed
// concurrently and fail independently; the response is 200 whenever the
// envelope itself is valid.
func (s *Service) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	var body BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeFailure(w, r, fmt.Errorf("%w: %w", request.ErrMalformed, err))
		return
	}
	if len(body.Requests) == 0 {
		writeError(w, "requests must not be empty", http.StatusBadRequest)
		return
	}
	if len(body.Requests) > s.batchMaxItems {
		writeFailure(w, r, fmt.Errorf("%w: %d > %d", errBatchTooLarge, len(body.Requests), s.batchMaxItems))
		return
	}

	ctx := r.Context()
	type indexed struct {
		i   int
		raw json.RawMessage
	}
	items := make([]indexed, len(body.Requests))
	for i, raw := range body.Requests {
		items[i] = indexed{i, raw}
	}

	mapper := iter.Mapper[indexed, BatchItem]{MaxGoroutines: s.batchConcurrency}
	results := mapper.Map(items, func(it *indexed) BatchItem {
		out := BatchItem{Index: it.i, Status: http.StatusOK}
		req, err := request.Parse(it.raw)
		if err == nil {
			out.Calculation, err = s.Compute(ctx, req)
		}
		if err != nil {
			out.Status = statusFor(err)
			out.Error = err.Error()
			if out.Status == http.StatusInternalServerError {
				out.Error = "internal error"
			}
			out.Calculation = nil
		}
		return out
	})

	writeJSON(w, http.StatusOK, BatchResponse{Results: results})
}
