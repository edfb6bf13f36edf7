package calc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/atmx/payoff-engine/internal/logging"
	"github.com/atmx/payoff-engine/internal/model"
	"github.com/atmx/payoff-engine/internal/payoff"
	"github.com/atmx/payoff-engine/internal/request"
)

// MaxBodyBytes caps request bodies on the calculation endpoints.
const MaxBodyBytes = 1 << 20

// Routes mounts the calculation API on r.
func (s *Service) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/strategies", s.ListStrategies)
		r.Get("/strategies/{strategyID}", s.GetStrategy)
		r.Post("/calculate", s.Calculate)
		r.Post("/calculate/batch", s.CalculateBatch)
		r.Get("/grid", s.Grid)
		if s.wsHub != nil {
			r.Get("/ws", s.wsHub.HandleWS)
		}
	})

	// Legacy path kept for older clients.
	r.Post("/calculate", s.Calculate)
}

// ListStrategies handles GET /api/v1/strategies.
func (s *Service) ListStrategies(w http.ResponseWriter, r *http.Request) {
	catalog := payoff.Catalog()
	out := make([]model.StrategyInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, strategyInfo(info))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetStrategy handles GET /api/v1/strategies/{strategyID}.
func (s *Service) GetStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := payoff.ParseID(chi.URLParam(r, "strategyID"))
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	info, _ := payoff.Describe(id)
	writeJSON(w, http.StatusOK, strategyInfo(info))
}

func strategyInfo(info payoff.Info) model.StrategyInfo {
	fields, _ := request.Fields(info.ID)
	return model.StrategyInfo{
		ID:          info.ID,
		Name:        info.Name,
		Outlook:     info.Outlook,
		Fields:      fields,
		Approximate: info.Approximate,
	}
}

// Calculate handles POST /api/v1/calculate and the legacy POST /calculate.
func (s *Service) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := request.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	calc, err := s.Compute(r.Context(), req)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

// Grid handles GET /api/v1/grid?reference=100, previewing the default
// spot grid. A strategy query selects the reference from its parameters
// instead, e.g. ?strategy=long-call&strike=100&premium=5.
func (s *Service) Grid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var ref decimal.Decimal
	if q.Get(request.FieldStrategy) != "" {
		fields := make(map[string]any, len(q))
		for k := range q {
			switch k {
			case request.FieldLots, request.FieldLotSize, request.FieldSpots:
				continue
			}
			fields[k] = q.Get(k)
		}
		req, err := request.FromFields(fields)
		if err != nil {
			writeFailure(w, r, err)
			return
		}
		if err := req.Params.Validate(); err != nil {
			writeFailure(w, r, err)
			return
		}
		ref = req.Reference()
	} else {
		v, err := decimal.NewFromString(q.Get("reference"))
		if err != nil {
			writeError(w, "reference must be a number", http.StatusBadRequest)
			return
		}
		ref = v
	}

	spots, err := s.grid.Spots(ref)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.GridResponse{Reference: ref, Spots: spots})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeFailure classifies err. Internal errors are logged and hidden.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("calculation failed", "err", err)
		writeError(w, "internal error", status)
		return
	}
	writeError(w, err.Error(), status)
}
