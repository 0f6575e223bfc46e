package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/store"
)

const maxBodyBytes = 1 << 20

type loanRequest struct {
	Name      string          `json:"name"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Minimum   decimal.Decimal `json:"minimum"`
}

type planRequest struct {
	Loans         []loanRequest   `json:"loans"`
	Contribution  decimal.Decimal `json:"contribution"`
	Strategy      string          `json:"strategy"`
	Years         int             `json:"years"`
	Start         string          `json:"start"` // YYYY-MM
	EmergencyFund *store.Fund     `json:"emergency_fund"`
}

type errorResponse struct {
	Error   string           `json:"error"`
	Field   string           `json:"field,omitempty"`
	Minimum *decimal.Decimal `json:"minimum,omitempty"`
}

// badRequest marks request problems found before the engine runs.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeInput(w, r)
	if err != nil {
		s.writePlanError(w, err)
		return
	}

	res, err := pipeline.Run(in)
	if err != nil {
		s.writePlanError(w, err)
		return
	}

	if s.cfg.History != nil {
		if err := s.cfg.History.RecordRun(r.Context(), res.Record(time.Now())); err != nil {
			s.log.Warn("recording run", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	in, err := s.decodeInput(w, r)
	if err != nil {
		s.writePlanError(w, err)
		return
	}

	sums, err := pipeline.Compare(in)
	if err != nil {
		s.writePlanError(w, err)
		return
	}
	cheapest, _ := engine.Cheapest(sums)
	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": sums,
		"cheapest":   cheapest.Strategy,
	})
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (pipeline.Input, error) {
	var req planRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return pipeline.Input{}, badRequest{"invalid request body: " + err.Error()}
	}
	if len(req.Loans) == 0 {
		return pipeline.Input{}, badRequest{"at least one loan is required"}
	}

	in := pipeline.Input{
		Contribution: req.Contribution,
		Years:        s.cfg.Years,
		Fund:         req.EmergencyFund,
		MaxPeriods:   s.cfg.MaxPeriods,
		Logger:       s.log,
	}
	if req.Years != 0 {
		if err := engine.ValidateYears(req.Years); err != nil {
			return pipeline.Input{}, err
		}
		in.Years = req.Years
	}

	name := req.Strategy
	if name == "" {
		name = s.cfg.Strategy
	}
	strategy, err := engine.StrategyByName(name)
	if err != nil {
		return pipeline.Input{}, err
	}
	in.Strategy = strategy

	if req.Start != "" {
		start, err := time.Parse("2006-01", strings.TrimSpace(req.Start))
		if err != nil {
			return pipeline.Input{}, badRequest{fmt.Sprintf("invalid start %q (want YYYY-MM)", req.Start)}
		}
		in.Start = start
	} else {
		now := time.Now().UTC()
		in.Start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	for _, lr := range req.Loans {
		l, err := model.NewLoan(lr.Name, lr.Principal, lr.Interest, lr.Minimum)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("loan %q: %w", lr.Name, err)
		}
		in.Loans = append(in.Loans, l)
	}
	return in, nil
}

// writePlanError maps domain errors onto status codes.
func (s *Server) writePlanError(w http.ResponseWriter, err error) {
	var (
		bad          badRequest
		validation   *engine.ValidationError
		insufficient *engine.InsufficientContributionError
		nonConverge  *engine.NonConvergenceError
	)
	switch {
	case errors.As(err, &bad):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: validation.Field})
	case errors.As(err, &insufficient):
		minimum := insufficient.Minimum
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Minimum: &minimum})
	case errors.As(err, &nonConverge):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Error("plan failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
