package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/store"
)

const scenarioOne = `{
	"loans": [{"name": "Test", "principal": "1000", "interest": "0.1", "minimum": "10"}],
	"contribution": "600",
	"years": 6,
	"start": "2026-11"
}`

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s := New(cfg)
	t.Cleanup(s.limiter.Stop)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPlan_OK(t *testing.T) {
	hist := store.NewMemory()
	s := newTestServer(t, Config{History: hist})

	w := do(t, s.Handler(), http.MethodPost, "/v1/plan", scenarioOne)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Minimum.Equal(decimal.RequireFromString("18.53")))
	assert.Equal(t, 2, res.Summary.Periods)
	assert.True(t, res.Summary.TotalInterest.Equal(decimal.RequireFromString("11.73")))
	require.Len(t, res.Months, 2)
	assert.Equal(t, time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), res.Months[0].Date)
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), res.DebtFree)

	runs, err := hist.Runs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, engine.AvalancheName, runs[0].Strategy)
}

func TestPlan_InsufficientContribution(t *testing.T) {
	s := newTestServer(t, Config{})
	body := strings.Replace(scenarioOne, `"600"`, `"18"`, 1)

	w := do(t, s.Handler(), http.MethodPost, "/v1/plan", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Monthly contribution (18.00) cannot be less than the minimum required payment of 18.53", resp.Error)
	require.NotNil(t, resp.Minimum)
	assert.True(t, resp.Minimum.Equal(decimal.RequireFromString("18.53")))
}

func TestPlan_NonConvergence(t *testing.T) {
	s := newTestServer(t, Config{MaxPeriods: 1})
	w := do(t, s.Handler(), http.MethodPost, "/v1/plan", scenarioOne)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "did not converge")
}

func TestPlan_BadRequests(t *testing.T) {
	s := newTestServer(t, Config{})
	h := s.Handler()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "malformed json", body: `{nope`},
		{name: "unknown field", body: `{"loans": [], "bogus": 1}`},
		{name: "no loans", body: `{"loans": [], "contribution": "100"}`},
		{name: "bad start", body: strings.Replace(scenarioOne, "2026-11", "11/2026", 1)},
		{name: "negative principal", body: strings.Replace(scenarioOne, `"1000"`, `"-5"`, 1), field: "Principal"},
		{name: "years out of range", body: strings.Replace(scenarioOne, `"years": 6`, `"years": 4611686018427387904`, 1), field: "Years"},
		{name: "unknown strategy", body: strings.Replace(scenarioOne, `"years"`, `"strategy": "yolo", "years"`, 1), field: "Strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/plan", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestCompare(t *testing.T) {
	s := newTestServer(t, Config{})
	body := `{
		"loans": [
			{"name": "Car", "principal": "5000", "interest": "0.05", "minimum": "100"},
			{"name": "Card", "principal": "1500", "interest": "0.22", "minimum": "40"}
		],
		"contribution": "400"
	}`
	w := do(t, s.Handler(), http.MethodPost, "/v1/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Strategies []engine.Summary `json:"strategies"`
		Cheapest   string           `json:"cheapest"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Strategies, len(engine.Strategies()))
	assert.NotEmpty(t, resp.Cheapest)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})
	w := do(t, s.Handler(), http.MethodGet, "/v1/plan", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	w := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: 2, RateWindow: time.Hour})
	h := s.Handler()

	for range 2 {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/plan", scenarioOne).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodPost, "/v1/plan", scenarioOne).Code)
	// health checks are not limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"))

	now = now.Add(2 * time.Hour)
	rl.cleanup()
	assert.Empty(t, rl.clients)
	rl.Stop()
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newTestServer(t, Config{Logger: zap.New(core)})

	do(t, s.Handler(), http.MethodPost, "/v1/plan", scenarioOne)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/v1/plan", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestRun_Shutdown(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
