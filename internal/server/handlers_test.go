package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-tracker/internal/config"
	"github.com/yourusername/prop-tracker/internal/models"
	"github.com/yourusername/prop-tracker/internal/session"
	"github.com/yourusername/prop-tracker/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:        "prop-tracker",
			Environment: "development",
			LogLevel:    "error",
		},
		Storage: config.StorageConfig{Backend: "flatfile", DataDir: t.TempDir()},
		Server:  config.ServerConfig{Port: 0, RateLimitRPS: 1000, RateLimitBurst: 1000},
	}

	state := session.NewState([]models.Account{
		{
			Name:            "Account 1",
			Strategy:        "Hourly Quarters",
			StartingBalance: 150000,
			CurrentBalance:  150000,
			RiskPerTrade:    0.01,
			DailyStop:       0.02,
			WeeklyStop:      0.05,
		},
		{
			Name:            "Account 2",
			Strategy:        "930 Strategy",
			StartingBalance: 150000,
			CurrentBalance:  150000,
			RiskPerTrade:    0.01,
			DailyStop:       0.02,
			WeeklyStop:      0.05,
		},
	})

	st, err := store.NewFlatFileStore(cfg.Storage.DataDir)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return New(cfg, logger, state, st)
}

func (s *Server) serve(r *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(recorder, r)
	return recorder
}

func seedDaily(t *testing.T, s *Server, account string, pnls []float64) {
	t.Helper()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, pnl := range pnls {
		require.NoError(t, s.state.AddDailyPnL(base.AddDate(0, 0, i), account, pnl))
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)
	resp := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
}

func TestHandleAccounts(t *testing.T) {
	s := testServer(t)
	resp := s.serve(httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	require.Equal(t, http.StatusOK, resp.Code)

	var accounts []models.Account
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 2)
}

func TestHandleMetricsRequiresAccount(t *testing.T) {
	s := testServer(t)

	resp := s.serve(httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = s.serve(httptest.NewRequest(http.MethodGet, "/api/metrics?account=Nobody", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleAddTradeAndMetrics(t *testing.T) {
	s := testServer(t)

	trade := models.Trade{
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		TimeOfDay:    "09:45",
		Account:      "Account 1",
		Strategy:     "Hourly Quarters",
		Instrument:   "ES",
		Direction:    models.DirectionLong,
		EntryPrice:   4720,
		ExitPrice:    4730,
		StopLoss:     4715,
		PositionSize: 1,
		PnL:          500,
		RMultiple:    2,
		Outcome:      models.OutcomeWin,
		SetupQuality: 4,
	}
	body, err := json.Marshal(trade)
	require.NoError(t, err)

	resp := s.serve(httptest.NewRequest(http.MethodPost, "/api/trades", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var recorded models.Trade
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recorded))
	assert.NotEmpty(t, recorded.ID)

	resp = s.serve(httptest.NewRequest(http.MethodGet, "/api/metrics?account=Account+1", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		TotalTrades int     `json:"total_trades"`
		TotalPnL    float64 `json:"total_pnl"`
		Metrics     struct {
			WinRate float64 `json:"win_rate"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.TotalTrades)
	assert.Equal(t, 500.0, payload.TotalPnL)
	assert.Equal(t, 1.0, payload.Metrics.WinRate)
}

func TestHandleAddTradeRejectsInvalid(t *testing.T) {
	s := testServer(t)

	// Missing required fields and a malformed entry time.
	body := []byte(`{"account":"Account 1","time":"9am"}`)
	resp := s.serve(httptest.NewRequest(http.MethodPost, "/api/trades", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleAddTradeUnknownAccount(t *testing.T) {
	s := testServer(t)

	trade := models.Trade{
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		TimeOfDay:    "09:45",
		Account:      "Nobody",
		Strategy:     "Hourly Quarters",
		Instrument:   "ES",
		Direction:    models.DirectionLong,
		EntryPrice:   4720,
		ExitPrice:    4730,
		StopLoss:     4715,
		PositionSize: 1,
		PnL:          500,
		Outcome:      models.OutcomeWin,
		SetupQuality: 4,
	}
	body, err := json.Marshal(trade)
	require.NoError(t, err)

	resp := s.serve(httptest.NewRequest(http.MethodPost, "/api/trades", bytes.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleDrawdown(t *testing.T) {
	s := testServer(t)
	seedDaily(t, s, "Account 1", []float64{1000, -500, 300, -800})

	resp := s.serve(httptest.NewRequest(http.MethodGet, "/api/drawdown?account=Account+1", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		CurrentDrawdown float64 `json:"current_drawdown"`
		MaxDrawdown     float64 `json:"max_drawdown"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	// Cumulative P&L: 1000, 500, 800, 0; peak stays 1000.
	assert.Equal(t, 1000.0, payload.CurrentDrawdown)
	assert.Equal(t, 1000.0, payload.MaxDrawdown)
}

func TestHandleEquityCurveCSV(t *testing.T) {
	s := testServer(t)
	seedDaily(t, s, "Account 1", []float64{250, -100})

	resp := s.serve(httptest.NewRequest(http.MethodGet, "/api/equity-curve?account=Account+1&format=csv", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "date,equity,drawdown_pct")
}

func TestHandleCorrelationNaNMarshalsAsNull(t *testing.T) {
	s := testServer(t)
	// Account 1 varies; Account 2 is flat, so its correlation is undefined.
	seedDaily(t, s, "Account 1", []float64{100, -50, 200})
	seedDaily(t, s, "Account 2", []float64{100, 100, 100})

	resp := s.serve(httptest.NewRequest(http.MethodGet, "/api/correlation", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Strategies         []string     `json:"strategies"`
		Values             [][]*float64 `json:"values"`
		AverageCorrelation *float64     `json:"average_correlation"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	require.Len(t, payload.Strategies, 2)

	// Diagonal entries are always 1, even for the flat strategy.
	for i := range payload.Strategies {
		require.NotNil(t, payload.Values[i][i])
		assert.Equal(t, 1.0, *payload.Values[i][i])
	}
	// The off-diagonal pair involving the flat strategy is undefined.
	assert.Nil(t, payload.Values[0][1])
	assert.Nil(t, payload.AverageCorrelation)
}

func TestHandlePositionSize(t *testing.T) {
	s := testServer(t)

	url := "/api/risk/position-size?account=Account+1&stop_points=10&instrument=ES"
	resp := s.serve(httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Plan struct {
			Contracts  int     `json:"contracts"`
			RiskAmount float64 `json:"risk_amount"`
		} `json:"plan"`
		DrawdownStatus string  `json:"drawdown_status"`
		RiskMultiplier float64 `json:"risk_multiplier"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	// 150000 * 1% = 1500 budget; 10 points * 50/pt = 500 per contract.
	assert.Equal(t, 3, payload.Plan.Contracts)
	assert.Equal(t, "OK", payload.DrawdownStatus)
	assert.Equal(t, 1.0, payload.RiskMultiplier)
}

func TestHandlePositionSizeScalesDownInDrawdown(t *testing.T) {
	s := testServer(t)
	// Daily limit is 150000*2% = 3000; a 2400 drawdown is 80% of it.
	seedDaily(t, s, "Account 1", []float64{0, -2400})

	url := "/api/risk/position-size?account=Account+1&stop_points=10&instrument=ES"
	resp := s.serve(httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Plan struct {
			Contracts int `json:"contracts"`
		} `json:"plan"`
		DrawdownStatus string  `json:"drawdown_status"`
		RiskMultiplier float64 `json:"risk_multiplier"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, "WARNING", payload.DrawdownStatus)
	assert.Equal(t, 0.5, payload.RiskMultiplier)
	// Budget halves, so only one contract fits: floor(1476*0.5/500) = 1.
	assert.Equal(t, 1, payload.Plan.Contracts)
}

func TestHandleDailyPost(t *testing.T) {
	s := testServer(t)

	body := []byte(`{"date":"2025-03-10","account":"Account 2","pnl":-150}`)
	resp := s.serve(httptest.NewRequest(http.MethodPost, "/api/daily", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = s.serve(httptest.NewRequest(http.MethodGet, "/api/daily", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var daily []models.DailyPerformance
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &daily))
	require.Len(t, daily, 1)
	assert.Equal(t, -150.0, daily[0].PnL)
}

func TestHandleDailyPostBadDate(t *testing.T) {
	s := testServer(t)

	body := []byte(`{"date":"03/10/2025","account":"Account 2","pnl":-150}`)
	resp := s.serve(httptest.NewRequest(http.MethodPost, "/api/daily", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := testServer(t)

	for _, path := range []string{"/api/accounts", "/api/metrics", "/api/correlation"} {
		resp := s.serve(httptest.NewRequest(http.MethodDelete, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, resp.Code, fmt.Sprintf("path %s", path))
	}
}
