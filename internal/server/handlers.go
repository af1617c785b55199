package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/prop-tracker/internal/analytics"
	"github.com/yourusername/prop-tracker/internal/metrics"
	"github.com/yourusername/prop-tracker/internal/models"
	"github.com/yourusername/prop-tracker/internal/risk"
)

// tradeValidator checks incoming journal entries. The timeofday rule matches
// the HH:MM entry-time format used throughout the journal.
var tradeValidator = newTradeValidator()

func newTradeValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	return v
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// requireAccount resolves the account query parameter, writing the error
// response itself when the account is missing or unknown
func (s *Server) requireAccount(w http.ResponseWriter, r *http.Request) (models.Account, bool) {
	name := r.URL.Query().Get("account")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "account query parameter is required")
		return models.Account{}, false
	}
	account, err := s.state.Account(name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return models.Account{}, false
	}
	return account, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.cfg.App.Name,
	})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.state.Accounts())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	trades := s.state.TradesFor(account.Name)
	series := s.state.DailySeriesFor(account.Name)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"account":        account.Name,
		"metrics":        analytics.CalculateAccountMetrics(trades),
		"total_trades":   len(trades),
		"total_pnl":      series.TotalPnL(),
		"monthly_return": analytics.MonthlyReturn(series, account.CurrentBalance),
	})
}

func (s *Server) handleDrawdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	current, maximum := analytics.Drawdown(s.state.DailySeriesFor(account.Name))
	monitor := risk.Monitor(account.Name, current, account.DailyStopAmount())
	metrics.UpdateCurrentDrawdown(account.Name, current)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"account":          account.Name,
		"current_drawdown": current,
		"max_drawdown":     maximum,
		"monitor":          monitor,
	})
}

func (s *Server) handleDrawdownStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	stats := analytics.DrawdownStatistics(
		s.state.DailySeriesFor(account.Name),
		account.StartingBalance,
		account.Strategy,
	)
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleEquityCurve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	curve := analytics.BuildEquityCurve(s.state.DailySeriesFor(account.Name), account.StartingBalance)
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=equity_curve.csv")
		if _, err := w.Write([]byte(curve.ToCSV())); err != nil {
			s.logger.WithError(err).Error("Failed to write equity curve CSV")
		}
		return
	}
	s.writeJSON(w, http.StatusOK, curve)
}

// correlationCell is a JSON-safe correlation value: undefined correlations
// (constant daily P&L) marshal as null instead of breaking the encoder.
type correlationCell *float64

func toCell(v float64) correlationCell {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	matrix, average := analytics.StrategyCorrelations(s.state.StrategySeries())

	values := make([][]correlationCell, len(matrix.Values))
	for i, row := range matrix.Values {
		values[i] = make([]correlationCell, len(row))
		for j, v := range row {
			values[i][j] = toCell(v)
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"strategies":          matrix.Strategies,
		"values":              values,
		"average_correlation": toCell(average),
		"level":               risk.ClassifyCorrelation(average),
	})
}

func (s *Server) handleBreakdowns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	trades := s.state.TradesFor(account.Name)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"account":          account.Name,
		"by_weekday":       analytics.WinRateByWeekday(trades),
		"by_hour":          analytics.WinRateByHour(trades),
		"by_setup_quality": analytics.WinRateBySetupQuality(trades),
		"by_month":         analytics.ProfitFactorByMonth(trades),
	})
}

func (s *Server) handlePositionSize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	account, ok := s.requireAccount(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	stopPoints, err := strconv.ParseFloat(query.Get("stop_points"), 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "stop_points query parameter must be a number")
		return
	}

	pointValue := risk.PointValue(query.Get("instrument"))
	if raw := query.Get("point_value"); raw != "" {
		if pointValue, err = strconv.ParseFloat(raw, 64); err != nil {
			s.writeError(w, http.StatusBadRequest, "point_value query parameter must be a number")
			return
		}
	}

	riskFraction := account.RiskPerTrade
	if raw := query.Get("risk_pct"); raw != "" {
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "risk_pct query parameter must be a number")
			return
		}
		riskFraction = pct / 100
	}

	// Scale the risk budget down while the account is working off a drawdown.
	current, _ := analytics.Drawdown(s.state.DailySeriesFor(account.Name))
	monitor := risk.Monitor(account.Name, current, account.DailyStopAmount())

	plan, err := risk.PositionSize(account.CurrentBalance, riskFraction*monitor.RiskMultiplier, stopPoints, pointValue)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"account":         account.Name,
		"plan":            plan,
		"drawdown_status": monitor.Status,
		"risk_multiplier": monitor.RiskMultiplier,
	})
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		name := r.URL.Query().Get("account")
		if name == "" {
			s.writeJSON(w, http.StatusOK, s.state.AllTrades())
			return
		}
		account, ok := s.requireAccount(w, r)
		if !ok {
			return
		}
		s.writeJSON(w, http.StatusOK, s.state.TradesFor(account.Name))
	case http.MethodPost:
		s.handleAddTrade(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleAddTrade(w http.ResponseWriter, r *http.Request) {
	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid trade payload: "+err.Error())
		return
	}
	if err := tradeValidator.Struct(&trade); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid trade: "+err.Error())
		return
	}

	before, _ := s.state.Account(trade.Account)

	recorded, err := s.state.AddTrade(trade)
	if err != nil {
		if errors.Is(err, models.ErrUnknownAccount) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.journal.LogTradeRecorded(recorded.ID.String(), recorded.Account, recorded.Strategy,
		recorded.Instrument, recorded.PnL, recorded.RMultiple, recorded.Date)
	metrics.RecordTrade(recorded.Account, string(recorded.Outcome))
	metrics.UpdateJournalSize(len(s.state.AllTrades()))
	if account, err := s.state.Account(recorded.Account); err == nil {
		s.journal.LogBalanceChange(account.Name, before.CurrentBalance, account.CurrentBalance)
		metrics.UpdateAccountBalance(account.Name, account.CurrentBalance)
	}

	if err := s.persist(r.Context()); err != nil {
		s.logger.WithError(err).Error("Failed to persist journal after trade")
	}

	s.writeJSON(w, http.StatusCreated, recorded)
}

type dailyRequest struct {
	Date    string  `json:"date" validate:"required"`
	Account string  `json:"account" validate:"required"`
	PnL     float64 `json:"pnl"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, s.state.AllDaily())
	case http.MethodPost:
		var req dailyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		if err := tradeValidator.Struct(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}

		if err := s.state.AddDailyPnL(date, req.Account, req.PnL); err != nil {
			if errors.Is(err, models.ErrUnknownAccount) {
				s.writeError(w, http.StatusNotFound, err.Error())
				return
			}
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		s.journal.LogDailyPnLRecorded(req.Account, req.PnL, date)
		metrics.RecordDailyEntry()
		if err := s.persist(r.Context()); err != nil {
			s.logger.WithError(err).Error("Failed to persist journal after daily entry")
		}
		s.writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
