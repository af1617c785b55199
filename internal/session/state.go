// Package session holds the in-memory journal state for one tracker session.
// The State is the single owner of mutable data; every read accessor hands
// out an independent copy so the analytics engine only ever works on
// immutable snapshots.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/prop-tracker/internal/analytics"
	"github.com/yourusername/prop-tracker/internal/models"
)

// State owns the trade journal, daily performance rows, and account table
// for one session
type State struct {
	mu       sync.RWMutex
	trades   []models.Trade
	daily    []models.DailyPerformance
	accounts map[string]models.Account
}

// NewState creates an empty session seeded with the given accounts
func NewState(accounts []models.Account) *State {
	byName := make(map[string]models.Account, len(accounts))
	for _, account := range accounts {
		byName[account.Name] = account
	}
	return &State{accounts: byName}
}

// Load replaces the session contents with persisted data
func (s *State) Load(trades []models.Trade, daily []models.DailyPerformance, accounts []models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append([]models.Trade(nil), trades...)
	s.daily = append([]models.DailyPerformance(nil), daily...)
	for _, account := range accounts {
		s.accounts[account.Name] = account
	}
}

// AddTrade appends a trade to the journal, folds its P&L into the daily
// performance row for (date, account), and rolls the account balance
// forward. Trades for unknown accounts are rejected.
func (s *State) AddTrade(trade models.Trade) (models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[trade.Account]
	if !ok {
		return models.Trade{}, fmt.Errorf("%w: %s", models.ErrUnknownAccount, trade.Account)
	}
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}

	s.trades = append(s.trades, trade)
	s.foldIntoDaily(trade.Date, trade.Account, trade.PnL)

	account.CurrentBalance += trade.PnL
	s.accounts[trade.Account] = account
	return trade, nil
}

// AddDailyPnL records a standalone daily P&L figure for an account,
// keeping the one-row-per-(date,account) invariant
func (s *State) AddDailyPnL(date time.Time, accountName string, pnl float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountName]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownAccount, accountName)
	}

	s.foldIntoDaily(date, accountName, pnl)
	account.CurrentBalance += pnl
	s.accounts[accountName] = account
	return nil
}

// foldIntoDaily adds pnl to the row for (date, account), creating it when
// absent. Callers must hold the write lock.
func (s *State) foldIntoDaily(date time.Time, accountName string, pnl float64) {
	for i := range s.daily {
		if s.daily[i].Account == accountName && s.daily[i].SameDay(date) {
			s.daily[i].PnL += pnl
			return
		}
	}
	s.daily = append(s.daily, models.DailyPerformance{
		Date:    time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Account: accountName,
		PnL:     pnl,
	})
}

// TradesFor returns a snapshot of all trades for one account
func (s *State) TradesFor(accountName string) []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]models.Trade, 0)
	for _, trade := range s.trades {
		if trade.Account == accountName {
			trades = append(trades, trade)
		}
	}
	return trades
}

// AllTrades returns a snapshot of the whole journal
func (s *State) AllTrades() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Trade(nil), s.trades...)
}

// AllDaily returns a snapshot of all daily performance rows
func (s *State) AllDaily() []models.DailyPerformance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DailyPerformance(nil), s.daily...)
}

// DailySeriesFor returns the account's daily P&L as an analytics series
// ordered ascending by date
func (s *State) DailySeriesFor(accountName string) analytics.DailySeries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seriesLocked(accountName)
}

// StrategySeries returns every account's daily series keyed by the
// account's strategy label, for cross-strategy correlation
func (s *State) StrategySeries() map[string]analytics.DailySeries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := make(map[string]analytics.DailySeries, len(s.accounts))
	for name, account := range s.accounts {
		series[account.Strategy] = s.seriesLocked(name)
	}
	return series
}

// seriesLocked builds a sorted series snapshot. Callers must hold at least
// the read lock.
func (s *State) seriesLocked(accountName string) analytics.DailySeries {
	series := make(analytics.DailySeries, 0)
	for _, row := range s.daily {
		if row.Account == accountName {
			series = append(series, analytics.DailyPoint{Date: row.Date, PnL: row.PnL})
		}
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// Account returns a copy of one account's current configuration
func (s *State) Account(name string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[name]
	if !ok {
		return models.Account{}, fmt.Errorf("%w: %s", models.ErrUnknownAccount, name)
	}
	return account, nil
}

// Accounts returns a snapshot of all accounts sorted by name
func (s *State) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts
}
