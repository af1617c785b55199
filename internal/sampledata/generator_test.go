package sampledata

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/prop-tracker/internal/config"
	"github.com/yourusername/prop-tracker/internal/models"
)

var testConfigs = []config.AccountConfig{
	{Name: "Account 1", Strategy: "Hourly Quarters", StartingBalance: 150000, RiskPerTrade: 0.01, DailyStop: 0.02, WeeklyStop: 0.05},
	{Name: "Account 2", Strategy: "930 Strategy", StartingBalance: 150000, RiskPerTrade: 0.01, DailyStop: 0.02, WeeklyStop: 0.05},
	{Name: "Account 3", Strategy: "Lab Strategy", StartingBalance: 100000, RiskPerTrade: 0.005, DailyStop: 0.015, WeeklyStop: 0.04},
}

func testNow() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestGeneratorDeterministicForSeed(t *testing.T) {
	first := New(42, testNow())
	second := New(42, testNow())

	accountsA := first.Accounts(testConfigs)
	accountsB := second.Accounts(testConfigs)
	tradesA := first.Trades(accountsA)
	tradesB := second.Trades(accountsB)

	if len(tradesA) != len(tradesB) {
		t.Fatalf("expected equal journal lengths, got %d and %d", len(tradesA), len(tradesB))
	}
	for i := range tradesA {
		if tradesA[i].PnL != tradesB[i].PnL || tradesA[i].Instrument != tradesB[i].Instrument {
			t.Errorf("trade %d differs between runs: %+v vs %+v", i, tradesA[i], tradesB[i])
		}
	}
}

func TestGeneratorTradeShape(t *testing.T) {
	gen := New(7, testNow())
	accounts := gen.Accounts(testConfigs)
	trades := gen.Trades(accounts)

	if len(trades) != tradeDays {
		t.Fatalf("expected %d trades, got %d", tradeDays, len(trades))
	}

	for i, trade := range trades {
		if trade.Account != testConfigs[i%3].Name {
			t.Errorf("trade %d: expected account rotation, got %q", i, trade.Account)
		}
		if trade.Strategy != testConfigs[i%3].Strategy {
			t.Errorf("trade %d: strategy %q does not match account", i, trade.Strategy)
		}
		if trade.PositionSize < 1 || trade.PositionSize > 5 {
			t.Errorf("trade %d: position size %d out of range", i, trade.PositionSize)
		}
		if trade.SetupQuality < 1 || trade.SetupQuality > 5 {
			t.Errorf("trade %d: setup quality %d out of range", i, trade.SetupQuality)
		}
		if trade.ID == uuid.Nil {
			t.Errorf("trade %d: missing id", i)
		}
	}
}

func TestGeneratorWinsCarryPositiveR(t *testing.T) {
	gen := New(11, testNow())
	accounts := gen.Accounts(testConfigs)

	wins := 0
	for _, trade := range gen.Trades(accounts) {
		switch trade.Outcome {
		case models.OutcomeWin:
			wins++
			if trade.RMultiple <= 0 {
				t.Errorf("winning trade has non-positive r-multiple %.2f", trade.RMultiple)
			}
			if trade.PnL <= 0 {
				t.Errorf("winning trade has non-positive pnl %.2f", trade.PnL)
			}
		case models.OutcomeLoss:
			if trade.RMultiple >= 0 {
				t.Errorf("losing trade has non-negative r-multiple %.2f", trade.RMultiple)
			}
			if trade.PnL >= 0 {
				t.Errorf("losing trade has non-negative pnl %.2f", trade.PnL)
			}
		}
	}
	if wins == 0 {
		t.Error("expected at least one winning trade in the sample journal")
	}
}

func TestGeneratorDailyCoverage(t *testing.T) {
	gen := New(3, testNow())
	accounts := gen.Accounts(testConfigs)
	daily := gen.Daily(accounts)

	if len(daily) != len(accounts)*dailyDays {
		t.Fatalf("expected %d rows, got %d", len(accounts)*dailyDays, len(daily))
	}

	seen := make(map[string]map[time.Time]bool)
	for _, row := range daily {
		if seen[row.Account] == nil {
			seen[row.Account] = make(map[time.Time]bool)
		}
		if seen[row.Account][row.Date] {
			t.Fatalf("duplicate (date, account) pair: %s %s", row.Date.Format("2006-01-02"), row.Account)
		}
		seen[row.Account][row.Date] = true
	}
	for _, account := range accounts {
		if len(seen[account.Name]) != dailyDays {
			t.Errorf("account %s: expected %d distinct days, got %d", account.Name, dailyDays, len(seen[account.Name]))
		}
	}
}

func TestGeneratorAccountsFromConfig(t *testing.T) {
	gen := New(1, testNow())
	accounts := gen.Accounts(testConfigs)

	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
	for i, account := range accounts {
		if account.Name != testConfigs[i].Name {
			t.Errorf("account %d: expected %q, got %q", i, testConfigs[i].Name, account.Name)
		}
		if account.CurrentBalance <= 0 {
			t.Errorf("account %s: non-positive current balance", account.Name)
		}
		if account.StartDate.IsZero() {
			t.Errorf("account %s: missing start date", account.Name)
		}
	}
}
