// Package sampledata generates demonstration data for the tracker: a trade
// journal, daily performance rows, and accounts seeded from configuration.
// Generation is deterministic for a given seed.
package sampledata

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/prop-tracker/internal/config"
	"github.com/yourusername/prop-tracker/internal/models"
)

const (
	tradeDays = 20
	dailyDays = 30

	sampleWinRate = 0.8
)

var entryTimes = []string{
	"09:30", "10:00", "10:15", "10:30", "11:00", "11:15",
	"11:30", "11:45", "13:15", "13:30", "14:00", "14:15",
	"14:30", "14:45", "15:00",
}

var noteOptions = []string{
	"Perfect setup", "Gap fade", "Trend continuation", "Support bounce",
	"Resistance rejection", "VWAP fade", "Failed breakout", "Double top",
	"Double bottom", "Key level test", "Reversal pattern", "Momentum trade",
	"News reaction", "Range breakout", "Trend reversal",
}

type instrumentProfile struct {
	symbol     string
	priceLow   float64
	priceHigh  float64
	pointValue float64
}

var instrumentProfiles = []instrumentProfile{
	{symbol: "ES", priceLow: 4700, priceHigh: 4750, pointValue: 50},
	{symbol: "NQ", priceLow: 18300, priceHigh: 18500, pointValue: 20},
	{symbol: "YM", priceLow: 37800, priceHigh: 38000, pointValue: 5},
}

// Generator produces sample data from a seeded random source
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New creates a generator anchored at the given point in time
func New(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now.UTC().Truncate(24 * time.Hour),
	}
}

// Accounts builds account records from configuration, with a current balance
// offset from the starting balance so the dashboard has something to show
func (g *Generator) Accounts(configs []config.AccountConfig) []models.Account {
	accounts := make([]models.Account, 0, len(configs))
	for _, cfg := range configs {
		drift := g.rng.Float64()*0.06 - 0.02
		accounts = append(accounts, models.Account{
			Name:            cfg.Name,
			Strategy:        cfg.Strategy,
			StartingBalance: cfg.StartingBalance,
			CurrentBalance:  round2(cfg.StartingBalance * (1 + drift)),
			RiskPerTrade:    cfg.RiskPerTrade,
			DailyStop:       cfg.DailyStop,
			WeeklyStop:      cfg.WeeklyStop,
			StartDate:       g.now.AddDate(0, 0, -45),
			Color:           cfg.Color,
			HeaderClass:     cfg.HeaderClass,
		})
	}
	return accounts
}

// Trades generates one trade per day over the last twenty days, rotating
// through the given accounts. Roughly four of five trades are winners, and
// each R-multiple is derived from the entry-to-stop distance.
func (g *Generator) Trades(accounts []models.Account) []models.Trade {
	if len(accounts) == 0 {
		return nil
	}

	trades := make([]models.Trade, 0, tradeDays)
	for i := 0; i < tradeDays; i++ {
		account := accounts[i%len(accounts)]
		profile := instrumentProfiles[g.rng.Intn(len(instrumentProfiles))]

		direction := models.DirectionLong
		if g.rng.Float64() < 0.5 {
			direction = models.DirectionShort
		}
		isWin := g.rng.Float64() < sampleWinRate

		entry := round2(g.uniform(profile.priceLow, profile.priceHigh))

		// Winners move 5-15 points in favor against a 10-25 point stop;
		// losers move 5-15 points against a wider 20-30 point stop.
		var favorable, stopDistance float64
		if isWin {
			favorable = g.uniform(5, 15)
			stopDistance = g.uniform(10, 25)
		} else {
			favorable = -g.uniform(5, 15)
			stopDistance = g.uniform(20, 30)
		}

		var exit, stop float64
		if direction == models.DirectionLong {
			exit = round2(entry + favorable)
			stop = round2(entry - stopDistance)
		} else {
			exit = round2(entry - favorable)
			stop = round2(entry + stopDistance)
		}

		positionSize := g.rng.Intn(5) + 1

		var pnl, rMultiple float64
		if direction == models.DirectionLong {
			pnl = (exit - entry) * float64(positionSize) * profile.pointValue
			rMultiple = (exit - entry) / (entry - stop)
		} else {
			pnl = (entry - exit) * float64(positionSize) * profile.pointValue
			rMultiple = (entry - exit) / (stop - entry)
		}

		outcome := models.OutcomeWin
		if !isWin {
			outcome = models.OutcomeLoss
		}
		executionQuality := g.qualityFor(isWin)

		trades = append(trades, models.Trade{
			ID:               uuid.New(),
			Date:             g.now.AddDate(0, 0, -(tradeDays - 1 - i)),
			TimeOfDay:        entryTimes[g.rng.Intn(len(entryTimes))],
			Account:          account.Name,
			Strategy:         account.Strategy,
			Instrument:       profile.symbol,
			Direction:        direction,
			EntryPrice:       entry,
			ExitPrice:        exit,
			StopLoss:         stop,
			PositionSize:     positionSize,
			PnL:              round2(pnl),
			RMultiple:        round2(rMultiple),
			Outcome:          outcome,
			SetupQuality:     g.qualityFor(isWin),
			ExecutionQuality: &executionQuality,
			Notes:            noteOptions[g.rng.Intn(len(noteOptions))],
		})
	}
	return trades
}

// Daily generates thirty days of per-account P&L. The first two accounts get
// a steadier profile; any further accounts swing wider, matching a lab-style
// strategy still being proven out.
func (g *Generator) Daily(accounts []models.Account) []models.DailyPerformance {
	daily := make([]models.DailyPerformance, 0, len(accounts)*dailyDays)
	for idx, account := range accounts {
		mean, stddev := 400.0, 300.0
		switch {
		case idx == 1:
			mean, stddev = 350, 250
		case idx >= 2:
			mean, stddev = 300, 500
		}
		for day := 0; day < dailyDays; day++ {
			daily = append(daily, models.DailyPerformance{
				Date:    g.now.AddDate(0, 0, -(dailyDays - 1 - day)),
				Account: account.Name,
				PnL:     round2(g.rng.NormFloat64()*stddev + mean),
			})
		}
	}
	return daily
}

// qualityFor skews setup and execution grades toward 4-5 for winners and
// 1-3 for losers
func (g *Generator) qualityFor(isWin bool) int {
	roll := g.rng.Float64()
	if isWin {
		switch {
		case roll < 0.2:
			return 3
		case roll < 0.5:
			return 4
		default:
			return 5
		}
	}
	switch {
	case roll < 0.3:
		return 1
	case roll < 0.7:
		return 2
	default:
		return 3
	}
}

func (g *Generator) uniform(low, high float64) float64 {
	return low + g.rng.Float64()*(high-low)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
