package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-tracker/internal/models"
)

func testAccounts() []models.Account {
	return []models.Account{
		{Name: "Account 1", Strategy: "Hourly Quarters", StartingBalance: 150000, CurrentBalance: 150000, RiskPerTrade: 0.01, DailyStop: 0.02, WeeklyStop: 0.05},
		{Name: "Account 2", Strategy: "930 Strategy", StartingBalance: 150000, CurrentBalance: 150000, RiskPerTrade: 0.01, DailyStop: 0.02, WeeklyStop: 0.05},
	}
}

func testDate(n int) time.Time {
	return time.Date(2025, time.April, n, 0, 0, 0, 0, time.UTC)
}

func TestAddTradeUpdatesDailyAndBalance(t *testing.T) {
	state := NewState(testAccounts())

	_, err := state.AddTrade(models.Trade{
		Date: testDate(1), Account: "Account 1", Strategy: "Hourly Quarters",
		Outcome: models.OutcomeWin, PnL: 250, RMultiple: 1.0,
	})
	require.NoError(t, err)
	_, err = state.AddTrade(models.Trade{
		Date: testDate(1), Account: "Account 1", Strategy: "Hourly Quarters",
		Outcome: models.OutcomeLoss, PnL: -100, RMultiple: -0.5,
	})
	require.NoError(t, err)

	// Same-day trades fold into a single daily row.
	series := state.DailySeriesFor("Account 1")
	require.Len(t, series, 1)
	assert.Equal(t, 150.0, series[0].PnL)

	account, err := state.Account("Account 1")
	require.NoError(t, err)
	assert.Equal(t, 150150.0, account.CurrentBalance)
}

func TestAddTradeAssignsID(t *testing.T) {
	state := NewState(testAccounts())
	trade, err := state.AddTrade(models.Trade{Date: testDate(1), Account: "Account 1", Outcome: models.OutcomeWin, PnL: 10})
	require.NoError(t, err)
	assert.NotEqual(t, trade.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestAddTradeUnknownAccount(t *testing.T) {
	state := NewState(testAccounts())
	_, err := state.AddTrade(models.Trade{Date: testDate(1), Account: "Account 9"})
	assert.True(t, errors.Is(err, models.ErrUnknownAccount))
}

func TestDailySeriesSortedAscending(t *testing.T) {
	state := NewState(testAccounts())
	require.NoError(t, state.AddDailyPnL(testDate(3), "Account 1", 50))
	require.NoError(t, state.AddDailyPnL(testDate(1), "Account 1", 100))
	require.NoError(t, state.AddDailyPnL(testDate(2), "Account 1", -25))

	series := state.DailySeriesFor("Account 1")
	require.Len(t, series, 3)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].Date.Before(series[i].Date), "series must be ascending by date")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	state := NewState(testAccounts())
	require.NoError(t, state.AddDailyPnL(testDate(1), "Account 1", 100))

	series := state.DailySeriesFor("Account 1")
	series[0].PnL = -9999

	fresh := state.DailySeriesFor("Account 1")
	assert.Equal(t, 100.0, fresh[0].PnL, "mutating a snapshot must not touch session state")
}

func TestStrategySeriesKeyedByStrategy(t *testing.T) {
	state := NewState(testAccounts())
	require.NoError(t, state.AddDailyPnL(testDate(1), "Account 1", 100))
	require.NoError(t, state.AddDailyPnL(testDate(1), "Account 2", -40))

	series := state.StrategySeries()
	require.Len(t, series, 2)
	assert.Equal(t, 100.0, series["Hourly Quarters"][0].PnL)
	assert.Equal(t, -40.0, series["930 Strategy"][0].PnL)
}

func TestTradesForFiltersByAccount(t *testing.T) {
	state := NewState(testAccounts())
	_, err := state.AddTrade(models.Trade{Date: testDate(1), Account: "Account 1", Outcome: models.OutcomeWin, PnL: 10})
	require.NoError(t, err)
	_, err = state.AddTrade(models.Trade{Date: testDate(1), Account: "Account 2", Outcome: models.OutcomeLoss, PnL: -5})
	require.NoError(t, err)

	assert.Len(t, state.TradesFor("Account 1"), 1)
	assert.Len(t, state.TradesFor("Account 2"), 1)
	assert.Len(t, state.AllTrades(), 2)
}
