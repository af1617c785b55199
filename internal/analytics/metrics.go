package analytics

import (
	"math"

	"github.com/yourusername/prop-tracker/internal/models"
)

// AccountMetrics represents the headline performance figures for one account
type AccountMetrics struct {
	WinRate      float64 `json:"win_rate"`
	AvgWin       float64 `json:"avg_win"`
	AvgLoss      float64 `json:"avg_loss"`
	Expectancy   float64 `json:"expectancy"`
	ProfitFactor float64 `json:"profit_factor"`
}

// CalculateAccountMetrics derives win rate, average win/loss in R-multiples,
// expectancy, and profit factor from the trades of one account. All
// degenerate divisions resolve to 0 rather than failing: an empty slice
// yields the zero value.
func CalculateAccountMetrics(trades []models.Trade) AccountMetrics {
	metrics := AccountMetrics{}
	if len(trades) == 0 {
		return metrics
	}

	wins := 0
	losses := 0
	winR := 0.0
	lossR := 0.0
	winSum := 0.0
	lossSum := 0.0
	for _, trade := range trades {
		switch trade.Outcome {
		case models.OutcomeWin:
			wins++
			winR += trade.RMultiple
		case models.OutcomeLoss:
			losses++
			lossR += trade.RMultiple
		}
		if trade.PnL > 0 {
			winSum += trade.PnL
		} else if trade.PnL < 0 {
			lossSum += math.Abs(trade.PnL)
		}
	}

	metrics.WinRate = float64(wins) / float64(len(trades))
	if wins > 0 {
		metrics.AvgWin = winR / float64(wins)
	}
	if losses > 0 {
		metrics.AvgLoss = lossR / float64(losses)
	}
	metrics.Expectancy = metrics.WinRate*metrics.AvgWin + (1-metrics.WinRate)*metrics.AvgLoss
	metrics.ProfitFactor = profitFactor(winSum, lossSum)
	return metrics
}

// profitFactor is gross profit over gross loss magnitude. With no losses
// recorded the ratio degenerates to the win sum itself (0 when there are no
// wins either), never infinity.
func profitFactor(winSum, lossSum float64) float64 {
	if lossSum == 0 {
		return winSum
	}
	return winSum / lossSum
}
