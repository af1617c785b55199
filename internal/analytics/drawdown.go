package analytics

import (
	"math"
	"strconv"
)

// recoveryThresholdPct is the drawdown percentage below which an account is
// considered to have recovered from its maximum drawdown.
const recoveryThresholdPct = 0.1

// Marker values used where a drawdown statistic has no defined numeric answer.
const (
	MarkerNotAvailable = "N/A"
	MarkerOngoing      = "Ongoing"
)

// DrawdownStats represents detailed drawdown statistics for one account
type DrawdownStats struct {
	Strategy        string  `json:"strategy"`
	MaxDrawdownPct  float64 `json:"max_drawdown_pct"`
	MaxDrawdownDate string  `json:"max_drawdown_date"`
	AvgDrawdownPct  float64 `json:"avg_drawdown_pct"`
	RecoveryDays    string  `json:"recovery_days"`
}

// Drawdown returns the current and maximum retracement of cumulative P&L
// from its running peak. The series must be ordered ascending by date. An
// empty series yields (0, 0).
func Drawdown(series DailySeries) (current, maximum float64) {
	if len(series) == 0 {
		return 0, 0
	}
	cumulative := 0.0
	peak := math.Inf(-1)
	for _, point := range series {
		cumulative += point.PnL
		if cumulative > peak {
			peak = cumulative
		}
		current = peak - cumulative
		if current > maximum {
			maximum = current
		}
	}
	return current, maximum
}

// DrawdownStatistics derives percentage drawdown statistics against an
// equity curve seeded with startingBalance. The peak is the running maximum
// of the equity values themselves, so an opening loss sets the peak rather
// than counting as a retracement. When several points share the
// maximum drawdown the earliest date wins. Recovery days counts record
// positions from the maximum-drawdown point to the first point whose
// drawdown falls below the recovery threshold; MarkerOngoing when no such
// point exists, MarkerNotAvailable when the series is empty or never drew
// down.
func DrawdownStatistics(series DailySeries, startingBalance float64, strategy string) DrawdownStats {
	stats := DrawdownStats{
		Strategy:        strategy,
		MaxDrawdownDate: MarkerNotAvailable,
		RecoveryDays:    MarkerNotAvailable,
	}
	if len(series) == 0 {
		return stats
	}

	drawdownPct := make([]float64, len(series))
	equity := startingBalance
	peak := math.Inf(-1)
	maxIdx := -1
	for i, point := range series {
		equity += point.PnL
		if equity > peak {
			peak = equity
		}
		if peak != 0 {
			drawdownPct[i] = (peak - equity) / peak * 100
		}
		if drawdownPct[i] > stats.MaxDrawdownPct {
			stats.MaxDrawdownPct = drawdownPct[i]
			maxIdx = i
		}
	}
	stats.AvgDrawdownPct = mean(drawdownPct)

	if stats.MaxDrawdownPct == 0 {
		return stats
	}
	stats.MaxDrawdownDate = series[maxIdx].Date.Format("2006-01-02")
	stats.RecoveryDays = MarkerOngoing
	for i := maxIdx; i < len(series); i++ {
		if drawdownPct[i] < recoveryThresholdPct {
			stats.RecoveryDays = strconv.Itoa(i - maxIdx)
			break
		}
	}
	return stats
}
