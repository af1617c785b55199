package analytics

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func TestDrawdownEmpty(t *testing.T) {
	current, maximum := Drawdown(nil)
	if current != 0 || maximum != 0 {
		t.Fatalf("expected (0, 0) for empty series, got (%v, %v)", current, maximum)
	}
}

func TestDrawdownRunningPeak(t *testing.T) {
	series := DailySeries{
		{Date: day(1), PnL: 100},
		{Date: day(2), PnL: -200},
		{Date: day(3), PnL: 50},
	}
	current, maximum := Drawdown(series)
	if current != 150 {
		t.Errorf("expected current drawdown 150, got %v", current)
	}
	if maximum != 200 {
		t.Errorf("expected maximum drawdown 200, got %v", maximum)
	}
}

func TestDrawdownLosingStart(t *testing.T) {
	// An opening loss establishes the peak rather than counting as a
	// retracement from zero.
	series := DailySeries{
		{Date: day(1), PnL: -500},
		{Date: day(2), PnL: 200},
	}
	current, maximum := Drawdown(series)
	if current != 0 || maximum != 0 {
		t.Fatalf("expected no drawdown on a recovering start, got (%v, %v)", current, maximum)
	}
}

func TestDrawdownStatisticsEmpty(t *testing.T) {
	stats := DrawdownStatistics(nil, 1000, "Lab Strategy")
	if stats.Strategy != "Lab Strategy" {
		t.Errorf("expected strategy label to pass through, got %q", stats.Strategy)
	}
	if stats.MaxDrawdownPct != 0 || stats.AvgDrawdownPct != 0 {
		t.Errorf("expected zero percentages, got %+v", stats)
	}
	if stats.MaxDrawdownDate != MarkerNotAvailable || stats.RecoveryDays != MarkerNotAvailable {
		t.Errorf("expected N/A markers, got %+v", stats)
	}
}

func TestDrawdownStatisticsOngoing(t *testing.T) {
	series := DailySeries{
		{Date: day(1), PnL: 100},
		{Date: day(2), PnL: -200},
		{Date: day(3), PnL: 50},
	}
	stats := DrawdownStatistics(series, 1000, "930 Strategy")

	wantMax := 200.0 / 1100.0 * 100
	if math.Abs(stats.MaxDrawdownPct-wantMax) > 1e-9 {
		t.Errorf("expected max drawdown %.4f%%, got %.4f%%", wantMax, stats.MaxDrawdownPct)
	}
	if stats.MaxDrawdownDate != "2025-03-02" {
		t.Errorf("expected max drawdown on second date, got %q", stats.MaxDrawdownDate)
	}
	// The third day still sits ~13.6% below the peak, so no recovery.
	if stats.RecoveryDays != MarkerOngoing {
		t.Errorf("expected ongoing recovery, got %q", stats.RecoveryDays)
	}
	wantAvg := (0 + wantMax + 150.0/1100.0*100) / 3
	if math.Abs(stats.AvgDrawdownPct-wantAvg) > 1e-9 {
		t.Errorf("expected avg drawdown %.4f%%, got %.4f%%", wantAvg, stats.AvgDrawdownPct)
	}
}

func TestDrawdownStatisticsRecovered(t *testing.T) {
	series := DailySeries{
		{Date: day(1), PnL: 100},
		{Date: day(2), PnL: -200},
		{Date: day(3), PnL: 210},
	}
	stats := DrawdownStatistics(series, 1000, "Hourly Quarters")
	if stats.RecoveryDays != "1" {
		t.Fatalf("expected recovery after 1 record, got %q", stats.RecoveryDays)
	}
}

func TestDrawdownStatisticsNoDrawdown(t *testing.T) {
	series := DailySeries{
		{Date: day(1), PnL: 100},
		{Date: day(2), PnL: 50},
	}
	stats := DrawdownStatistics(series, 1000, "Hourly Quarters")
	if stats.MaxDrawdownPct != 0 {
		t.Errorf("expected no drawdown, got %v", stats.MaxDrawdownPct)
	}
	if stats.MaxDrawdownDate != MarkerNotAvailable || stats.RecoveryDays != MarkerNotAvailable {
		t.Errorf("expected N/A markers when never drawn down, got %+v", stats)
	}
}

func TestDrawdownStatisticsLosingStart(t *testing.T) {
	// The equity peak is the running maximum of observed equity, so a
	// series that never regains the starting balance has no drawdown.
	series := DailySeries{
		{Date: day(1), PnL: -100},
		{Date: day(2), PnL: 50},
	}
	stats := DrawdownStatistics(series, 1000, "930 Strategy")
	if stats.MaxDrawdownPct != 0 || stats.AvgDrawdownPct != 0 {
		t.Errorf("expected zero drawdown percentages, got %+v", stats)
	}
	if stats.MaxDrawdownDate != MarkerNotAvailable || stats.RecoveryDays != MarkerNotAvailable {
		t.Errorf("expected N/A markers for a recovering start, got %+v", stats)
	}
}

func TestDrawdownStatisticsFirstOccurrenceTieBreak(t *testing.T) {
	// Two equal troughs; the earlier date must be reported.
	series := DailySeries{
		{Date: day(1), PnL: 100},
		{Date: day(2), PnL: -100},
		{Date: day(3), PnL: 100},
		{Date: day(4), PnL: -100},
	}
	stats := DrawdownStatistics(series, 1000, "Lab Strategy")
	if stats.MaxDrawdownDate != "2025-03-02" {
		t.Fatalf("expected first occurrence of max drawdown, got %q", stats.MaxDrawdownDate)
	}
}
