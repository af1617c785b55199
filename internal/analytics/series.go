// Package analytics derives performance and risk statistics from trade and
// daily P&L snapshots. Every function is pure: inputs are read-only views,
// outputs are independent values, and repeated calls with the same snapshot
// produce identical results.
package analytics

import (
	"sort"
	"time"
)

// DailyPoint represents the aggregate P&L for one calendar date
type DailyPoint struct {
	Date time.Time `json:"date"`
	PnL  float64   `json:"pnl"`
}

// DailySeries is a per-account sequence of daily P&L records ordered
// ascending by date
type DailySeries []DailyPoint

// CumulativePnL returns the running sum of P&L over the series
func (s DailySeries) CumulativePnL() []float64 {
	cumulative := make([]float64, len(s))
	running := 0.0
	for i, point := range s {
		running += point.PnL
		cumulative[i] = running
	}
	return cumulative
}

// TotalPnL returns the sum of P&L over the series
func (s DailySeries) TotalPnL() float64 {
	total := 0.0
	for _, point := range s {
		total += point.PnL
	}
	return total
}

// alignedColumns outer-joins the given series on the union of their dates,
// filling 0 for dates a series has no entry. Column order follows the sorted
// strategy labels so output is deterministic.
func alignedColumns(series map[string]DailySeries) ([]string, [][]float64) {
	labels := make([]string, 0, len(series))
	for label := range series {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	dateSet := make(map[time.Time]struct{})
	for _, s := range series {
		for _, point := range s {
			dateSet[dayKey(point.Date)] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	columns := make([][]float64, len(labels))
	for i, label := range labels {
		byDate := make(map[time.Time]float64, len(series[label]))
		for _, point := range series[label] {
			byDate[dayKey(point.Date)] += point.PnL
		}
		column := make([]float64, len(dates))
		for j, date := range dates {
			column[j] = byDate[date]
		}
		columns[i] = column
	}
	return labels, columns
}

// dayKey truncates a timestamp to date precision in UTC so records from
// different clock readings of the same day align
func dayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
