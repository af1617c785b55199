package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yourusername/prop-tracker/internal/models"
)

// BucketStat represents win-rate figures for one slice of the journal
type BucketStat struct {
	Label   string  `json:"label"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
	AvgPnL  float64 `json:"avg_pnl"`
}

// MonthStat represents the profit factor for one calendar month
type MonthStat struct {
	Month        string  `json:"month"`
	Trades       int     `json:"trades"`
	ProfitFactor float64 `json:"profit_factor"`
}

// MonthlyReturn returns the series' total P&L as a percentage of the
// current balance; 0 when the series is empty or the balance is 0.
func MonthlyReturn(series DailySeries, currentBalance float64) float64 {
	if len(series) == 0 || currentBalance == 0 {
		return 0
	}
	return series.TotalPnL() / currentBalance * 100
}

// WinRateByWeekday buckets trades by trading weekday (Monday through Friday)
// and reports the win rate of each bucket
func WinRateByWeekday(trades []models.Trade) []BucketStat {
	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}
	stats := make([]BucketStat, 0, len(weekdays))
	for _, day := range weekdays {
		bucket := make([]models.Trade, 0)
		for _, trade := range trades {
			if trade.Date.Weekday() == day {
				bucket = append(bucket, trade)
			}
		}
		stats = append(stats, bucketStat(day.String(), bucket))
	}
	return stats
}

// WinRateByHour buckets trades by entry hour and reports win rate and mean
// P&L per hour, in ascending hour order. Trades with a malformed time-of-day
// field are skipped.
func WinRateByHour(trades []models.Trade) []BucketStat {
	byHour := make(map[int][]models.Trade)
	for _, trade := range trades {
		hour := trade.EntryHour()
		if hour < 0 {
			continue
		}
		byHour[hour] = append(byHour[hour], trade)
	}
	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	stats := make([]BucketStat, 0, len(hours))
	for _, hour := range hours {
		stats = append(stats, bucketStat(fmt.Sprintf("%02d:00", hour), byHour[hour]))
	}
	return stats
}

// WinRateBySetupQuality buckets trades by setup-quality score (1 through 5)
func WinRateBySetupQuality(trades []models.Trade) []BucketStat {
	stats := make([]BucketStat, 0, 5)
	for quality := 1; quality <= 5; quality++ {
		bucket := make([]models.Trade, 0)
		for _, trade := range trades {
			if trade.SetupQuality == quality {
				bucket = append(bucket, trade)
			}
		}
		stats = append(stats, bucketStat(fmt.Sprintf("%d", quality), bucket))
	}
	return stats
}

// ProfitFactorByMonth computes the gross-profit over gross-loss ratio for
// each calendar month present in the journal, ascending by month. Months
// with no losses degenerate to the gross profit, matching the account-level
// rule.
func ProfitFactorByMonth(trades []models.Trade) []MonthStat {
	byMonth := make(map[string][]models.Trade)
	for _, trade := range trades {
		month := trade.Date.Format("2006-01")
		byMonth[month] = append(byMonth[month], trade)
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	stats := make([]MonthStat, 0, len(months))
	for _, month := range months {
		winSum := 0.0
		lossSum := 0.0
		for _, trade := range byMonth[month] {
			if trade.PnL > 0 {
				winSum += trade.PnL
			} else if trade.PnL < 0 {
				lossSum += math.Abs(trade.PnL)
			}
		}
		stats = append(stats, MonthStat{
			Month:        month,
			Trades:       len(byMonth[month]),
			ProfitFactor: profitFactor(winSum, lossSum),
		})
	}
	return stats
}

func bucketStat(label string, trades []models.Trade) BucketStat {
	stat := BucketStat{Label: label, Trades: len(trades)}
	if len(trades) == 0 {
		return stat
	}
	pnl := 0.0
	for _, trade := range trades {
		if trade.IsWin() {
			stat.Wins++
		}
		pnl += trade.PnL
	}
	stat.WinRate = float64(stat.Wins) / float64(len(trades))
	stat.AvgPnL = pnl / float64(len(trades))
	return stat
}
