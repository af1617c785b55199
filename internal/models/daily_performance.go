package models

import "time"

// DailyPerformance represents the aggregate P&L for one (date, account) pair.
// The entry layer pre-sums multiple trades on the same day into one record;
// at most one record exists per (date, account).
type DailyPerformance struct {
	Date    time.Time `db:"date" json:"date" validate:"required"`
	Account string    `db:"account" json:"account" validate:"required"`
	PnL     float64   `db:"pnl" json:"pnl"`
}

// SameDay reports whether the record covers the given calendar date
func (d *DailyPerformance) SameDay(date time.Time) bool {
	return d.Date.Year() == date.Year() && d.Date.YearDay() == date.YearDay()
}
