package models

import "time"

// Account represents one trading account and its risk configuration.
// Color and HeaderClass are presentation passthrough fields the analytics
// engine ignores.
type Account struct {
	Name            string    `db:"name" json:"name" validate:"required"`
	Strategy        string    `db:"strategy" json:"strategy" validate:"required"`
	StartingBalance float64   `db:"starting_balance" json:"starting_balance" validate:"required,gt=0"`
	CurrentBalance  float64   `db:"current_balance" json:"current_balance"`
	RiskPerTrade    float64   `db:"risk_per_trade" json:"risk_per_trade" validate:"required,gt=0,lt=1"`
	DailyStop       float64   `db:"daily_stop" json:"daily_stop" validate:"required,gt=0,lt=1"`
	WeeklyStop      float64   `db:"weekly_stop" json:"weekly_stop" validate:"required,gt=0,lt=1"`
	StartDate       time.Time `db:"start_date" json:"start_date"`
	Color           string    `db:"color" json:"color"`
	HeaderClass     string    `db:"header_class" json:"header_class"`
}

// DailyStopAmount returns the daily loss limit in currency units
func (a *Account) DailyStopAmount() float64 {
	return a.CurrentBalance * a.DailyStop
}

// WeeklyStopAmount returns the weekly loss limit in currency units
func (a *Account) WeeklyStopAmount() float64 {
	return a.CurrentBalance * a.WeeklyStop
}

// RiskAmount returns the per-trade risk budget in currency units
func (a *Account) RiskAmount() float64 {
	return a.CurrentBalance * a.RiskPerTrade
}
