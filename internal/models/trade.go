package models

import (
	"time"

	"github.com/google/uuid"
)

// Direction represents the side of a trade (Long or Short)
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// Outcome represents the result classification of a trade
type Outcome string

const (
	OutcomeWin       Outcome = "Win"
	OutcomeLoss      Outcome = "Loss"
	OutcomeBreakeven Outcome = "Breakeven"
)

// Trade represents one closed (or open) position in the journal.
// RMultiple follows the negative-loss convention: losing trades carry a
// negative R-multiple so expectancy is a plain weighted sum.
type Trade struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Date             time.Time `db:"date" json:"date" validate:"required"`
	TimeOfDay        string    `db:"time" json:"time" validate:"required,timeofday"`
	Account          string    `db:"account" json:"account" validate:"required"`
	Strategy         string    `db:"strategy" json:"strategy" validate:"required"`
	Instrument       string    `db:"instrument" json:"instrument" validate:"required"`
	Direction        Direction `db:"direction" json:"direction" validate:"required,oneof=Long Short"`
	EntryPrice       float64   `db:"entry_price" json:"entry_price" validate:"required"`
	ExitPrice        float64   `db:"exit_price" json:"exit_price" validate:"required"`
	StopLoss         float64   `db:"stop_loss" json:"stop_loss" validate:"required"`
	PositionSize     int       `db:"position_size" json:"position_size" validate:"required,gte=1"`
	PnL              float64   `db:"pnl" json:"pnl"`
	RMultiple        float64   `db:"r_multiple" json:"r_multiple"`
	Outcome          Outcome   `db:"outcome" json:"outcome" validate:"required,oneof=Win Loss Breakeven"`
	SetupQuality     int       `db:"setup_quality" json:"setup_quality" validate:"required,gte=1,lte=5"`
	ExecutionQuality *int      `db:"execution_quality" json:"execution_quality" validate:"omitempty,gte=1,lte=5"`
	Notes            string    `db:"notes" json:"notes"`
}

// IsWin reports whether the trade closed as a win
func (t *Trade) IsWin() bool {
	return t.Outcome == OutcomeWin
}

// IsLoss reports whether the trade closed as a loss
func (t *Trade) IsLoss() bool {
	return t.Outcome == OutcomeLoss
}

// EntryHour returns the hour component of the trade entry time, or -1 when
// the time-of-day field is malformed
func (t *Trade) EntryHour() int {
	parsed, err := time.Parse("15:04", t.TimeOfDay)
	if err != nil {
		return -1
	}
	return parsed.Hour()
}

// RiskPoints returns the initial risk distance from entry to stop in points
func (t *Trade) RiskPoints() float64 {
	if t.Direction == DirectionLong {
		return t.EntryPrice - t.StopLoss
	}
	return t.StopLoss - t.EntryPrice
}
