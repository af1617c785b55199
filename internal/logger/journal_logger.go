// Package logger provides audit logging for journal mutations.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// JournalLogger provides a dedicated audit trail for journal mutations.
type JournalLogger struct {
	*logrus.Entry
}

// NewJournalLogger creates a new journal audit logger.
func NewJournalLogger(baseLogger *logrus.Logger) *JournalLogger {
	return &JournalLogger{
		Entry: baseLogger.WithField("component", "journal"),
	}
}

// LogTradeRecorded logs a recorded trade.
func (jl *JournalLogger) LogTradeRecorded(tradeID, account, strategy, instrument string, pnl, rMultiple float64, date time.Time) {
	jl.WithFields(logrus.Fields{
		"trade_id":   tradeID,
		"account":    account,
		"strategy":   strategy,
		"instrument": instrument,
		"pnl":        pnl,
		"r_multiple": rMultiple,
		"date":       date.Format("2006-01-02"),
	}).Info("Trade recorded")
}

// LogDailyPnLRecorded logs a recorded daily performance entry.
func (jl *JournalLogger) LogDailyPnLRecorded(account string, pnl float64, date time.Time) {
	jl.WithFields(logrus.Fields{
		"account": account,
		"pnl":     pnl,
		"date":    date.Format("2006-01-02"),
	}).Info("Daily P&L recorded")
}

// LogBalanceChange logs an account balance adjustment.
func (jl *JournalLogger) LogBalanceChange(account string, oldBalance, newBalance float64) {
	jl.WithFields(logrus.Fields{
		"account":     account,
		"old_balance": oldBalance,
		"new_balance": newBalance,
	}).Debug("Account balance updated")
}

// LogSnapshotSaved logs a persisted journal snapshot.
func (jl *JournalLogger) LogSnapshotSaved(backend string, trades, days, accounts int) {
	jl.WithFields(logrus.Fields{
		"backend":  backend,
		"trades":   trades,
		"days":     days,
		"accounts": accounts,
	}).Info("Journal snapshot saved")
}
