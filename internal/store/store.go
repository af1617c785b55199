// Package store persists the trade journal, daily performance rows, and
// account table. Two backends implement the same interface: a flat-file
// store (CSV/JSON, mirroring the original data layout) and a PostgreSQL
// store.
package store

import (
	"context"

	"github.com/yourusername/prop-tracker/internal/models"
)

// Store is the persistence contract for tracker data. Save calls replace
// the stored set wholesale; the session state is the source of truth.
type Store interface {
	LoadTrades(ctx context.Context) ([]models.Trade, error)
	SaveTrades(ctx context.Context, trades []models.Trade) error

	LoadDaily(ctx context.Context) ([]models.DailyPerformance, error)
	SaveDaily(ctx context.Context, daily []models.DailyPerformance) error

	LoadAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, accounts []models.Account) error

	Close(ctx context.Context) error
}
