package database

import (
	"context"
	"fmt"

	"github.com/yourusername/prop-tracker/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    name             TEXT PRIMARY KEY,
    strategy         TEXT NOT NULL,
    starting_balance DOUBLE PRECISION NOT NULL,
    current_balance  DOUBLE PRECISION NOT NULL,
    risk_per_trade   DOUBLE PRECISION NOT NULL,
    daily_stop       DOUBLE PRECISION NOT NULL,
    weekly_stop      DOUBLE PRECISION NOT NULL,
    start_date       DATE,
    color            TEXT NOT NULL DEFAULT '',
    header_class     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS trades (
    id                UUID PRIMARY KEY,
    date              DATE NOT NULL,
    time              TEXT NOT NULL,
    account           TEXT NOT NULL,
    strategy          TEXT NOT NULL,
    instrument        TEXT NOT NULL,
    direction         TEXT NOT NULL,
    entry_price       DOUBLE PRECISION NOT NULL,
    exit_price        DOUBLE PRECISION NOT NULL,
    stop_loss         DOUBLE PRECISION NOT NULL,
    position_size     INTEGER NOT NULL,
    pnl               DOUBLE PRECISION NOT NULL,
    r_multiple        DOUBLE PRECISION NOT NULL,
    outcome           TEXT NOT NULL,
    setup_quality     INTEGER NOT NULL,
    execution_quality INTEGER,
    notes             TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_account_date ON trades (account, date);

CREATE TABLE IF NOT EXISTS daily_performance (
    date    DATE NOT NULL,
    account TEXT NOT NULL,
    pnl     DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (date, account)
);
`

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}
