package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/prop-tracker/internal/database"
	"github.com/yourusername/prop-tracker/internal/models"
)

// PostgresStore persists tracker data in PostgreSQL. Save operations replace
// the stored table contents inside one transaction so the database always
// reflects a complete snapshot.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore wraps an initialized database connection
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// LoadTrades reads the full trade journal ordered by date
func (s *PostgresStore) LoadTrades(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, date, time, account, strategy, instrument, direction,
		       entry_price, exit_price, stop_loss, position_size, pnl,
		       r_multiple, outcome, setup_quality, execution_quality, notes
		FROM trades
		ORDER BY date, time, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var trade models.Trade
		err := rows.Scan(
			&trade.ID, &trade.Date, &trade.TimeOfDay, &trade.Account,
			&trade.Strategy, &trade.Instrument, &trade.Direction,
			&trade.EntryPrice, &trade.ExitPrice, &trade.StopLoss,
			&trade.PositionSize, &trade.PnL, &trade.RMultiple,
			&trade.Outcome, &trade.SetupQuality, &trade.ExecutionQuality,
			&trade.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trades: %w", err)
	}
	return trades, nil
}

// SaveTrades replaces the stored trade journal with the given one
func (s *PostgresStore) SaveTrades(ctx context.Context, trades []models.Trade) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM trades"); err != nil {
			return fmt.Errorf("failed to clear trades: %w", err)
		}
		for _, trade := range trades {
			_, err := tx.Exec(ctx, `
				INSERT INTO trades (
					id, date, time, account, strategy, instrument, direction,
					entry_price, exit_price, stop_loss, position_size, pnl,
					r_multiple, outcome, setup_quality, execution_quality, notes
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
				trade.ID, trade.Date, trade.TimeOfDay, trade.Account,
				trade.Strategy, trade.Instrument, trade.Direction,
				trade.EntryPrice, trade.ExitPrice, trade.StopLoss,
				trade.PositionSize, trade.PnL, trade.RMultiple,
				trade.Outcome, trade.SetupQuality, trade.ExecutionQuality,
				trade.Notes,
			)
			if err != nil {
				return fmt.Errorf("failed to insert trade %s: %w", trade.ID, err)
			}
		}
		return nil
	})
}

// LoadDaily reads daily performance rows ordered by date
func (s *PostgresStore) LoadDaily(ctx context.Context) ([]models.DailyPerformance, error) {
	rows, err := s.db.Query(ctx, `
		SELECT date, account, pnl
		FROM daily_performance
		ORDER BY date, account`)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily performance: %w", err)
	}
	defer rows.Close()

	var daily []models.DailyPerformance
	for rows.Next() {
		var row models.DailyPerformance
		if err := rows.Scan(&row.Date, &row.Account, &row.PnL); err != nil {
			return nil, fmt.Errorf("failed to scan daily performance: %w", err)
		}
		daily = append(daily, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily performance: %w", err)
	}
	return daily, nil
}

// SaveDaily replaces the stored daily performance rows
func (s *PostgresStore) SaveDaily(ctx context.Context, daily []models.DailyPerformance) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM daily_performance"); err != nil {
			return fmt.Errorf("failed to clear daily performance: %w", err)
		}
		for _, row := range daily {
			_, err := tx.Exec(ctx, `
				INSERT INTO daily_performance (date, account, pnl)
				VALUES ($1, $2, $3)`,
				row.Date, row.Account, row.PnL,
			)
			if err != nil {
				return fmt.Errorf("failed to insert daily performance for %s: %w", row.Account, err)
			}
		}
		return nil
	})
}

// LoadAccounts reads the account table
func (s *PostgresStore) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, strategy, starting_balance, current_balance,
		       risk_per_trade, daily_stop, weekly_stop, start_date,
		       color, header_class
		FROM accounts
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.Name, &account.Strategy, &account.StartingBalance,
			&account.CurrentBalance, &account.RiskPerTrade,
			&account.DailyStop, &account.WeeklyStop, &account.StartDate,
			&account.Color, &account.HeaderClass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

// SaveAccounts upserts all accounts by name
func (s *PostgresStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	return s.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, account := range accounts {
			_, err := tx.Exec(ctx, `
				INSERT INTO accounts (
					name, strategy, starting_balance, current_balance,
					risk_per_trade, daily_stop, weekly_stop, start_date,
					color, header_class
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (name) DO UPDATE SET
					strategy = EXCLUDED.strategy,
					starting_balance = EXCLUDED.starting_balance,
					current_balance = EXCLUDED.current_balance,
					risk_per_trade = EXCLUDED.risk_per_trade,
					daily_stop = EXCLUDED.daily_stop,
					weekly_stop = EXCLUDED.weekly_stop,
					start_date = EXCLUDED.start_date,
					color = EXCLUDED.color,
					header_class = EXCLUDED.header_class`,
				account.Name, account.Strategy, account.StartingBalance,
				account.CurrentBalance, account.RiskPerTrade,
				account.DailyStop, account.WeeklyStop, account.StartDate,
				account.Color, account.HeaderClass,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert account %s: %w", account.Name, err)
			}
		}
		return nil
	})
}

// Close releases the underlying connection pool
func (s *PostgresStore) Close(ctx context.Context) error {
	s.db.Close()
	return nil
}
