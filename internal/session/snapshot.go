package session

import (
	"context"
	"fmt"

	"github.com/yourusername/prop-tracker/internal/store"
)

// Snapshot writes the full session contents through the store. The store
// replaces its contents wholesale, so a snapshot always leaves persistence
// consistent with memory.
func Snapshot(ctx context.Context, state *State, st store.Store) error {
	if err := st.SaveTrades(ctx, state.AllTrades()); err != nil {
		return fmt.Errorf("failed to save trades: %w", err)
	}
	if err := st.SaveDaily(ctx, state.AllDaily()); err != nil {
		return fmt.Errorf("failed to save daily performance: %w", err)
	}
	if err := st.SaveAccounts(ctx, state.Accounts()); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// Restore loads persisted data into the session state
func Restore(ctx context.Context, state *State, st store.Store) error {
	trades, err := st.LoadTrades(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}
	daily, err := st.LoadDaily(ctx)
	if err != nil {
		return fmt.Errorf("failed to load daily performance: %w", err)
	}
	accounts, err := st.LoadAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	state.Load(trades, daily, accounts)
	return nil
}
