// Package main provides the entry point for the prop tracker.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-tracker/internal/config"
	"github.com/yourusername/prop-tracker/internal/database"
	"github.com/yourusername/prop-tracker/internal/health"
	"github.com/yourusername/prop-tracker/internal/logger"
	"github.com/yourusername/prop-tracker/internal/metrics"
	"github.com/yourusername/prop-tracker/internal/models"
	"github.com/yourusername/prop-tracker/internal/report"
	"github.com/yourusername/prop-tracker/internal/sampledata"
	"github.com/yourusername/prop-tracker/internal/scheduler"
	"github.com/yourusername/prop-tracker/internal/server"
	"github.com/yourusername/prop-tracker/internal/session"
	"github.com/yourusername/prop-tracker/internal/store"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(serveCmd, reportCmd, seedCmd, versionCmd)

	reportCmd.Flags().String("account", "", "Account to report on (defaults to all)")
	reportCmd.Flags().String("export-dir", "", "Directory to write CSV exports into")
	seedCmd.Flags().Int64("seed", time.Now().UnixNano(), "Random seed for sample data")
}

var rootCmd = &cobra.Command{
	Use:   "proptracker",
	Short: "Performance tracker for funded trading accounts",
	Long: `Tracks trades, daily P&L, and risk across multiple funded accounts,
and serves performance analytics over a JSON API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tracker API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print performance reports for tracked accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountName, _ := cmd.Flags().GetString("account")
		exportDir, _ := cmd.Flags().GetString("export-dir")
		return runReport(cmd.Context(), accountName, exportDir)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")
		return runSeed(cmd.Context(), seed)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("proptracker %s (%s)\n", Version, GitCommit)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// openStore builds the configured persistence backend. The returned pinger
// is nil for the flat-file backend, which has no connection to probe.
func openStore(ctx context.Context) (store.Store, health.StorePinger, error) {
	if cfg.UsesPostgres() {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store.NewPostgresStore(db), db, nil
	}

	dataDir := cfg.Storage.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	st, err := store.NewFlatFileStore(dataDir)
	return st, nil, err
}

// loadState builds the session state from configured accounts and anything
// the store already holds
func loadState(ctx context.Context, st store.Store) (*session.State, error) {
	configured := make([]models.Account, 0, len(cfg.Accounts))
	for _, ac := range cfg.Accounts {
		configured = append(configured, models.Account{
			Name:            ac.Name,
			Strategy:        ac.Strategy,
			StartingBalance: ac.StartingBalance,
			CurrentBalance:  ac.StartingBalance,
			RiskPerTrade:    ac.RiskPerTrade,
			DailyStop:       ac.DailyStop,
			WeeklyStop:      ac.WeeklyStop,
			Color:           ac.Color,
			HeaderClass:     ac.HeaderClass,
		})
	}

	state := session.NewState(configured)
	if err := session.Restore(ctx, state, st); err != nil {
		return nil, err
	}

	for _, account := range state.Accounts() {
		metrics.UpdateAccountBalance(account.Name, account.CurrentBalance)
	}
	metrics.UpdateJournalSize(len(state.AllTrades()))
	return state, nil
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.InitRegistry()

	st, pinger, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			appLog.WithError(err).Error("Failed to close store")
		}
	}()

	state, err := loadState(ctx, st)
	if err != nil {
		return err
	}

	appLog.WithFields(logrus.Fields{
		"accounts": len(state.Accounts()),
		"trades":   len(state.AllTrades()),
		"backend":  cfg.Storage.Backend,
	}).Info("Session state loaded")

	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		Store:       pinger,
	})
	if err := healthSrv.Start(ctx); err != nil {
		return err
	}
	healthSrv.SetReady(true)

	if cfg.Autosave.Enabled {
		sched := scheduler.NewScheduler(state, st, appLog)
		if err := sched.ScheduleAutosave(cfg.Autosave.Schedule); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	srv := server.New(cfg, appLog, state, st)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	// Final snapshot so nothing recorded since the last autosave is lost.
	saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := session.Snapshot(saveCtx, state, st); err != nil {
		appLog.WithError(err).Error("Final snapshot failed")
	}
	return nil
}

func runReport(ctx context.Context, accountName, exportDir string) error {
	st, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	state, err := loadState(ctx, st)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	if accountName != "" {
		names = append(names, accountName)
	} else {
		for _, account := range state.Accounts() {
			names = append(names, account.Name)
		}
	}
	if len(names) == 0 {
		return errors.New("no accounts configured")
	}

	for _, name := range names {
		r, err := report.BuildAccountReport(state, name)
		if err != nil {
			return err
		}
		fmt.Println(report.GenerateConsoleReport(r))

		if exportDir != "" {
			base := filepath.Join(exportDir, sanitizeFilename(name))
			if err := report.GenerateCSVExport(r, base+"_summary.csv"); err != nil {
				return err
			}
			if err := report.ExportEquityCurve(state, name, base+"_equity.csv"); err != nil {
				return err
			}
			appLog.WithField("account", name).Info("Report exported")
		}
	}
	return nil
}

func runSeed(ctx context.Context, seed int64) error {
	st, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	gen := sampledata.New(seed, time.Now())
	accounts := gen.Accounts(cfg.Accounts)
	trades := gen.Trades(accounts)
	daily := gen.Daily(accounts)

	if err := st.SaveAccounts(ctx, accounts); err != nil {
		return err
	}
	if err := st.SaveTrades(ctx, trades); err != nil {
		return err
	}
	if err := st.SaveDaily(ctx, daily); err != nil {
		return err
	}

	appLog.WithFields(logrus.Fields{
		"accounts": len(accounts),
		"trades":   len(trades),
		"daily":    len(daily),
		"seed":     seed,
	}).Info("Sample data written")
	return nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
