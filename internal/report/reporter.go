// Package report renders account performance summaries for the terminal and
// for spreadsheet export.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/prop-tracker/internal/analytics"
	"github.com/yourusername/prop-tracker/internal/models"
	"github.com/yourusername/prop-tracker/internal/session"
)

// AccountReport bundles everything the renderers need for one account
type AccountReport struct {
	Account       models.Account
	Metrics       analytics.AccountMetrics
	TotalTrades   int
	TotalPnL      float64
	MonthlyReturn float64
	CurrentDD     float64
	MaxDD         float64
	Stats         analytics.DrawdownStats
}

// BuildAccountReport assembles the report inputs for one account
func BuildAccountReport(state *session.State, accountName string) (AccountReport, error) {
	account, err := state.Account(accountName)
	if err != nil {
		return AccountReport{}, err
	}

	trades := state.TradesFor(account.Name)
	series := state.DailySeriesFor(account.Name)
	current, maximum := analytics.Drawdown(series)

	return AccountReport{
		Account:       account,
		Metrics:       analytics.CalculateAccountMetrics(trades),
		TotalTrades:   len(trades),
		TotalPnL:      series.TotalPnL(),
		MonthlyReturn: analytics.MonthlyReturn(series, account.CurrentBalance),
		CurrentDD:     current,
		MaxDD:         maximum,
		Stats:         analytics.DrawdownStatistics(series, account.StartingBalance, account.Strategy),
	}, nil
}

// GenerateConsoleReport formats one account's performance for terminal output
func GenerateConsoleReport(r AccountReport) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s (%s)\n", r.Account.Name, r.Account.Strategy))
	builder.WriteString(strings.Repeat("=", len(r.Account.Name)+len(r.Account.Strategy)+3) + "\n")
	builder.WriteString(fmt.Sprintf("Balance: $%.2f (started $%.2f)\n", r.Account.CurrentBalance, r.Account.StartingBalance))
	builder.WriteString(fmt.Sprintf("Total P&L: $%.2f over %d trades\n", r.TotalPnL, r.TotalTrades))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", r.Metrics.WinRate*100))
	builder.WriteString(fmt.Sprintf("Avg Win: %.2fR  Avg Loss: %.2fR\n", r.Metrics.AvgWin, r.Metrics.AvgLoss))
	builder.WriteString(fmt.Sprintf("Expectancy: %.2fR\n", r.Metrics.Expectancy))
	builder.WriteString(fmt.Sprintf("Profit Factor: %.2f\n", r.Metrics.ProfitFactor))
	builder.WriteString(fmt.Sprintf("Monthly Return: %.2f%%\n", r.MonthlyReturn))
	builder.WriteString(fmt.Sprintf("Current Drawdown: $%.2f\n", r.CurrentDD))
	builder.WriteString(fmt.Sprintf("Max Drawdown: $%.2f (%.2f%% on %s)\n", r.MaxDD, r.Stats.MaxDrawdownPct, r.Stats.MaxDrawdownDate))
	builder.WriteString(fmt.Sprintf("Recovery: %s days\n", r.Stats.RecoveryDays))
	return builder.String()
}

// GenerateCSVExport writes one account's key figures for spreadsheets
func GenerateCSVExport(r AccountReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("account,%s\n", r.Account.Name) +
		fmt.Sprintf("strategy,%s\n", r.Account.Strategy) +
		fmt.Sprintf("current_balance,%.2f\n", r.Account.CurrentBalance) +
		fmt.Sprintf("total_pnl,%.2f\n", r.TotalPnL) +
		fmt.Sprintf("total_trades,%d\n", r.TotalTrades) +
		fmt.Sprintf("win_rate,%.4f\n", r.Metrics.WinRate) +
		fmt.Sprintf("avg_win,%.4f\n", r.Metrics.AvgWin) +
		fmt.Sprintf("avg_loss,%.4f\n", r.Metrics.AvgLoss) +
		fmt.Sprintf("expectancy,%.4f\n", r.Metrics.Expectancy) +
		fmt.Sprintf("profit_factor,%.4f\n", r.Metrics.ProfitFactor) +
		fmt.Sprintf("monthly_return,%.4f\n", r.MonthlyReturn) +
		fmt.Sprintf("current_drawdown,%.2f\n", r.CurrentDD) +
		fmt.Sprintf("max_drawdown,%.2f\n", r.MaxDD) +
		fmt.Sprintf("max_drawdown_pct,%.4f\n", r.Stats.MaxDrawdownPct) +
		fmt.Sprintf("recovery_days,%s\n", r.Stats.RecoveryDays)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}

// ExportEquityCurve writes the equity curve CSV for one account
func ExportEquityCurve(state *session.State, accountName, outputPath string) error {
	account, err := state.Account(accountName)
	if err != nil {
		return err
	}
	curve := analytics.BuildEquityCurve(state.DailySeriesFor(account.Name), account.StartingBalance)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(curve.ToCSV()), 0o644)
}
