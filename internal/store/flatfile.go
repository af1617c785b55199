package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/prop-tracker/internal/models"
)

const (
	tradesFile   = "trades.csv"
	dailyFile    = "performance.csv"
	accountsFile = "accounts.json"

	dateLayout = "2006-01-02"
)

var tradeHeader = []string{
	"id", "date", "time", "account", "strategy", "instrument", "direction",
	"entry_price", "exit_price", "stop_loss", "position_size", "pnl",
	"r_multiple", "outcome", "setup_quality", "execution_quality", "notes",
}

var dailyHeader = []string{"date", "account", "pnl"}

// FlatFileStore persists tracker data as flat files under one directory:
// trades.csv, performance.csv, and accounts.json.
type FlatFileStore struct {
	dir string
}

// NewFlatFileStore creates the data directory if needed and returns a store
// rooted there
func NewFlatFileStore(dir string) (*FlatFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FlatFileStore{dir: dir}, nil
}

// LoadTrades reads the trade journal; a missing file yields an empty journal
func (s *FlatFileStore) LoadTrades(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.readCSV(tradesFile)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}

	trades := make([]models.Trade, 0, len(rows))
	for i, row := range rows {
		trade, err := tradeFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("trades.csv row %d: %w", i+2, err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// SaveTrades writes the whole journal, replacing the stored file
func (s *FlatFileStore) SaveTrades(ctx context.Context, trades []models.Trade) error {
	rows := make([][]string, 0, len(trades))
	for _, trade := range trades {
		rows = append(rows, tradeToRow(trade))
	}
	return s.writeCSV(tradesFile, tradeHeader, rows)
}

// LoadDaily reads daily performance rows; a missing file yields none
func (s *FlatFileStore) LoadDaily(ctx context.Context) ([]models.DailyPerformance, error) {
	rows, err := s.readCSV(dailyFile)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}

	daily := make([]models.DailyPerformance, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(dailyHeader) {
			return nil, fmt.Errorf("performance.csv row %d: expected %d fields, got %d", i+2, len(dailyHeader), len(row))
		}
		date, err := time.Parse(dateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("performance.csv row %d: %w", i+2, err)
		}
		pnl, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("performance.csv row %d: %w", i+2, err)
		}
		daily = append(daily, models.DailyPerformance{Date: date, Account: row[1], PnL: pnl})
	}
	return daily, nil
}

// SaveDaily writes all daily performance rows, replacing the stored file
func (s *FlatFileStore) SaveDaily(ctx context.Context, daily []models.DailyPerformance) error {
	rows := make([][]string, 0, len(daily))
	for _, row := range daily {
		rows = append(rows, []string{
			row.Date.Format(dateLayout),
			row.Account,
			formatAmount(row.PnL),
		})
	}
	return s.writeCSV(dailyFile, dailyHeader, rows)
}

// LoadAccounts reads the account table; a missing file yields none
func (s *FlatFileStore) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, accountsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}
	return accounts, nil
}

// SaveAccounts writes the account table as indented JSON
func (s *FlatFileStore) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	data, err := json.MarshalIndent(accounts, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	return s.atomicWrite(accountsFile, data)
}

// Close is a no-op for the flat-file backend
func (s *FlatFileStore) Close(ctx context.Context) error {
	return nil
}

// readCSV returns the data rows of a CSV file, nil when the file does not
// exist yet
func (s *FlatFileStore) readCSV(name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(records) <= 1 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func (s *FlatFileStore) writeCSV(name string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return s.atomicWrite(name, buf.Bytes())
}

// atomicWrite writes to a temp file in the data directory then renames it
// into place so readers never see a partial file
func (s *FlatFileStore) atomicWrite(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func tradeToRow(trade models.Trade) []string {
	executionQuality := ""
	if trade.ExecutionQuality != nil {
		executionQuality = strconv.Itoa(*trade.ExecutionQuality)
	}
	return []string{
		trade.ID.String(),
		trade.Date.Format(dateLayout),
		trade.TimeOfDay,
		trade.Account,
		trade.Strategy,
		trade.Instrument,
		string(trade.Direction),
		formatAmount(trade.EntryPrice),
		formatAmount(trade.ExitPrice),
		formatAmount(trade.StopLoss),
		strconv.Itoa(trade.PositionSize),
		formatAmount(trade.PnL),
		formatAmount(trade.RMultiple),
		string(trade.Outcome),
		strconv.Itoa(trade.SetupQuality),
		executionQuality,
		trade.Notes,
	}
}

func tradeFromRow(row []string) (models.Trade, error) {
	if len(row) != len(tradeHeader) {
		return models.Trade{}, fmt.Errorf("expected %d fields, got %d", len(tradeHeader), len(row))
	}

	id, err := uuid.Parse(row[0])
	if err != nil {
		return models.Trade{}, fmt.Errorf("invalid trade id: %w", err)
	}
	date, err := time.Parse(dateLayout, row[1])
	if err != nil {
		return models.Trade{}, fmt.Errorf("invalid date: %w", err)
	}

	trade := models.Trade{
		ID:         id,
		Date:       date,
		TimeOfDay:  row[2],
		Account:    row[3],
		Strategy:   row[4],
		Instrument: row[5],
		Direction:  models.Direction(row[6]),
		Outcome:    models.Outcome(row[13]),
		Notes:      row[16],
	}
	if trade.EntryPrice, err = strconv.ParseFloat(row[7], 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid entry price: %w", err)
	}
	if trade.ExitPrice, err = strconv.ParseFloat(row[8], 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid exit price: %w", err)
	}
	if trade.StopLoss, err = strconv.ParseFloat(row[9], 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid stop loss: %w", err)
	}
	if trade.PositionSize, err = strconv.Atoi(row[10]); err != nil {
		return models.Trade{}, fmt.Errorf("invalid position size: %w", err)
	}
	if trade.PnL, err = strconv.ParseFloat(row[11], 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid pnl: %w", err)
	}
	if trade.RMultiple, err = strconv.ParseFloat(row[12], 64); err != nil {
		return models.Trade{}, fmt.Errorf("invalid r multiple: %w", err)
	}
	if trade.SetupQuality, err = strconv.Atoi(row[14]); err != nil {
		return models.Trade{}, fmt.Errorf("invalid setup quality: %w", err)
	}
	if row[15] != "" {
		quality, err := strconv.Atoi(row[15])
		if err != nil {
			return models.Trade{}, fmt.Errorf("invalid execution quality: %w", err)
		}
		trade.ExecutionQuality = &quality
	}
	return trade, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
