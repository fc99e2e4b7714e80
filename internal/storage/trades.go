package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"snapbuy/internal/models"
)

// TradeDB persists completed purchases.
type TradeDB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS trades (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp DATETIME NOT NULL,
    price REAL NOT NULL,
    spent REAL NOT NULL,
    balance_after REAL NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// NewTradeDB opens (creating if needed) the trade ledger at path. An empty
// path places it next to the settings file under the user config directory.
func NewTradeDB(path string) (*TradeDB, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user config directory: %w", err)
		}
		path = filepath.Join(configDir, "snapbuy", "trades.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc's driver is not safe for concurrent writers on one file
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TradeDB{db: db}, nil
}

func (d *TradeDB) Close() error {
	return d.db.Close()
}

// Append records one completed purchase.
func (d *TradeDB) Append(entry models.TradeLogEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO trades (timestamp, price, spent, balance_after) VALUES (?, ?, ?, ?)`,
		entry.Timestamp, entry.UnitPrice, entry.TotalPrice, entry.BalanceAfter)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// Recent returns the newest trades, most recent first.
func (d *TradeDB) Recent(limit int) ([]models.TradeLogEntry, error) {
	rows, err := d.db.Query(
		`SELECT timestamp, price, spent, balance_after
         FROM trades
         ORDER BY timestamp DESC, id DESC
         LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeLogEntry
	for rows.Next() {
		var entry models.TradeLogEntry
		var timestamp time.Time
		if err := rows.Scan(&timestamp, &entry.UnitPrice, &entry.TotalPrice, &entry.BalanceAfter); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		entry.Timestamp = timestamp
		trades = append(trades, entry)
	}
	return trades, rows.Err()
}

// TotalSpent sums all recorded purchases.
func (d *TradeDB) TotalSpent() (float64, error) {
	var total sql.NullFloat64
	if err := d.db.QueryRow(`SELECT SUM(spent) FROM trades`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum trades: %w", err)
	}
	return total.Float64, nil
}
