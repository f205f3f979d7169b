package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenHistoryDB opens the SQLite database backing the stock history log and
// creates the necessary tables.
func OpenHistoryDB(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps appends ordered and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createTables(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// quantity is TEXT so malformed values are skipped at read time, the same
	// way the CSV log handles them
	historyTable := `
		CREATE TABLE IF NOT EXISTS stock_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		barcode TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		quantity TEXT NOT NULL
	);`
	if _, err = tx.Exec(historyTable); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create stock_history table: %w", err)
	}

	if _, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_stock_history_barcode ON stock_history(barcode)`); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create stock_history index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("History database tables ready.")
	return nil
}
