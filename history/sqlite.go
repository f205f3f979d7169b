package history

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"barcode-inventory/models"
)

// SQLLog stores history in the stock_history table created by config.OpenHistoryDB.
type SQLLog struct {
	db *sqlx.DB
}

func NewSQLLog(db *sqlx.DB) *SQLLog {
	return &SQLLog{db: db}
}

func (l *SQLLog) Append(ctx context.Context, entry models.StockHistoryEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO stock_history (barcode, timestamp, quantity) VALUES (?, ?, ?)`,
		entry.Barcode, entry.Timestamp, strconv.Itoa(entry.Quantity))
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

func (l *SQLLog) Query(ctx context.Context, barcode string) ([]models.StockPoint, error) {
	var rows []rawEntry
	err := l.db.SelectContext(ctx, &rows,
		`SELECT barcode, timestamp, quantity FROM stock_history WHERE barcode = ? ORDER BY id ASC`, barcode)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return collect(rows, barcode, "sqlite"), nil
}
