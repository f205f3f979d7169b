package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"barcode-inventory/models"
)

// FileLog stores history as a headerless CSV file: barcode,timestamp,quantity.
type FileLog struct {
	path string
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

func (l *FileLog) Append(ctx context.Context, entry models.StockHistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{entry.Barcode, entry.Timestamp, strconv.Itoa(entry.Quantity)}); err != nil {
		f.Close()
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return f.Close()
}

func (l *FileLog) Query(ctx context.Context, barcode string) ([]models.StockPoint, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.StockPoint{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []rawEntry
	for line := 1; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Printf("history: skipping malformed line %d: %v", line, err)
				continue
			}
			return nil, fmt.Errorf("failed to read history file: %w", err)
		}
		if len(record) < 3 {
			log.Printf("history: skipping line %d with %d fields", line, len(record))
			continue
		}
		rows = append(rows, rawEntry{Barcode: record[0], Timestamp: record[1], Quantity: record[2]})
	}

	return collect(rows, barcode, "file"), nil
}
