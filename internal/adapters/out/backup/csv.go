// Package backup keeps an append-only audit trail of processed orders in a
// CSV file or a Redis list.
package backup

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"checkout/internal/core/domain/model/order"
)

// CsvBackup appends one id,email,status row per order.
type CsvBackup struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

func NewCsvBackup(path string, logger *slog.Logger) *CsvBackup {
	return &CsvBackup{path: path, logger: logger.With("component", "csv_backup")}
}

func (b *CsvBackup) Backup(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(row(o)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write backup row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write backup row: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close backup file: %w", err)
	}

	b.logger.DebugContext(ctx, "Backup row appended", "order_id", o.ID().String(), "path", b.path)
	return nil
}

func row(o *order.Order) []string {
	return []string{o.ID().String(), o.Email().String(), o.Status().String()}
}
