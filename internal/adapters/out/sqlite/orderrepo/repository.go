// Package orderrepo stores processed orders in a local SQLite file as
// (id, total, status) rows.
package orderrepo

import (
	"context"
	"database/sql"
	"fmt"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/shopspring/decimal"
)

const schema = `CREATE TABLE IF NOT EXISTS orders (id TEXT, total REAL, status TEXT)`

// SqliteOrderRepository implements ports.OrderRepository and ports.ProcessedOrderReader.
type SqliteOrderRepository struct {
	db *sql.DB
}

// Open connects to dbPath (":memory:" works for tests) and creates the table.
func Open(ctx context.Context, dbPath string) (*SqliteOrderRepository, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// One connection: SQLite has a single writer, and :memory: databases are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create orders table: %w", err)
	}

	return &SqliteOrderRepository{db: db}, nil
}

func (r *SqliteOrderRepository) Close() error {
	return r.db.Close()
}

// Save inserts one row with the order's status at the time of saving.
func (r *SqliteOrderRepository) Save(ctx context.Context, o *order.Order, total decimal.Decimal) error {
	if err := o.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders VALUES (?, ?, ?)`,
		o.ID().String(), total.InexactFloat64(), o.Status().String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.ID(), err)
	}
	return nil
}

// ListProcessed returns the newest rows first.
func (r *SqliteOrderRepository) ListProcessed(ctx context.Context, limit int) ([]ports.ProcessedOrder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, total, status FROM orders ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]ports.ProcessedOrder, 0)
	for rows.Next() {
		var (
			id, status string
			total      float64
		)
		if err = rows.Scan(&id, &total, &status); err != nil {
			return nil, err
		}

		record, convErr := toRecord(id, total, status)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func toRecord(id string, total float64, status string) (ports.ProcessedOrder, error) {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return ports.ProcessedOrder{}, err
	}
	s, err := order.ParseStatus(status)
	if err != nil {
		return ports.ProcessedOrder{}, err
	}
	return ports.ProcessedOrder{
		ID:     orderID,
		Status: s,
		Total:  decimal.NewFromFloat(total),
	}, nil
}
