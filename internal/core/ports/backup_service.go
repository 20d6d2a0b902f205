package ports

import (
	"context"

	"checkout/internal/core/domain/model/order"
)

// BackupService appends an audit record of the order (id, email, status).
type BackupService interface {
	Backup(ctx context.Context, o *order.Order) error
}
