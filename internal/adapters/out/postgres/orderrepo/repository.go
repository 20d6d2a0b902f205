package orderrepo

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository and ports.ProcessedOrderReader.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Migrate creates or updates both tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{}, &ItemDTO{})
}

// Save writes the order row and its items in one transaction. Saving the same
// order twice fails on the primary key.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order, total decimal.Decimal) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o, total)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}
		if len(dto.Items) == 0 {
			return nil
		}
		return tx.Create(&dto.Items).Error
	})
}

// Get restores a saved order and the total it was charged.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, decimal.Decimal, error) {
	if err := id.Validate(); err != nil {
		return nil, decimal.Zero, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, decimal.Zero, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return o, dto.Total, nil
}

// ListProcessed returns the newest orders first, without their items. Orders
// saved at the same instant are ordered by id.
func (r *GormOrderRepository) ListProcessed(ctx context.Context, limit int) ([]ports.ProcessedOrder, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("saved_at DESC, id DESC").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]ports.ProcessedOrder, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toRecord(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
