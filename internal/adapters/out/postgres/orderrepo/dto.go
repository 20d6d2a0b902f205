// Package orderrepo persists processed orders to PostgreSQL through GORM and
// maps between the Order entity and its table rows.
package orderrepo

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of processed_orders. Items are stored in processed_order_items.
type OrderDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email   string          `gorm:"size:320;not null"`
	Country string          `gorm:"size:16;not null;index"`
	Status  string          `gorm:"size:16;not null"`
	Total   decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	SavedAt time.Time       `gorm:"autoCreateTime;index"`
	Items   []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "processed_orders"
}

// ItemDTO is one order line; Position keeps the original line order.
type ItemDTO struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Quantity int             `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "processed_order_items"
}

func fromDomain(o *order.Order, total decimal.Decimal) OrderDTO {
	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:  o.ID().Bytes(),
			Position: i,
			Price:    item.Price(),
			Quantity: item.Quantity(),
		})
	}

	return OrderDTO{
		ID:      o.ID().Bytes(),
		Email:   o.Email().String(),
		Country: o.Country().Code(),
		Status:  o.Status().String(),
		Total:   total,
		Items:   items,
	}
}

// toDomain rebuilds the order; dto.Items must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	country, err := kernel.NewCountry(dto.Country)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, email, items, country, status)
}

func toRecord(dto OrderDTO) (ports.ProcessedOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ProcessedOrder{}, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return ports.ProcessedOrder{}, err
	}

	return ports.ProcessedOrder{
		ID:      id,
		Status:  status,
		Total:   dto.Total,
		Email:   dto.Email,
		Country: dto.Country,
		SavedAt: dto.SavedAt,
	}, nil
}
