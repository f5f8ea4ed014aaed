package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a general supply line (medicine, equipment, etc.).
type InventoryItem struct {
	ID             uint             `gorm:"primaryKey;autoIncrement"`
	ItemType       string           `gorm:"column:item_type;size:50;not null"`
	Name           string           `gorm:"column:name;size:100;not null"`
	Description    *string          `gorm:"column:description;type:text"`
	Quantity       int              `gorm:"column:quantity;not null;default:0"`
	Unit           *string          `gorm:"column:unit;size:20"`
	MinStock       int              `gorm:"column:min_stock;not null;default:0"`
	Cost           *decimal.Decimal `gorm:"column:cost;type:numeric"`
	PurchaseDate   *time.Time       `gorm:"column:purchase_date;type:date"`
	ExpirationDate *time.Time       `gorm:"column:expiration_date;type:date"`
	Supplier       *string          `gorm:"column:supplier;size:100"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryItem) TableName() string { return "inventory" }

// IsLowStock reports whether on-hand quantity has fallen to or below the
// configured minimum.
func (i InventoryItem) IsLowStock() bool { return i.Quantity <= i.MinStock }
