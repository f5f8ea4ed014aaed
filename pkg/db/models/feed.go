package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Feed is a feed stock line: hay, grain, mineral blocks and the like.
type Feed struct {
	ID             uint             `gorm:"primaryKey;autoIncrement"`
	Name           string           `gorm:"column:name;size:100;not null"`
	Description    *string          `gorm:"column:description;type:text"`
	Quantity       float64          `gorm:"column:quantity;not null"`
	Unit           string           `gorm:"column:unit;size:20;default:kg"`
	PurchaseDate   *time.Time       `gorm:"column:purchase_date;type:date"`
	ExpirationDate *time.Time       `gorm:"column:expiration_date;type:date"`
	Cost           *decimal.Decimal `gorm:"column:cost;type:numeric"`
	Supplier       *string          `gorm:"column:supplier;size:100"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Feed) TableName() string { return "feeds" }
