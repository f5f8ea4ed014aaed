package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records the sale of one animal. Rows are written once at
// registration and never edited or deleted.
type Sale struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"`
	AnimalID     uint            `gorm:"column:animal_id;not null;index"`
	Animal       *Animal         `gorm:"foreignKey:AnimalID"`
	SaleDate     time.Time       `gorm:"column:sale_date;type:date;not null"`
	SalePrice    decimal.Decimal `gorm:"column:sale_price;type:numeric;not null"`
	BuyerName    *string         `gorm:"column:buyer_name;size:100"`
	BuyerContact *string         `gorm:"column:buyer_contact;size:100"`
	Notes        *string         `gorm:"column:notes;type:text"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Sale) TableName() string { return "sales" }
