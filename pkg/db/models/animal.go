package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Animal status values. The only transition is active -> sold, and it
// happens exclusively through sale registration.
const (
	AnimalStatusActive = "active"
	AnimalStatusSold   = "sold"
)

// Animal is a single head of livestock, keyed by its physical ear tag.
type Animal struct {
	ID            uint             `gorm:"primaryKey;autoIncrement"`
	EarTag        string           `gorm:"column:ear_tag;size:20;not null;uniqueIndex"`
	Name          *string          `gorm:"column:name;size:100"`
	Breed         *string          `gorm:"column:breed;size:50"`
	BirthDate     *time.Time       `gorm:"column:birth_date;type:date"`
	Gender        *string          `gorm:"column:gender;size:10"`
	Weight        *float64         `gorm:"column:weight"`
	Status        string           `gorm:"column:status;size:20;not null;default:active"`
	PurchaseDate  *time.Time       `gorm:"column:purchase_date;type:date"`
	PurchasePrice *decimal.Decimal `gorm:"column:purchase_price;type:numeric"`
	SaleDate      *time.Time       `gorm:"column:sale_date;type:date"`
	SalePrice     *decimal.Decimal `gorm:"column:sale_price;type:numeric"`
	Notes         *string          `gorm:"column:notes;type:text"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Animal) TableName() string { return "animals" }

// IsActive reports whether the animal is still part of the flock.
func (a Animal) IsActive() bool { return a.Status == AnimalStatusActive }
