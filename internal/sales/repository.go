package sales

import (
	"context"
	"time"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes sale persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// yearBounds returns the [start, end) range covering a calendar year. The
// half-open range keeps the filter portable across sqlite and postgres.
func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// ListByYear returns sales whose sale_date falls in the given calendar year,
// most recent first, with the referenced animal preloaded.
func (r *Repository) ListByYear(ctx context.Context, year int) ([]models.Sale, error) {
	start, end := yearBounds(year)
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Animal").
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Order("sale_date DESC, id DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// CountByYear returns the number of sales registered in the year.
func (r *Repository) CountByYear(ctx context.Context, year int) (int64, error) {
	start, end := yearBounds(year)
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumPriceByYear returns the total revenue for the year; zero when the year
// has no sales.
func (r *Repository) SumPriceByYear(ctx context.Context, year int) (decimal.Decimal, error) {
	start, end := yearBounds(year)
	var total decimal.NullDecimal
	row := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("SUM(sale_price)").
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Create inserts a new sale row.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}
