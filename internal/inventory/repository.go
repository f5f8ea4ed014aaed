package inventory

import (
	"context"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"gorm.io/gorm"
)

// FilterAll disables the item_type filter on listings.
const FilterAll = "all"

// Repository exposes inventory persistence operations.
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

// List returns inventory items, newest first, optionally filtered by type.
func (r *Repository) List(ctx context.Context, itemType string) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if itemType != "" && itemType != FilterAll {
		query = query.Where("item_type = ?", itemType)
	}
	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListLowStock returns items whose quantity is at or below their minimum.
func (r *Repository) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("quantity <= min_stock").
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountLowStock returns the number of low-stock items.
func (r *Repository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("quantity <= min_stock").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID loads one item by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Save persists all fields of the item.
func (r *Repository) Save(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes the item row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id).Error
}
