package animals

import (
	"context"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes animal persistence operations.
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

// List returns all animals, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Animal, error) {
	var animals []models.Animal
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&animals).Error; err != nil {
		return nil, err
	}
	return animals, nil
}

// ListByStatus returns animals with the given status, newest first.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]models.Animal, error) {
	var animals []models.Animal
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&animals).Error; err != nil {
		return nil, err
	}
	return animals, nil
}

// FindByID loads one animal by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Animal, error) {
	var animal models.Animal
	if err := r.db.WithContext(ctx).First(&animal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &animal, nil
}

// Create inserts a new animal.
func (r *Repository) Create(ctx context.Context, animal *models.Animal) (*models.Animal, error) {
	if err := r.db.WithContext(ctx).Create(animal).Error; err != nil {
		return nil, err
	}
	return animal, nil
}

// Count returns the total number of animals.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Animal{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of animals with the given status.
func (r *Repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Animal{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
