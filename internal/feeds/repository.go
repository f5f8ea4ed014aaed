package feeds

import (
	"context"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes feed stock persistence operations.
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

// List returns all feeds, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Feed, error) {
	var feeds []models.Feed
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&feeds).Error; err != nil {
		return nil, err
	}
	return feeds, nil
}

// FindByID loads one feed by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Feed, error) {
	var feed models.Feed
	if err := r.db.WithContext(ctx).First(&feed, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feed, nil
}

// Create inserts a new feed.
func (r *Repository) Create(ctx context.Context, feed *models.Feed) (*models.Feed, error) {
	if err := r.db.WithContext(ctx).Create(feed).Error; err != nil {
		return nil, err
	}
	return feed, nil
}

// Save persists all fields of the feed.
func (r *Repository) Save(ctx context.Context, feed *models.Feed) error {
	return r.db.WithContext(ctx).Save(feed).Error
}

// Delete removes the feed row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Feed{}, "id = ?", id).Error
}
