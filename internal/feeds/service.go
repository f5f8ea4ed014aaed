package feeds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultUnit = "kg"

// Service exposes feed stock management operations.
type Service interface {
	ListFeeds(ctx context.Context) ([]models.Feed, error)
	GetFeed(ctx context.Context, id uint) (*models.Feed, error)
	CreateFeed(ctx context.Context, input FeedInput) (*models.Feed, error)
	UpdateFeed(ctx context.Context, id uint, input FeedInput) (*models.Feed, error)
	DeleteFeed(ctx context.Context, id uint) error
}

// FeedInput holds the full set of feed fields. Updates replace every field,
// matching the edit form semantics.
type FeedInput struct {
	Name           string
	Description    *string
	Quantity       float64
	Unit           string
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
	Cost           *decimal.Decimal
	Supplier       *string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a feed service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feed repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListFeeds(ctx context.Context) ([]models.Feed, error) {
	feeds, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feeds")
	}
	return feeds, nil
}

func (s *service) GetFeed(ctx context.Context, id uint) (*models.Feed, error) {
	feed, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "feed not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load feed")
	}
	return feed, nil
}

func (s *service) CreateFeed(ctx context.Context, input FeedInput) (*models.Feed, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	feed := &models.Feed{}
	applyInput(feed, input)

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, feed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create feed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *service) UpdateFeed(ctx context.Context, id uint, input FeedInput) (*models.Feed, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *models.Feed
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		feed, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "feed not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load feed")
		}
		applyInput(feed, input)
		if err := repo.Save(ctx, feed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update feed")
		}
		updated = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteFeed(ctx context.Context, id uint) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "feed not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load feed")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete feed")
		}
		return nil
	})
}

func validateInput(input FeedInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return nil
}

func applyInput(feed *models.Feed, input FeedInput) {
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = defaultUnit
	}
	feed.Name = strings.TrimSpace(input.Name)
	feed.Description = input.Description
	feed.Quantity = input.Quantity
	feed.Unit = unit
	feed.PurchaseDate = input.PurchaseDate
	feed.ExpirationDate = input.ExpirationDate
	feed.Cost = input.Cost
	feed.Supplier = input.Supplier
}
