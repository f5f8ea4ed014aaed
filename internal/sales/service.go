package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estradaranch/flockherd-backend/internal/animals"
	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes sale registration and reporting operations.
type Service interface {
	ListSalesByYear(ctx context.Context, year int) ([]models.Sale, error)
	AvailableAnimals(ctx context.Context) ([]models.Animal, error)
	RegisterSale(ctx context.Context, input RegisterSaleInput) (*models.Sale, error)
	StatsForYear(ctx context.Context, year int) (*YearStats, error)
}

// RegisterSaleInput holds the validated payload to register a sale.
type RegisterSaleInput struct {
	AnimalID     uint
	SaleDate     time.Time
	SalePrice    decimal.Decimal
	BuyerName    *string
	BuyerContact *string
	Notes        *string
}

// YearStats summarizes one calendar year of sales.
type YearStats struct {
	Year         int
	TotalSales   int64
	TotalRevenue decimal.Decimal
}

type service struct {
	repo        *Repository
	animalsRepo *animals.Repository
	dbClient    *db.Client
}

// NewService constructs a sales service instance.
func NewService(repo *Repository, animalsRepo *animals.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if animalsRepo == nil {
		return nil, fmt.Errorf("animals repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, animalsRepo: animalsRepo, dbClient: dbClient}, nil
}

func (s *service) ListSalesByYear(ctx context.Context, year int) ([]models.Sale, error) {
	sales, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sales")
	}
	return sales, nil
}

// AvailableAnimals lists the animals that can still be sold.
func (s *service) AvailableAnimals(ctx context.Context) ([]models.Animal, error) {
	active, err := s.animalsRepo.ListByStatus(ctx, models.AnimalStatusActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list active animals")
	}
	return active, nil
}

// RegisterSale inserts the sale and flips the animal to sold in one
// transaction; the animal carries a copy of the sale date and price.
func (s *service) RegisterSale(ctx context.Context, input RegisterSaleInput) (*models.Sale, error) {
	if input.SaleDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale date is required")
	}
	if input.SalePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price cannot be negative")
	}

	var sale *models.Sale
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		animalsRepo := s.animalsRepo.WithTx(tx)

		animal, err := animalsRepo.FindByID(ctx, input.AnimalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "animal not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load animal")
		}
		if !animal.IsActive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "animal is not active")
		}

		saleDate := input.SaleDate
		salePrice := input.SalePrice

		sale = &models.Sale{
			AnimalID:     animal.ID,
			SaleDate:     saleDate,
			SalePrice:    salePrice,
			BuyerName:    input.BuyerName,
			BuyerContact: input.BuyerContact,
			Notes:        input.Notes,
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sale")
		}

		animal.Status = models.AnimalStatusSold
		animal.SaleDate = &saleDate
		animal.SalePrice = &salePrice
		if err := tx.WithContext(ctx).Save(animal).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark animal sold")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) StatsForYear(ctx context.Context, year int) (*YearStats, error) {
	count, err := s.repo.CountByYear(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count sales")
	}
	total, err := s.repo.SumPriceByYear(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum revenue")
	}
	return &YearStats{
		Year:         year,
		TotalSales:   count,
		TotalRevenue: total,
	}, nil
}
