package animals

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

// Service exposes animal management operations.
type Service interface {
	ListAnimals(ctx context.Context) ([]models.Animal, error)
	GetAnimal(ctx context.Context, id uint) (*models.Animal, error)
	CreateAnimal(ctx context.Context, input CreateAnimalInput) (*models.Animal, error)
	Counts(ctx context.Context) (Counts, error)
}

// Counts summarizes the herd for the dashboard.
type Counts struct {
	Total  int64
	Active int64
}

// CreateAnimalInput holds the validated payload to register an animal.
type CreateAnimalInput struct {
	EarTag        string
	Name          *string
	Breed         *string
	BirthDate     *time.Time
	Gender        *string
	Weight        *float64
	PurchaseDate  *time.Time
	PurchasePrice *decimal.Decimal
	Notes         *string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an animal service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("animal repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListAnimals(ctx context.Context) ([]models.Animal, error) {
	animals, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list animals")
	}
	return animals, nil
}

func (s *service) GetAnimal(ctx context.Context, id uint) (*models.Animal, error) {
	animal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "animal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load animal")
	}
	return animal, nil
}

func (s *service) Counts(ctx context.Context) (Counts, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Counts{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count animals")
	}
	active, err := s.repo.CountByStatus(ctx, models.AnimalStatusActive)
	if err != nil {
		return Counts{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active animals")
	}
	return Counts{Total: total, Active: active}, nil
}

func (s *service) CreateAnimal(ctx context.Context, input CreateAnimalInput) (*models.Animal, error) {
	earTag := strings.TrimSpace(input.EarTag)
	if earTag == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ear tag is required")
	}

	animal := &models.Animal{
		EarTag:        earTag,
		Name:          input.Name,
		Breed:         input.Breed,
		BirthDate:     input.BirthDate,
		Gender:        input.Gender,
		Weight:        input.Weight,
		Status:        models.AnimalStatusActive,
		PurchaseDate:  input.PurchaseDate,
		PurchasePrice: input.PurchasePrice,
		Notes:         input.Notes,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, animal); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "ear tag already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create animal")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return animal, nil
}
