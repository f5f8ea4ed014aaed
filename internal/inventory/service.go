package inventory

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

// Service exposes inventory management operations.
type Service interface {
	ListItems(ctx context.Context, itemType string) ([]models.InventoryItem, error)
	GetItem(ctx context.Context, id uint) (*models.InventoryItem, error)
	CreateItem(ctx context.Context, input ItemInput) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, id uint, input ItemInput) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, id uint) error
	LowStockItems(ctx context.Context) ([]models.InventoryItem, error)
	LowStockCount(ctx context.Context) (int64, error)
	AdjustStock(ctx context.Context, id uint, input AdjustmentInput) (*models.InventoryItem, error)
}

// ItemInput holds the full set of item fields. Updates replace every field,
// matching the edit form semantics.
type ItemInput struct {
	ItemType       string
	Name           string
	Description    *string
	Quantity       int
	Unit           *string
	MinStock       int
	Cost           *decimal.Decimal
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
	Supplier       *string
}

// AdjustmentInput is a signed stock delta. Notes travel with the request
// only; no movement history is persisted.
type AdjustmentInput struct {
	Delta int
	Notes string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListItems(ctx context.Context, itemType string) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx, itemType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory")
	}
	return items, nil
}

func (s *service) GetItem(ctx context.Context, id uint) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	return item, nil
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*models.InventoryItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{}
	applyInput(item, input)

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, id uint, input ItemInput) (*models.InventoryItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *models.InventoryItem
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
		}
		applyInput(item, input)
		if err := repo.Save(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update inventory item")
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id uint) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
		}
		if err := repo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory item")
		}
		return nil
	})
}

func (s *service) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock")
	}
	return items, nil
}

func (s *service) LowStockCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountLowStock(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count low stock")
	}
	return count, nil
}

// AdjustStock applies quantity += delta inside one transaction. The value is
// deliberately not clamped at zero; the report surfaces negative stock so
// miscounts stay visible.
func (s *service) AdjustStock(ctx context.Context, id uint, input AdjustmentInput) (*models.InventoryItem, error) {
	var adjusted *models.InventoryItem
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
		}
		item.Quantity += input.Delta
		if err := repo.Save(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjust stock")
		}
		adjusted = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func validateInput(input ItemInput) error {
	if strings.TrimSpace(input.ItemType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item type is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return nil
}

func applyInput(item *models.InventoryItem, input ItemInput) {
	item.ItemType = strings.TrimSpace(input.ItemType)
	item.Name = strings.TrimSpace(input.Name)
	item.Description = input.Description
	item.Quantity = input.Quantity
	item.Unit = input.Unit
	item.MinStock = input.MinStock
	item.Cost = input.Cost
	item.PurchaseDate = input.PurchaseDate
	item.ExpirationDate = input.ExpirationDate
	item.Supplier = input.Supplier
}
