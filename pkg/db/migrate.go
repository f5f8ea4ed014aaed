package db

import (
	"context"
	"fmt"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// AutoMigrate creates or updates the five application tables. The schema is
// applied idempotently at every startup; there is no versioned migration
// mechanism.
func (c *Client) AutoMigrate(ctx context.Context, logg *logger.Logger) error {
	err := c.conn.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Animal{},
		&models.Feed{},
		&models.InventoryItem{},
		&models.Sale{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "database schema up to date")
	}
	return nil
}
