package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.InventoryItem{}))

	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn))
	require.NoError(t, err)
	return svc, conn
}

func mustCreateItem(t *testing.T, svc Service, input ItemInput) *models.InventoryItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), input)
	require.NoError(t, err)
	return item
}

func TestIsLowStockBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		minStock int
		want     bool
	}{
		{"above threshold", 11, 10, false},
		{"at threshold", 10, 10, true},
		{"below threshold", 9, 10, true},
		{"negative quantity", -3, 0, true},
		{"zero on zero", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := models.InventoryItem{Quantity: tc.quantity, MinStock: tc.minStock}
			assert.Equal(t, tc.want, item.IsLowStock())
		})
	}
}

func TestAdjustStockInverseDeltasRestoreQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item := mustCreateItem(t, svc, ItemInput{ItemType: "medicine", Name: "Ivermectin", Quantity: 20, MinStock: 5})

	up, err := svc.AdjustStock(ctx, item.ID, AdjustmentInput{Delta: 5, Notes: "restock"})
	require.NoError(t, err)
	assert.Equal(t, 25, up.Quantity)

	down, err := svc.AdjustStock(ctx, item.ID, AdjustmentInput{Delta: -5, Notes: "used in treatment"})
	require.NoError(t, err)
	assert.Equal(t, 20, down.Quantity)
}

func TestAdjustStockAllowsNegativeQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	item := mustCreateItem(t, svc, ItemInput{ItemType: "equipment", Name: "Shears", Quantity: 1, MinStock: 0})

	adjusted, err := svc.AdjustStock(context.Background(), item.ID, AdjustmentInput{Delta: -4})
	require.NoError(t, err)
	assert.Equal(t, -3, adjusted.Quantity)
	assert.True(t, adjusted.IsLowStock())
}

func TestAdjustStockNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AdjustStock(context.Background(), 777, AdjustmentInput{Delta: 1})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListItemsFiltersByType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateItem(t, svc, ItemInput{ItemType: "medicine", Name: "Penicillin", Quantity: 10, MinStock: 2})
	mustCreateItem(t, svc, ItemInput{ItemType: "equipment", Name: "Bucket", Quantity: 4, MinStock: 1})

	meds, err := svc.ListItems(ctx, "medicine")
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Penicillin", meds[0].Name)

	all, err := svc.ListItems(ctx, FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unfiltered, err := svc.ListItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, unfiltered, 2)
}

func TestLowStockReportUsesInclusiveThreshold(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mustCreateItem(t, svc, ItemInput{ItemType: "medicine", Name: "At threshold", Quantity: 5, MinStock: 5})
	mustCreateItem(t, svc, ItemInput{ItemType: "medicine", Name: "Below", Quantity: 1, MinStock: 5})
	mustCreateItem(t, svc, ItemInput{ItemType: "medicine", Name: "Healthy", Quantity: 50, MinStock: 5})

	low, err := svc.LowStockItems(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	count, err := svc.LowStockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpdateItemReplacesAllFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	unit := "boxes"
	item := mustCreateItem(t, svc, ItemInput{ItemType: "medicine", Name: "Vitamins", Quantity: 9, MinStock: 3, Unit: &unit})

	updated, err := svc.UpdateItem(ctx, item.ID, ItemInput{ItemType: "supplement", Name: "Vitamins B", Quantity: 12, MinStock: 4})
	require.NoError(t, err)
	assert.Equal(t, "supplement", updated.ItemType)
	assert.Equal(t, 12, updated.Quantity)
	assert.Nil(t, updated.Unit)
}

func TestDeleteItemRemovesRow(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	item := mustCreateItem(t, svc, ItemInput{ItemType: "equipment", Name: "Gate latch", Quantity: 2, MinStock: 1})
	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	var count int64
	require.NoError(t, conn.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}
