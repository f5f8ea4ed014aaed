package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/internal/inventory"
	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryAdjustAppliesDelta(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.inventory.CreateItem(context.Background(), inventory.ItemInput{
		ItemType: "medicine",
		Name:     "Ivermectin",
		Quantity: 20,
		MinStock: 5,
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Post("/inventory/{id}/adjust", InventoryAdjust(env.inventory, nil))

	req := postForm(t, "/inventory/"+strconv.Itoa(int(item.ID))+"/adjust", url.Values{
		"adjustment": {"-5"},
		"notes":      {"used in treatment"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/inventory/", rec.Header().Get("Location"))

	var reloaded models.InventoryItem
	require.NoError(t, env.conn.First(&reloaded, item.ID).Error)
	assert.Equal(t, 15, reloaded.Quantity)
}

func TestInventoryCreateMissingQuantityRedirectsBack(t *testing.T) {
	env := newTestEnv(t)

	handler := InventoryCreate(env.inventory, nil)
	req := postForm(t, "/inventory/add", url.Values{
		"item_type": {"medicine"},
		"name":      {"Ivermectin"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/inventory/add", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, env.conn.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInventoryAdjustMissingDeltaRedirectsBack(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.inventory.CreateItem(context.Background(), inventory.ItemInput{
		ItemType: "medicine",
		Name:     "Ivermectin",
		Quantity: 20,
		MinStock: 5,
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Post("/inventory/{id}/adjust", InventoryAdjust(env.inventory, nil))

	req := postForm(t, "/inventory/"+strconv.Itoa(int(item.ID))+"/adjust", url.Values{
		"notes": {"miscounted"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/inventory/", rec.Header().Get("Location"))

	followUp := httptest.NewRequest(http.MethodGet, "/inventory/", nil)
	for _, c := range rec.Result().Cookies() {
		followUp.AddCookie(c)
	}
	msg := flash.Pop(httptest.NewRecorder(), followUp)
	require.NotNil(t, msg)
	assert.Equal(t, flash.LevelError, msg.Level)

	var reloaded models.InventoryItem
	require.NoError(t, env.conn.First(&reloaded, item.ID).Error)
	assert.Equal(t, 20, reloaded.Quantity)
}

func TestInventoryListFiltersByType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.CreateItem(context.Background(), inventory.ItemInput{ItemType: "medicine", Name: "Penicillin", Quantity: 10, MinStock: 2})
	require.NoError(t, err)
	_, err = env.inventory.CreateItem(context.Background(), inventory.ItemInput{ItemType: "equipment", Name: "Shears", Quantity: 3, MinStock: 1})
	require.NoError(t, err)

	handler := InventoryList(env.inventory, env.renderer, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getAuthed(t, "/inventory/?type=medicine"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Penicillin")
	assert.NotContains(t, body, "Shears")
}

func TestInventoryLowStockPage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.CreateItem(context.Background(), inventory.ItemInput{ItemType: "medicine", Name: "Running out", Quantity: 2, MinStock: 5})
	require.NoError(t, err)
	_, err = env.inventory.CreateItem(context.Background(), inventory.ItemInput{ItemType: "medicine", Name: "Plenty", Quantity: 50, MinStock: 5})
	require.NoError(t, err)

	handler := InventoryLowStock(env.inventory, env.renderer, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getAuthed(t, "/inventory/low-stock"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Running out")
	assert.NotContains(t, body, "Plenty")
}

func TestInventoryDeleteRemovesRow(t *testing.T) {
	env := newTestEnv(t)

	item, err := env.inventory.CreateItem(context.Background(), inventory.ItemInput{ItemType: "equipment", Name: "Bucket", Quantity: 4, MinStock: 1})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Post("/inventory/{id}/delete", InventoryDelete(env.inventory, nil))

	req := postForm(t, "/inventory/"+strconv.Itoa(int(item.ID))+"/delete", url.Values{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, env.conn.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}
