package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleRegisterMarksAnimalSold(t *testing.T) {
	env := newTestEnv(t)

	animal := &models.Animal{EarTag: "B001", Status: models.AnimalStatusActive}
	require.NoError(t, env.conn.Create(animal).Error)

	handler := SaleRegister(env.sales, nil)
	req := postForm(t, "/sales/register", url.Values{
		"animal_id":  {strconv.Itoa(int(animal.ID))},
		"sale_date":  {"2024-05-01"},
		"sale_price": {"150.0"},
		"buyer_name": {"J. Vega"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sales/", rec.Header().Get("Location"))

	var reloaded models.Animal
	require.NoError(t, env.conn.First(&reloaded, animal.ID).Error)
	assert.Equal(t, models.AnimalStatusSold, reloaded.Status)
}

func TestSaleRegisterMissingDateRedirectsBack(t *testing.T) {
	env := newTestEnv(t)

	animal := &models.Animal{EarTag: "B002", Status: models.AnimalStatusActive}
	require.NoError(t, env.conn.Create(animal).Error)

	handler := SaleRegister(env.sales, nil)
	req := postForm(t, "/sales/register", url.Values{
		"animal_id":  {strconv.Itoa(int(animal.ID))},
		"sale_price": {"150.0"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sales/register", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, env.conn.Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSalesStatsRendersTotals(t *testing.T) {
	env := newTestEnv(t)

	animal := &models.Animal{EarTag: "B003", Status: models.AnimalStatusActive}
	require.NoError(t, env.conn.Create(animal).Error)

	register := SaleRegister(env.sales, nil)
	req := postForm(t, "/sales/register", url.Values{
		"animal_id":  {strconv.Itoa(int(animal.ID))},
		"sale_date":  {"2024-05-01"},
		"sale_price": {"150.0"},
	})
	register.ServeHTTP(httptest.NewRecorder(), req)

	stats := SalesStats(env.sales, env.renderer, nil)
	rec := httptest.NewRecorder()
	stats.ServeHTTP(rec, getAuthed(t, "/sales/stats?year=2024"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "150.00")
	assert.Contains(t, body, "2024")
}

func TestSalesStatsEmptyYearShowsZero(t *testing.T) {
	env := newTestEnv(t)

	stats := SalesStats(env.sales, env.renderer, nil)
	rec := httptest.NewRecorder()
	stats.ServeHTTP(rec, getAuthed(t, "/sales/stats?year=1999"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0.00")
}

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.conn.Create(&models.Animal{EarTag: "B010", Status: models.AnimalStatusActive}).Error)
	require.NoError(t, env.conn.Create(&models.Animal{EarTag: "B011", Status: models.AnimalStatusSold}).Error)

	handler := Dashboard(env.animals, env.inventory, env.renderer, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getAuthed(t, "/"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dashboard")
}
