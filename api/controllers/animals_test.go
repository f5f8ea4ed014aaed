package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/estradaranch/flockherd-backend/pkg/db/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimalCreatePersistsAndRedirects(t *testing.T) {
	env := newTestEnv(t)

	handler := AnimalCreate(env.animals, nil)
	req := postForm(t, "/animals/add", url.Values{
		"ear_tag":    {"B001"},
		"name":       {"Luna"},
		"breed":      {"Merino"},
		"birth_date": {"2023-03-15"},
		"gender":     {"female"},
		"weight":     {"48.5"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/animals/", rec.Header().Get("Location"))

	var animal models.Animal
	require.NoError(t, env.conn.Where("ear_tag = ?", "B001").First(&animal).Error)
	assert.Equal(t, models.AnimalStatusActive, animal.Status)
	require.NotNil(t, animal.Weight)
	assert.InDelta(t, 48.5, *animal.Weight, 0.001)
}

func TestAnimalCreateBadDateRedirectsBack(t *testing.T) {
	env := newTestEnv(t)

	handler := AnimalCreate(env.animals, nil)
	req := postForm(t, "/animals/add", url.Values{
		"ear_tag":    {"B002"},
		"birth_date": {"15/03/2023"},
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/animals/add", rec.Header().Get("Location"))

	var count int64
	require.NoError(t, env.conn.Model(&models.Animal{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAnimalsListShowsHerd(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.conn.Create(&models.Animal{EarTag: "B010", Status: models.AnimalStatusActive}).Error)

	handler := AnimalsList(env.animals, env.renderer, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getAuthed(t, "/animals/"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "B010")
}

func TestAnimalDetailNotFound(t *testing.T) {
	env := newTestEnv(t)

	router := chi.NewRouter()
	router.Get("/animals/{id}", AnimalDetail(env.animals, env.renderer, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getAuthed(t, "/animals/999"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "animal not found")
}
