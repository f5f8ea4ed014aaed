package controllers

import (
	"net/http"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/responses"
	"github.com/estradaranch/flockherd-backend/api/validators"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/animals"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// AnimalsList renders the herd, newest first.
func AnimalsList(svc animals.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		herd, err := svc.ListAnimals(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		render(w, r, renderer, logg, http.StatusOK, "animals/list", "Animals", map[string]any{"Animals": herd})
	}
}

// AnimalAddPage renders the add-animal form.
func AnimalAddPage(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, logg, http.StatusOK, "animals/add", "Add animal", nil)
	}
}

// AnimalCreate registers a new animal from the posted form.
func AnimalCreate(svc animals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseAnimalForm(r)
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/animals/add")
			return
		}

		if _, err := svc.CreateAnimal(r.Context(), input); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/animals/add")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Animal added"), "/animals/")
	}
}

// AnimalDetail renders a single animal, 404 when absent.
func AnimalDetail(svc animals.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		animal, err := svc.GetAnimal(r.Context(), id)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "animals/detail", "Animal "+animal.EarTag, map[string]any{"Animal": animal})
	}
}

func parseAnimalForm(r *http.Request) (animals.CreateAnimalInput, error) {
	birthDate, err := validators.OptionalDate(r, "birth_date")
	if err != nil {
		return animals.CreateAnimalInput{}, err
	}
	weight, err := validators.OptionalFloat(r, "weight")
	if err != nil {
		return animals.CreateAnimalInput{}, err
	}
	purchaseDate, err := validators.OptionalDate(r, "purchase_date")
	if err != nil {
		return animals.CreateAnimalInput{}, err
	}
	purchasePrice, err := validators.OptionalDecimal(r, "purchase_price")
	if err != nil {
		return animals.CreateAnimalInput{}, err
	}

	return animals.CreateAnimalInput{
		EarTag:        validators.FormValue(r, "ear_tag"),
		Name:          validators.OptionalString(r, "name"),
		Breed:         validators.OptionalString(r, "breed"),
		BirthDate:     birthDate,
		Gender:        validators.OptionalString(r, "gender"),
		Weight:        weight,
		PurchaseDate:  purchaseDate,
		PurchasePrice: purchasePrice,
		Notes:         validators.OptionalString(r, "notes"),
	}, nil
}
