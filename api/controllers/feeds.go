package controllers

import (
	"fmt"
	"net/http"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/responses"
	"github.com/estradaranch/flockherd-backend/api/validators"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/feeds"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// FeedsList renders the feed stock.
func FeedsList(svc feeds.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stock, err := svc.ListFeeds(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		render(w, r, renderer, logg, http.StatusOK, "feeds/list", "Feeds", map[string]any{"Feeds": stock})
	}
}

// FeedAddPage renders the add-feed form.
func FeedAddPage(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, logg, http.StatusOK, "feeds/add", "Add feed", nil)
	}
}

// FeedCreate stores a new feed line from the posted form.
func FeedCreate(svc feeds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseFeedForm(r)
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/feeds/create")
			return
		}

		if _, err := svc.CreateFeed(r.Context(), input); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/feeds/create")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Feed added"), "/feeds/")
	}
}

// FeedEditPage renders the edit form prefilled with the current values.
func FeedEditPage(svc feeds.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		feed, err := svc.GetFeed(r.Context(), id)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "feeds/edit", "Edit feed", map[string]any{"Feed": feed})
	}
}

// FeedUpdate replaces every field of the feed with the posted values.
func FeedUpdate(svc feeds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/feeds/")
			return
		}
		backURL := fmt.Sprintf("/feeds/%d/edit", id)

		input, err := parseFeedForm(r)
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, backURL)
			return
		}

		if _, err := svc.UpdateFeed(r.Context(), id, input); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				backURL = "/feeds/"
			}
			responses.FormError(r.Context(), logg, w, r, err, backURL)
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Feed updated"), "/feeds/")
	}
}

// FeedDelete hard-deletes the feed line.
func FeedDelete(svc feeds.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/feeds/")
			return
		}

		if err := svc.DeleteFeed(r.Context(), id); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/feeds/")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Feed deleted"), "/feeds/")
	}
}

func parseFeedForm(r *http.Request) (feeds.FeedInput, error) {
	quantity, err := validators.OptionalFloat(r, "quantity")
	if err != nil {
		return feeds.FeedInput{}, err
	}
	if quantity == nil {
		return feeds.FeedInput{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity is required")
	}
	purchaseDate, err := validators.OptionalDate(r, "purchase_date")
	if err != nil {
		return feeds.FeedInput{}, err
	}
	expirationDate, err := validators.OptionalDate(r, "expiration_date")
	if err != nil {
		return feeds.FeedInput{}, err
	}
	cost, err := validators.OptionalDecimal(r, "cost")
	if err != nil {
		return feeds.FeedInput{}, err
	}

	return feeds.FeedInput{
		Name:           validators.FormValue(r, "name"),
		Description:    validators.OptionalString(r, "description"),
		Quantity:       *quantity,
		Unit:           validators.FormValue(r, "unit"),
		PurchaseDate:   purchaseDate,
		ExpirationDate: expirationDate,
		Cost:           cost,
		Supplier:       validators.OptionalString(r, "supplier"),
	}, nil
}
