package controllers

import (
	"net/http"
	"time"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/responses"
	"github.com/estradaranch/flockherd-backend/api/validators"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/sales"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

const (
	minSaleYear = 1900
	maxSaleYear = 2200
)

// SalesList renders the sales of one calendar year, defaulting to the
// current one.
func SalesList(svc sales.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.ParseQueryInt(r, "year", time.Now().Year(), minSaleYear, maxSaleYear)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		yearSales, err := svc.ListSalesByYear(r.Context(), year)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "sales/list", "Sales", map[string]any{
			"Sales": yearSales,
			"Year":  year,
		})
	}
}

// SaleRegisterPage renders the register form with the animals still for sale.
func SaleRegisterPage(svc sales.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		available, err := svc.AvailableAnimals(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		render(w, r, renderer, logg, http.StatusOK, "sales/register", "Register sale", map[string]any{"Animals": available})
	}
}

// SaleRegister creates the sale and marks the animal sold.
func SaleRegister(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseSaleForm(r)
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/sales/register")
			return
		}

		if _, err := svc.RegisterSale(r.Context(), input); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/sales/register")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Sale registered"), "/sales/")
	}
}

// SalesStats renders the count and revenue for one calendar year.
func SalesStats(svc sales.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.ParseQueryInt(r, "year", time.Now().Year(), minSaleYear, maxSaleYear)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		stats, err := svc.StatsForYear(r.Context(), year)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "sales/stats", "Sales statistics", map[string]any{"Stats": stats})
	}
}

func parseSaleForm(r *http.Request) (sales.RegisterSaleInput, error) {
	animalID, err := validators.FormUint(r, "animal_id")
	if err != nil {
		return sales.RegisterSaleInput{}, err
	}
	saleDate, err := validators.RequiredDate(r, "sale_date")
	if err != nil {
		return sales.RegisterSaleInput{}, err
	}
	salePrice, err := validators.RequiredDecimal(r, "sale_price")
	if err != nil {
		return sales.RegisterSaleInput{}, err
	}

	return sales.RegisterSaleInput{
		AnimalID:     animalID,
		SaleDate:     saleDate,
		SalePrice:    salePrice,
		BuyerName:    validators.OptionalString(r, "buyer_name"),
		BuyerContact: validators.OptionalString(r, "buyer_contact"),
		Notes:        validators.OptionalString(r, "notes"),
	}, nil
}
