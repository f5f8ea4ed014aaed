package controllers

import (
	"net/http"

	"github.com/estradaranch/flockherd-backend/api/responses"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/animals"
	"github.com/estradaranch/flockherd-backend/internal/inventory"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// Dashboard shows the herd headcount and the low-stock alert count.
func Dashboard(animalsSvc animals.Service, inventorySvc inventory.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := animalsSvc.Counts(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		lowStock, err := inventorySvc.LowStockCount(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "index", "Dashboard", map[string]int64{
			"TotalAnimals":  counts.Total,
			"ActiveAnimals": counts.Active,
			"LowStockItems": lowStock,
		})
	}
}
