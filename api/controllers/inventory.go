package controllers

import (
	"fmt"
	"net/http"

	"github.com/estradaranch/flockherd-backend/api/flash"
	"github.com/estradaranch/flockherd-backend/api/responses"
	"github.com/estradaranch/flockherd-backend/api/validators"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/inventory"
	pkgerrors "github.com/estradaranch/flockherd-backend/pkg/errors"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
)

// InventoryList renders the inventory, optionally filtered by item type.
func InventoryList(svc inventory.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemType := r.URL.Query().Get("type")
		if itemType == "" {
			itemType = inventory.FilterAll
		}

		items, err := svc.ListItems(r.Context(), itemType)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		lowStock, err := svc.LowStockCount(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "inventory/list", "Inventory", map[string]any{
			"Items":         items,
			"ItemType":      itemType,
			"LowStockCount": lowStock,
		})
	}
}

// InventoryAddPage renders the add-item form.
func InventoryAddPage(renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, logg, http.StatusOK, "inventory/add", "Add inventory item", nil)
	}
}

// InventoryCreate stores a new item from the posted form.
func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseItemForm(r)
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/add")
			return
		}

		if _, err := svc.CreateItem(r.Context(), input); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/add")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Item added to inventory"), "/inventory/")
	}
}

// InventoryEditPage renders the edit form prefilled with the current values.
func InventoryEditPage(svc inventory.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}

		render(w, r, renderer, logg, http.StatusOK, "inventory/edit", "Edit inventory item", map[string]any{"Item": item})
	}
}

// InventoryUpdate replaces every field of the item with the posted values.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/")
			return
		}
		backURL := fmt.Sprintf("/inventory/%d/edit", id)

		input, err := parseItemForm(r)
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, backURL)
			return
		}

		if _, err := svc.UpdateItem(r.Context(), id, input); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				backURL = "/inventory/"
			}
			responses.FormError(r.Context(), logg, w, r, err, backURL)
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Item updated"), "/inventory/")
	}
}

// InventoryDelete hard-deletes the item.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/")
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/")
			return
		}

		responses.RedirectWithFlash(w, r, flash.Success("Item deleted"), "/inventory/")
	}
}

// InventoryLowStock renders the items at or below their minimum stock.
func InventoryLowStock(svc inventory.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.LowStockItems(r.Context())
		if err != nil {
			responses.RenderError(r.Context(), logg, renderer, w, r, err)
			return
		}
		render(w, r, renderer, logg, http.StatusOK, "inventory/low_stock", "Low stock", map[string]any{"Items": items})
	}
}

// InventoryAdjust applies a signed stock delta to the item.
func InventoryAdjust(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.IDParam(r, "id")
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/")
			return
		}

		delta, err := validators.RequiredInt(r, "adjustment")
		if err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/")
			return
		}

		if _, err := svc.AdjustStock(r.Context(), id, inventory.AdjustmentInput{
			Delta: delta,
			Notes: validators.FormValue(r, "notes"),
		}); err != nil {
			responses.FormError(r.Context(), logg, w, r, err, "/inventory/")
			return
		}

		msg := fmt.Sprintf("Added %d units to stock", delta)
		if delta < 0 {
			msg = fmt.Sprintf("Removed %d units from stock", -delta)
		}
		responses.RedirectWithFlash(w, r, flash.Success(msg), "/inventory/")
	}
}

func parseItemForm(r *http.Request) (inventory.ItemInput, error) {
	quantity, err := validators.RequiredInt(r, "quantity")
	if err != nil {
		return inventory.ItemInput{}, err
	}
	minStock, err := validators.RequiredInt(r, "min_stock")
	if err != nil {
		return inventory.ItemInput{}, err
	}
	cost, err := validators.OptionalDecimal(r, "cost")
	if err != nil {
		return inventory.ItemInput{}, err
	}
	purchaseDate, err := validators.OptionalDate(r, "purchase_date")
	if err != nil {
		return inventory.ItemInput{}, err
	}
	expirationDate, err := validators.OptionalDate(r, "expiration_date")
	if err != nil {
		return inventory.ItemInput{}, err
	}

	return inventory.ItemInput{
		ItemType:       validators.FormValue(r, "item_type"),
		Name:           validators.FormValue(r, "name"),
		Description:    validators.OptionalString(r, "description"),
		Quantity:       quantity,
		Unit:           validators.OptionalString(r, "unit"),
		MinStock:       minStock,
		Cost:           cost,
		PurchaseDate:   purchaseDate,
		ExpirationDate: expirationDate,
		Supplier:       validators.OptionalString(r, "supplier"),
	}, nil
}
