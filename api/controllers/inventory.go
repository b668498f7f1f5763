package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/inventory-service/api/responses"
	"github.com/angelmondragon/inventory-service/api/validators"
	"github.com/angelmondragon/inventory-service/internal/inventory"
	"github.com/angelmondragon/inventory-service/pkg/logger"
)

func pathKey(r *http.Request) (inventory.Key, error) {
	return inventory.ParseKey(chi.URLParam(r, "product_id"), chi.URLParam(r, "condition"))
}

// ListInventory returns every record, or those matching the query filters.
func ListInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := validators.ParseInventoryCriteria(r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		records, err := svc.List(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func CreateInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := validators.DecodeJSONObject(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, record.Key().Path(), record)
	}
}

func GetInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := pathKey(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.Get(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func UpdateInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := pathKey(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body, err := validators.DecodeJSONObject(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.Update(r.Context(), key, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// DeleteInventory always answers 204. A key that cannot be parsed addresses no
// record, so deleting it is a no-op like deleting a missing one.
func DeleteInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := pathKey(r)
		if err != nil {
			responses.WriteNoContent(w)
			return
		}
		if err := svc.Delete(r.Context(), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func CheckoutInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return stockHandler(svc.Checkout, logg)
}

func ReorderInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return stockHandler(svc.Reorder, logg)
}

type stockOperation func(ctx context.Context, key inventory.Key, raw map[string]any) (*inventory.RecordDTO, error)

func stockHandler(op stockOperation, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := pathKey(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body, err := validators.DecodeJSONObject(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := op(r.Context(), key, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
