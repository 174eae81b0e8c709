package controllers

import (
	"net/http"

	"github.com/farm2home/storefront-backend/api/responses"
	"github.com/farm2home/storefront-backend/api/validators"
	"github.com/farm2home/storefront-backend/internal/prefs"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
)

type viewModeRequest struct {
	ViewMode string `json:"view_mode" validate:"required"`
}

// ViewModeFetch returns the customer's saved catalog layout.
func ViewModeFetch(svc *prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}
		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mode := svc.ViewMode(r.Context(), customerID)
		responses.WriteSuccess(w, map[string]string{"view_mode": string(mode)})
	}
}

// ViewModeUpdate saves the customer's layout choice.
func ViewModeUpdate(svc *prefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}
		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload viewModeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := prefs.ParseViewMode(payload.ViewMode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetViewMode(r.Context(), customerID, mode); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"view_mode": string(mode)})
	}
}
