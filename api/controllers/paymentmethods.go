package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/farm2home/storefront-backend/api/responses"
	"github.com/farm2home/storefront-backend/api/validators"
	"github.com/farm2home/storefront-backend/internal/paymentmethods"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
)

// PaymentMethodList returns the customer's saved methods, card numbers masked.
func PaymentMethodList(svc *paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment methods service unavailable"))
			return
		}
		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context(), customerID))
	}
}

// PaymentMethodAdd validates and saves a new method.
func PaymentMethodAdd(svc *paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment methods service unavailable"))
			return
		}
		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentmethods.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Add(r.Context(), customerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// PaymentMethodUpdate replaces an existing method's details.
func PaymentMethodUpdate(svc *paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment methods service unavailable"))
			return
		}
		customerID, methodID, err := methodRouteParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentmethods.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Update(r.Context(), customerID, methodID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// PaymentMethodDelete removes a non-default method.
func PaymentMethodDelete(svc *paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment methods service unavailable"))
			return
		}
		customerID, methodID, err := methodRouteParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), customerID, methodID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PaymentMethodSetDefault promotes one method and demotes the rest.
func PaymentMethodSetDefault(svc *paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment methods service unavailable"))
			return
		}
		customerID, methodID, err := methodRouteParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetDefault(r.Context(), customerID, methodID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "default updated"})
	}
}

func methodRouteParams(r *http.Request) (customerID, methodID string, err error) {
	customerID, err = customerIDFromRequest(r)
	if err != nil {
		return "", "", err
	}
	methodID = strings.TrimSpace(chi.URLParam(r, "methodID"))
	if methodID == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}
	return customerID, methodID, nil
}
