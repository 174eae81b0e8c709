package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/farm2home/storefront-backend/api/responses"
	"github.com/farm2home/storefront-backend/internal/orders"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
)

// OrderHistory serves the customer's order list narrowed by tab and search.
func OrderHistory(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := orders.ListQuery{Search: r.URL.Query().Get("q")}
		if tab := strings.TrimSpace(r.URL.Query().Get("tab")); tab != "" && tab != "all" {
			switch class := orders.StatusClass(tab); class {
			case orders.ClassActive, orders.ClassDelivered, orders.ClassCancelled:
				query.Tab = class
			default:
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order tab").
					WithDetails(map[string]any{"tab": tab}))
				return
			}
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCustomerID(ctx, customerID)
		}

		result, err := svc.List(ctx, customerID, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrderReorder replays a delivered order's lines into the remote cart and
// reports how many made it.
func OrderReorder(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := orderIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCustomerID(ctx, customerID)
		}

		report, err := svc.Reorder(ctx, customerID, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func orderIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "orderID")
	orderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orderID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "order id must be a positive integer").
			WithDetails(map[string]any{"order_id": raw})
	}
	return orderID, nil
}
