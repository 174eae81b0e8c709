package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/farm2home/storefront-backend/api/responses"
	"github.com/farm2home/storefront-backend/api/validators"
	"github.com/farm2home/storefront-backend/internal/cart"
	"github.com/farm2home/storefront-backend/internal/catalog"
	pkgerrors "github.com/farm2home/storefront-backend/pkg/errors"
	"github.com/farm2home/storefront-backend/pkg/logger"
)

type cartView struct {
	Items     []cart.LineItem `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

type cartAddRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

func newCartView(store *cart.Store) cartView {
	return cartView{
		Items:     store.Items(),
		Subtotal:  store.Subtotal(),
		ItemCount: store.ItemCount(),
	}
}

// CartFetch returns the customer's current cart.
func CartFetch(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartAddItem snapshots a catalog product into the cart, merging with any
// existing line for the same product.
func CartAddItem(manager *cart.Manager, source catalog.ProductSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := lookupProduct(r.Context(), source, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.AddItem(r.Context(), product, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(store))
	}
}

// CartIncreaseItem bumps a line's quantity by one.
func CartIncreaseItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return cartAdjustHandler(manager, logg, (*cart.Store).IncreaseQuantity)
}

// CartDecreaseItem lowers a line's quantity by one, never below one.
func CartDecreaseItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return cartAdjustHandler(manager, logg, (*cart.Store).DecreaseQuantity)
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return cartAdjustHandler(manager, logg, (*cart.Store).RemoveItem)
}

// CartClear empties the cart.
func CartClear(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.Clear(r.Context())
		responses.WriteSuccess(w, newCartView(store))
	}
}

func cartAdjustHandler(manager *cart.Manager, logg *logger.Logger, adjust func(*cart.Store, context.Context, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r, manager, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adjust(store, r.Context(), productID)
		responses.WriteSuccess(w, newCartView(store))
	}
}

func storeFromRequest(r *http.Request, manager *cart.Manager, logg *logger.Logger) (*cart.Store, error) {
	if manager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	customerID, err := customerIDFromRequest(r)
	if err != nil {
		return nil, err
	}
	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithCustomerID(ctx, customerID)
	}
	return manager.StoreFor(ctx, customerID)
}

func lookupProduct(ctx context.Context, source catalog.ProductSource, productID int64) (catalog.Product, error) {
	if source == nil {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeInternal, "catalog source unavailable")
	}
	products, err := source.FetchProducts(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	for _, product := range products {
		if product.ID == productID {
			return product, nil
		}
	}
	return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": productID})
}

func customerIDFromRequest(r *http.Request) (string, error) {
	customerID := strings.TrimSpace(chi.URLParam(r, "customerID"))
	if customerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	return customerID, nil
}

func productIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer").
			WithDetails(map[string]any{"product_id": raw})
	}
	return productID, nil
}
