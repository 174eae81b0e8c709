package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farm2home/storefront-backend/api/controllers"
	"github.com/farm2home/storefront-backend/api/middleware"
	"github.com/farm2home/storefront-backend/internal/cart"
	"github.com/farm2home/storefront-backend/internal/catalog"
	"github.com/farm2home/storefront-backend/internal/orders"
	"github.com/farm2home/storefront-backend/internal/paymentmethods"
	"github.com/farm2home/storefront-backend/internal/prefs"
	"github.com/farm2home/storefront-backend/pkg/config"
	"github.com/farm2home/storefront-backend/pkg/logger"
	"github.com/farm2home/storefront-backend/pkg/metrics"
	"github.com/farm2home/storefront-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          redis.Pinger
	Catalog        *catalog.Service
	CatalogSource  catalog.ProductSource
	CartManager    *cart.Manager
	Orders         *orders.Service
	PaymentMethods *paymentmethods.Service
	Prefs          *prefs.Service
	HTTPMetrics    *metrics.HTTPMetrics
	Gatherer       prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog/products", controllers.CatalogProducts(deps.Catalog, logg))

		r.Route("/customers/{customerID}", func(r chi.Router) {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartManager, logg))
				r.Delete("/", controllers.CartClear(deps.CartManager, logg))
				r.Post("/items", controllers.CartAddItem(deps.CartManager, deps.CatalogSource, logg))
				r.Route("/items/{productID}", func(r chi.Router) {
					r.Post("/increase", controllers.CartIncreaseItem(deps.CartManager, logg))
					r.Post("/decrease", controllers.CartDecreaseItem(deps.CartManager, logg))
					r.Delete("/", controllers.CartRemoveItem(deps.CartManager, logg))
				})
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderHistory(deps.Orders, logg))
				r.Post("/{orderID}/reorder", controllers.OrderReorder(deps.Orders, logg))
			})

			r.Route("/payment-methods", func(r chi.Router) {
				r.Get("/", controllers.PaymentMethodList(deps.PaymentMethods, logg))
				r.Post("/", controllers.PaymentMethodAdd(deps.PaymentMethods, logg))
				r.Put("/{methodID}", controllers.PaymentMethodUpdate(deps.PaymentMethods, logg))
				r.Delete("/{methodID}", controllers.PaymentMethodDelete(deps.PaymentMethods, logg))
				r.Post("/{methodID}/default", controllers.PaymentMethodSetDefault(deps.PaymentMethods, logg))
			})

			r.Route("/preferences", func(r chi.Router) {
				r.Get("/view-mode", controllers.ViewModeFetch(deps.Prefs, logg))
				r.Put("/view-mode", controllers.ViewModeUpdate(deps.Prefs, logg))
			})
		})
	})

	return r
}
