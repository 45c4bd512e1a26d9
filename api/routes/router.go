package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/stockdesk/api/controllers"
	catalogcontrollers "github.com/angelmondragon/stockdesk/api/controllers/catalog"
	ordercontrollers "github.com/angelmondragon/stockdesk/api/controllers/orders"
	promotioncontrollers "github.com/angelmondragon/stockdesk/api/controllers/promotions"
	reportcontrollers "github.com/angelmondragon/stockdesk/api/controllers/reports"
	"github.com/angelmondragon/stockdesk/api/middleware"
	"github.com/angelmondragon/stockdesk/internal/catalog"
	"github.com/angelmondragon/stockdesk/internal/orders"
	"github.com/angelmondragon/stockdesk/internal/promotions"
	"github.com/angelmondragon/stockdesk/internal/reports"
	"github.com/angelmondragon/stockdesk/pkg/access"
	"github.com/angelmondragon/stockdesk/pkg/config"
	"github.com/angelmondragon/stockdesk/pkg/logger"
)

// Deps are the collaborators the gateway routes to.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Policy     *access.Policy
	Prober     controllers.Prober
	Gatherer   prometheus.Gatherer
	Catalog    catalog.Service
	Orders     orders.Service
	Promotions promotions.Service
	Reports    reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	policy := deps.Policy

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Gateway.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Prober, logg))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BearerToken(middleware.RoleSource{
			Default:     cfg.Access.DefaultRole,
			TrustHeader: cfg.Access.TrustRoleHeader,
		}, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(policy, access.PermCatalogRead, logg))
			r.Get("/products", catalogcontrollers.ListProducts(deps.Catalog, logg))
			r.Get("/products/{productId}", catalogcontrollers.GetProduct(deps.Catalog, logg))
			r.Get("/categories", catalogcontrollers.ListCategories(deps.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(policy, access.PermOrdersRead, logg))
				r.Get("/", ordercontrollers.List(deps.Orders, logg))
				r.Get("/{orderId}", ordercontrollers.Detail(deps.Orders, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(policy, access.PermOrdersWrite, logg))
				r.Post("/", ordercontrollers.Create(deps.Orders, deps.Catalog, logg))
				r.Patch("/{orderId}/status", ordercontrollers.UpdateStatus(deps.Orders, logg))
				r.Delete("/{orderId}", ordercontrollers.Delete(deps.Orders, logg))
			})
		})

		r.Route("/promotions", func(r chi.Router) {
			r.With(middleware.RequirePermission(policy, access.PermPromotionsRead, logg)).
				Get("/active", promotioncontrollers.ListActive(deps.Promotions, logg))
			r.With(middleware.RequirePermission(policy, access.PermPromotionsWrite, logg)).
				Patch("/{promotionId}", promotioncontrollers.Update(deps.Promotions, logg))
		})

		r.With(middleware.RequirePermission(policy, access.PermReportsRead, logg)).
			Get("/reports/revenue", reportcontrollers.Revenue(deps.Reports, logg))
	})

	return r
}
