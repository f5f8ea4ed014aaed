package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estradaranch/flockherd-backend/api/controllers"
	"github.com/estradaranch/flockherd-backend/api/middleware"
	"github.com/estradaranch/flockherd-backend/api/views"
	"github.com/estradaranch/flockherd-backend/internal/animals"
	"github.com/estradaranch/flockherd-backend/internal/auth"
	"github.com/estradaranch/flockherd-backend/internal/feeds"
	"github.com/estradaranch/flockherd-backend/internal/inventory"
	"github.com/estradaranch/flockherd-backend/internal/sales"
	"github.com/estradaranch/flockherd-backend/pkg/auth/session"
	"github.com/estradaranch/flockherd-backend/pkg/config"
	"github.com/estradaranch/flockherd-backend/pkg/db"
	"github.com/estradaranch/flockherd-backend/pkg/logger"
	"github.com/estradaranch/flockherd-backend/pkg/metrics"
	"github.com/estradaranch/flockherd-backend/pkg/redis"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Renderer       *views.Renderer
	DB             db.Pinger
	Redis          redis.Pinger
	SessionChecker session.Checker
	Auth           auth.Service
	Animals        animals.Service
	Feeds          feeds.Service
	Inventory      inventory.Service
	Sales          sales.Service
	HTTPMetrics    *metrics.HTTPMetrics
	PromGatherer   prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	renderer := deps.Renderer

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg, renderer),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.PromGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromGatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/login", controllers.LoginPage(renderer, logg))
	r.Post("/login", controllers.Login(deps.Auth, cfg.Session, logg))
	r.Get("/register", controllers.RegisterPage(renderer, logg))
	r.Post("/register", controllers.Register(deps.Auth, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, deps.SessionChecker, logg))

		r.Get("/", controllers.Dashboard(deps.Animals, deps.Inventory, renderer, logg))
		r.Get("/index", controllers.Dashboard(deps.Animals, deps.Inventory, renderer, logg))
		r.Get("/logout", controllers.Logout(deps.Auth, cfg.Session, logg))
		r.Get("/profile", controllers.Profile(deps.Auth, renderer, logg))

		r.Route("/animals", func(r chi.Router) {
			r.Get("/", controllers.AnimalsList(deps.Animals, renderer, logg))
			r.Get("/add", controllers.AnimalAddPage(renderer, logg))
			r.Post("/add", controllers.AnimalCreate(deps.Animals, logg))
			r.Get("/{id}", controllers.AnimalDetail(deps.Animals, renderer, logg))
		})

		r.Route("/feeds", func(r chi.Router) {
			r.Get("/", controllers.FeedsList(deps.Feeds, renderer, logg))
			r.Get("/create", controllers.FeedAddPage(renderer, logg))
			r.Post("/create", controllers.FeedCreate(deps.Feeds, logg))
			r.Get("/{id}/edit", controllers.FeedEditPage(deps.Feeds, renderer, logg))
			r.Post("/{id}/edit", controllers.FeedUpdate(deps.Feeds, logg))
			r.Post("/{id}/delete", controllers.FeedDelete(deps.Feeds, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(deps.Inventory, renderer, logg))
			r.Get("/add", controllers.InventoryAddPage(renderer, logg))
			r.Post("/add", controllers.InventoryCreate(deps.Inventory, logg))
			r.Get("/low-stock", controllers.InventoryLowStock(deps.Inventory, renderer, logg))
			r.Get("/{id}/edit", controllers.InventoryEditPage(deps.Inventory, renderer, logg))
			r.Post("/{id}/edit", controllers.InventoryUpdate(deps.Inventory, logg))
			r.Post("/{id}/delete", controllers.InventoryDelete(deps.Inventory, logg))
			r.Post("/{id}/adjust", controllers.InventoryAdjust(deps.Inventory, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SalesList(deps.Sales, renderer, logg))
			r.Get("/register", controllers.SaleRegisterPage(deps.Sales, renderer, logg))
			r.Post("/register", controllers.SaleRegister(deps.Sales, logg))
			r.Get("/stats", controllers.SalesStats(deps.Sales, renderer, logg))
		})
	})

	return r
}
