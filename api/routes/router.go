package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/inventory-service/api/controllers"
	"github.com/angelmondragon/inventory-service/api/middleware"
	"github.com/angelmondragon/inventory-service/internal/inventory"
	"github.com/angelmondragon/inventory-service/pkg/config"
	"github.com/angelmondragon/inventory-service/pkg/db"
	"github.com/angelmondragon/inventory-service/pkg/logger"
	"github.com/angelmondragon/inventory-service/pkg/redis"
)

// NewRouter wires the inventory API. redisClient may be nil, in which case
// idempotency replay is disabled and readiness only checks the database.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	inventoryService inventory.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	checks := map[string]db.Pinger{"database": dbP}
	var store redis.IdempotencyStore
	if redisClient != nil {
		checks["redis"] = redisClient
		store = redisClient
	}

	r.Get("/health", controllers.HealthLive(cfg))
	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, checks))

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	idempotent := middleware.Idempotency(store, cfg.Idempotency.TTL, logg)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireJSON(logg))

		r.Get("/inventory", controllers.ListInventory(inventoryService, logg))
		r.With(idempotent).Post("/inventory", controllers.CreateInventory(inventoryService, logg))

		r.Get("/inventory/{product_id}/{condition}", controllers.GetInventory(inventoryService, logg))
		r.Put("/inventory/{product_id}/{condition}", controllers.UpdateInventory(inventoryService, logg))
		r.Delete("/inventory/{product_id}/{condition}", controllers.DeleteInventory(inventoryService, logg))

		r.With(idempotent).Put("/inventory/checkout/{product_id}/{condition}", controllers.CheckoutInventory(inventoryService, logg))
		r.With(idempotent).Put("/inventory/reorder/{product_id}/{condition}", controllers.ReorderInventory(inventoryService, logg))
	})

	return r
}
