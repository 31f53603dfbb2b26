// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/techshop/catalog_service/internal/cache"
	"github.com/techshop/catalog_service/internal/config"
	"github.com/techshop/catalog_service/internal/service"
	"github.com/techshop/catalog_service/internal/store"
	"github.com/techshop/catalog_service/internal/transport/rest"
	"github.com/techshop/catalog_service/pkg/messaging"
	"github.com/techshop/catalog_service/pkg/server"
)

type Dependencies struct {
	Store          store.ProductStore
	CatalogService service.ProductService
	Logger         *slog.Logger
}

// SetupDependencies wires store, cache and service. The publisher may be nil
// when eventing is disabled.
func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	pgStore := store.NewPgStore(dbPool)
	catalogService := service.NewService(pgStore, cache.NewProductCache(), publisher)

	return &Dependencies{
		Store:          pgStore,
		CatalogService: catalogService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.CatalogService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
