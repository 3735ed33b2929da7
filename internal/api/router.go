package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkuiper/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/mkuiper/portfolio-tracker/internal/api/middleware"
	"github.com/mkuiper/portfolio-tracker/internal/config"
	"github.com/mkuiper/portfolio-tracker/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Position    *service.PositionService
	Transaction *service.TransactionService
	Snapshot    *service.SnapshotService
	Analytics   *service.AnalyticsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, apiKeyAuth *custommiddleware.APIKeyAuth, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/position", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(svc.Position)
			r.Get("/", positionHandler.GetPositions)
			r.With(apiKeyAuth.Handler).Post("/", positionHandler.CreatePosition)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.GetPosition)
				r.With(apiKeyAuth.Handler).Put("/", positionHandler.UpdatePosition)
				r.With(apiKeyAuth.Handler).Delete("/", positionHandler.DeletePosition)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.With(apiKeyAuth.Handler).Post("/", transactionHandler.CreateTransaction)

			r.Route("/position/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionsPerPosition)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/snapshot", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshot)
			r.Get("/", snapshotHandler.GetSnapshots)
			r.Get("/{date}", snapshotHandler.GetSnapshotByDate)
			r.With(apiKeyAuth.Handler).Post("/", snapshotHandler.CaptureSnapshot)
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
			r.Get("/performance", analyticsHandler.Performance)
			r.Get("/risk", analyticsHandler.Risk)
			r.Get("/allocation", analyticsHandler.Allocation)
			r.Get("/transactions", analyticsHandler.Transactions)
			r.Get("/time", analyticsHandler.Time)
			r.Get("/distribution", analyticsHandler.Distribution)
			r.Get("/top", analyticsHandler.Top)
			r.Get("/bottom", analyticsHandler.Bottom)
			r.Get("/companies", analyticsHandler.Companies)
			r.Get("/sizes", analyticsHandler.Sizes)
		})
	})

	return r
}
