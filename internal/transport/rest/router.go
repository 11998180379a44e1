package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/frahmantamala/worldsell/internal/auth"
	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"github.com/frahmantamala/worldsell/internal/transport/middleware"
	"github.com/frahmantamala/worldsell/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/ulule/limiter/v3"
)

type Handlers struct {
	Health          *HealthHandler
	PaymentProvider *paymentprovider.Handler
	// Auth is nil when no token verification key is configured; admin routes are then not mounted.
	Auth *auth.Middleware
}

type Options struct {
	AllowedOrigins []string
	RateLimiter    *limiter.Limiter
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.AccessLog)

	router.Get("/openapi.yml", swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/ping", h.Health.Ping)

		r.Group(func(pr chi.Router) {
			if opts.RateLimiter != nil {
				pr.Use(middleware.RateLimit(opts.RateLimiter, logger))
			}

			pr.Route("/countries", func(cr chi.Router) {
				cr.Get("/", h.PaymentProvider.GetCountries)
				cr.Get("/{code}", h.PaymentProvider.GetCountry)
				cr.Get("/{code}/payment-types", h.PaymentProvider.GetCountryPaymentTypes)
			})

			pr.Route("/payment-providers", func(ppr chi.Router) {
				ppr.Get("/", h.PaymentProvider.GetProviders)
				ppr.Get("/eligible", h.PaymentProvider.GetEligibleProviders)
				ppr.Get("/{id}", h.PaymentProvider.GetProvider)
			})
		})

		if h.Auth == nil {
			logger.Info("admin routes disabled: no token verification key configured")
			return
		}

		r.Route("/admin", func(ar chi.Router) {
			ar.Use(h.Auth.Authenticate)
			ar.Use(h.Auth.RequirePermission(auth.PermissionManageCatalog))

			ar.Get("/catalog", h.PaymentProvider.GetCatalogStatus)
			ar.Post("/catalog/reload", h.PaymentProvider.ReloadCatalog)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.Health.HandleError(w, internal.NewNotFoundError("route not found", internal.ErrCodeRouteNotFound))
	})
}
