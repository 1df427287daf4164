package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/morada-labs/morada/internal/api/auth"
	"github.com/morada-labs/morada/internal/api/handlers"
	apiMiddleware "github.com/morada-labs/morada/internal/api/middleware"
	"github.com/morada-labs/morada/internal/logger"
	"github.com/morada-labs/morada/internal/metrics"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//   - CORS for the browser front end
//   - Prometheus request instrumentation (when metrics are enabled)
//   - Bearer token authentication gated by the authorization policy
//
// Routes:
//   - GET  /health, /health/ready - Probes
//   - POST /auth/login - Authentication
//   - GET  /auth/me - Current user info
//   - POST /users/register - Self-registration (public)
//   - PUT  /users/password - Own password change
//   - /users/* - User management (admin only)
//   - /listings/* - Listings (reads public, writes authenticated)
//   - /listings/{id}/photos/* - Photo metadata
//   - /neighborhoods/*, /property-types/* - Catalogs (reads public)
func NewRouter(config APIConfig, jwtService *auth.JWTService, s store.Store, version string) http.Handler {
	r := chi.NewRouter()

	policy := apiMiddleware.NewPolicy(config.Auth.PolicyRules())

	// Middleware stack - order matters
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(metrics.NewHTTPMetrics().Middleware)
	r.Use(apiMiddleware.Authenticate(jwtService, s, policy, config.Auth.ExemptPaths))

	healthHandler := handlers.NewHealthHandler(s, version)
	authHandler := handlers.NewAuthHandler(s, jwtService)
	usersHandler := handlers.NewUsersHandler(s)
	listingsHandler := handlers.NewListingsHandler(s)
	neighborhoodsHandler := handlers.NewNeighborhoodsHandler(s)
	propertyTypesHandler := handlers.NewPropertyTypesHandler(s)
	photosHandler := handlers.NewPhotosHandler(s)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Health)
		r.Get("/ready", healthHandler.Ready)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	// Auth routes. The path prefix is exempt from the global
	// middleware, so /auth/me gets its own Authenticate pass with a
	// deny-by-default policy.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.Authenticate(jwtService, s, apiMiddleware.NewPolicy(nil), nil))
			r.Get("/me", authHandler.Me)
		})
	})

	// User routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", usersHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireIdentity())
			r.Put("/password", usersHandler.ChangePassword)
		})

		// Admin-only management
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireAdmin())

			r.Get("/", usersHandler.List)
			r.Get("/{id}", usersHandler.Get)
			r.Put("/{id}", usersHandler.Update)
			r.Delete("/{id}", usersHandler.Delete)
		})
	})

	// Listing routes
	r.Route("/listings", func(r chi.Router) {
		r.Get("/", listingsHandler.List)
		r.Get("/{id}", listingsHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireIdentity())

			r.Post("/", listingsHandler.Create)
			r.Put("/{id}", listingsHandler.Update)
			r.Delete("/{id}", listingsHandler.Delete)
		})

		// Photo metadata
		r.Route("/{id}/photos", func(r chi.Router) {
			r.Get("/", photosHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireIdentity())

				r.Post("/", photosHandler.Create)
				r.Put("/{photoID}/cover", photosHandler.SetCover)
				r.Delete("/{photoID}", photosHandler.Delete)
			})
		})
	})

	// Catalog routes - reads public, writes authenticated
	r.Route("/neighborhoods", func(r chi.Router) {
		r.Get("/", neighborhoodsHandler.List)
		r.Get("/{id}", neighborhoodsHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireIdentity())

			r.Post("/", neighborhoodsHandler.Create)
			r.Put("/{id}", neighborhoodsHandler.Update)
			r.Delete("/{id}", neighborhoodsHandler.Delete)
		})
	})

	r.Route("/property-types", func(r chi.Router) {
		r.Get("/", propertyTypesHandler.List)
		r.Get("/{id}", propertyTypesHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.RequireIdentity())

			r.Post("/", propertyTypesHandler.Create)
			r.Put("/{id}", propertyTypesHandler.Update)
			r.Delete("/{id}", propertyTypesHandler.Delete)
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		ctx := logger.WithContext(r.Context(), logger.LogContext{RequestID: requestID})
		r = r.WithContext(ctx)

		logger.DebugCtx(ctx, "API request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs
		if isHealthPath(r.URL.Path) {
			logger.DebugCtx(ctx, "API request completed", logArgs...)
		} else {
			logger.InfoCtx(ctx, "API request completed", logArgs...)
		}
	})
}
