package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/petdohod/workshop-api/internal/api/handler"
	custommiddleware "github.com/petdohod/workshop-api/internal/api/middleware"
	"github.com/petdohod/workshop-api/internal/config"
	"github.com/petdohod/workshop-api/internal/mailer"
	"github.com/petdohod/workshop-api/internal/repository/postgres"
	"github.com/petdohod/workshop-api/internal/repository/redis"
	"github.com/petdohod/workshop-api/internal/service"
)

// NewRouter creates and configures the HTTP router. redisClient may be nil,
// which disables the rate limiter and the listing cache.
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repositories
	workshopRepo := postgres.NewWorkshopRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	newsletterRepo := postgres.NewNewsletterRepository(db)

	// Notifications
	notifier := mailer.New(cfg.Mail, cfg.Payment)

	// Services
	var listingCache service.WorkshopListingCache
	if redisClient != nil {
		listingCache = redis.NewWorkshopCache(redisClient)
	}
	workshopService := service.NewWorkshopService(workshopRepo, listingCache)
	registrationService := service.NewRegistrationService(registrationRepo, workshopRepo, notifier)
	newsletterService := service.NewNewsletterService(newsletterRepo)
	contactService := service.NewContactService(notifier)

	// Handlers
	adminAuth := custommiddleware.NewAdminAuth(cfg.Admin.Password)
	authHandler := handler.NewAuthHandler(adminAuth)
	workshopHandler := handler.NewWorkshopHandler(workshopService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	contactHandler := handler.NewContactHandler(contactService)

	// Public form throttling, active only when Redis is available.
	var rateLimit *custommiddleware.RateLimitMiddleware
	if redisClient != nil {
		limiter := redis.NewRateLimiter(
			redisClient,
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
		)
		rateLimit = custommiddleware.NewRateLimitMiddleware(limiter)
	}
	publicForm := func(r chi.Router) chi.Router {
		if rateLimit == nil {
			return r
		}
		return r.With(rateLimit.Limit)
	}

	r.Route("/api", func(r chi.Router) {
		// Health checks
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Admin login
		r.Post("/auth/login", authHandler.Login)

		// Public endpoints
		r.Get("/workshops", workshopHandler.List)
		publicForm(r).Post("/registrations", registrationHandler.Submit)
		publicForm(r).Post("/newsletter", newsletterHandler.Subscribe)
		publicForm(r).Post("/contact", contactHandler.Send)

		// Admin endpoints. Updates carry the id in the body and deletes
		// in ?id=, the contract the existing dashboard speaks. Method
		// routes are registered directly because GET /workshops and
		// POST /registrations exist publicly on the same patterns with
		// a different middleware chain.
		r.Group(func(r chi.Router) {
			r.Use(adminAuth.Authenticate)

			r.Post("/workshops", workshopHandler.Create)
			r.Put("/workshops", workshopHandler.Update)
			r.Delete("/workshops", workshopHandler.Delete)
			r.Get("/workshops/{id}", workshopHandler.Get)

			r.Get("/registrations", registrationHandler.List)
			r.Get("/registrations/export", registrationHandler.Export)
			r.Put("/registrations", registrationHandler.UpdateStatus)
			r.Delete("/registrations", registrationHandler.Delete)
		})
	})

	return r
}
