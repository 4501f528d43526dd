package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caribeway/caribeway-backend/api/controllers"
	webhookcontrollers "github.com/caribeway/caribeway-backend/api/controllers/webhooks"
	"github.com/caribeway/caribeway-backend/api/middleware"
	"github.com/caribeway/caribeway-backend/internal/bookings"
	"github.com/caribeway/caribeway-backend/internal/catalog"
	"github.com/caribeway/caribeway-backend/internal/payments"
	"github.com/caribeway/caribeway-backend/internal/places"
	"github.com/caribeway/caribeway-backend/internal/staff"
	"github.com/caribeway/caribeway-backend/internal/support"
	"github.com/caribeway/caribeway-backend/internal/tracking"
	"github.com/caribeway/caribeway-backend/pkg/auth/session"
	"github.com/caribeway/caribeway-backend/pkg/config"
	"github.com/caribeway/caribeway-backend/pkg/db"
	"github.com/caribeway/caribeway-backend/pkg/enums"
	"github.com/caribeway/caribeway-backend/pkg/logger"
	"github.com/caribeway/caribeway-backend/pkg/metrics"
	"github.com/caribeway/caribeway-backend/pkg/redis"
	"github.com/caribeway/caribeway-backend/pkg/square"
)

// RouterParams collects everything the HTTP surface depends on. Optional
// fields (Metrics, SquareClient, webhook wiring) may be nil; the matching
// routes then degrade to service-unavailable responses.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Metrics        *metrics.HTTPMetrics

	Staff    staff.Service
	Bookings bookings.Service
	Catalog  catalog.Service
	Support  support.Service
	Tracking tracking.Service
	Places   places.Service

	SquareClient   *square.Client
	WebhookHandler webhookcontrollers.SquareWebhookService
	WebhookGuard   *payments.IdempotencyGuard
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.Metrics != nil {
		r.Use(p.Metrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.LoginLimit.Window,
		cfg.LoginLimit.IPLimit,
		cfg.LoginLimit.EmailLimit,
	)

	authn := middleware.Auth(cfg.JWT, p.SessionChecker, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quotes", controllers.QuoteCreate(p.Bookings, logg))
		r.Post("/bookings", controllers.BookingCreate(p.Bookings, logg))
		r.Get("/bookings/{reference}", controllers.BookingLookup(p.Bookings, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", controllers.CatalogList(p.Catalog, logg, true))
			r.Get("/items/{itemId}", controllers.CatalogDetail(p.Catalog, logg))
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/suggest", controllers.PlacesSuggest(p.Places, logg))
			r.Post("/resolve", controllers.PlacesResolve(p.Places, logg))
			r.Post("/distance", controllers.PlacesDistance(p.Places, logg))
		})

		r.Post("/support/tickets", controllers.SupportTicketCreate(p.Support, logg))
		r.Post("/tracking/events", controllers.TrackingRecord(p.Tracking, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.Staff, logg))
			r.Post("/refresh", controllers.AuthRefresh(p.Staff, logg))
			r.With(authn).Post("/logout", controllers.AuthLogout(p.Staff, logg))
		})

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/square", webhookcontrollers.SquareWebhook(p.WebhookHandler, p.SquareClient, p.WebhookGuard, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authn)
		r.Use(middleware.RequireRole(logg, enums.StaffRoleAdmin))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.AdminBookingList(p.Bookings, logg))
			r.Get("/export", controllers.AdminBookingExport(p.Bookings, logg))
			r.Post("/{bookingId}/confirm", controllers.AdminBookingConfirm(p.Bookings, logg))
			r.Post("/{bookingId}/cancel", controllers.AdminBookingCancel(p.Bookings, logg))
			r.Post("/{bookingId}/assign", controllers.AdminBookingAssignDriver(p.Bookings, logg))
		})

		r.Route("/catalog/items", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(p.Catalog, logg, false))
			r.Get("/{itemId}", controllers.CatalogDetail(p.Catalog, logg))
			r.Post("/", controllers.AdminCatalogCreate(p.Catalog, logg))
			r.Patch("/{itemId}", controllers.AdminCatalogUpdate(p.Catalog, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Post("/", controllers.AdminStaffCreate(p.Staff, logg))
			r.Post("/{userId}/active", controllers.AdminStaffSetActive(p.Staff, logg))
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Get("/", controllers.AdminDriverList(p.Staff, logg))
			r.Put("/{userId}/profile", controllers.AdminDriverProfileUpsert(p.Staff, logg))
		})

		r.Get("/analytics/funnel", controllers.AdminFunnelSummary(p.Tracking, logg))
	})

	r.Route("/api/driver", func(r chi.Router) {
		r.Use(authn)
		r.Use(middleware.RequireRole(logg, enums.StaffRoleDriver))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Get("/bookings", controllers.DriverAssignedBookings(p.Bookings, logg))
		r.Post("/bookings/{bookingId}/complete", controllers.DriverCompleteBooking(p.Bookings, logg))
	})

	r.Route("/api/support", func(r chi.Router) {
		r.Use(authn)
		r.Use(middleware.RequireRole(logg, enums.StaffRoleSupport, enums.StaffRoleAdmin))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", controllers.SupportTicketList(p.Support, logg))
			r.Get("/{ticketId}", controllers.SupportTicketDetail(p.Support, logg))
			r.Patch("/{ticketId}", controllers.SupportTicketUpdate(p.Support, logg))
		})
	})

	return r
}
