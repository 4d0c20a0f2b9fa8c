// Package handler implements the HTTP layer for the visitor tracking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (visitor.go, analytics.go, auth.go) but share the same Server struct
// so they can access its dependencies.
//
// Handlers decode and validate request bodies, call into the service layer,
// and serialize results in the {success, message, data} envelope the admin
// dashboard expects, with conventional HTTP status codes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/service"
)

// VisitorServicer defines the visitor lifecycle operations the handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type VisitorServicer interface {
	CheckIn(ctx context.Context, fullName, tcNumber, visitReason string) (domain.Visitor, error)
	CheckOut(ctx context.Context, tcNumber string) (domain.Visitor, error)
	GetActive(ctx context.Context) ([]domain.Visitor, error)
	GetHistory(ctx context.Context) ([]domain.Visitor, error)
	GetByTcNumber(ctx context.Context, tcNumber string) (domain.Visitor, error)
	Filter(ctx context.Context, f domain.VisitorFilter) ([]domain.Visitor, error)
	Statistics(ctx context.Context) (domain.VisitorStatistics, error)
}

// AnalyticsServicer defines the read-only aggregation operations.
type AnalyticsServicer interface {
	ReasonDistribution(ctx context.Context) ([]domain.ReasonCount, error)
	DateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.DailyRollup, error)
	PeakHours(ctx context.Context) (domain.PeakHoursAnalysis, error)
	Trends(ctx context.Context) (domain.TrendAnalysis, error)
	DurationAnalysis(ctx context.Context) (domain.DurationAnalysis, error)
	Heatmap(ctx context.Context) ([]domain.HeatmapCell, error)
}

// AuthServicer defines the admin authentication operations.
type AuthServicer interface {
	Login(ctx context.Context, email, password string) (domain.Admin, string, error)
	Register(ctx context.Context, in service.RegisterAdminInput) (domain.Admin, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phoneNumber, email string) (domain.Admin, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
}

// Server implements the HTTP handlers for all API endpoints.
type Server struct {
	visitors  VisitorServicer
	analytics AnalyticsServicer
	auth      AuthServicer
	validate  *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(visitors VisitorServicer, analytics AnalyticsServicer, auth AuthServicer) *Server {
	return &Server{
		visitors:  visitors,
		analytics: analytics,
		auth:      auth,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes mounts every endpoint on a fresh chi router. requireAuth guards the
// admin-only endpoints; visitor check-in stays open because it is driven by
// the unauthenticated kiosk at the branch entrance.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.Login)
			r.Post("/register-admin", s.RegisterAdmin)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/profile", s.UpdateProfile)
				r.Post("/change-password", s.ChangePassword)
			})
		})

		r.Route("/visitor", func(r chi.Router) {
			r.Post("/", s.CheckIn)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/active", s.ActiveVisitors)
				r.Get("/history", s.VisitorHistory)
				r.Get("/statistics", s.Statistics)
				r.Post("/filter", s.FilterVisitors)

				r.Route("/analytics", func(r chi.Router) {
					r.Get("/reason-distribution", s.ReasonDistribution)
					r.Get("/date-range", s.DateRangeAnalytics)
					r.Get("/peak-hours", s.PeakHours)
					r.Get("/trends", s.Trends)
					r.Get("/duration-analysis", s.DurationAnalysis)
					r.Get("/heatmap", s.Heatmap)
				})

				r.Get("/{tcNumber}", s.VisitorByTcNumber)
				r.Patch("/{tcNumber}/exit", s.CheckOut)
			})
		})
	})

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, "ok", nil)
}
