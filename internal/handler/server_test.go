package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/handler"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/middleware"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/service"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/token"
)

// mockVisitorService is a function-field test double for handler.VisitorServicer.
type mockVisitorService struct {
	checkIn       func(ctx context.Context, fullName, tcNumber, visitReason string) (domain.Visitor, error)
	checkOut      func(ctx context.Context, tcNumber string) (domain.Visitor, error)
	getActive     func(ctx context.Context) ([]domain.Visitor, error)
	getHistory    func(ctx context.Context) ([]domain.Visitor, error)
	getByTcNumber func(ctx context.Context, tcNumber string) (domain.Visitor, error)
	filter        func(ctx context.Context, f domain.VisitorFilter) ([]domain.Visitor, error)
	statistics    func(ctx context.Context) (domain.VisitorStatistics, error)
}

func (m *mockVisitorService) CheckIn(ctx context.Context, fullName, tcNumber, visitReason string) (domain.Visitor, error) {
	return m.checkIn(ctx, fullName, tcNumber, visitReason)
}
func (m *mockVisitorService) CheckOut(ctx context.Context, tcNumber string) (domain.Visitor, error) {
	return m.checkOut(ctx, tcNumber)
}
func (m *mockVisitorService) GetActive(ctx context.Context) ([]domain.Visitor, error) {
	return m.getActive(ctx)
}
func (m *mockVisitorService) GetHistory(ctx context.Context) ([]domain.Visitor, error) {
	return m.getHistory(ctx)
}
func (m *mockVisitorService) GetByTcNumber(ctx context.Context, tcNumber string) (domain.Visitor, error) {
	return m.getByTcNumber(ctx, tcNumber)
}
func (m *mockVisitorService) Filter(ctx context.Context, f domain.VisitorFilter) ([]domain.Visitor, error) {
	return m.filter(ctx, f)
}
func (m *mockVisitorService) Statistics(ctx context.Context) (domain.VisitorStatistics, error) {
	return m.statistics(ctx)
}

var _ handler.VisitorServicer = (*mockVisitorService)(nil)

// mockAnalyticsService is a function-field test double for handler.AnalyticsServicer.
type mockAnalyticsService struct {
	reasonDistribution func(ctx context.Context) ([]domain.ReasonCount, error)
	dateRange          func(ctx context.Context, startDate, endDate time.Time) ([]domain.DailyRollup, error)
	peakHours          func(ctx context.Context) (domain.PeakHoursAnalysis, error)
	trends             func(ctx context.Context) (domain.TrendAnalysis, error)
	durationAnalysis   func(ctx context.Context) (domain.DurationAnalysis, error)
	heatmap            func(ctx context.Context) ([]domain.HeatmapCell, error)
}

func (m *mockAnalyticsService) ReasonDistribution(ctx context.Context) ([]domain.ReasonCount, error) {
	return m.reasonDistribution(ctx)
}
func (m *mockAnalyticsService) DateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.DailyRollup, error) {
	return m.dateRange(ctx, startDate, endDate)
}
func (m *mockAnalyticsService) PeakHours(ctx context.Context) (domain.PeakHoursAnalysis, error) {
	return m.peakHours(ctx)
}
func (m *mockAnalyticsService) Trends(ctx context.Context) (domain.TrendAnalysis, error) {
	return m.trends(ctx)
}
func (m *mockAnalyticsService) DurationAnalysis(ctx context.Context) (domain.DurationAnalysis, error) {
	return m.durationAnalysis(ctx)
}
func (m *mockAnalyticsService) Heatmap(ctx context.Context) ([]domain.HeatmapCell, error) {
	return m.heatmap(ctx)
}

var _ handler.AnalyticsServicer = (*mockAnalyticsService)(nil)

// mockAuthService is a function-field test double for handler.AuthServicer.
type mockAuthService struct {
	login          func(ctx context.Context, email, password string) (domain.Admin, string, error)
	register       func(ctx context.Context, in service.RegisterAdminInput) (domain.Admin, error)
	updateProfile  func(ctx context.Context, id uuid.UUID, firstName, lastName, phoneNumber, email string) (domain.Admin, error)
	changePassword func(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.Admin, string, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthService) Register(ctx context.Context, in service.RegisterAdminInput) (domain.Admin, error) {
	return m.register(ctx, in)
}
func (m *mockAuthService) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phoneNumber, email string) (domain.Admin, error) {
	return m.updateProfile(ctx, id, firstName, lastName, phoneNumber, email)
}
func (m *mockAuthService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	return m.changePassword(ctx, id, currentPassword, newPassword)
}

var _ handler.AuthServicer = (*mockAuthService)(nil)

// ---- test harness ----------------------------------------------------------

// validToken is the bearer token stubVerifier accepts.
const validToken = "valid-test-token"

// testAdminID is the subject carried by stub-verified tokens.
var testAdminID = uuid.MustParse("3e2f1a40-9a41-4894-b21c-fb62d23e9a01")

// stubVerifier accepts exactly validToken and rejects everything else.
type stubVerifier struct{}

func (stubVerifier) Verify(tokenString string) (*token.Claims, error) {
	if tokenString != validToken {
		return nil, errors.New("bad token")
	}
	return &token.Claims{
		Email: "dogukan@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: testAdminID.String(),
		},
	}, nil
}

// newTestRouter mounts the full route tree with the stub token verifier.
// Nil mocks default to empty doubles; only set the methods a test exercises.
func newTestRouter(visitors *mockVisitorService, analytics *mockAnalyticsService, auth *mockAuthService) http.Handler {
	if visitors == nil {
		visitors = &mockVisitorService{}
	}
	if analytics == nil {
		analytics = &mockAnalyticsService{}
	}
	if auth == nil {
		auth = &mockAuthService{}
	}
	srv := handler.NewServer(visitors, analytics, auth)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return srv.Routes(middleware.RequireAuth(stubVerifier{}, log))
}

// responseEnvelope mirrors the wire shape of every API response.
type responseEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doRequest performs an in-memory request and decodes the envelope.
// body may be empty; authed attaches the stub bearer token.
func doRequest(t *testing.T, h http.Handler, method, path, body string, authed bool) (int, responseEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "response body should be a JSON envelope: %s", rec.Body.String())
	return rec.Code, env
}
