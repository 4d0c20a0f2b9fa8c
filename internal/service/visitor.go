// Package service contains the business logic for the visitor tracking API.
// Services validate inputs, enforce the check-in/check-out state rules, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/repo"
)

// Notifier sends a best-effort notification. Failures are logged by the
// caller and never propagate — a broken mail server must not block a
// check-in at the front desk.
type Notifier interface {
	VisitorCheckedIn(v domain.Visitor) error
	AdminRegistered(a domain.Admin, managerEmail string) error
}

// Cache is a small optional key-value store used for the active-visitors
// list. A no-op implementation is used when Redis is not configured.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// activeVisitorsKey is the cache key for the active-visitors list.
const activeVisitorsKey = "active_visitors"

// activeVisitorsTTL bounds staleness when an invalidation is lost.
const activeVisitorsTTL = 5 * time.Minute

// VisitorService implements the visitor lifecycle: check-in creates a record
// in the Active state, check-out moves it to Exited exactly once.
type VisitorService struct {
	visitors repo.VisitorRepo
	notifier Notifier
	cache    Cache
	log      *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewVisitorService constructs a VisitorService.
// notifier and cache may be no-op implementations but must not be nil.
func NewVisitorService(visitors repo.VisitorRepo, notifier Notifier, cache Cache, log *slog.Logger) *VisitorService {
	return &VisitorService{
		visitors: visitors,
		notifier: notifier,
		cache:    cache,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CheckIn validates and persists a new visitor record.
// The record starts Active (exited_at unset) with entered_at = now (UTC).
// The notification email is fire-and-forget: a send failure is logged and
// the check-in still succeeds.
func (s *VisitorService) CheckIn(ctx context.Context, fullName, tcNumber, visitReason string) (domain.Visitor, error) {
	fullName = strings.TrimSpace(fullName)
	tcNumber = strings.TrimSpace(tcNumber)
	visitReason = strings.TrimSpace(visitReason)

	if fullName == "" {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.CheckIn: %w: full name is required", domain.ErrValidation)
	}
	if err := validateTcNumber(tcNumber); err != nil {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.CheckIn: %w", err)
	}
	if visitReason == "" {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.CheckIn: %w: visit reason is required", domain.ErrValidation)
	}
	if len(visitReason) > 200 {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.CheckIn: %w: visit reason is too long", domain.ErrValidation)
	}

	visitor := domain.Visitor{
		FullName:    fullName,
		TcNumber:    tcNumber,
		VisitReason: visitReason,
		EnteredAt:   s.now(),
	}

	created, err := s.visitors.Insert(ctx, visitor)
	if err != nil {
		return domain.Visitor{}, err
	}

	if err := s.notifier.VisitorCheckedIn(created); err != nil {
		s.log.Warn("visitor check-in notification failed", "error", err, "visitor_id", created.ID)
	}

	s.invalidateActive(ctx)
	return created, nil
}

// CheckOut marks the most recent active record for tcNumber as exited now.
// The repo performs the whole lookup-and-update as one conditional UPDATE,
// so of two racing check-outs exactly one succeeds; the other gets
// domain.ErrNoActiveVisitor.
func (s *VisitorService) CheckOut(ctx context.Context, tcNumber string) (domain.Visitor, error) {
	tcNumber = strings.TrimSpace(tcNumber)
	if err := validateTcNumber(tcNumber); err != nil {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.CheckOut: %w", err)
	}

	exited, err := s.visitors.CheckOutLatestActive(ctx, tcNumber, s.now())
	if err != nil {
		return domain.Visitor{}, err
	}

	s.invalidateActive(ctx)
	return exited, nil
}

// GetActive returns all visitors currently inside. The list is served from
// the cache when possible and repopulated on a miss.
func (s *VisitorService) GetActive(ctx context.Context) ([]domain.Visitor, error) {
	var cached []domain.Visitor
	if hit, err := s.cache.Get(ctx, activeVisitorsKey, &cached); err != nil {
		s.log.Warn("active visitors cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	active, err := s.visitors.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, activeVisitorsKey, active, activeVisitorsTTL); err != nil {
		s.log.Warn("active visitors cache write failed", "error", err)
	}
	return active, nil
}

// GetHistory returns every visitor record, active and exited.
func (s *VisitorService) GetHistory(ctx context.Context) ([]domain.Visitor, error) {
	return s.visitors.ListAll(ctx)
}

// GetByTcNumber returns the most recent record for a tc number.
func (s *VisitorService) GetByTcNumber(ctx context.Context, tcNumber string) (domain.Visitor, error) {
	tcNumber = strings.TrimSpace(tcNumber)
	if err := validateTcNumber(tcNumber); err != nil {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.GetByTcNumber: %w", err)
	}
	return s.visitors.GetLatestByTcNumber(ctx, tcNumber)
}

// Filter returns records matching the criteria, newest check-in first.
func (s *VisitorService) Filter(ctx context.Context, f domain.VisitorFilter) ([]domain.Visitor, error) {
	f.FullName = strings.TrimSpace(f.FullName)
	f.TcNumber = strings.TrimSpace(f.TcNumber)
	return s.visitors.Filter(ctx, f)
}

// Statistics computes the dashboard headline numbers. Like the analytics
// aggregations it fetches the record set once and reduces it in memory.
func (s *VisitorService) Statistics(ctx context.Context) (domain.VisitorStatistics, error) {
	all, err := s.visitors.ListAll(ctx)
	if err != nil {
		return domain.VisitorStatistics{}, err
	}

	now := s.now()
	todayStart := now.Truncate(24 * time.Hour)
	weekStart := todayStart.AddDate(0, 0, -7)

	stats := domain.VisitorStatistics{}
	var totalHours float64
	var completed int64

	for _, v := range all {
		stats.TotalVisitors++
		if v.Active() {
			stats.ActiveVisitors++
		}
		if !v.EnteredAt.Before(todayStart) {
			stats.TodayVisitors++
		}
		if !v.EnteredAt.Before(weekStart) {
			stats.ThisWeekVisitors++
		}
		if d, ok := v.Duration(); ok {
			totalHours += d.Hours()
			completed++
		}
	}
	if completed > 0 {
		stats.AvgVisitDurationHours = totalHours / float64(completed)
	}

	return stats, nil
}

// invalidateActive drops the cached active-visitors list after a mutation.
// Cache errors are logged and swallowed; the database remains the source of
// truth and the TTL bounds staleness.
func (s *VisitorService) invalidateActive(ctx context.Context) {
	if err := s.cache.Remove(ctx, activeVisitorsKey); err != nil {
		s.log.Warn("active visitors cache invalidation failed", "error", err)
	}
}

// validateTcNumber checks the 11-digit national identity number format.
// Only the shape is validated; the checksum algorithm is out of scope.
func validateTcNumber(tcNumber string) error {
	if tcNumber == "" {
		return fmt.Errorf("%w: tc number is required", domain.ErrValidation)
	}
	if len(tcNumber) != 11 {
		return fmt.Errorf("%w: tc number must be 11 digits", domain.ErrValidation)
	}
	for _, r := range tcNumber {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: tc number must be 11 digits", domain.ErrValidation)
		}
	}
	return nil
}
