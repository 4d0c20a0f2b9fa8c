// Package domain contains the core data types for the visitor tracking API.
// This package has zero business logic and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visitor represents a single branch visit from check-in to check-out.
// ExitedAt is nil while the visitor is still inside; it is set exactly once
// by the check-out operation and never changes afterwards. A returning
// visitor gets a brand-new record — there is no re-entry of an old one.
type Visitor struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"fullName"`
	TcNumber    string     `json:"tcNumber"`
	VisitReason string     `json:"visitReason"`
	EnteredAt   time.Time  `json:"enteredAt"`
	ExitedAt    *time.Time `json:"exitedAt,omitempty"` // nil while the visitor is active
}

// Active reports whether the visitor is still checked in.
func (v Visitor) Active() bool {
	return v.ExitedAt == nil
}

// Duration returns the completed visit length, or false when the visitor
// has not checked out yet — an active visit has no completed duration.
func (v Visitor) Duration() (time.Duration, bool) {
	if v.ExitedAt == nil {
		return 0, false
	}
	return v.ExitedAt.Sub(v.EnteredAt), true
}

// VisitorFilter carries the optional search criteria for the filter endpoint.
// Zero-valued fields are ignored.
type VisitorFilter struct {
	// FullName matches case-insensitively on any substring.
	FullName string
	// TcNumber matches on any substring.
	TcNumber string
	// StartDate keeps records with EnteredAt >= StartDate.
	StartDate *time.Time
	// EndDate keeps records with EnteredAt <= EndDate.
	EndDate *time.Time
	// IsActive filters on check-out state: true keeps only active visitors,
	// false only exited ones, nil keeps both.
	IsActive *bool
}

// VisitorStatistics is the headline dashboard summary.
type VisitorStatistics struct {
	TotalVisitors         int64   `json:"totalVisitors"`
	ActiveVisitors        int64   `json:"activeVisitors"`
	TodayVisitors         int64   `json:"todayVisitors"`
	ThisWeekVisitors      int64   `json:"thisWeekVisitors"`
	AvgVisitDurationHours float64 `json:"avgVisitDurationHours"`
}
