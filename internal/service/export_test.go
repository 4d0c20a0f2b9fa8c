package service

import "time"

// SetClock overrides the visitor service clock in tests.
func SetClock(s *VisitorService, now func() time.Time) { s.now = now }

// SetAnalyticsClock overrides the analytics service clock in tests.
func SetAnalyticsClock(s *AnalyticsService, now func() time.Time) { s.now = now }
