package handler

import (
	"net/http"
	"time"
)

// ReasonDistribution handles GET /api/visitor/analytics/reason-distribution.
func (s *Server) ReasonDistribution(w http.ResponseWriter, r *http.Request) {
	distribution, err := s.analytics.ReasonDistribution(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "visit reason distribution", distribution)
}

// DateRangeAnalytics handles GET /api/visitor/analytics/date-range.
// startDate and endDate are required query parameters in YYYY-MM-DD form and
// are interpreted as inclusive UTC calendar days.
func (s *Server) DateRangeAnalytics(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		respondBadRequest(w, "startDate must be a YYYY-MM-DD date")
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		respondBadRequest(w, "endDate must be a YYYY-MM-DD date")
		return
	}
	if endDate.Before(startDate) {
		respondBadRequest(w, "endDate must not be before startDate")
		return
	}

	rollups, err := s.analytics.DateRange(r.Context(), startDate, endDate)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "date range analytics", rollups)
}

// PeakHours handles GET /api/visitor/analytics/peak-hours.
func (s *Server) PeakHours(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analytics.PeakHours(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "peak hours analysis", analysis)
}

// Trends handles GET /api/visitor/analytics/trends.
func (s *Server) Trends(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analytics.Trends(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "trend analysis", analysis)
}

// DurationAnalysis handles GET /api/visitor/analytics/duration-analysis.
func (s *Server) DurationAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analytics.DurationAnalysis(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "duration analysis", analysis)
}

// Heatmap handles GET /api/visitor/analytics/heatmap.
func (s *Server) Heatmap(w http.ResponseWriter, r *http.Request) {
	cells, err := s.analytics.Heatmap(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "visit heatmap", cells)
}

// parseDateParam reads a required YYYY-MM-DD query parameter as a UTC date.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", r.URL.Query().Get(name), time.UTC)
}
