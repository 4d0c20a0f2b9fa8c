package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

// CheckInRequest is the body of POST /api/visitor.
type CheckInRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	TcNumber    string `json:"tcNumber" validate:"required,len=11,numeric"`
	VisitReason string `json:"visitReason" validate:"required,max=200"`
}

// FilterRequest is the body of POST /api/visitor/filter.
// All fields are optional; empty fields are ignored.
type FilterRequest struct {
	FullName  string     `json:"fullName"`
	TcNumber  string     `json:"tcNumber"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  *bool      `json:"isActive"`
}

// CheckIn handles POST /api/visitor.
func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if msg, ok := s.decodeJSON(r, &req); !ok {
		respondBadRequest(w, msg)
		return
	}

	visitor, err := s.visitors.CheckIn(r.Context(), req.FullName, req.TcNumber, req.VisitReason)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondCreated(w, "visitor checked in", visitor)
}

// CheckOut handles PATCH /api/visitor/{tcNumber}/exit.
func (s *Server) CheckOut(w http.ResponseWriter, r *http.Request) {
	visitor, err := s.visitors.CheckOut(r.Context(), chi.URLParam(r, "tcNumber"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "visitor checked out", visitor)
}

// ActiveVisitors handles GET /api/visitor/active.
func (s *Server) ActiveVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := s.visitors.GetActive(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "active visitors", visitors)
}

// VisitorHistory handles GET /api/visitor/history.
func (s *Server) VisitorHistory(w http.ResponseWriter, r *http.Request) {
	visitors, err := s.visitors.GetHistory(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "visitor history", visitors)
}

// VisitorByTcNumber handles GET /api/visitor/{tcNumber}.
func (s *Server) VisitorByTcNumber(w http.ResponseWriter, r *http.Request) {
	visitor, err := s.visitors.GetByTcNumber(r.Context(), chi.URLParam(r, "tcNumber"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "visitor found", visitor)
}

// FilterVisitors handles POST /api/visitor/filter.
func (s *Server) FilterVisitors(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if msg, ok := s.decodeJSON(r, &req); !ok {
		respondBadRequest(w, msg)
		return
	}

	visitors, err := s.visitors.Filter(r.Context(), domain.VisitorFilter{
		FullName:  req.FullName,
		TcNumber:  req.TcNumber,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "filtered visitors", visitors)
}

// Statistics handles GET /api/visitor/statistics.
func (s *Server) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.visitors.Statistics(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "visitor statistics", stats)
}
