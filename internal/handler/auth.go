package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/middleware"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/service"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse pairs the issued token with the admin profile.
type LoginResponse struct {
	Token string `json:"token"`
	Admin any    `json:"admin"`
}

// RegisterAdminRequest is the body of POST /api/auth/register-admin.
type RegisterAdminRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	TcNumber        string `json:"tcNumber" validate:"required,len=11,numeric"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	ManagerEmail    string `json:"managerEmail" validate:"omitempty,email"`
}

// UpdateProfileRequest is the body of PUT /api/auth/profile.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if msg, ok := s.decodeJSON(r, &req); !ok {
		respondBadRequest(w, msg)
		return
	}

	admin, tok, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "login successful", LoginResponse{Token: tok, Admin: admin})
}

// RegisterAdmin handles POST /api/auth/register-admin.
func (s *Server) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req RegisterAdminRequest
	if msg, ok := s.decodeJSON(r, &req); !ok {
		respondBadRequest(w, msg)
		return
	}

	admin, err := s.auth.Register(r.Context(), service.RegisterAdminInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		TcNumber:        req.TcNumber,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		ManagerEmail:    req.ManagerEmail,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondCreated(w, "admin registered", admin)
}

// UpdateProfile handles PUT /api/auth/profile. Requires authentication.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	adminID, ok := authenticatedAdminID(r)
	if !ok {
		respondBadRequest(w, "invalid token subject")
		return
	}

	var req UpdateProfileRequest
	if msg, ok := s.decodeJSON(r, &req); !ok {
		respondBadRequest(w, msg)
		return
	}

	admin, err := s.auth.UpdateProfile(r.Context(), adminID, req.FirstName, req.LastName, req.PhoneNumber, req.Email)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "profile updated", admin)
}

// ChangePassword handles POST /api/auth/change-password. Requires authentication.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	adminID, ok := authenticatedAdminID(r)
	if !ok {
		respondBadRequest(w, "invalid token subject")
		return
	}

	var req ChangePasswordRequest
	if msg, ok := s.decodeJSON(r, &req); !ok {
		respondBadRequest(w, msg)
		return
	}

	if err := s.auth.ChangePassword(r.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		respondErr(w, r, err)
		return
	}
	respondOK(w, "password changed", nil)
}

// authenticatedAdminID extracts the admin UUID from the verified token
// claims placed on the context by the auth middleware.
func authenticatedAdminID(r *http.Request) (uuid.UUID, bool) {
	claims := middleware.AdminClaims(r.Context())
	if claims == nil {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}
