package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/repo"
)

// TokenIssuer mints a signed token for an authenticated admin.
// The concrete implementation lives in internal/token.
type TokenIssuer interface {
	Issue(admin domain.Admin) (string, error)
}

// RegisterAdminInput carries the fields of an admin self-registration.
type RegisterAdminInput struct {
	FirstName       string
	LastName        string
	TcNumber        string
	PhoneNumber     string
	Email           string
	Password        string
	ConfirmPassword string
	// ManagerEmail receives the new-registration notification.
	ManagerEmail string
}

// AuthService implements admin authentication and account management.
type AuthService struct {
	admins   repo.AdminRepo
	tokens   TokenIssuer
	notifier Notifier
	log      *slog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(admins repo.AdminRepo, tokens TokenIssuer, notifier Notifier, log *slog.Logger) *AuthService {
	return &AuthService{admins: admins, tokens: tokens, notifier: notifier, log: log}
}

// Login verifies email + password and returns the admin with a fresh token.
// Unknown email and wrong password both produce domain.ErrInvalidCredentials
// so the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Admin, string, error) {
	admin, err := s.admins.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Admin{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
		}
		return domain.Admin{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return domain.Admin{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(admin)
	if err != nil {
		return domain.Admin{}, "", fmt.Errorf("service.AuthService.Login: issue token: %w", err)
	}
	return admin, token, nil
}

// Register creates a new admin account. Email, tc number, and phone number
// are unique across admins; a clash surfaces as domain.ErrConflict. The
// manager notification is fire-and-forget.
func (s *AuthService) Register(ctx context.Context, in RegisterAdminInput) (domain.Admin, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.TcNumber = strings.TrimSpace(in.TcNumber)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.TrimSpace(in.Email)

	if in.FirstName == "" || in.LastName == "" {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: %w: first and last name are required", domain.ErrValidation)
	}
	if err := validateTcNumber(in.TcNumber); err != nil {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	if in.Email == "" {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: %w: email is required", domain.ErrValidation)
	}
	if in.PhoneNumber == "" {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: %w: phone number is required", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: %w: password must be at least 6 characters", domain.ErrValidation)
	}
	if in.Password != in.ConfirmPassword {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: %w: passwords do not match", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("service.AuthService.Register: hash password: %w", err)
	}

	created, err := s.admins.Create(ctx, domain.Admin{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		TcNumber:     in.TcNumber,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil {
		return domain.Admin{}, err
	}

	if in.ManagerEmail != "" {
		if err := s.notifier.AdminRegistered(created, in.ManagerEmail); err != nil {
			s.log.Warn("admin registration notification failed", "error", err, "admin_id", created.ID)
		}
	}
	return created, nil
}

// UpdateProfile changes an admin's name, phone number, and email.
func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phoneNumber, email string) (domain.Admin, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	if firstName == "" || lastName == "" {
		return domain.Admin{}, fmt.Errorf("service.AuthService.UpdateProfile: %w: first and last name are required", domain.ErrValidation)
	}
	if email == "" {
		return domain.Admin{}, fmt.Errorf("service.AuthService.UpdateProfile: %w: email is required", domain.ErrValidation)
	}

	return s.admins.UpdateProfile(ctx, domain.Admin{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: strings.TrimSpace(phoneNumber),
		Email:       email,
	})
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: %w", domain.ErrInvalidCredentials)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("service.AuthService.ChangePassword: %w: password must be at least 6 characters", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: hash password: %w", err)
	}
	return s.admins.UpdatePasswordHash(ctx, id, string(hash))
}
