package domain

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a dashboard user. Admins authenticate with email + password and
// receive a JWT; the password itself is never stored, only the bcrypt hash.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	TcNumber     string    `json:"tcNumber"`
	PhoneNumber  string    `json:"phoneNumber"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName returns the display name used in tokens and notification emails.
func (a Admin) FullName() string {
	return a.FirstName + " " + a.LastName
}
