package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

// AdminRepo defines the persistence operations for dashboard admins.
type AdminRepo interface {
	// Create inserts a new admin and returns the persisted record.
	// Returns domain.ErrConflict if the email, tc number, or phone number
	// is already taken.
	Create(ctx context.Context, a domain.Admin) (domain.Admin, error)

	// GetByID retrieves an admin by primary key.
	// Returns domain.ErrNotFound if no admin with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Admin, error)

	// GetByEmail retrieves an admin by email address.
	// Returns domain.ErrNotFound if no admin with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.Admin, error)

	// UpdateProfile overwrites the profile fields (names, phone, email) of
	// an existing admin and returns the updated record.
	// Returns domain.ErrNotFound if the admin does not exist and
	// domain.ErrConflict if the new email is taken by someone else.
	UpdateProfile(ctx context.Context, a domain.Admin) (domain.Admin, error)

	// UpdatePasswordHash replaces the stored password hash.
	// Returns domain.ErrNotFound if the admin does not exist.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// pgAdminRepo is the Postgres implementation of AdminRepo.
type pgAdminRepo struct {
	db db
}

// NewAdminRepo constructs an AdminRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewAdminRepo(db db) AdminRepo {
	return &pgAdminRepo{db: db}
}

const adminColumns = `id, first_name, last_name, tc_number, phone_number, email, password_hash, role, created_at, updated_at`

// Create inserts a new admin row, mapping unique-constraint violations to
// domain.ErrConflict.
func (r *pgAdminRepo) Create(ctx context.Context, a domain.Admin) (domain.Admin, error) {
	const q = `
		INSERT INTO admins (first_name, last_name, tc_number, phone_number, email, password_hash, role)
		VALUES (@first_name, @last_name, @tc_number, @phone_number, @email, @password_hash, @role)
		RETURNING ` + adminColumns

	args := pgx.NamedArgs{
		"first_name":    a.FirstName,
		"last_name":     a.LastName,
		"tc_number":     a.TcNumber,
		"phone_number":  a.PhoneNumber,
		"email":         a.Email,
		"password_hash": a.PasswordHash,
		"role":          a.Role,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAdmin(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Admin{}, fmt.Errorf("repo.AdminRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Admin{}, fmt.Errorf("repo.AdminRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an admin by primary key.
func (r *pgAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Admin, error) {
	const q = `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("repo.AdminRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByEmail retrieves an admin by email address.
func (r *pgAdminRepo) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	const q = `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanAdmin(row)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("repo.AdminRepo.GetByEmail: %w", err)
	}
	return result, nil
}

// UpdateProfile overwrites the profile fields of an admin.
func (r *pgAdminRepo) UpdateProfile(ctx context.Context, a domain.Admin) (domain.Admin, error) {
	const q = `
		UPDATE admins
		SET first_name   = @first_name,
		    last_name    = @last_name,
		    phone_number = @phone_number,
		    email        = @email,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + adminColumns

	args := pgx.NamedArgs{
		"id":           a.ID,
		"first_name":   a.FirstName,
		"last_name":    a.LastName,
		"phone_number": a.PhoneNumber,
		"email":        a.Email,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAdmin(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Admin{}, fmt.Errorf("repo.AdminRepo.UpdateProfile: %w", domain.ErrConflict)
		}
		return domain.Admin{}, fmt.Errorf("repo.AdminRepo.UpdateProfile: %w", err)
	}
	return result, nil
}

// UpdatePasswordHash replaces the stored bcrypt hash.
func (r *pgAdminRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	const q = `
		UPDATE admins
		SET password_hash = @password_hash,
		    updated_at    = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "password_hash": hash})
	if err != nil {
		return fmt.Errorf("repo.AdminRepo.UpdatePasswordHash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AdminRepo.UpdatePasswordHash: %w", domain.ErrNotFound)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// scanAdmin maps a single database row into a domain.Admin.
func scanAdmin(s scanner) (domain.Admin, error) {
	var (
		a  domain.Admin
		id pgtype.UUID
	)

	err := s.Scan(&id, &a.FirstName, &a.LastName, &a.TcNumber, &a.PhoneNumber,
		&a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Admin{}, domain.ErrNotFound
		}
		return domain.Admin{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}
