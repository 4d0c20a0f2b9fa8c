// Package repo contains all database access logic for the visitor tracking API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VisitorRepo defines the persistence operations for visitor records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type VisitorRepo interface {
	// Insert persists a new visitor record and returns it with the
	// DB-generated id populated. ExitedAt is always stored as NULL.
	Insert(ctx context.Context, v domain.Visitor) (domain.Visitor, error)

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Visitor, error)

	// GetLatestByTcNumber retrieves the most recent record (by entered_at)
	// for the given tc number, active or not.
	// Returns domain.ErrNotFound if the tc number has never checked in.
	GetLatestByTcNumber(ctx context.Context, tcNumber string) (domain.Visitor, error)

	// ListActive returns all records whose exited_at is unset.
	ListActive(ctx context.Context) ([]domain.Visitor, error)

	// ListAll returns every record, active and exited, in storage order.
	// Ordering for presentation is the caller's concern.
	ListAll(ctx context.Context) ([]domain.Visitor, error)

	// ListEnteredBetween returns records with entered_at inside [from, to],
	// bounds inclusive. Used by the analytics layer to fetch one window and
	// aggregate it in memory.
	ListEnteredBetween(ctx context.Context, from, to time.Time) ([]domain.Visitor, error)

	// ListCompleted returns all records whose exited_at is set.
	ListCompleted(ctx context.Context) ([]domain.Visitor, error)

	// Filter returns records matching the given criteria ordered by
	// entered_at descending (most recent check-in first).
	Filter(ctx context.Context, f domain.VisitorFilter) ([]domain.Visitor, error)

	// MarkExited sets exited_at on a specific record.
	// Returns domain.ErrAlreadyExited if the record has already checked out,
	// and domain.ErrNotFound if the record does not exist.
	MarkExited(ctx context.Context, id uuid.UUID, exitedAt time.Time) (domain.Visitor, error)

	// CheckOutLatestActive atomically sets exited_at on the most recent
	// active record for the given tc number. The exited_at IS NULL guard
	// lives inside the UPDATE itself, so two concurrent check-outs for the
	// same tc number can never both succeed — the loser sees
	// domain.ErrNoActiveVisitor.
	CheckOutLatestActive(ctx context.Context, tcNumber string, exitedAt time.Time) (domain.Visitor, error)
}

// pgVisitorRepo is the Postgres implementation of VisitorRepo.
type pgVisitorRepo struct {
	db db
}

// NewVisitorRepo constructs a VisitorRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVisitorRepo(db db) VisitorRepo {
	return &pgVisitorRepo{db: db}
}

const visitorColumns = `id, full_name, tc_number, visit_reason, entered_at, exited_at`

// Insert persists a new visitor row and returns the full record.
func (r *pgVisitorRepo) Insert(ctx context.Context, v domain.Visitor) (domain.Visitor, error) {
	const q = `
		INSERT INTO visitors (full_name, tc_number, visit_reason, entered_at)
		VALUES (@full_name, @tc_number, @visit_reason, @entered_at)
		RETURNING ` + visitorColumns

	args := pgx.NamedArgs{
		"full_name":    v.FullName,
		"tc_number":    v.TcNumber,
		"visit_reason": v.VisitReason,
		"entered_at":   v.EnteredAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVisitor(row)
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Insert: %w", err)
	}
	return result, nil
}

// GetByID retrieves a record by primary key.
func (r *pgVisitorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVisitor(row)
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetLatestByTcNumber retrieves the most recent record for a tc number.
func (r *pgVisitorRepo) GetLatestByTcNumber(ctx context.Context, tcNumber string) (domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE tc_number = @tc_number
		ORDER BY entered_at DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tc_number": tcNumber})
	result, err := scanVisitor(row)
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.GetLatestByTcNumber: %w", err)
	}
	return result, nil
}

// ListActive returns all records that have not checked out yet.
func (r *pgVisitorRepo) ListActive(ctx context.Context) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE exited_at IS NULL`

	return r.queryMany(ctx, "ListActive", q, nil)
}

// ListAll returns every record in the table.
func (r *pgVisitorRepo) ListAll(ctx context.Context) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors`

	return r.queryMany(ctx, "ListAll", q, nil)
}

// ListEnteredBetween returns records that entered inside [from, to].
func (r *pgVisitorRepo) ListEnteredBetween(ctx context.Context, from, to time.Time) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE entered_at >= @from AND entered_at <= @to`

	return r.queryMany(ctx, "ListEnteredBetween", q, pgx.NamedArgs{"from": from, "to": to})
}

// ListCompleted returns every record that has checked out.
func (r *pgVisitorRepo) ListCompleted(ctx context.Context) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE exited_at IS NOT NULL`

	return r.queryMany(ctx, "ListCompleted", q, nil)
}

// Filter returns records matching the criteria, newest check-in first.
// All conditions are combined with AND; empty criteria match everything.
func (r *pgVisitorRepo) Filter(ctx context.Context, f domain.VisitorFilter) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE (@full_name = '' OR full_name ILIKE '%' || @full_name || '%')
		  AND (@tc_number = '' OR tc_number LIKE '%' || @tc_number || '%')
		  AND (@start_date::timestamptz IS NULL OR entered_at >= @start_date)
		  AND (@end_date::timestamptz IS NULL OR entered_at <= @end_date)
		  AND (@is_active::boolean IS NULL OR (exited_at IS NULL) = @is_active)
		ORDER BY entered_at DESC`

	args := pgx.NamedArgs{
		"full_name":  f.FullName,
		"tc_number":  f.TcNumber,
		"start_date": f.StartDate, // nil becomes NULL
		"end_date":   f.EndDate,
		"is_active":  f.IsActive,
	}

	return r.queryMany(ctx, "Filter", q, args)
}

// MarkExited sets exited_at on one record, guarding against double check-out.
func (r *pgVisitorRepo) MarkExited(ctx context.Context, id uuid.UUID, exitedAt time.Time) (domain.Visitor, error) {
	const q = `
		UPDATE visitors
		SET exited_at = @exited_at
		WHERE id = @id AND exited_at IS NULL
		RETURNING ` + visitorColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "exited_at": exitedAt})
	result, err := scanVisitor(row)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.MarkExited: %w", err)
	}

	// No row was updated: distinguish "missing" from "already exited" so the
	// caller can report the right error.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		if errors.Is(getErr, domain.ErrNotFound) {
			return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.MarkExited: %w", domain.ErrNotFound)
		}
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.MarkExited: %w", getErr)
	}
	return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.MarkExited: %w", domain.ErrAlreadyExited)
}

// CheckOutLatestActive checks out the most recent active record for a tc number.
// The whole read-pick-update happens in a single statement so a concurrent
// check-out for the same tc number cannot produce a lost update: the row
// lock taken by the first UPDATE makes the second one re-evaluate
// exited_at IS NULL and match zero rows.
func (r *pgVisitorRepo) CheckOutLatestActive(ctx context.Context, tcNumber string, exitedAt time.Time) (domain.Visitor, error) {
	const q = `
		UPDATE visitors
		SET exited_at = @exited_at
		WHERE id = (
			SELECT id FROM visitors
			WHERE tc_number = @tc_number AND exited_at IS NULL
			ORDER BY entered_at DESC
			LIMIT 1
		)
		AND exited_at IS NULL
		RETURNING ` + visitorColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tc_number": tcNumber, "exited_at": exitedAt})
	result, err := scanVisitor(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.CheckOutLatestActive: %w", domain.ErrNoActiveVisitor)
		}
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.CheckOutLatestActive: %w", err)
	}
	return result, nil
}

// queryMany runs a multi-row query and scans each row into a domain.Visitor.
func (r *pgVisitorRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Visitor, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.%s: %w", op, err)
	}
	defer rows.Close()

	visitors := []domain.Visitor{}
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VisitorRepo.%s: scan: %w", op, err)
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.%s: rows: %w", op, err)
	}
	return visitors, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanVisitor to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanVisitor maps a single database row into a domain.Visitor.
// It handles the UUID and nullable exited_at conversions.
func scanVisitor(s scanner) (domain.Visitor, error) {
	var (
		v        domain.Visitor
		id       pgtype.UUID
		exitedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &v.FullName, &v.TcNumber, &v.VisitReason, &v.EnteredAt, &exitedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Visitor{}, domain.ErrNotFound
		}
		return domain.Visitor{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	v.EnteredAt = v.EnteredAt.UTC()
	if exitedAt.Valid {
		t := exitedAt.Time.UTC()
		v.ExitedAt = &t
	}

	return v, nil
}
