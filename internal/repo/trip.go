// Package repo contains all storage access for the TripCrew API.
// Each store has an interface, a Postgres implementation and an in-memory
// implementation with the same semantics. No business rules live here; the
// repo only persists what package trip has already validated.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tripcrew/internal/domain"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for a unique index clash.
const pgUniqueViolation = "23505"

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo stores trip aggregates as whole documents keyed by id.
// Every write is a compare-and-swap on Trip.Version.
type TripRepo interface {
	// Create inserts a new trip at version 1 and returns the stored record.
	// Returns domain.ErrCodeTaken if another trip already uses trip.Code.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Save replaces the stored document for trip.ID if, and only if, the
	// stored version still equals trip.Version. On success the returned trip
	// carries the incremented version.
	// Returns domain.ErrVersionConflict when another write got there first and
	// domain.ErrNotFound when the trip no longer exists.
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip by id. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetByCode retrieves a trip by its join code. Returns domain.ErrNotFound
	// if no trip uses the code.
	GetByCode(ctx context.Context, code string) (domain.Trip, error)

	// ListForUser returns one page of the trips userID participates in,
	// narrowed by the filter scope, plus the total number of matching trips.
	ListForUser(ctx context.Context, f domain.TripListFilter, p domain.PaginationParams) ([]domain.Trip, int, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `doc, version, created_at, updated_at`

// Create inserts a new trip document.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, trip_code, start_date, end_date, status, version, doc, created_at, updated_at)
		VALUES (@id, @trip_code, @start_date, @end_date, @status, 1, @doc, @created_at, @created_at)
		RETURNING ` + tripColumns

	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: encode: %w", err)
	}

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"trip_code":  trip.Code,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
		"status":     trip.Status,
		"doc":        doc,
		"created_at": trip.CreatedAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", domain.ErrCodeTaken)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// Save writes the document back if nobody else has written it since it was read.
func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET start_date = @start_date,
		    end_date   = @end_date,
		    status     = @status,
		    doc        = @doc,
		    version    = version + 1,
		    updated_at = @updated_at
		WHERE id = @id AND version = @version
		RETURNING ` + tripColumns

	doc, err := json.Marshal(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: encode: %w", err)
	}
	updatedAt := trip.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"version":    trip.Version,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
		"status":     trip.Status,
		"doc":        doc,
		"updated_at": updatedAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if errors.Is(err, domain.ErrNotFound) {
		// Zero rows means either the trip is gone or the version moved on.
		// A cheap existence check tells the two apart.
		var exists bool
		const check = `SELECT EXISTS (SELECT 1 FROM trips WHERE id = @id)`
		if cerr := r.db.QueryRow(ctx, check, pgx.NamedArgs{"id": trip.ID}).Scan(&exists); cerr != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", cerr)
		}
		if exists {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", domain.ErrVersionConflict)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByCode retrieves a trip by its unique join code.
func (r *pgTripRepo) GetByCode(ctx context.Context, code string) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE trip_code = @code`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"code": code}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByCode: %w", err)
	}
	return result, nil
}

// ListForUser pages through the trips whose participant list contains the user.
// The membership test uses JSONB containment so the GIN index on
// doc->'participants' can serve it.
func (r *pgTripRepo) ListForUser(ctx context.Context, f domain.TripListFilter, p domain.PaginationParams) ([]domain.Trip, int, error) {
	member := map[string]string{"user": f.UserID.String()}
	where := `doc -> 'participants' @> jsonb_build_array(@member::jsonb)`
	order := `start_date ASC, id ASC`

	switch f.Scope {
	case domain.ScopeUpcoming:
		member["status"] = string(domain.ParticipantAccepted)
		where += ` AND start_date > @now`
	case domain.ScopePast:
		member["status"] = string(domain.ParticipantAccepted)
		where += ` AND start_date <= @now`
		order = `start_date DESC, id ASC`
	case domain.ScopeAll, "":
	default:
		return nil, 0, fmt.Errorf("repo.TripRepo.ListForUser: %w: unknown scope %q", domain.ErrValidation, f.Scope)
	}

	memberJSON, err := json.Marshal(member)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListForUser: encode: %w", err)
	}
	args := pgx.NamedArgs{
		"member": string(memberJSON),
		"now":    f.Now,
		"limit":  p.Limit,
		"offset": p.Offset(),
	}

	var total int
	countQ := `SELECT count(*) FROM trips WHERE ` + where
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListForUser: count: %w", err)
	}

	q := `SELECT ` + tripColumns + ` FROM trips WHERE ` + where +
		` ORDER BY ` + order + ` LIMIT @limit OFFSET @offset`
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListForUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListForUser: rows: %w", err)
	}
	return trips, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip decodes one tripColumns row. The version and timestamp columns are
// authoritative and override whatever the document carries.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                domain.Trip
		doc              []byte
		version          int64
		created, updated time.Time
	)

	if err := s.Scan(&doc, &version, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	if err := json.Unmarshal(doc, &t); err != nil {
		return domain.Trip{}, fmt.Errorf("decode trip document: %w", err)
	}
	t.Version = version
	t.CreatedAt = created
	t.UpdatedAt = updated
	return t, nil
}
