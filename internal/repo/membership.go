package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripcrew/internal/domain"
)

// MembershipRepo is the user-side mirror of trip participants.
// It is written after the trip itself, so every operation is idempotent and
// safe to repeat when a previous attempt failed half way.
type MembershipRepo interface {
	// Upsert records (or overwrites) m for the (UserID, TripID) pair.
	Upsert(ctx context.Context, m domain.Membership) error

	// Delete removes the entry for (userID, tripID). A missing entry is not an error.
	Delete(ctx context.Context, userID, tripID uuid.UUID) error

	// ListByUser returns the user's memberships, most recently joined first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Membership, error)
}

// pgMembershipRepo is the Postgres implementation of MembershipRepo.
type pgMembershipRepo struct {
	db db
}

// NewMembershipRepo constructs a MembershipRepo backed by the provided db connection.
func NewMembershipRepo(db db) MembershipRepo {
	return &pgMembershipRepo{db: db}
}

// Upsert inserts the membership or updates role, status and joined_at in place.
func (r *pgMembershipRepo) Upsert(ctx context.Context, m domain.Membership) error {
	const q = `
		INSERT INTO user_trips (user_id, trip_id, role, status, joined_at)
		VALUES (@user_id, @trip_id, @role, @status, @joined_at)
		ON CONFLICT (user_id, trip_id) DO UPDATE
		SET role      = EXCLUDED.role,
		    status    = EXCLUDED.status,
		    joined_at = EXCLUDED.joined_at`

	args := pgx.NamedArgs{
		"user_id":   m.UserID,
		"trip_id":   m.TripID,
		"role":      m.Role,
		"status":    m.Status,
		"joined_at": m.JoinedAt,
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.MembershipRepo.Upsert: %w", err)
	}
	return nil
}

// Delete removes the membership row if present.
func (r *pgMembershipRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	const q = `DELETE FROM user_trips WHERE user_id = @user_id AND trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.MembershipRepo.Delete: %w", err)
	}
	return nil
}

// ListByUser returns every membership row for userID.
func (r *pgMembershipRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Membership, error) {
	const q = `
		SELECT user_id, trip_id, role, status, joined_at
		FROM user_trips
		WHERE user_id = @user_id
		ORDER BY joined_at DESC, trip_id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.MembershipRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	out := []domain.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MembershipRepo.ListByUser: scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MembershipRepo.ListByUser: rows: %w", err)
	}
	return out, nil
}

// scanMembership maps one user_trips row, converting the pgtype UUIDs.
func scanMembership(s scanner) (domain.Membership, error) {
	var (
		m              domain.Membership
		userID, tripID pgtype.UUID
	)
	err := s.Scan(&userID, &tripID, &m.Role, &m.Status, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Membership{}, domain.ErrNotFound
		}
		return domain.Membership{}, err
	}
	m.UserID = uuid.UUID(userID.Bytes)
	m.TripID = uuid.UUID(tripID.Bytes)
	return m, nil
}
