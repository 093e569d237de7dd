package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
)

type PgxShareRequestRepository struct {
	BaseRepository
}

// newPgxShareRequestRepository creates a new repository for list invitations.
func newPgxShareRequestRepository(pool *pgxpool.Pool) portsrepo.ShareRequestRepository {
	return &PgxShareRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ShareRequestRepository = (*PgxShareRequestRepository)(nil)

const shareRequestColumns = `r.request_id, r.list_id, l.name, r.from_user, r.to_user, r.status, r.message, r.created_at`

func scanShareRequest(row pgx.Row) (*domain.ShareRequest, error) {
	var sr domain.ShareRequest
	err := row.Scan(&sr.RequestID, &sr.ListID, &sr.ListName,
		&sr.FromUser, &sr.ToUser, &sr.Status, &sr.Message, &sr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *PgxShareRequestRepository) CreateShareRequest(ctx context.Context, request domain.ShareRequest) error {
	return insertShareRequest(ctx, r.Pool, request)
}

// insertShareRequest maps the partial unique index on pending (list_id,
// to_user) pairs to a conflict error.
func insertShareRequest(ctx context.Context, db execer, request domain.ShareRequest) error {
	query := `
		INSERT INTO list_share_requests (request_id, list_id, from_user, to_user, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := db.Exec(ctx, query,
		request.RequestID, request.ListID, request.FromUser, request.ToUser,
		request.Status, request.Message, request.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("a pending share request for this list and user already exists")
		}
		return apperrors.NewAppError(500, "failed to insert share request", err)
	}
	return nil
}

func (r *PgxShareRequestRepository) FindShareRequestByID(ctx context.Context, requestID string) (*domain.ShareRequest, error) {
	query := `
		SELECT ` + shareRequestColumns + `
		FROM list_share_requests r
		JOIN expense_lists l ON l.list_id = r.list_id
		WHERE r.request_id = $1;
	`
	sr, err := scanShareRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("share request " + requestID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find share request "+requestID, err)
	}
	return sr, nil
}

func (r *PgxShareRequestRepository) RespondShareRequest(ctx context.Context, requestID string, status domain.ShareRequestStatus, membership *domain.Membership) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		// Flip only from pending so concurrent responses cannot both win.
		update := `
			UPDATE list_share_requests
			SET status = $2
			WHERE request_id = $1 AND status = $3;
		`
		tag, err := tx.Exec(ctx, update, requestID, status, domain.SharePending)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update share request "+requestID, err)
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			check := `SELECT EXISTS (SELECT 1 FROM list_share_requests WHERE request_id = $1);`
			if err := tx.QueryRow(ctx, check, requestID).Scan(&exists); err != nil {
				return apperrors.NewAppError(500, "failed to check share request "+requestID, err)
			}
			if !exists {
				return apperrors.NewNotFoundError("share request " + requestID + " not found")
			}
			return apperrors.NewConflictError("share request " + requestID + " has already been responded to")
		}
		if membership != nil {
			if err := insertMembership(ctx, tx, *membership); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxShareRequestRepository) ListShareRequestsForUser(ctx context.Context, toUser string, onlyPending bool) ([]domain.ShareRequest, error) {
	query := `
		SELECT ` + shareRequestColumns + `
		FROM list_share_requests r
		JOIN expense_lists l ON l.list_id = r.list_id
		WHERE r.to_user = $1 AND ($2 = false OR r.status = $3)
		ORDER BY r.created_at DESC;
	`
	return r.queryShareRequests(ctx, query, toUser, onlyPending, domain.SharePending)
}

func (r *PgxShareRequestRepository) ListSentShareRequests(ctx context.Context, fromUser string) ([]domain.ShareRequest, error) {
	query := `
		SELECT ` + shareRequestColumns + `
		FROM list_share_requests r
		JOIN expense_lists l ON l.list_id = r.list_id
		WHERE r.from_user = $1
		ORDER BY r.created_at DESC;
	`
	return r.queryShareRequests(ctx, query, fromUser)
}

func (r *PgxShareRequestRepository) queryShareRequests(ctx context.Context, query string, args ...any) ([]domain.ShareRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list share requests", err)
	}
	defer rows.Close()

	var requests []domain.ShareRequest
	for rows.Next() {
		sr, err := scanShareRequest(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan share request row", err)
		}
		requests = append(requests, *sr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate share request rows", err)
	}
	return requests, nil
}
