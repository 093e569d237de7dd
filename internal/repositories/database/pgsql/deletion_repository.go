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

type PgxDeletionRepository struct {
	BaseRepository
}

// newPgxDeletionRepository creates a new repository for deletion consensus
// records.
func newPgxDeletionRepository(pool *pgxpool.Pool) portsrepo.DeletionRepository {
	return &PgxDeletionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DeletionRepository = (*PgxDeletionRepository)(nil)

func (r *PgxDeletionRepository) CreateDeletionRequest(ctx context.Context, request domain.DeletionRequest, approvals []domain.DeletionApproval) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		insertRequest := `
			INSERT INTO list_deletion_requests (request_id, list_id, requested_by, status, created_at)
			VALUES ($1, $2, $3, $4, $5);
		`
		_, err := tx.Exec(ctx, insertRequest,
			request.RequestID, request.ListID, request.RequestedBy, request.Status, request.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("a pending deletion request for list " + request.ListID + " already exists")
			}
			return apperrors.NewAppError(500, "failed to insert deletion request", err)
		}
		insertApproval := `
			INSERT INTO list_deletion_approvals (approval_id, request_id, username, approved, voted_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, a := range approvals {
			_, err := tx.Exec(ctx, insertApproval,
				a.ApprovalID, a.RequestID, a.Username, a.Approved, a.VotedAt, a.CreatedAt)
			if err != nil {
				return apperrors.NewAppError(500, "failed to insert deletion approval", err)
			}
		}
		return nil
	})
}

func (r *PgxDeletionRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.DeletionRequest, error) {
	query := `
		SELECT request_id, list_id, requested_by, status, created_at
		FROM list_deletion_requests
		WHERE request_id = $1;
	`
	var req domain.DeletionRequest
	err := r.Pool.QueryRow(ctx, query, requestID).Scan(
		&req.RequestID, &req.ListID, &req.RequestedBy, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("deletion request " + requestID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find deletion request "+requestID, err)
	}
	return &req, nil
}

func (r *PgxDeletionRepository) FindPendingRequestForList(ctx context.Context, listID string) (*domain.DeletionRequest, error) {
	query := `
		SELECT request_id, list_id, requested_by, status, created_at
		FROM list_deletion_requests
		WHERE list_id = $1 AND status = $2;
	`
	var req domain.DeletionRequest
	err := r.Pool.QueryRow(ctx, query, listID, domain.DeletionPending).Scan(
		&req.RequestID, &req.ListID, &req.RequestedBy, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no pending deletion request for list " + listID)
		}
		return nil, apperrors.NewAppError(500, "failed to find pending deletion request for list "+listID, err)
	}
	return &req, nil
}

func (r *PgxDeletionRepository) ListApprovals(ctx context.Context, requestID string) ([]domain.DeletionApproval, error) {
	query := `
		SELECT approval_id, request_id, username, approved, voted_at, created_at
		FROM list_deletion_approvals
		WHERE request_id = $1
		ORDER BY username;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list deletion approvals", err)
	}
	defer rows.Close()

	var approvals []domain.DeletionApproval
	for rows.Next() {
		var a domain.DeletionApproval
		if err := rows.Scan(&a.ApprovalID, &a.RequestID, &a.Username, &a.Approved, &a.VotedAt, &a.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan deletion approval row", err)
		}
		approvals = append(approvals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate deletion approval rows", err)
	}
	return approvals, nil
}

// RecordVote locks the request row so concurrent voters serialize; only one
// transaction can observe the last missing approval and destroy the list.
func (r *PgxDeletionRepository) RecordVote(ctx context.Context, requestID, username string, approved bool) (portsrepo.VoteOutcome, error) {
	outcome := portsrepo.VotePending
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		lock := `
			SELECT list_id, status
			FROM list_deletion_requests
			WHERE request_id = $1
			FOR UPDATE;
		`
		var listID string
		var status domain.DeletionStatus
		if err := tx.QueryRow(ctx, lock, requestID).Scan(&listID, &status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("deletion request " + requestID + " not found")
			}
			return apperrors.NewAppError(500, "failed to lock deletion request "+requestID, err)
		}
		if status != domain.DeletionPending {
			return apperrors.NewConflictError("deletion request " + requestID + " is already " + string(status))
		}

		vote := `
			UPDATE list_deletion_approvals
			SET approved = $3, voted_at = now()
			WHERE request_id = $1 AND username = $2;
		`
		tag, err := tx.Exec(ctx, vote, requestID, username, approved)
		if err != nil {
			return apperrors.NewAppError(500, "failed to record deletion vote", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("user " + username + " has no vote on deletion request " + requestID)
		}

		if !approved {
			reject := `UPDATE list_deletion_requests SET status = $2 WHERE request_id = $1;`
			if _, err := tx.Exec(ctx, reject, requestID, domain.DeletionRejected); err != nil {
				return apperrors.NewAppError(500, "failed to reject deletion request "+requestID, err)
			}
			outcome = portsrepo.VoteRejected
			return nil
		}

		remaining := `
			SELECT count(*)
			FROM list_deletion_approvals
			WHERE request_id = $1 AND approved IS NOT true;
		`
		var missing int
		if err := tx.QueryRow(ctx, remaining, requestID).Scan(&missing); err != nil {
			return apperrors.NewAppError(500, "failed to count missing approvals", err)
		}
		if missing > 0 {
			return nil
		}

		// Unanimous. The list cascade also removes the request and its
		// approvals, which is fine: approval is terminal either way.
		if _, err := tx.Exec(ctx, `DELETE FROM expense_lists WHERE list_id = $1;`, listID); err != nil {
			return apperrors.NewAppError(500, "failed to delete approved list "+listID, err)
		}
		outcome = portsrepo.VoteApproved
		return nil
	})
	if err != nil {
		return portsrepo.VotePending, err
	}
	return outcome, nil
}
