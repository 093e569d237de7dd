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

type PgxListRepository struct {
	BaseRepository
}

// newPgxListRepository creates a new repository for expense lists and
// memberships.
func newPgxListRepository(pool *pgxpool.Pool) portsrepo.ListRepository {
	return &PgxListRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ListRepository = (*PgxListRepository)(nil)

const listColumns = `list_id, name, non_registered_participants, created_at, created_by, last_updated_at, last_updated_by`

func scanList(row pgx.Row) (*domain.List, error) {
	var l domain.List
	err := row.Scan(&l.ListID, &l.Name, &l.NonRegisteredParticipants,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgxListRepository) CreateList(ctx context.Context, list domain.List, memberships []domain.Membership, invites []domain.ShareRequest) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		insertList := `
			INSERT INTO expense_lists (` + listColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`
		_, err := tx.Exec(ctx, insertList,
			list.ListID, list.Name, list.NonRegisteredParticipants,
			list.CreatedAt, list.CreatedBy, list.LastUpdatedAt, list.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert list "+list.ListID, err)
		}
		for _, m := range memberships {
			if err := insertMembership(ctx, tx, m); err != nil {
				return err
			}
		}
		for _, inv := range invites {
			if err := insertShareRequest(ctx, tx, inv); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxListRepository) FindListByID(ctx context.Context, listID string) (*domain.List, error) {
	query := `SELECT ` + listColumns + ` FROM expense_lists WHERE list_id = $1;`
	l, err := scanList(r.Pool.QueryRow(ctx, query, listID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("list " + listID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find list "+listID, err)
	}
	return l, nil
}

func (r *PgxListRepository) ListAccessibleLists(ctx context.Context, username string) ([]domain.List, error) {
	query := `
		SELECT DISTINCT l.list_id, l.name, l.non_registered_participants,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM expense_lists l
		LEFT JOIN list_memberships m ON m.list_id = l.list_id
		WHERE l.created_by = $1 OR m.username = $1
		ORDER BY l.created_at, l.list_id;
	`
	rows, err := r.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accessible lists for "+username, err)
	}
	defer rows.Close()

	var lists []domain.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan list row", err)
		}
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate list rows", err)
	}
	return lists, nil
}

func (r *PgxListRepository) ListMemberships(ctx context.Context, listID string) ([]domain.Membership, error) {
	query := `
		SELECT list_id, username, role, joined_at
		FROM list_memberships
		WHERE list_id = $1
		ORDER BY joined_at, username;
	`
	rows, err := r.Pool.Query(ctx, query, listID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list memberships for list "+listID, err)
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ListID, &m.Username, &m.Role, &m.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate membership rows", err)
	}
	return memberships, nil
}

func (r *PgxListRepository) FindMembership(ctx context.Context, listID, username string) (*domain.Membership, error) {
	query := `
		SELECT list_id, username, role, joined_at
		FROM list_memberships
		WHERE list_id = $1 AND username = $2;
	`
	var m domain.Membership
	err := r.Pool.QueryRow(ctx, query, listID, username).Scan(&m.ListID, &m.Username, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user " + username + " is not a member of list " + listID)
		}
		return nil, apperrors.NewAppError(500, "failed to find membership", err)
	}
	return &m, nil
}

func (r *PgxListRepository) RenameList(ctx context.Context, listID, name, updatedBy string) error {
	query := `
		UPDATE expense_lists
		SET name = $2, last_updated_at = now(), last_updated_by = $3
		WHERE list_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, listID, name, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to rename list "+listID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("list " + listID + " not found")
	}
	return nil
}

func (r *PgxListRepository) DeleteList(ctx context.Context, listID string) error {
	// Memberships, share requests, deletion records, expenses, trash, audit
	// entries and outbox events all cascade via foreign keys.
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expense_lists WHERE list_id = $1;`, listID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete list "+listID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("list " + listID + " not found")
	}
	return nil
}

func (r *PgxListRepository) AddMembership(ctx context.Context, membership domain.Membership) error {
	return insertMembership(ctx, r.Pool, membership)
}

func (r *PgxListRepository) RemoveMembership(ctx context.Context, listID, username string) error {
	query := `DELETE FROM list_memberships WHERE list_id = $1 AND username = $2;`
	tag, err := r.Pool.Exec(ctx, query, listID, username)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove membership", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + username + " is not a member of list " + listID)
	}
	return nil
}

// execer is the subset of pgx shared by a pool and a transaction, so the
// membership and share request inserts can run in either.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertMembership(ctx context.Context, db execer, m domain.Membership) error {
	query := `
		INSERT INTO list_memberships (list_id, username, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := db.Exec(ctx, query, m.ListID, m.Username, m.Role, m.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("user " + m.Username + " is already a member of list " + m.ListID)
		}
		return apperrors.NewAppError(500, "failed to insert membership", err)
	}
	return nil
}
