package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/dto"
)

// listService implements the Membership Ledger: list lifecycle, registered
// membership and the share-request workflow.
type listService struct {
	BaseService
	listRepo   portsrepo.ListRepository
	shareRepo  portsrepo.ShareRequestRepository
	userRepo   portsrepo.UserRepository
	balanceSvc portssvc.BalanceSvcFacade
	auditSvc   portssvc.AuditSvcFacade
}

// NewListService creates a new list service with the provided dependencies.
func NewListService(
	listRepo portsrepo.ListRepository,
	shareRepo portsrepo.ShareRequestRepository,
	userRepo portsrepo.UserRepository,
	balanceSvc portssvc.BalanceSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.ListSvcFacade {
	return &listService{
		listRepo:   listRepo,
		shareRepo:  shareRepo,
		userRepo:   userRepo,
		balanceSvc: balanceSvc,
		auditSvc:   auditSvc,
	}
}

var _ portssvc.ListSvcFacade = (*listService)(nil)

// AuthorizeMember grants access to the list's creator and to membership
// holders; everyone else gets ErrForbidden.
func (s *listService) AuthorizeMember(ctx context.Context, username, listID string) error {
	list, err := s.listRepo.FindListByID(ctx, listID)
	if err != nil {
		return err
	}
	if list.CreatedBy == username {
		return nil
	}

	_, err = s.listRepo.FindMembership(ctx, listID, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of list",
				slog.String("user_id", username),
				slog.String("list_id", listID))
			return apperrors.ErrForbidden
		}
		return err
	}
	return nil
}

// CreateList creates the list, the creator's owner membership when requested,
// and one pending share request per invited username, all in one transaction.
func (s *listService) CreateList(ctx context.Context, creator string, req dto.CreateListRequest) (*domain.List, error) {
	nonRegistered := normalizeNames(req.NonRegisteredParticipants)
	includeCreator := req.IncludeCreator()

	if !includeCreator && len(nonRegistered) == 0 {
		return nil, fmt.Errorf("%w: list would have no participants", apperrors.ErrValidation)
	}

	now := time.Now()
	list := domain.List{
		ListID:                    uuid.NewString(),
		Name:                      req.Name,
		NonRegisteredParticipants: nonRegistered,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	var memberships []domain.Membership
	if includeCreator {
		memberships = append(memberships, domain.Membership{
			ListID:   list.ListID,
			Username: creator,
			Role:     domain.RoleOwner,
			JoinedAt: now,
		})
	}

	var invites []domain.ShareRequest
	invited := make(map[string]struct{})
	for _, username := range normalizeNames(req.InviteUsernames) {
		if username == creator {
			continue
		}
		if _, dup := invited[username]; dup {
			continue
		}
		exists, err := s.userRepo.UserExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: invited user %q has no account", apperrors.ErrNotFound, username)
		}
		invited[username] = struct{}{}
		invites = append(invites, domain.ShareRequest{
			RequestID: uuid.NewString(),
			ListID:    list.ListID,
			FromUser:  creator,
			ToUser:    username,
			Status:    domain.SharePending,
			CreatedAt: now,
		})
	}

	if err := s.listRepo.CreateList(ctx, list, memberships, invites); err != nil {
		s.LogError(ctx, err, "Failed to create list", slog.String("list_name", req.Name))
		return nil, err
	}

	s.auditSvc.Record(ctx, list.ListID, creator, "list_created", list.Name)
	s.LogInfo(ctx, "List created",
		slog.String("list_id", list.ListID),
		slog.Int("invites", len(invites)))
	return &list, nil
}

// GetList returns the list with its registered memberships.
func (s *listService) GetList(ctx context.Context, username, listID string) (*domain.List, []domain.Membership, error) {
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, nil, err
	}
	list, err := s.listRepo.FindListByID(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	memberships, err := s.listRepo.ListMemberships(ctx, listID)
	if err != nil {
		return nil, nil, err
	}
	return list, memberships, nil
}

// ListAccessibleLists returns every list the user created or belongs to.
func (s *listService) ListAccessibleLists(ctx context.Context, username string) ([]domain.List, error) {
	lists, err := s.listRepo.ListAccessibleLists(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accessible lists", slog.String("user_id", username))
		return nil, err
	}
	if lists == nil {
		return []domain.List{}, nil
	}
	return lists, nil
}

// RenameList renames the list.
func (s *listService) RenameList(ctx context.Context, username, listID, name string) (*domain.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: list name must not be empty", apperrors.ErrValidation)
	}
	if err := s.AuthorizeMember(ctx, username, listID); err != nil {
		return nil, err
	}
	if err := s.listRepo.RenameList(ctx, listID, name, username); err != nil {
		s.LogError(ctx, err, "Failed to rename list", slog.String("list_id", listID))
		return nil, err
	}
	s.auditSvc.Record(ctx, listID, username, "list_renamed", name)
	return s.listRepo.FindListByID(ctx, listID)
}

// ShareList creates a pending invitation for toUser to join the list.
func (s *listService) ShareList(ctx context.Context, fromUser, listID string, req dto.ShareListRequest) (*domain.ShareRequest, error) {
	if err := s.AuthorizeMember(ctx, fromUser, listID); err != nil {
		return nil, err
	}
	if req.ToUser == fromUser {
		return nil, fmt.Errorf("%w: cannot share a list with yourself", apperrors.ErrValidation)
	}

	exists, err := s.userRepo.UserExists(ctx, req.ToUser)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %q has no account", apperrors.ErrNotFound, req.ToUser)
	}

	_, err = s.listRepo.FindMembership(ctx, listID, req.ToUser)
	if err == nil {
		return nil, apperrors.NewConflictError("user " + req.ToUser + " is already a member of the list")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	request := domain.ShareRequest{
		RequestID: uuid.NewString(),
		ListID:    listID,
		FromUser:  fromUser,
		ToUser:    req.ToUser,
		Status:    domain.SharePending,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	// The repository enforces the single-pending invariant atomically; a
	// concurrent duplicate comes back as a conflict.
	if err := s.shareRepo.CreateShareRequest(ctx, request); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to create share request", slog.String("list_id", listID))
		}
		return nil, err
	}

	s.auditSvc.Record(ctx, listID, fromUser, "share_requested", req.ToUser)
	s.LogInfo(ctx, "Share request created",
		slog.String("list_id", listID),
		slog.String("to_user", req.ToUser))
	return &request, nil
}

// RespondToShareRequest flips a pending request to a terminal state. Accepting
// inserts the membership and triggers a balance recompute and fan-out to every
// member, the new one included; balances must be recomputed from expenses, not
// served from a cache.
func (s *listService) RespondToShareRequest(ctx context.Context, username, requestID string, accept bool) (*domain.ShareRequest, error) {
	request, err := s.shareRepo.FindShareRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUser != username {
		return nil, apperrors.ErrForbidden
	}
	if request.Status != domain.SharePending {
		return nil, apperrors.NewConflictError("share request is already " + string(request.Status))
	}

	status := domain.ShareRejected
	var membership *domain.Membership
	if accept {
		status = domain.ShareAccepted
		membership = &domain.Membership{
			ListID:   request.ListID,
			Username: username,
			Role:     domain.RoleMember,
			JoinedAt: time.Now(),
		}
	}

	if err := s.shareRepo.RespondShareRequest(ctx, requestID, status, membership); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to respond to share request", slog.String("request_id", requestID))
		}
		return nil, err
	}
	request.Status = status

	if accept {
		s.auditSvc.Record(ctx, request.ListID, username, "share_accepted", request.FromUser)
		if err := s.balanceSvc.EnqueueListUpdate(ctx, request.ListID); err != nil {
			s.LogError(ctx, err, "Failed to enqueue balance update after share accept",
				slog.String("list_id", request.ListID))
		}
	} else {
		s.auditSvc.Record(ctx, request.ListID, username, "share_rejected", request.FromUser)
	}

	return request, nil
}

// ListShareRequestsForUser returns invitations addressed to the user.
func (s *listService) ListShareRequestsForUser(ctx context.Context, username string, onlyPending bool) ([]domain.ShareRequest, error) {
	requests, err := s.shareRepo.ListShareRequestsForUser(ctx, username, onlyPending)
	if err != nil {
		s.LogError(ctx, err, "Failed to list share requests", slog.String("user_id", username))
		return nil, err
	}
	return requests, nil
}

// ListSentShareRequests returns invitations the user has sent.
func (s *listService) ListSentShareRequests(ctx context.Context, username string) ([]domain.ShareRequest, error) {
	requests, err := s.shareRepo.ListSentShareRequests(ctx, username)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sent share requests", slog.String("user_id", username))
		return nil, err
	}
	return requests, nil
}

// RemoveParticipant deletes the membership record. Past expenses are not
// rewritten.
func (s *listService) RemoveParticipant(ctx context.Context, actingUser, listID, username string) error {
	if err := s.AuthorizeMember(ctx, actingUser, listID); err != nil {
		return err
	}
	if err := s.listRepo.RemoveMembership(ctx, listID, username); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to remove membership", slog.String("list_id", listID))
		}
		return err
	}

	s.auditSvc.Record(ctx, listID, actingUser, "participant_removed", username)
	if err := s.balanceSvc.EnqueueListUpdate(ctx, listID); err != nil {
		s.LogError(ctx, err, "Failed to enqueue balance update after member removal",
			slog.String("list_id", listID))
	}
	return nil
}

// normalizeNames trims entries and drops empties, preserving order.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
