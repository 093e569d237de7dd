package services_test

import (
	"context"
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByList(ctx context.Context, listID string) ([]domain.Expense, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByDate(ctx context.Context, listID string, from, to time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, listID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) SoftDeleteExpense(ctx context.Context, expenseID string, trash domain.TrashedExpense) error {
	args := m.Called(ctx, expenseID, trash)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindTrashedByID(ctx context.Context, trashID string) (*domain.TrashedExpense, error) {
	args := m.Called(ctx, trashID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrashedExpense), args.Error(1)
}

func (m *MockExpenseRepository) RestoreExpense(ctx context.Context, trashID string, restored domain.Expense) error {
	args := m.Called(ctx, trashID, restored)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListTrashedByUser(ctx context.Context, username string) ([]domain.TrashedExpense, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrashedExpense), args.Error(1)
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

// --- Mock ListRepository ---

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) FindListByID(ctx context.Context, listID string) (*domain.List, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.List), args.Error(1)
}

func (m *MockListRepository) ListAccessibleLists(ctx context.Context, username string) ([]domain.List, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.List), args.Error(1)
}

func (m *MockListRepository) ListMemberships(ctx context.Context, listID string) ([]domain.Membership, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockListRepository) FindMembership(ctx context.Context, listID, username string) (*domain.Membership, error) {
	args := m.Called(ctx, listID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockListRepository) CreateList(ctx context.Context, list domain.List, memberships []domain.Membership, invites []domain.ShareRequest) error {
	args := m.Called(ctx, list, memberships, invites)
	return args.Error(0)
}

func (m *MockListRepository) RenameList(ctx context.Context, listID, name, updatedBy string) error {
	args := m.Called(ctx, listID, name, updatedBy)
	return args.Error(0)
}

func (m *MockListRepository) DeleteList(ctx context.Context, listID string) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

func (m *MockListRepository) AddMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockListRepository) RemoveMembership(ctx context.Context, listID, username string) error {
	args := m.Called(ctx, listID, username)
	return args.Error(0)
}

var _ portsrepo.ListRepository = (*MockListRepository)(nil)

// --- Mock ShareRequestRepository ---

type MockShareRequestRepository struct {
	mock.Mock
}

func (m *MockShareRequestRepository) CreateShareRequest(ctx context.Context, request domain.ShareRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockShareRequestRepository) FindShareRequestByID(ctx context.Context, requestID string) (*domain.ShareRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareRequest), args.Error(1)
}

func (m *MockShareRequestRepository) RespondShareRequest(ctx context.Context, requestID string, status domain.ShareRequestStatus, membership *domain.Membership) error {
	args := m.Called(ctx, requestID, status, membership)
	return args.Error(0)
}

func (m *MockShareRequestRepository) ListShareRequestsForUser(ctx context.Context, toUser string, onlyPending bool) ([]domain.ShareRequest, error) {
	args := m.Called(ctx, toUser, onlyPending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareRequest), args.Error(1)
}

func (m *MockShareRequestRepository) ListSentShareRequests(ctx context.Context, fromUser string) ([]domain.ShareRequest, error) {
	args := m.Called(ctx, fromUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShareRequest), args.Error(1)
}

var _ portsrepo.ShareRequestRepository = (*MockShareRequestRepository)(nil)

// --- Mock DeletionRepository ---

type MockDeletionRepository struct {
	mock.Mock
}

func (m *MockDeletionRepository) CreateDeletionRequest(ctx context.Context, request domain.DeletionRequest, approvals []domain.DeletionApproval) error {
	args := m.Called(ctx, request, approvals)
	return args.Error(0)
}

func (m *MockDeletionRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.DeletionRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletionRequest), args.Error(1)
}

func (m *MockDeletionRepository) FindPendingRequestForList(ctx context.Context, listID string) (*domain.DeletionRequest, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletionRequest), args.Error(1)
}

func (m *MockDeletionRepository) ListApprovals(ctx context.Context, requestID string) ([]domain.DeletionApproval, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeletionApproval), args.Error(1)
}

func (m *MockDeletionRepository) RecordVote(ctx context.Context, requestID, username string, approved bool) (portsrepo.VoteOutcome, error) {
	args := m.Called(ctx, requestID, username, approved)
	return args.Get(0).(portsrepo.VoteOutcome), args.Error(1)
}

var _ portsrepo.DeletionRepository = (*MockDeletionRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UserExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock OutboxRepository ---

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) EnqueueEvents(ctx context.Context, events []domain.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPendingEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, eventID string, attempts int, dead bool) error {
	args := m.Called(ctx, eventID, attempts, dead)
	return args.Error(0)
}

var _ portsrepo.OutboxRepository = (*MockOutboxRepository)(nil)

// --- Mock AuditSvcFacade ---

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, listID, username, action, details string) {
	m.Called(ctx, listID, username, action, details)
}

func (m *MockAuditService) ListForList(ctx context.Context, username, listID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, username, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Mock BalanceSvcFacade ---

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ComputeForList(ctx context.Context, username, listID string) (*domain.BalanceResult, error) {
	args := m.Called(ctx, username, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceResult), args.Error(1)
}

func (m *MockBalanceService) ComputeForUser(ctx context.Context, username string) (*domain.BalanceResult, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceResult), args.Error(1)
}

func (m *MockBalanceService) EnqueueListUpdate(ctx context.Context, listID string) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Stub authorizer ---

// allowAllAuthorizer grants every membership check.
type allowAllAuthorizer struct{}

func (allowAllAuthorizer) AuthorizeMember(ctx context.Context, username, listID string) error {
	return nil
}

var _ portssvc.ListAuthorizerSvc = allowAllAuthorizer{}
