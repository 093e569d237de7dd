package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/core/services"
	"github.com/splitsum/splitsum_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockBalanceSvc  *MockBalanceService
	mockAuditSvc    *MockAuditService
	service         portssvc.ExpenseSvcFacade
	ctx             context.Context
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.mockExpenseRepo = new(MockExpenseRepository)
	s.mockBalanceSvc = new(MockBalanceService)
	s.mockAuditSvc = new(MockAuditService)
	s.service = services.NewExpenseService(s.mockExpenseRepo, s.mockBalanceSvc, s.mockAuditSvc, allowAllAuthorizer{})
	s.ctx = context.Background()
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func validCreateRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		ListID:      "list-1",
		Payer:       dto.ParticipantPayload{Kind: "registered", Name: "alice"},
		Amount:      decimal.RequireFromString("42.50"),
		Description: "groceries",
		Category:    "food",
		Date:        "2026-08-01",
		Participants: []dto.ParticipantPayload{
			{Kind: "registered", Name: "alice"},
			{Kind: "nonRegistered", Name: "cara"},
		},
	}
}

func (s *ExpenseServiceTestSuite) allowMutationSideEffects() {
	s.mockAuditSvc.On("Record", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	s.mockBalanceSvc.On("EnqueueListUpdate", s.ctx, mock.Anything).Return(nil).Maybe()
}

func (s *ExpenseServiceTestSuite) TestAddExpense_PersistsAndNotifies() {
	s.mockAuditSvc.On("Record", s.ctx, "list-1", "alice", "expense_added", "groceries").Once()
	s.mockBalanceSvc.On("EnqueueListUpdate", s.ctx, "list-1").Return(nil).Once()

	var saved domain.Expense
	s.mockExpenseRepo.On("SaveExpense", s.ctx, mock.AnythingOfType("domain.Expense")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Expense)
		}).Return(nil)

	expense, err := s.service.AddExpense(s.ctx, "alice", validCreateRequest())

	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), expense.ExpenseID)
	assert.Equal(s.T(), domain.Registered("alice"), saved.Payer)
	assert.True(s.T(), saved.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(s.T(), "2026-08-01", saved.Date.Format("2006-01-02"))
	require.Len(s.T(), saved.Participants, 2)
	assert.Equal(s.T(), domain.NonRegistered("cara"), saved.Participants[1])
	assert.Equal(s.T(), "alice", saved.CreatedBy)
	s.mockBalanceSvc.AssertExpectations(s.T())
	s.mockAuditSvc.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestAddExpense_MalformedPayerRejected() {
	req := validCreateRequest()
	req.Payer = dto.ParticipantPayload{Kind: "someone", Name: "alice"}

	_, err := s.service.AddExpense(s.ctx, "alice", req)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestAddExpense_NonPositiveAmountRejected() {
	req := validCreateRequest()
	req.Amount = decimal.Zero

	_, err := s.service.AddExpense(s.ctx, "alice", req)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestAddExpense_EmptyParticipantsRejected() {
	req := validCreateRequest()
	req.Participants = nil

	_, err := s.service.AddExpense(s.ctx, "alice", req)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestAddExpense_DuplicateParticipantsRejected() {
	req := validCreateRequest()
	req.Participants = []dto.ParticipantPayload{
		{Kind: "registered", Name: "alice"},
		{Kind: "registered", Name: "alice"},
	}

	_, err := s.service.AddExpense(s.ctx, "alice", req)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_MovesToTrash() {
	s.allowMutationSideEffects()
	existing := &domain.Expense{
		ExpenseID:    "exp-1",
		ListID:       "list-1",
		Payer:        domain.Registered("alice"),
		Amount:       decimal.RequireFromString("10"),
		Description:  "coffee",
		Participants: []domain.Participant{domain.Registered("alice"), domain.Registered("bob")},
	}
	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, "exp-1").Return(existing, nil)

	var trash domain.TrashedExpense
	s.mockExpenseRepo.On("SoftDeleteExpense", s.ctx, "exp-1", mock.AnythingOfType("domain.TrashedExpense")).
		Run(func(args mock.Arguments) {
			trash = args.Get(2).(domain.TrashedExpense)
		}).Return(nil)

	err := s.service.DeleteExpense(s.ctx, "bob", "exp-1")

	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), trash.TrashID)
	assert.Equal(s.T(), "exp-1", trash.OriginalID)
	assert.Equal(s.T(), "bob", trash.DeletedBy)
	assert.Equal(s.T(), existing.Participants, trash.Participants)
}

func (s *ExpenseServiceTestSuite) TestRestoreExpense_CreatesFreshExpense() {
	s.allowMutationSideEffects()
	trashed := &domain.TrashedExpense{
		TrashID:      "trash-1",
		OriginalID:   "exp-1",
		ListID:       "list-1",
		Payer:        domain.Registered("alice"),
		Amount:       decimal.RequireFromString("10"),
		Participants: []domain.Participant{domain.Registered("alice")},
		DeletedBy:    "alice",
	}
	s.mockExpenseRepo.On("FindTrashedByID", s.ctx, "trash-1").Return(trashed, nil)

	var restored domain.Expense
	s.mockExpenseRepo.On("RestoreExpense", s.ctx, "trash-1", mock.AnythingOfType("domain.Expense")).
		Run(func(args mock.Arguments) {
			restored = args.Get(2).(domain.Expense)
		}).Return(nil)

	got, err := s.service.RestoreExpense(s.ctx, "alice", "trash-1")

	require.NoError(s.T(), err)
	// Restoration mints a fresh id; the original id survives only on the
	// trash record.
	assert.NotEqual(s.T(), "exp-1", got.ExpenseID)
	assert.Equal(s.T(), restored.ExpenseID, got.ExpenseID)
	assert.Equal(s.T(), "list-1", restored.ListID)
}

func (s *ExpenseServiceTestSuite) TestListExpensesByDate_InvertedRangeRejected() {
	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.service.ListExpensesByDate(s.ctx, "alice", "list-1", from, to)

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockExpenseRepo.AssertNotCalled(s.T(), "ListExpensesByDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestUpdateExpense_ReplacesFields() {
	s.allowMutationSideEffects()
	existing := &domain.Expense{
		ExpenseID:    "exp-1",
		ListID:       "list-1",
		Payer:        domain.Registered("alice"),
		Amount:       decimal.RequireFromString("10"),
		Participants: []domain.Participant{domain.Registered("alice")},
	}
	s.mockExpenseRepo.On("FindExpenseByID", s.ctx, "exp-1").Return(existing, nil)

	var updated domain.Expense
	s.mockExpenseRepo.On("UpdateExpense", s.ctx, mock.AnythingOfType("domain.Expense")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Expense)
		}).Return(nil)

	req := dto.UpdateExpenseRequest{
		Payer:  dto.ParticipantPayload{Kind: "registered", Name: "bob"},
		Amount: decimal.RequireFromString("20"),
		Participants: []dto.ParticipantPayload{
			{Kind: "registered", Name: "alice"},
			{Kind: "registered", Name: "bob"},
		},
	}
	got, err := s.service.UpdateExpense(s.ctx, "bob", "exp-1", req)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "exp-1", got.ExpenseID)
	assert.Equal(s.T(), domain.Registered("bob"), updated.Payer)
	assert.True(s.T(), updated.Amount.Equal(decimal.RequireFromString("20")))
	assert.Equal(s.T(), "bob", updated.LastUpdatedBy)
	require.Len(s.T(), updated.Participants, 2)
}
