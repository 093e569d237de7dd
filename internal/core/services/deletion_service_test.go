package services_test

import (
	"context"
	"testing"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portsrepo "github.com/splitsum/splitsum_app/internal/core/ports/repositories"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DeletionServiceTestSuite struct {
	suite.Suite
	mockDeletionRepo *MockDeletionRepository
	mockListRepo     *MockListRepository
	mockAuditSvc     *MockAuditService
	service          portssvc.DeletionSvcFacade
	ctx              context.Context
}

func (s *DeletionServiceTestSuite) SetupTest() {
	s.mockDeletionRepo = new(MockDeletionRepository)
	s.mockListRepo = new(MockListRepository)
	s.mockAuditSvc = new(MockAuditService)
	s.service = services.NewDeletionService(s.mockDeletionRepo, s.mockListRepo, s.mockAuditSvc, allowAllAuthorizer{})
	s.ctx = context.Background()
}

func TestDeletionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DeletionServiceTestSuite))
}

func (s *DeletionServiceTestSuite) TestRequestDeletion_SoleMemberDeletesImmediately() {
	s.mockListRepo.On("ListMemberships", s.ctx, "list-1").Return([]domain.Membership{
		{ListID: "list-1", Username: "alice", Role: domain.RoleOwner},
	}, nil)
	s.mockListRepo.On("DeleteList", s.ctx, "list-1").Return(nil)

	request, deleted, err := s.service.RequestDeletion(s.ctx, "alice", "list-1")

	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)
	assert.Nil(s.T(), request)
	s.mockListRepo.AssertExpectations(s.T())
	s.mockDeletionRepo.AssertNotCalled(s.T(), "CreateDeletionRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DeletionServiceTestSuite) TestRequestDeletion_MultiMemberStartsConsensus() {
	s.mockAuditSvc.On("Record", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	s.mockListRepo.On("ListMemberships", s.ctx, "list-1").Return([]domain.Membership{
		{ListID: "list-1", Username: "alice", Role: domain.RoleOwner},
		{ListID: "list-1", Username: "bob", Role: domain.RoleMember},
		{ListID: "list-1", Username: "cara", Role: domain.RoleMember},
	}, nil)
	s.mockDeletionRepo.On("FindPendingRequestForList", s.ctx, "list-1").
		Return(nil, apperrors.NewNotFoundError("no pending request"))

	var gotApprovals []domain.DeletionApproval
	s.mockDeletionRepo.On("CreateDeletionRequest", s.ctx, mock.AnythingOfType("domain.DeletionRequest"),
		mock.AnythingOfType("[]domain.DeletionApproval")).
		Run(func(args mock.Arguments) {
			gotApprovals = args.Get(2).([]domain.DeletionApproval)
		}).Return(nil)

	request, deleted, err := s.service.RequestDeletion(s.ctx, "alice", "list-1")

	require.NoError(s.T(), err)
	assert.False(s.T(), deleted)
	require.NotNil(s.T(), request)
	assert.Equal(s.T(), domain.DeletionPending, request.Status)
	assert.Equal(s.T(), "alice", request.RequestedBy)

	// The requester does not get an approval placeholder.
	require.Len(s.T(), gotApprovals, 2)
	voters := []string{gotApprovals[0].Username, gotApprovals[1].Username}
	assert.Contains(s.T(), voters, "bob")
	assert.Contains(s.T(), voters, "cara")
	for _, a := range gotApprovals {
		assert.False(s.T(), a.HasVoted())
	}
	s.mockListRepo.AssertNotCalled(s.T(), "DeleteList", mock.Anything, mock.Anything)
}

func (s *DeletionServiceTestSuite) TestRequestDeletion_PendingRequestConflicts() {
	s.mockListRepo.On("ListMemberships", s.ctx, "list-1").Return([]domain.Membership{
		{Username: "alice"}, {Username: "bob"},
	}, nil)
	s.mockDeletionRepo.On("FindPendingRequestForList", s.ctx, "list-1").
		Return(&domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", Status: domain.DeletionPending}, nil)

	_, _, err := s.service.RequestDeletion(s.ctx, "bob", "list-1")

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *DeletionServiceTestSuite) TestApprove_LastApprovalDestroysList() {
	s.mockAuditSvc.On("Record", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	request := &domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", RequestedBy: "alice", Status: domain.DeletionPending}
	s.mockDeletionRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.mockDeletionRepo.On("RecordVote", s.ctx, "req-1", "cara", true).
		Return(portsrepo.VoteApproved, nil)

	outcome, err := s.service.Approve(s.ctx, "cara", "req-1", true)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), portsrepo.VoteApproved, outcome)
}

func (s *DeletionServiceTestSuite) TestApprove_RejectionIsFinal() {
	s.mockAuditSvc.On("Record", s.ctx, "list-1", "bob", "deletion_rejected", "").Once()
	request := &domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", RequestedBy: "alice", Status: domain.DeletionPending}
	s.mockDeletionRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.mockDeletionRepo.On("RecordVote", s.ctx, "req-1", "bob", false).
		Return(portsrepo.VoteRejected, nil)

	outcome, err := s.service.Approve(s.ctx, "bob", "req-1", false)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), portsrepo.VoteRejected, outcome)
	s.mockAuditSvc.AssertExpectations(s.T())
}

func (s *DeletionServiceTestSuite) TestApprove_IntermediateVoteStaysPending() {
	s.mockAuditSvc.On("Record", s.ctx, "list-1", "bob", "deletion_vote", "approved").Once()
	request := &domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", RequestedBy: "alice", Status: domain.DeletionPending}
	s.mockDeletionRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.mockDeletionRepo.On("RecordVote", s.ctx, "req-1", "bob", true).
		Return(portsrepo.VotePending, nil)

	outcome, err := s.service.Approve(s.ctx, "bob", "req-1", true)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), portsrepo.VotePending, outcome)
	s.mockAuditSvc.AssertExpectations(s.T())
}

func (s *DeletionServiceTestSuite) TestApprove_TerminalRequestConflicts() {
	request := &domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", Status: domain.DeletionRejected}
	s.mockDeletionRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.mockDeletionRepo.On("RecordVote", s.ctx, "req-1", "bob", true).
		Return(portsrepo.VotePending, apperrors.NewConflictError("request is already rejected"))

	_, err := s.service.Approve(s.ctx, "bob", "req-1", true)

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *DeletionServiceTestSuite) TestApprove_NonMemberVoteNotFound() {
	request := &domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", Status: domain.DeletionPending}
	s.mockDeletionRepo.On("FindRequestByID", s.ctx, "req-1").Return(request, nil)
	s.mockDeletionRepo.On("RecordVote", s.ctx, "req-1", "mallory", true).
		Return(portsrepo.VotePending, apperrors.NewNotFoundError("no vote for mallory"))

	_, err := s.service.Approve(s.ctx, "mallory", "req-1", true)

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *DeletionServiceTestSuite) TestGetStatus_ReturnsRequestWithVotes() {
	request := &domain.DeletionRequest{RequestID: "req-1", ListID: "list-1", Status: domain.DeletionPending}
	approved := true
	approvals := []domain.DeletionApproval{
		{RequestID: "req-1", Username: "bob", Approved: &approved},
		{RequestID: "req-1", Username: "cara"},
	}
	s.mockDeletionRepo.On("FindPendingRequestForList", s.ctx, "list-1").Return(request, nil)
	s.mockDeletionRepo.On("ListApprovals", s.ctx, "req-1").Return(approvals, nil)

	got, gotApprovals, err := s.service.GetStatus(s.ctx, "alice", "list-1")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "req-1", got.RequestID)
	require.Len(s.T(), gotApprovals, 2)
	assert.True(s.T(), gotApprovals[0].HasVoted())
	assert.False(s.T(), gotApprovals[1].HasVoted())
}
