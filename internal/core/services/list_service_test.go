package services_test

import (
	"context"
	"testing"

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

type ListServiceTestSuite struct {
	suite.Suite
	mockListRepo    *MockListRepository
	mockShareRepo   *MockShareRequestRepository
	mockUserRepo    *MockUserRepository
	mockBalanceSvc  *MockBalanceService
	mockAuditSvc    *MockAuditService
	service         portssvc.ListSvcFacade
	ctx             context.Context
}

func (s *ListServiceTestSuite) SetupTest() {
	s.mockListRepo = new(MockListRepository)
	s.mockShareRepo = new(MockShareRequestRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockBalanceSvc = new(MockBalanceService)
	s.mockAuditSvc = new(MockAuditService)
	s.service = services.NewListService(s.mockListRepo, s.mockShareRepo, s.mockUserRepo, s.mockBalanceSvc, s.mockAuditSvc)
	s.ctx = context.Background()
}

func TestListServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ListServiceTestSuite))
}

func (s *ListServiceTestSuite) expectAudit() {
	s.mockAuditSvc.On("Record", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (s *ListServiceTestSuite) TestCreateList_CreatorMembershipAndInvites() {
	s.expectAudit()
	s.mockUserRepo.On("UserExists", s.ctx, "bob").Return(true, nil)

	var gotList domain.List
	var gotMemberships []domain.Membership
	var gotInvites []domain.ShareRequest
	s.mockListRepo.On("CreateList", s.ctx, mock.AnythingOfType("domain.List"),
		mock.AnythingOfType("[]domain.Membership"), mock.AnythingOfType("[]domain.ShareRequest")).
		Run(func(args mock.Arguments) {
			gotList = args.Get(1).(domain.List)
			gotMemberships = args.Get(2).([]domain.Membership)
			gotInvites = args.Get(3).([]domain.ShareRequest)
		}).Return(nil)

	list, err := s.service.CreateList(s.ctx, "alice", dto.CreateListRequest{
		Name:                      "Trip",
		NonRegisteredParticipants: []string{" cara ", ""},
		InviteUsernames:           []string{"bob", "bob", "alice"},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Trip", list.Name)
	assert.Equal(s.T(), []string{"cara"}, gotList.NonRegisteredParticipants)

	require.Len(s.T(), gotMemberships, 1)
	assert.Equal(s.T(), "alice", gotMemberships[0].Username)
	assert.Equal(s.T(), domain.RoleOwner, gotMemberships[0].Role)

	// Duplicate and self invites collapse to one pending request for bob.
	require.Len(s.T(), gotInvites, 1)
	assert.Equal(s.T(), "bob", gotInvites[0].ToUser)
	assert.Equal(s.T(), domain.SharePending, gotInvites[0].Status)
}

func (s *ListServiceTestSuite) TestCreateList_NoParticipantsRejected() {
	noCreator := false
	_, err := s.service.CreateList(s.ctx, "alice", dto.CreateListRequest{
		Name:                   "Empty",
		IncludeCreatorAsMember: &noCreator,
	})

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockListRepo.AssertNotCalled(s.T(), "CreateList", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ListServiceTestSuite) TestCreateList_UnknownInviteeRejected() {
	s.mockUserRepo.On("UserExists", s.ctx, "ghost").Return(false, nil)

	_, err := s.service.CreateList(s.ctx, "alice", dto.CreateListRequest{
		Name:            "Trip",
		InviteUsernames: []string{"ghost"},
	})

	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *ListServiceTestSuite) TestAuthorizeMember_CreatorAndMemberAllowed() {
	list := &domain.List{ListID: "list-1", AuditFields: domain.AuditFields{CreatedBy: "alice"}}
	s.mockListRepo.On("FindListByID", s.ctx, "list-1").Return(list, nil)
	s.mockListRepo.On("FindMembership", s.ctx, "list-1", "bob").
		Return(&domain.Membership{ListID: "list-1", Username: "bob"}, nil)
	s.mockListRepo.On("FindMembership", s.ctx, "list-1", "mallory").
		Return(nil, apperrors.NewNotFoundError("not a member"))

	assert.NoError(s.T(), s.service.AuthorizeMember(s.ctx, "alice", "list-1"))
	assert.NoError(s.T(), s.service.AuthorizeMember(s.ctx, "bob", "list-1"))
	assert.ErrorIs(s.T(), s.service.AuthorizeMember(s.ctx, "mallory", "list-1"), apperrors.ErrForbidden)
}

func (s *ListServiceTestSuite) TestShareList_SelfShareRejected() {
	list := &domain.List{ListID: "list-1", AuditFields: domain.AuditFields{CreatedBy: "alice"}}
	s.mockListRepo.On("FindListByID", s.ctx, "list-1").Return(list, nil)

	_, err := s.service.ShareList(s.ctx, "alice", "list-1", dto.ShareListRequest{ToUser: "alice"})

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *ListServiceTestSuite) TestShareList_ExistingMemberRejected() {
	list := &domain.List{ListID: "list-1", AuditFields: domain.AuditFields{CreatedBy: "alice"}}
	s.mockListRepo.On("FindListByID", s.ctx, "list-1").Return(list, nil)
	s.mockUserRepo.On("UserExists", s.ctx, "bob").Return(true, nil)
	s.mockListRepo.On("FindMembership", s.ctx, "list-1", "bob").
		Return(&domain.Membership{ListID: "list-1", Username: "bob"}, nil)

	_, err := s.service.ShareList(s.ctx, "alice", "list-1", dto.ShareListRequest{ToUser: "bob"})

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
	s.mockShareRepo.AssertNotCalled(s.T(), "CreateShareRequest", mock.Anything, mock.Anything)
}

func (s *ListServiceTestSuite) TestShareList_DuplicatePendingConflict() {
	s.expectAudit()
	list := &domain.List{ListID: "list-1", AuditFields: domain.AuditFields{CreatedBy: "alice"}}
	s.mockListRepo.On("FindListByID", s.ctx, "list-1").Return(list, nil)
	s.mockUserRepo.On("UserExists", s.ctx, "bob").Return(true, nil)
	s.mockListRepo.On("FindMembership", s.ctx, "list-1", "bob").
		Return(nil, apperrors.NewNotFoundError("not a member"))
	s.mockShareRepo.On("CreateShareRequest", s.ctx, mock.AnythingOfType("domain.ShareRequest")).
		Return(apperrors.NewConflictError("pending request exists"))

	_, err := s.service.ShareList(s.ctx, "alice", "list-1", dto.ShareListRequest{ToUser: "bob"})

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *ListServiceTestSuite) TestRespondToShareRequest_WrongUserForbidden() {
	request := &domain.ShareRequest{RequestID: "req-1", ListID: "list-1", ToUser: "bob", Status: domain.SharePending}
	s.mockShareRepo.On("FindShareRequestByID", s.ctx, "req-1").Return(request, nil)

	_, err := s.service.RespondToShareRequest(s.ctx, "mallory", "req-1", true)

	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
}

func (s *ListServiceTestSuite) TestRespondToShareRequest_TerminalIsConflict() {
	request := &domain.ShareRequest{RequestID: "req-1", ListID: "list-1", ToUser: "bob", Status: domain.ShareAccepted}
	s.mockShareRepo.On("FindShareRequestByID", s.ctx, "req-1").Return(request, nil)

	_, err := s.service.RespondToShareRequest(s.ctx, "bob", "req-1", false)

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
	s.mockShareRepo.AssertNotCalled(s.T(), "RespondShareRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ListServiceTestSuite) TestRespondToShareRequest_AcceptAddsMembershipAndNotifies() {
	s.expectAudit()
	request := &domain.ShareRequest{RequestID: "req-1", ListID: "list-1", FromUser: "alice", ToUser: "bob", Status: domain.SharePending}
	s.mockShareRepo.On("FindShareRequestByID", s.ctx, "req-1").Return(request, nil)

	var gotMembership *domain.Membership
	s.mockShareRepo.On("RespondShareRequest", s.ctx, "req-1", domain.ShareAccepted, mock.AnythingOfType("*domain.Membership")).
		Run(func(args mock.Arguments) {
			gotMembership = args.Get(3).(*domain.Membership)
		}).Return(nil)
	s.mockBalanceSvc.On("EnqueueListUpdate", s.ctx, "list-1").Return(nil)

	updated, err := s.service.RespondToShareRequest(s.ctx, "bob", "req-1", true)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.ShareAccepted, updated.Status)
	require.NotNil(s.T(), gotMembership)
	assert.Equal(s.T(), "bob", gotMembership.Username)
	assert.Equal(s.T(), domain.RoleMember, gotMembership.Role)
	s.mockBalanceSvc.AssertExpectations(s.T())
}

func (s *ListServiceTestSuite) TestRespondToShareRequest_RejectSkipsMembership() {
	s.expectAudit()
	request := &domain.ShareRequest{RequestID: "req-1", ListID: "list-1", ToUser: "bob", Status: domain.SharePending}
	s.mockShareRepo.On("FindShareRequestByID", s.ctx, "req-1").Return(request, nil)
	s.mockShareRepo.On("RespondShareRequest", s.ctx, "req-1", domain.ShareRejected, (*domain.Membership)(nil)).Return(nil)

	updated, err := s.service.RespondToShareRequest(s.ctx, "bob", "req-1", false)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.ShareRejected, updated.Status)
	s.mockBalanceSvc.AssertNotCalled(s.T(), "EnqueueListUpdate", mock.Anything, mock.Anything)
}

func (s *ListServiceTestSuite) TestRemoveParticipant_NotifiesMembers() {
	s.expectAudit()
	list := &domain.List{ListID: "list-1", AuditFields: domain.AuditFields{CreatedBy: "alice"}}
	s.mockListRepo.On("FindListByID", s.ctx, "list-1").Return(list, nil)
	s.mockListRepo.On("RemoveMembership", s.ctx, "list-1", "bob").Return(nil)
	s.mockBalanceSvc.On("EnqueueListUpdate", s.ctx, "list-1").Return(nil)

	err := s.service.RemoveParticipant(s.ctx, "alice", "list-1", "bob")

	require.NoError(s.T(), err)
	s.mockBalanceSvc.AssertExpectations(s.T())
}

func (s *ListServiceTestSuite) TestRenameList_EmptyNameRejected() {
	_, err := s.service.RenameList(s.ctx, "alice", "list-1", "   ")
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}
