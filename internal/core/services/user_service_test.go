package services_test

import (
	"context"
	"testing"

	"github.com/splitsum/splitsum_app/internal/apperrors"
	"github.com/splitsum/splitsum_app/internal/core/domain"
	portssvc "github.com/splitsum/splitsum_app/internal/core/ports/services"
	"github.com/splitsum/splitsum_app/internal/core/services"
	"github.com/splitsum/splitsum_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegister_HashesPassword() {
	s.mockUserRepo.On("UserExists", s.ctx, "alice").Return(false, nil)

	var saved domain.User
	s.mockUserRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil)

	user, err := s.service.Register(s.ctx, "alice", "s3cret")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", user.Username)
	assert.NotEqual(s.T(), "s3cret", saved.PasswordHash)
	assert.True(s.T(), utils.CheckPasswordHash("s3cret", saved.PasswordHash))
}

func (s *UserServiceTestSuite) TestRegister_ShortPasswordRejected() {
	_, err := s.service.Register(s.ctx, "alice", "ab")

	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRegister_DuplicateUsernameConflicts() {
	s.mockUserRepo.On("UserExists", s.ctx, "alice").Return(true, nil)

	_, err := s.service.Register(s.ctx, "alice", "s3cret")

	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *UserServiceTestSuite) TestVerifyCredentials_CorrectAndWrongPassword() {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(s.T(), err)
	s.mockUserRepo.On("FindUserByUsername", s.ctx, "alice").
		Return(&domain.User{Username: "alice", PasswordHash: hash}, nil)

	ok, err := s.service.VerifyCredentials(s.ctx, "alice", "s3cret")
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)

	ok, err = s.service.VerifyCredentials(s.ctx, "alice", "wrong")
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func (s *UserServiceTestSuite) TestVerifyCredentials_UnknownUserIsFalseNotError() {
	s.mockUserRepo.On("FindUserByUsername", s.ctx, "ghost").
		Return(nil, apperrors.NewNotFoundError("no such user"))

	ok, err := s.service.VerifyCredentials(s.ctx, "ghost", "whatever")

	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}
