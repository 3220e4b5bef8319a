package services_test

import (
	"context"
	"testing"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/core/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mocks   *mockSet
	service portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	provider, mocks := newMockProvider()
	suite.mocks = mocks
	suite.service = services.NewUserService(provider)
}

func (suite *UserServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Username:     "asha",
		Name:         "Asha",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *UserServiceTestSuite) TestRegister_HashesPassword() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "asha", Name: "Asha", Password: "s3cret-pass"}

	suite.mocks.userRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "asha" && u.PasswordHash != "" && u.PasswordHash != "s3cret-pass" && u.IsActive
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash("s3cret-pass", user.PasswordHash))
	suite.mocks.userRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	user := suite.activeUser("s3cret-pass")

	suite.mocks.userRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, "asha", "s3cret-pass")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownUsernameAndWrongPasswordLookAlike() {
	ctx := context.Background()
	user := suite.activeUser("s3cret-pass")

	suite.mocks.userRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()
	suite.mocks.userRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	_, unknownErr := suite.service.Authenticate(ctx, "nobody", "whatever")
	_, wrongErr := suite.service.Authenticate(ctx, "asha", "not-the-password")

	suite.Require().ErrorIs(unknownErr, apperrors.ErrForbidden)
	suite.Require().ErrorIs(wrongErr, apperrors.ErrForbidden)
	suite.Equal(unknownErr.Error(), wrongErr.Error())
}

func (suite *UserServiceTestSuite) TestAuthenticate_InactiveUserRejected() {
	ctx := context.Background()
	user := suite.activeUser("s3cret-pass")
	user.IsActive = false

	suite.mocks.userRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	_, err := suite.service.Authenticate(ctx, "asha", "s3cret-pass")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
