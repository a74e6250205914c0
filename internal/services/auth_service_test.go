package services

import (
	"context"
	"testing"
	"time"

	"craftfolio/internal/common"
	"craftfolio/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = &MockUserRepository{}
	suite.service = NewAuthService(suite.mockUserRepo, testJWTSecret, time.Hour)
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func hashedPassword(t assert.TestingT, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func (suite *AuthServiceTestSuite) TestRegister_SeedsEmptyResume() {
	suite.mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(nil).Once()

	user, token, err := suite.service.Register(context.Background(), "owner@example.com", "supersecret")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)
	assert.Equal(suite.T(), "owner@example.com", user.Resume.Email)
	assert.NotEqual(suite.T(), "supersecret", user.PasswordHash)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	assert.NoError(suite.T(), err)
	subject, err := parsed.Claims.GetSubject()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID.String(), subject)
}

func (suite *AuthServiceTestSuite) TestRegister_ShortPasswordRejected() {
	_, _, err := suite.service.Register(context.Background(), "owner@example.com", "short")

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: hashedPassword(suite.T(), "supersecret"),
	}

	suite.mockUserRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, token, err := suite.service.Login(context.Background(), user.Email, "supersecret")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: hashedPassword(suite.T(), "supersecret"),
	}

	suite.mockUserRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, _, err := suite.service.Login(context.Background(), user.Email, "wrong-password")

	assert.ErrorIs(suite.T(), err, common.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestUpdatePassword_OldPasswordMustMatch() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: hashedPassword(suite.T(), "supersecret"),
	}

	suite.mockUserRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	_, err := suite.service.UpdatePassword(context.Background(), user.ID,
		"not-the-old-one", "newpassword", "newpassword")

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestUpdatePassword_MismatchedConfirmation() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: hashedPassword(suite.T(), "supersecret"),
	}

	suite.mockUserRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	_, err := suite.service.UpdatePassword(context.Background(), user.ID,
		"supersecret", "newpassword", "different")

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *AuthServiceTestSuite) TestForgotPassword_StoresOnlyTokenHash() {
	user := &models.User{ID: uuid.New(), Email: "owner@example.com"}

	suite.mockUserRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	suite.mockUserRepo.On("Update", mock.Anything, user).Return(nil).Once()

	token, err := suite.service.ForgotPassword(context.Background(), user.Email)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)
	assert.NotNil(suite.T(), user.ResetPasswordToken)
	assert.NotEqual(suite.T(), token, *user.ResetPasswordToken)
	assert.NotNil(suite.T(), user.ResetPasswordExpiry)
	assert.True(suite.T(), user.ResetPasswordExpiry.After(time.Now()))
}

func (suite *AuthServiceTestSuite) TestResetPassword_RoundTrip() {
	user := &models.User{ID: uuid.New(), Email: "owner@example.com"}

	suite.mockUserRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	suite.mockUserRepo.On("Update", mock.Anything, user).Return(nil).Twice()

	token, err := suite.service.ForgotPassword(context.Background(), user.Email)
	assert.NoError(suite.T(), err)

	suite.mockUserRepo.On("GetByResetToken", mock.Anything, *user.ResetPasswordToken).
		Return(user, nil).Once()

	reset, jwtToken, err := suite.service.ResetPassword(context.Background(),
		token, "brand-new-pass", "brand-new-pass")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), jwtToken)
	assert.Nil(suite.T(), reset.ResetPasswordToken)
	assert.Nil(suite.T(), reset.ResetPasswordExpiry)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword(
		[]byte(reset.PasswordHash), []byte("brand-new-pass")))
}

func (suite *AuthServiceTestSuite) TestResetPassword_ExpiredToken() {
	expired := time.Now().Add(-time.Minute)
	hash := "stored-hash"
	user := &models.User{
		ID:                  uuid.New(),
		Email:               "owner@example.com",
		ResetPasswordToken:  &hash,
		ResetPasswordExpiry: &expired,
	}

	suite.mockUserRepo.On("GetByResetToken", mock.Anything, mock.AnythingOfType("string")).
		Return(user, nil).Once()

	_, _, err := suite.service.ResetPassword(context.Background(),
		"some-token", "brand-new-pass", "brand-new-pass")

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestResetPassword_UnknownToken() {
	suite.mockUserRepo.On("GetByResetToken", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, common.ErrNotFound).Once()

	_, _, err := suite.service.ResetPassword(context.Background(),
		"bogus", "brand-new-pass", "brand-new-pass")

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}
