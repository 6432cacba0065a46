package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: time.Hour,
		},
	}
}

func TestAuthService_Register_FirstUserBecomesAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	mockRepo.On("GetUserByStudentID", mock.Anything, "s001").Return(nil, nil)
	mockRepo.On("CountUsers", mock.Anything).Return(0, nil)
	mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.StudentID == "s001" && u.IsAdmin && u.Language == domain.DefaultLanguage
	})).Return(nil)

	resp, err := authService.Register(context.Background(), dto.RegisterRequest{StudentID: "s001", Password: "secret"})

	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, "s001", resp.StudentID)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)

	// The issued token must round-trip back to the same student id.
	subject, err := authService.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "s001", subject)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_SecondUserIsNotAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	mockRepo.On("GetUserByStudentID", mock.Anything, "s002").Return(nil, nil)
	mockRepo.On("CountUsers", mock.Anything).Return(1, nil)
	mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.StudentID == "s002" && !u.IsAdmin
	})).Return(nil)

	resp, err := authService.Register(context.Background(), dto.RegisterRequest{StudentID: "s002", Password: "secret"})

	require.NoError(t, err)
	assert.False(t, resp.IsAdmin)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateStudentID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	mockRepo.On("GetUserByStudentID", mock.Anything, "s001").
		Return(&domain.User{StudentID: "s001"}, nil)

	resp, err := authService.Register(context.Background(), dto.RegisterRequest{StudentID: "s001"})

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrConflict, domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	hash, err := util.HashPassword("secret")
	require.NoError(t, err)
	mockRepo.On("GetUserByStudentID", mock.Anything, "s001").
		Return(&domain.User{StudentID: "s001", PasswordHash: hash, IsAdmin: true}, nil)

	resp, err := authService.Login(context.Background(), dto.LoginRequest{StudentID: "s001", Password: "secret"})

	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	hash, err := util.HashPassword("secret")
	require.NoError(t, err)
	mockRepo.On("GetUserByStudentID", mock.Anything, "s001").
		Return(&domain.User{StudentID: "s001", PasswordHash: hash}, nil)

	resp, err := authService.Login(context.Background(), dto.LoginRequest{StudentID: "s001", Password: "wrong"})

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
}

func TestAuthService_Login_UnknownUserSameMessage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	mockRepo.On("GetUserByStudentID", mock.Anything, "ghost").Return(nil, nil)

	_, unknownErr := authService.Login(context.Background(), dto.LoginRequest{StudentID: "ghost", Password: "x"})

	hash, err := util.HashPassword("secret")
	require.NoError(t, err)
	mockRepo.On("GetUserByStudentID", mock.Anything, "s001").
		Return(&domain.User{StudentID: "s001", PasswordHash: hash}, nil)
	_, wrongPassErr := authService.Login(context.Background(), dto.LoginRequest{StudentID: "s001", Password: "wrong"})

	// Unknown id and wrong password must be indistinguishable.
	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
}

func TestAuthService_Login_PasswordlessAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	mockRepo.On("GetUserByStudentID", mock.Anything, "s003").
		Return(&domain.User{StudentID: "s003", PasswordHash: ""}, nil)

	resp, err := authService.Login(context.Background(), dto.LoginRequest{StudentID: "s003", Password: ""})
	require.NoError(t, err)
	assert.Equal(t, "s003", resp.StudentID)

	_, err = authService.Login(context.Background(), dto.LoginRequest{StudentID: "s003", Password: "anything"})
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	_, err = authService.ValidateToken(context.Background(), "not-a-token")

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
}

func TestAuthService_AuthorizeAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService, err := NewAuthService(mockRepo, testAuthConfig())
	require.NoError(t, err)

	mockRepo.On("GetUserByStudentID", mock.Anything, "admin").
		Return(&domain.User{StudentID: "admin", IsAdmin: true}, nil)
	mockRepo.On("GetUserByStudentID", mock.Anything, "student").
		Return(&domain.User{StudentID: "student"}, nil)
	mockRepo.On("GetUserByStudentID", mock.Anything, "ghost").Return(nil, nil)

	id, err := authService.AuthorizeAdmin(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", id)

	_, err = authService.AuthorizeAdmin(context.Background(), "student")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrForbidden, domainErr.Code)

	_, err = authService.AuthorizeAdmin(context.Background(), "ghost")
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)
}
