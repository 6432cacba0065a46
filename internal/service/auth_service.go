package service

import (
	"context"
	"fmt"
	"time"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"
	"lingua-tutor/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const bearerTokenType = "bearer"

// AuthService issues and validates bearer tokens and gates admin access.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (string, error)
	GetProfile(ctx context.Context, studentID string) (*dto.MeResponse, error)
	AuthorizeAdmin(ctx context.Context, studentID string) (string, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	appConfig *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if appConfig.JWT.SecretKey == "" {
		return nil, fmt.Errorf("token signing secret is not configured")
	}
	return &authServiceImpl{userRepo: userRepo, appConfig: appConfig}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	appLogger := logger.Get()

	existing, err := s.userRepo.GetUserByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("この学生IDは既に登録されています")
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	// The first user ever created becomes the admin.
	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to count users", err)
	}

	user := &domain.User{
		StudentID:    req.StudentID,
		PasswordHash: passwordHash,
		IsAdmin:      count == 0,
		Language:     domain.NormalizeLanguage(req.Language),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}

	token, err := s.createToken(user.StudentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}

	appLogger.Info("User registered",
		zap.String("student_id", user.StudentID),
		zap.Bool("is_admin", user.IsAdmin),
		zap.String("language", user.Language))

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   bearerTokenType,
		StudentID:   user.StudentID,
		IsAdmin:     user.IsAdmin,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	appLogger := logger.Get()

	// One uniform message: never reveal whether the id or the password
	// was wrong.
	user, err := s.userRepo.GetUserByStudentID(ctx, req.StudentID)
	if err != nil || user == nil {
		return nil, domain.NewUnauthorizedError("学生IDまたはパスワードが正しくありません")
	}
	if !util.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.NewUnauthorizedError("学生IDまたはパスワードが正しくありません")
	}

	token, err := s.createToken(user.StudentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}

	appLogger.Info("User logged in", zap.String("student_id", user.StudentID))

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   bearerTokenType,
		StudentID:   user.StudentID,
		IsAdmin:     user.IsAdmin,
	}, nil
}

func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", domain.NewUnauthorizedError("認証情報が無効です")
	}
	if claims.Subject == "" {
		return "", domain.NewUnauthorizedError("認証情報が無効です")
	}
	return claims.Subject, nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, studentID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.GetUserByStudentID(ctx, studentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("ユーザーが見つかりません")
	}
	return &dto.MeResponse{
		StudentID: user.StudentID,
		IsAdmin:   user.IsAdmin,
		Language:  user.Language,
	}, nil
}

func (s *authServiceImpl) AuthorizeAdmin(ctx context.Context, studentID string) (string, error) {
	user, err := s.userRepo.GetUserByStudentID(ctx, studentID)
	if err != nil {
		return "", domain.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return "", domain.NewNotFoundError("ユーザーが見つかりません")
	}
	if !user.IsAdmin {
		return "", domain.NewForbiddenError("管理者権限が必要です")
	}
	return user.StudentID, nil
}

func (s *authServiceImpl) createToken(studentID string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   studentID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.appConfig.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}
