package service

import (
	"context"
	"time"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"

	"go.uber.org/zap"
)

// UserService covers the admin-only user management operations.
type UserService interface {
	ListUsers(ctx context.Context) (*dto.UsersListResponse, error)
	UpdateUser(ctx context.Context, adminID, targetID string, req dto.UpdateUserRequest) (*dto.MessageResponse, error)
	DeleteUser(ctx context.Context, adminID, targetID string) (*dto.MessageResponse, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) (*dto.UsersListResponse, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list users", err)
	}
	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, dto.UserSummary{
			StudentID: u.StudentID,
			IsAdmin:   u.IsAdmin,
			Language:  u.Language,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.UsersListResponse{Users: summaries}, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, adminID, targetID string, req dto.UpdateUserRequest) (*dto.MessageResponse, error) {
	target, err := s.userRepo.GetUserByStudentID(ctx, targetID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if target == nil {
		return nil, domain.NewNotFoundError("ユーザーが見つかりません")
	}

	// Admins cannot revoke their own admin flag.
	if targetID == adminID && req.IsAdmin != nil && !*req.IsAdmin {
		return nil, domain.NewInvalidInputError("自分自身の管理者権限を削除することはできません")
	}

	if req.IsAdmin != nil {
		target.IsAdmin = *req.IsAdmin
		if err := s.userRepo.UpdateUser(ctx, target); err != nil {
			return nil, domain.NewInternalError("failed to update user", err)
		}
		logger.Get().Info("User role updated",
			zap.String("admin", adminID),
			zap.String("target", targetID),
			zap.Bool("is_admin", *req.IsAdmin))
	}

	return &dto.MessageResponse{Message: "ユーザー情報を更新しました", StudentID: targetID}, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, adminID, targetID string) (*dto.MessageResponse, error) {
	// Admins cannot delete themselves.
	if targetID == adminID {
		return nil, domain.NewInvalidInputError("自分自身を削除することはできません")
	}

	target, err := s.userRepo.GetUserByStudentID(ctx, targetID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get user", err)
	}
	if target == nil {
		return nil, domain.NewNotFoundError("ユーザーが見つかりません")
	}

	if err := s.userRepo.DeleteUser(ctx, targetID); err != nil {
		return nil, domain.NewInternalError("failed to delete user", err)
	}
	logger.Get().Info("User deleted",
		zap.String("admin", adminID),
		zap.String("target", targetID))

	return &dto.MessageResponse{Message: "ユーザーを削除しました", StudentID: targetID}, nil
}
