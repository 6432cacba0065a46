package service

import (
	"context"

	"lingua-tutor/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByStudentID(ctx context.Context, studentID string) (*domain.User, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, studentID string) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

// MockWordRepository is a mock type for domain.WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) InsertWords(ctx context.Context, entries []domain.VocabularyEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockWordRepository) ListWords(ctx context.Context, filter domain.ContentFilter) ([]domain.VocabularyEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VocabularyEntry), args.Error(1)
}

func (m *MockWordRepository) ListWordLessons(ctx context.Context, userID string) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockGrammarRepository is a mock type for domain.GrammarRepository
type MockGrammarRepository struct {
	mock.Mock
}

func (m *MockGrammarRepository) InsertGrammar(ctx context.Context, entries []domain.GrammarEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockGrammarRepository) ListGrammar(ctx context.Context, filter domain.ContentFilter) ([]domain.GrammarEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GrammarEntry), args.Error(1)
}

func (m *MockGrammarRepository) ListGrammarLessons(ctx context.Context, userID string) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockModelGateway is a mock type for domain.ModelGateway
type MockModelGateway struct {
	mock.Mock
}

func (m *MockModelGateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockModelGateway) GenerateFromImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	args := m.Called(ctx, prompt, image, mimeType)
	return args.String(0), args.Error(1)
}
