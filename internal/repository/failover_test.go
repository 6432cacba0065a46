package repository

import (
	"context"
	"errors"
	"testing"

	"lingua-tutor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubUserRepo answers every call from fixed values and records whether it
// was hit.
type stubUserRepo struct {
	users []domain.User
	err   error
	hits  int
}

func (s *stubUserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.hits++
	return s.users, s.err
}

func (s *stubUserRepo) GetUserByStudentID(ctx context.Context, studentID string) (*domain.User, error) {
	s.hits++
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.users {
		if s.users[i].StudentID == studentID {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) CountUsers(ctx context.Context) (int, error) {
	s.hits++
	return len(s.users), s.err
}

func (s *stubUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	s.hits++
	if s.err != nil {
		return s.err
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *stubUserRepo) UpdateUser(ctx context.Context, user *domain.User) error {
	s.hits++
	return s.err
}

func (s *stubUserRepo) DeleteUser(ctx context.Context, studentID string) error {
	s.hits++
	return s.err
}

func TestFailoverUserRepository_PrimaryHealthy(t *testing.T) {
	primary := &stubUserRepo{users: []domain.User{{StudentID: "s001"}}}
	fallback := &stubUserRepo{}
	repo := NewFailoverUserRepository(primary, fallback, zap.NewNop())

	users, err := repo.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, primary.hits)
	assert.Equal(t, 0, fallback.hits)
}

func TestFailoverUserRepository_PrimaryFailureIsSilent(t *testing.T) {
	primary := &stubUserRepo{err: errors.New("connection refused")}
	fallback := &stubUserRepo{users: []domain.User{{StudentID: "s001"}}}
	repo := NewFailoverUserRepository(primary, fallback, zap.NewNop())

	users, err := repo.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, primary.hits)
	assert.Equal(t, 1, fallback.hits)
}

func TestFailoverUserRepository_WriteFallsBack(t *testing.T) {
	primary := &stubUserRepo{err: errors.New("connection refused")}
	fallback := &stubUserRepo{}
	repo := NewFailoverUserRepository(primary, fallback, zap.NewNop())

	err := repo.CreateUser(context.Background(), &domain.User{StudentID: "s001"})

	require.NoError(t, err)
	assert.Len(t, fallback.users, 1)
}

func TestFailoverUserRepository_BothFailSurfacesFallbackError(t *testing.T) {
	primary := &stubUserRepo{err: errors.New("connection refused")}
	fallback := &stubUserRepo{err: errors.New("disk full")}
	repo := NewFailoverUserRepository(primary, fallback, zap.NewNop())

	_, err := repo.CountUsers(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFailoverUserRepository_NotFoundIsNotAFailure(t *testing.T) {
	primary := &stubUserRepo{}
	fallback := &stubUserRepo{users: []domain.User{{StudentID: "s001"}}}
	repo := NewFailoverUserRepository(primary, fallback, zap.NewNop())

	// (nil, nil) from the primary is a definitive answer, not an outage.
	user, err := repo.GetUserByStudentID(context.Background(), "s001")

	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 0, fallback.hits)
}
