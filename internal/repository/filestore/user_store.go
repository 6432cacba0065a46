package filestore

import (
	"context"
	"path/filepath"
	"time"

	"lingua-tutor/internal/domain"
)

const usersFile = "users.json"

type userRecord struct {
	StudentID    string    `json:"student_id"`
	PasswordHash string    `json:"password_hash"`
	IsAdmin      bool      `json:"is_admin"`
	Language     string    `json:"language"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore implements domain.UserRepository on a local JSON file.
type UserStore struct {
	file jsonFile
}

// NewUserStore creates a user store backed by users.json under dataDir.
func NewUserStore(dataDir string) *UserStore {
	return &UserStore{file: jsonFile{path: filepath.Join(dataDir, usersFile)}}
}

func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(records))
	for _, r := range records {
		users = append(users, userRecordToDomain(r))
	}
	return users, nil
}

func (s *UserStore) GetUserByStudentID(ctx context.Context, studentID string) (*domain.User, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.StudentID == studentID {
			u := userRecordToDomain(r)
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) CountUsers(ctx context.Context) (int, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	records = append(records, userRecordFromDomain(user))
	return s.file.store(records)
}

func (s *UserStore) UpdateUser(ctx context.Context, user *domain.User) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.StudentID == user.StudentID {
			records[i] = userRecordFromDomain(user)
			return s.file.store(records)
		}
	}
	return domain.NewNotFoundError("user not found: " + user.StudentID)
}

func (s *UserStore) DeleteUser(ctx context.Context, studentID string) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.StudentID != studentID {
			kept = append(kept, r)
		}
	}
	return s.file.store(kept)
}

func (s *UserStore) loadLocked() ([]userRecord, error) {
	records := []userRecord{}
	if err := s.file.load(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func userRecordToDomain(r userRecord) domain.User {
	return domain.User{
		StudentID:    r.StudentID,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
		Language:     r.Language,
		CreatedAt:    r.CreatedAt,
	}
}

func userRecordFromDomain(u *domain.User) userRecord {
	return userRecord{
		StudentID:    u.StudentID,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		Language:     u.Language,
		CreatedAt:    u.CreatedAt,
	}
}

var _ domain.UserRepository = (*UserStore)(nil)
