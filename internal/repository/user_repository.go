package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository against the primary
// Postgres backend.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new primary-backend user repository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func (r *sqlxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	query := `SELECT student_id, password_hash, is_admin, language, created_at FROM users ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		users = append(users, userToDomain(m))
	}
	return users, nil
}

func (r *sqlxUserRepository) GetUserByStudentID(ctx context.Context, studentID string) (*domain.User, error) {
	var m models.User
	query := `SELECT student_id, password_hash, is_admin, language, created_at FROM users WHERE student_id = $1`
	err := r.db.GetContext(ctx, &m, query, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found is not an error; services decide
		}
		return nil, fmt.Errorf("failed to get user by student_id: %w", err)
	}
	user := userToDomain(m)
	return &user, nil
}

func (r *sqlxUserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (student_id, password_hash, is_admin, language, created_at)
	          VALUES (:student_id, :password_hash, :is_admin, :language, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, userFromDomain(user))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET password_hash = :password_hash, is_admin = :is_admin, language = :language
	          WHERE student_id = :student_id`
	result, err := r.db.NamedExecContext(ctx, query, userFromDomain(user))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *sqlxUserRepository) DeleteUser(ctx context.Context, studentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func userToDomain(m models.User) domain.User {
	return domain.User{
		StudentID:    m.StudentID,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		Language:     m.Language,
		CreatedAt:    m.CreatedAt,
	}
}

func userFromDomain(u *domain.User) models.User {
	return models.User{
		StudentID:    u.StudentID,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		Language:     u.Language,
		CreatedAt:    u.CreatedAt,
	}
}
