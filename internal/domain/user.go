package domain

import (
	"context"
	"strings"
	"time"
)

// Languages a student can register for. Anything else falls back to the default.
const (
	LanguageChinese = "chinese"
	LanguageEnglish = "english"
	LanguageGerman  = "german"
	LanguageSpanish = "spanish"

	DefaultLanguage = LanguageChinese
)

var allowedLanguages = map[string]struct{}{
	LanguageChinese: {},
	LanguageEnglish: {},
	LanguageGerman:  {},
	LanguageSpanish: {},
}

// NormalizeLanguage lowercases and validates a requested learning language.
// Unknown values silently become the default.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := allowedLanguages[lang]; ok {
		return lang
	}
	return DefaultLanguage
}

// User represents a registered student. StudentID is the primary key;
// an empty PasswordHash means the account was created without a password.
type User struct {
	StudentID    string
	PasswordHash string
	IsAdmin      bool
	Language     string
	CreatedAt    time.Time
}

// UserRepository defines the interface for user persistence.
// Implementations must treat StudentID as unique.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUserByStudentID(ctx context.Context, studentID string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, studentID string) error
}
