package repository

import (
	"context"

	"lingua-tutor/internal/domain"

	"go.uber.org/zap"
)

// attempt runs op against the primary backend and, on any primary error,
// retries against the fallback. The primary failure is logged but never
// surfaced to the caller; the fallback succeeds or fails on its own terms.
// Primary and fallback are never reconciled; after a fallback period the
// operator owns the data merge.
func attempt[T any](log *zap.Logger, op string, primary, fallback func() (T, error)) (T, error) {
	v, err := primary()
	if err == nil {
		return v, nil
	}
	log.Warn("primary backend failed, falling back to local file",
		zap.String("op", op),
		zap.Error(err))
	return fallback()
}

func attemptErr(log *zap.Logger, op string, primary, fallback func() error) error {
	_, err := attempt(log, op,
		func() (struct{}, error) { return struct{}{}, primary() },
		func() (struct{}, error) { return struct{}{}, fallback() },
	)
	return err
}

// FailoverUserRepository composes the primary user repository with the
// file fallback.
type FailoverUserRepository struct {
	primary  domain.UserRepository
	fallback domain.UserRepository
	log      *zap.Logger
}

// NewFailoverUserRepository wraps primary with fallback semantics.
func NewFailoverUserRepository(primary, fallback domain.UserRepository, log *zap.Logger) *FailoverUserRepository {
	return &FailoverUserRepository{primary: primary, fallback: fallback, log: log}
}

func (r *FailoverUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return attempt(r.log, "users.list",
		func() ([]domain.User, error) { return r.primary.ListUsers(ctx) },
		func() ([]domain.User, error) { return r.fallback.ListUsers(ctx) })
}

func (r *FailoverUserRepository) GetUserByStudentID(ctx context.Context, studentID string) (*domain.User, error) {
	return attempt(r.log, "users.get",
		func() (*domain.User, error) { return r.primary.GetUserByStudentID(ctx, studentID) },
		func() (*domain.User, error) { return r.fallback.GetUserByStudentID(ctx, studentID) })
}

func (r *FailoverUserRepository) CountUsers(ctx context.Context) (int, error) {
	return attempt(r.log, "users.count",
		func() (int, error) { return r.primary.CountUsers(ctx) },
		func() (int, error) { return r.fallback.CountUsers(ctx) })
}

func (r *FailoverUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return attemptErr(r.log, "users.create",
		func() error { return r.primary.CreateUser(ctx, user) },
		func() error { return r.fallback.CreateUser(ctx, user) })
}

func (r *FailoverUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	return attemptErr(r.log, "users.update",
		func() error { return r.primary.UpdateUser(ctx, user) },
		func() error { return r.fallback.UpdateUser(ctx, user) })
}

func (r *FailoverUserRepository) DeleteUser(ctx context.Context, studentID string) error {
	return attemptErr(r.log, "users.delete",
		func() error { return r.primary.DeleteUser(ctx, studentID) },
		func() error { return r.fallback.DeleteUser(ctx, studentID) })
}

// FailoverWordRepository composes the primary word repository with the
// file fallback.
type FailoverWordRepository struct {
	primary  domain.WordRepository
	fallback domain.WordRepository
	log      *zap.Logger
}

// NewFailoverWordRepository wraps primary with fallback semantics.
func NewFailoverWordRepository(primary, fallback domain.WordRepository, log *zap.Logger) *FailoverWordRepository {
	return &FailoverWordRepository{primary: primary, fallback: fallback, log: log}
}

func (r *FailoverWordRepository) InsertWords(ctx context.Context, entries []domain.VocabularyEntry) error {
	return attemptErr(r.log, "words.insert",
		func() error { return r.primary.InsertWords(ctx, entries) },
		func() error { return r.fallback.InsertWords(ctx, entries) })
}

func (r *FailoverWordRepository) ListWords(ctx context.Context, filter domain.ContentFilter) ([]domain.VocabularyEntry, error) {
	return attempt(r.log, "words.list",
		func() ([]domain.VocabularyEntry, error) { return r.primary.ListWords(ctx, filter) },
		func() ([]domain.VocabularyEntry, error) { return r.fallback.ListWords(ctx, filter) })
}

func (r *FailoverWordRepository) ListWordLessons(ctx context.Context, userID string) ([]int, error) {
	return attempt(r.log, "words.lessons",
		func() ([]int, error) { return r.primary.ListWordLessons(ctx, userID) },
		func() ([]int, error) { return r.fallback.ListWordLessons(ctx, userID) })
}

// FailoverGrammarRepository composes the primary grammar repository with
// the file fallback.
type FailoverGrammarRepository struct {
	primary  domain.GrammarRepository
	fallback domain.GrammarRepository
	log      *zap.Logger
}

// NewFailoverGrammarRepository wraps primary with fallback semantics.
func NewFailoverGrammarRepository(primary, fallback domain.GrammarRepository, log *zap.Logger) *FailoverGrammarRepository {
	return &FailoverGrammarRepository{primary: primary, fallback: fallback, log: log}
}

func (r *FailoverGrammarRepository) InsertGrammar(ctx context.Context, entries []domain.GrammarEntry) error {
	return attemptErr(r.log, "grammar.insert",
		func() error { return r.primary.InsertGrammar(ctx, entries) },
		func() error { return r.fallback.InsertGrammar(ctx, entries) })
}

func (r *FailoverGrammarRepository) ListGrammar(ctx context.Context, filter domain.ContentFilter) ([]domain.GrammarEntry, error) {
	return attempt(r.log, "grammar.list",
		func() ([]domain.GrammarEntry, error) { return r.primary.ListGrammar(ctx, filter) },
		func() ([]domain.GrammarEntry, error) { return r.fallback.ListGrammar(ctx, filter) })
}

func (r *FailoverGrammarRepository) ListGrammarLessons(ctx context.Context, userID string) ([]int, error) {
	return attempt(r.log, "grammar.lessons",
		func() ([]int, error) { return r.primary.ListGrammarLessons(ctx, userID) },
		func() ([]int, error) { return r.fallback.ListGrammarLessons(ctx, userID) })
}

var (
	_ domain.UserRepository    = (*FailoverUserRepository)(nil)
	_ domain.WordRepository    = (*FailoverWordRepository)(nil)
	_ domain.GrammarRepository = (*FailoverGrammarRepository)(nil)
)
