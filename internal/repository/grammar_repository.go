package repository

import (
	"context"
	"fmt"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxGrammarRepository implements domain.GrammarRepository against the
// primary Postgres backend.
type sqlxGrammarRepository struct {
	db *sqlx.DB
}

// NewSQLXGrammarRepository creates a new primary-backend grammar repository.
func NewSQLXGrammarRepository(db *sqlx.DB) domain.GrammarRepository {
	return &sqlxGrammarRepository{db: db}
}

func (r *sqlxGrammarRepository) InsertGrammar(ctx context.Context, entries []domain.GrammarEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `INSERT INTO grammar (user_id, lesson, title, description, example_cn, example_jp)
	          VALUES (:user_id, :lesson, :title, :description, :example_cn, :example_jp)`
	rows := make([]models.Grammar, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, grammarFromDomain(e))
	}
	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to insert grammar: %w", err)
	}
	return nil
}

func (r *sqlxGrammarRepository) ListGrammar(ctx context.Context, filter domain.ContentFilter) ([]domain.GrammarEntry, error) {
	var rows []models.Grammar
	var err error
	if filter.Lesson != nil {
		query := `SELECT id, user_id, lesson, title, description, example_cn, example_jp
		          FROM grammar WHERE user_id = $1 AND lesson = $2 ORDER BY id`
		err = r.db.SelectContext(ctx, &rows, query, filter.UserID, *filter.Lesson)
	} else {
		query := `SELECT id, user_id, lesson, title, description, example_cn, example_jp
		          FROM grammar WHERE user_id = $1 ORDER BY id`
		err = r.db.SelectContext(ctx, &rows, query, filter.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar: %w", err)
	}
	entries := make([]domain.GrammarEntry, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, grammarToDomain(m))
	}
	return entries, nil
}

func (r *sqlxGrammarRepository) ListGrammarLessons(ctx context.Context, userID string) ([]int, error) {
	var lessons []int
	query := `SELECT DISTINCT lesson FROM grammar WHERE user_id = $1 ORDER BY lesson`
	if err := r.db.SelectContext(ctx, &lessons, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list grammar lessons: %w", err)
	}
	return lessons, nil
}

func grammarToDomain(m models.Grammar) domain.GrammarEntry {
	return domain.GrammarEntry{
		ID:            m.ID,
		UserID:        m.UserID,
		Lesson:        m.Lesson,
		Title:         m.Title,
		Description:   m.Description,
		ExampleSource: m.ExampleCN,
		ExampleTarget: m.ExampleJP,
	}
}

func grammarFromDomain(e domain.GrammarEntry) models.Grammar {
	return models.Grammar{
		ID:          e.ID,
		UserID:      e.UserID,
		Lesson:      e.Lesson,
		Title:       e.Title,
		Description: e.Description,
		ExampleCN:   e.ExampleSource,
		ExampleJP:   e.ExampleTarget,
	}
}
