package repository

import (
	"context"
	"database/sql"
	"fmt"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxWordRepository implements domain.WordRepository against the primary
// Postgres backend.
type sqlxWordRepository struct {
	db *sqlx.DB
}

// NewSQLXWordRepository creates a new primary-backend word repository.
func NewSQLXWordRepository(db *sqlx.DB) domain.WordRepository {
	return &sqlxWordRepository{db: db}
}

func (r *sqlxWordRepository) InsertWords(ctx context.Context, entries []domain.VocabularyEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `INSERT INTO words (user_id, lesson, word, pinyin, meaning, correct_count, miss_count, last_reviewed)
	          VALUES (:user_id, :lesson, :word, :pinyin, :meaning, :correct_count, :miss_count, :last_reviewed)`
	rows := make([]models.Word, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, wordFromDomain(e))
	}
	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to insert words: %w", err)
	}
	return nil
}

func (r *sqlxWordRepository) ListWords(ctx context.Context, filter domain.ContentFilter) ([]domain.VocabularyEntry, error) {
	var rows []models.Word
	var err error
	if filter.Lesson != nil {
		query := `SELECT id, user_id, lesson, word, pinyin, meaning, correct_count, miss_count, last_reviewed
		          FROM words WHERE user_id = $1 AND lesson = $2 ORDER BY id`
		err = r.db.SelectContext(ctx, &rows, query, filter.UserID, *filter.Lesson)
	} else {
		query := `SELECT id, user_id, lesson, word, pinyin, meaning, correct_count, miss_count, last_reviewed
		          FROM words WHERE user_id = $1 ORDER BY id`
		err = r.db.SelectContext(ctx, &rows, query, filter.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	entries := make([]domain.VocabularyEntry, 0, len(rows))
	for _, m := range rows {
		entries = append(entries, wordToDomain(m))
	}
	return entries, nil
}

func (r *sqlxWordRepository) ListWordLessons(ctx context.Context, userID string) ([]int, error) {
	var lessons []int
	query := `SELECT DISTINCT lesson FROM words WHERE user_id = $1 ORDER BY lesson`
	if err := r.db.SelectContext(ctx, &lessons, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list word lessons: %w", err)
	}
	return lessons, nil
}

func wordToDomain(m models.Word) domain.VocabularyEntry {
	e := domain.VocabularyEntry{
		ID:           m.ID,
		UserID:       m.UserID,
		Lesson:       m.Lesson,
		Word:         m.Word,
		Pinyin:       m.Pinyin,
		Meaning:      m.Meaning,
		CorrectCount: m.CorrectCount,
		MissCount:    m.MissCount,
	}
	if m.LastReviewed.Valid {
		t := m.LastReviewed.Time
		e.LastReviewed = &t
	}
	return e
}

func wordFromDomain(e domain.VocabularyEntry) models.Word {
	m := models.Word{
		ID:           e.ID,
		UserID:       e.UserID,
		Lesson:       e.Lesson,
		Word:         e.Word,
		Pinyin:       e.Pinyin,
		Meaning:      e.Meaning,
		CorrectCount: e.CorrectCount,
		MissCount:    e.MissCount,
	}
	if e.LastReviewed != nil {
		m.LastReviewed = sql.NullTime{Time: *e.LastReviewed, Valid: true}
	}
	return m
}
