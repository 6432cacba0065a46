package domain

import (
	"context"
	"time"
)

// VocabularyEntry is one word extracted from a textbook page.
// Entries are owned by the uploading user and scoped per lesson.
type VocabularyEntry struct {
	ID           int64
	UserID       string
	Lesson       int
	Word         string
	Pinyin       string
	Meaning      string
	CorrectCount int
	MissCount    int
	LastReviewed *time.Time
}

// GrammarEntry is one grammar point extracted from a textbook page.
type GrammarEntry struct {
	ID            int64
	UserID        string
	Lesson        int
	Title         string
	Description   string
	ExampleSource string
	ExampleTarget string
}

// ContentFilter narrows user-scoped reads. Lesson is optional.
type ContentFilter struct {
	UserID string
	Lesson *int
}

// WordRepository defines persistence for vocabulary entries.
// List results must only contain entries owned by filter.UserID.
type WordRepository interface {
	InsertWords(ctx context.Context, entries []VocabularyEntry) error
	ListWords(ctx context.Context, filter ContentFilter) ([]VocabularyEntry, error)
	ListWordLessons(ctx context.Context, userID string) ([]int, error)
}

// GrammarRepository defines persistence for grammar entries.
type GrammarRepository interface {
	InsertGrammar(ctx context.Context, entries []GrammarEntry) error
	ListGrammar(ctx context.Context, filter ContentFilter) ([]GrammarEntry, error)
	ListGrammarLessons(ctx context.Context, userID string) ([]int, error)
}
