package filestore

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"lingua-tutor/internal/domain"
)

const wordsFile = "words.json"

type wordRecord struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"user_id"`
	Lesson       int        `json:"lesson"`
	Word         string     `json:"word"`
	Pinyin       string     `json:"pinyin"`
	Meaning      string     `json:"meaning"`
	CorrectCount int        `json:"correct_count"`
	MissCount    int        `json:"miss_count"`
	LastReviewed *time.Time `json:"last_reviewed"`
}

// WordStore implements domain.WordRepository on a local JSON file.
type WordStore struct {
	file jsonFile
}

// NewWordStore creates a word store backed by words.json under dataDir.
func NewWordStore(dataDir string) *WordStore {
	return &WordStore{file: jsonFile{path: filepath.Join(dataDir, wordsFile)}}
}

func (s *WordStore) InsertWords(ctx context.Context, entries []domain.VocabularyEntry) error {
	if len(entries) == 0 {
		return nil
	}
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records := []wordRecord{}
	if err := s.file.load(&records); err != nil {
		return err
	}
	// Fallback ids are sequential within this file, independent of the
	// primary backend's id scheme.
	nextID := int64(len(records)) + 1
	for _, e := range entries {
		records = append(records, wordRecord{
			ID:           nextID,
			UserID:       e.UserID,
			Lesson:       e.Lesson,
			Word:         e.Word,
			Pinyin:       e.Pinyin,
			Meaning:      e.Meaning,
			CorrectCount: e.CorrectCount,
			MissCount:    e.MissCount,
			LastReviewed: e.LastReviewed,
		})
		nextID++
	}
	return s.file.store(records)
}

func (s *WordStore) ListWords(ctx context.Context, filter domain.ContentFilter) ([]domain.VocabularyEntry, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records := []wordRecord{}
	if err := s.file.load(&records); err != nil {
		return nil, err
	}
	entries := []domain.VocabularyEntry{}
	for _, r := range records {
		if r.UserID != filter.UserID {
			continue
		}
		if filter.Lesson != nil && r.Lesson != *filter.Lesson {
			continue
		}
		entries = append(entries, domain.VocabularyEntry{
			ID:           r.ID,
			UserID:       r.UserID,
			Lesson:       r.Lesson,
			Word:         r.Word,
			Pinyin:       r.Pinyin,
			Meaning:      r.Meaning,
			CorrectCount: r.CorrectCount,
			MissCount:    r.MissCount,
			LastReviewed: r.LastReviewed,
		})
	}
	return entries, nil
}

func (s *WordStore) ListWordLessons(ctx context.Context, userID string) ([]int, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records := []wordRecord{}
	if err := s.file.load(&records); err != nil {
		return nil, err
	}
	seen := map[int]struct{}{}
	lessons := []int{}
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		if _, ok := seen[r.Lesson]; !ok {
			seen[r.Lesson] = struct{}{}
			lessons = append(lessons, r.Lesson)
		}
	}
	sort.Ints(lessons)
	return lessons, nil
}

var _ domain.WordRepository = (*WordStore)(nil)
