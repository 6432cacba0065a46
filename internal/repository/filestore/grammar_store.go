package filestore

import (
	"context"
	"path/filepath"
	"sort"

	"lingua-tutor/internal/domain"
)

const grammarFile = "grammar.json"

type grammarRecord struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Lesson      int    `json:"lesson"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ExampleCN   string `json:"example_cn"`
	ExampleJP   string `json:"example_jp"`
}

// GrammarStore implements domain.GrammarRepository on a local JSON file.
type GrammarStore struct {
	file jsonFile
}

// NewGrammarStore creates a grammar store backed by grammar.json under dataDir.
func NewGrammarStore(dataDir string) *GrammarStore {
	return &GrammarStore{file: jsonFile{path: filepath.Join(dataDir, grammarFile)}}
}

func (s *GrammarStore) InsertGrammar(ctx context.Context, entries []domain.GrammarEntry) error {
	if len(entries) == 0 {
		return nil
	}
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records := []grammarRecord{}
	if err := s.file.load(&records); err != nil {
		return err
	}
	nextID := int64(len(records)) + 1
	for _, e := range entries {
		records = append(records, grammarRecord{
			ID:          nextID,
			UserID:      e.UserID,
			Lesson:      e.Lesson,
			Title:       e.Title,
			Description: e.Description,
			ExampleCN:   e.ExampleSource,
			ExampleJP:   e.ExampleTarget,
		})
		nextID++
	}
	return s.file.store(records)
}

func (s *GrammarStore) ListGrammar(ctx context.Context, filter domain.ContentFilter) ([]domain.GrammarEntry, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records := []grammarRecord{}
	if err := s.file.load(&records); err != nil {
		return nil, err
	}
	entries := []domain.GrammarEntry{}
	for _, r := range records {
		if r.UserID != filter.UserID {
			continue
		}
		if filter.Lesson != nil && r.Lesson != *filter.Lesson {
			continue
		}
		entries = append(entries, domain.GrammarEntry{
			ID:            r.ID,
			UserID:        r.UserID,
			Lesson:        r.Lesson,
			Title:         r.Title,
			Description:   r.Description,
			ExampleSource: r.ExampleCN,
			ExampleTarget: r.ExampleJP,
		})
	}
	return entries, nil
}

func (s *GrammarStore) ListGrammarLessons(ctx context.Context, userID string) ([]int, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	records := []grammarRecord{}
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

var _ domain.GrammarRepository = (*GrammarStore)(nil)
