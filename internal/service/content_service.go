package service

import (
	"context"
	"sort"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
)

// ContentService serves the caller's own study material.
type ContentService interface {
	GetWords(ctx context.Context, userID string, lesson *int) ([]dto.WordResponse, error)
	GetGrammar(ctx context.Context, userID string, lesson *int) ([]dto.GrammarResponse, error)
	GetLessons(ctx context.Context, userID string) ([]int, error)
}

type contentServiceImpl struct {
	wordRepo    domain.WordRepository
	grammarRepo domain.GrammarRepository
}

// NewContentService creates a new instance of ContentService.
func NewContentService(wordRepo domain.WordRepository, grammarRepo domain.GrammarRepository) ContentService {
	return &contentServiceImpl{wordRepo: wordRepo, grammarRepo: grammarRepo}
}

func (s *contentServiceImpl) GetWords(ctx context.Context, userID string, lesson *int) ([]dto.WordResponse, error) {
	entries, err := s.wordRepo.ListWords(ctx, domain.ContentFilter{UserID: userID, Lesson: lesson})
	if err != nil {
		return nil, domain.NewInternalError("failed to list words", err)
	}
	words := make([]dto.WordResponse, 0, len(entries))
	for _, e := range entries {
		words = append(words, dto.WordResponse{
			ID:           e.ID,
			UserID:       e.UserID,
			Lesson:       e.Lesson,
			Word:         e.Word,
			Pinyin:       e.Pinyin,
			Meaning:      e.Meaning,
			CorrectCount: e.CorrectCount,
			MissCount:    e.MissCount,
			LastReviewed: e.LastReviewed,
		})
	}
	return words, nil
}

func (s *contentServiceImpl) GetGrammar(ctx context.Context, userID string, lesson *int) ([]dto.GrammarResponse, error) {
	entries, err := s.grammarRepo.ListGrammar(ctx, domain.ContentFilter{UserID: userID, Lesson: lesson})
	if err != nil {
		return nil, domain.NewInternalError("failed to list grammar", err)
	}
	points := make([]dto.GrammarResponse, 0, len(entries))
	for _, e := range entries {
		points = append(points, dto.GrammarResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			Lesson:      e.Lesson,
			Title:       e.Title,
			Description: e.Description,
			ExampleCN:   e.ExampleSource,
			ExampleJP:   e.ExampleTarget,
		})
	}
	return points, nil
}

// GetLessons returns the sorted union of lessons that have either words
// or grammar for the user.
func (s *contentServiceImpl) GetLessons(ctx context.Context, userID string) ([]int, error) {
	wordLessons, err := s.wordRepo.ListWordLessons(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list word lessons", err)
	}
	grammarLessons, err := s.grammarRepo.ListGrammarLessons(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list grammar lessons", err)
	}

	seen := make(map[int]struct{}, len(wordLessons)+len(grammarLessons))
	lessons := make([]int, 0, len(wordLessons)+len(grammarLessons))
	for _, l := range wordLessons {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			lessons = append(lessons, l)
		}
	}
	for _, l := range grammarLessons {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			lessons = append(lessons, l)
		}
	}
	sort.Ints(lessons)
	return lessons, nil
}
