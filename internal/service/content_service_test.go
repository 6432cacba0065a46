package service

import (
	"context"
	"testing"

	"lingua-tutor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContentService_GetWords_LessonFilterPassedThrough(t *testing.T) {
	wordRepo := new(MockWordRepository)
	contentService := NewContentService(wordRepo, new(MockGrammarRepository))

	lesson := 2
	wordRepo.On("ListWords", mock.Anything, domain.ContentFilter{UserID: "s001", Lesson: &lesson}).
		Return([]domain.VocabularyEntry{
			{ID: 1, UserID: "s001", Lesson: 2, Word: "你好", Pinyin: "nǐ hǎo", Meaning: "こんにちは"},
		}, nil)

	words, err := contentService.GetWords(context.Background(), "s001", &lesson)

	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "你好", words[0].Word)
	wordRepo.AssertExpectations(t)
}

func TestContentService_GetGrammar_MapsExampleFields(t *testing.T) {
	grammarRepo := new(MockGrammarRepository)
	contentService := NewContentService(new(MockWordRepository), grammarRepo)

	grammarRepo.On("ListGrammar", mock.Anything, domain.ContentFilter{UserID: "s001"}).
		Return([]domain.GrammarEntry{
			{ID: 1, UserID: "s001", Lesson: 1, Title: "是構文", ExampleSource: "我是学生", ExampleTarget: "私は学生です"},
		}, nil)

	grammar, err := contentService.GetGrammar(context.Background(), "s001", nil)

	require.NoError(t, err)
	require.Len(t, grammar, 1)
	assert.Equal(t, "我是学生", grammar[0].ExampleCN)
	assert.Equal(t, "私は学生です", grammar[0].ExampleJP)
}

func TestContentService_GetLessons_SortedUnion(t *testing.T) {
	wordRepo := new(MockWordRepository)
	grammarRepo := new(MockGrammarRepository)
	contentService := NewContentService(wordRepo, grammarRepo)

	wordRepo.On("ListWordLessons", mock.Anything, "s001").Return([]int{3, 1}, nil)
	grammarRepo.On("ListGrammarLessons", mock.Anything, "s001").Return([]int{2, 3}, nil)

	lessons, err := contentService.GetLessons(context.Background(), "s001")

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, lessons)
}

func TestContentService_GetLessons_Empty(t *testing.T) {
	wordRepo := new(MockWordRepository)
	grammarRepo := new(MockGrammarRepository)
	contentService := NewContentService(wordRepo, grammarRepo)

	wordRepo.On("ListWordLessons", mock.Anything, "s001").Return([]int{}, nil)
	grammarRepo.On("ListGrammarLessons", mock.Anything, "s001").Return([]int{}, nil)

	lessons, err := contentService.GetLessons(context.Background(), "s001")

	require.NoError(t, err)
	assert.Empty(t, lessons)
}
