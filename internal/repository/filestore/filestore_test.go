package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lingua-tutor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewUserStore(dir)
	ctx := context.Background()

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	user := &domain.User{
		StudentID:    "s001",
		PasswordHash: "hash",
		IsAdmin:      true,
		Language:     "chinese",
		CreatedAt:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByStudentID(ctx, "s001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.IsAdmin)

	missing, err := store.GetUserByStudentID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserStore_UpdateAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewUserStore(dir)
	ctx := context.Background()

	user := &domain.User{StudentID: "s001", Language: "chinese", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.CreateUser(ctx, user))

	user.IsAdmin = true
	require.NoError(t, store.UpdateUser(ctx, user))

	got, err := store.GetUserByStudentID(ctx, "s001")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	err = store.UpdateUser(ctx, &domain.User{StudentID: "ghost"})
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)

	require.NoError(t, store.DeleteUser(ctx, "s001"))
	got, err = store.GetUserByStudentID(ctx, "s001")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserStore_CorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644))
	store := NewUserStore(dir)

	count, err := store.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestWordStore_SequentialIDs(t *testing.T) {
	dir := t.TempDir()
	store := NewWordStore(dir)
	ctx := context.Background()

	require.NoError(t, store.InsertWords(ctx, []domain.VocabularyEntry{
		{UserID: "s001", Lesson: 1, Word: "你好"},
		{UserID: "s001", Lesson: 1, Word: "再见"},
	}))
	require.NoError(t, store.InsertWords(ctx, []domain.VocabularyEntry{
		{UserID: "s001", Lesson: 2, Word: "学生"},
	}))

	words, err := store.ListWords(ctx, domain.ContentFilter{UserID: "s001"})
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, int64(1), words[0].ID)
	assert.Equal(t, int64(2), words[1].ID)
	assert.Equal(t, int64(3), words[2].ID)
}

func TestWordStore_FiltersByUserAndLesson(t *testing.T) {
	dir := t.TempDir()
	store := NewWordStore(dir)
	ctx := context.Background()

	require.NoError(t, store.InsertWords(ctx, []domain.VocabularyEntry{
		{UserID: "s001", Lesson: 1, Word: "你好"},
		{UserID: "s001", Lesson: 2, Word: "学生"},
		{UserID: "s002", Lesson: 1, Word: "再见"},
	}))

	lesson := 1
	words, err := store.ListWords(ctx, domain.ContentFilter{UserID: "s001", Lesson: &lesson})
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "你好", words[0].Word)

	lessons, err := store.ListWordLessons(ctx, "s001")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, lessons)

	lessons, err = store.ListWordLessons(ctx, "s002")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, lessons)
}

func TestGrammarStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewGrammarStore(dir)
	ctx := context.Background()

	require.NoError(t, store.InsertGrammar(ctx, []domain.GrammarEntry{
		{UserID: "s001", Lesson: 1, Title: "是構文", Description: "主語+是+名詞", ExampleSource: "我是学生", ExampleTarget: "私は学生です"},
	}))

	entries, err := store.ListGrammar(ctx, domain.ContentFilter{UserID: "s001"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ID)
	assert.Equal(t, "是構文", entries[0].Title)
	assert.Equal(t, "我是学生", entries[0].ExampleSource)

	lessons, err := store.ListGrammarLessons(ctx, "s001")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, lessons)

	other, err := store.ListGrammar(ctx, domain.ContentFilter{UserID: "s002"})
	require.NoError(t, err)
	assert.Empty(t, other)
}
