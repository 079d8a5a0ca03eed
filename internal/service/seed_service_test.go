package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/quizhub-api/internal/quiz"
)

func newTestSeedService(t *testing.T, repo *memoryQuizRepo, enabled bool) SeedService {
	t.Helper()
	quizzes := newTestQuizService(repo, nil)
	svc, err := NewSeedService(repo, quizzes, enabled, "secret", testLogger())
	require.NoError(t, err)
	return svc
}

func TestSeedServiceTokenGuard(t *testing.T) {
	repo := newMemoryQuizRepo()

	_, err := newTestSeedService(t, repo, false).SeedQuizzes(context.Background(), "secret", nil)
	require.ErrorIs(t, err, ErrSeedDisabled)

	svc := newTestSeedService(t, repo, true)
	_, err = svc.SeedQuizzes(context.Background(), "wrong", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)

	_, err = svc.SeedQuizzes(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedServiceDefaultBundleIsIdempotent(t *testing.T) {
	repo := newMemoryQuizRepo()
	svc := newTestSeedService(t, repo, true)
	ctx := context.Background()

	first, err := svc.SeedQuizzes(ctx, "secret", nil)
	require.NoError(t, err)
	require.Len(t, first.Created, 2)
	require.Empty(t, first.Skipped)

	stored, err := repo.GetByID(ctx, first.Created[1])
	require.NoError(t, err)
	require.Equal(t, "General Knowledge", stored.Title)
	require.Len(t, stored.Questions, 3)

	second, err := svc.SeedQuizzes(ctx, " secret ", nil)
	require.NoError(t, err)
	require.Empty(t, second.Created)
	require.Equal(t, []string{"JavaScript Basics", "General Knowledge"}, second.Skipped)
}

func TestSeedServiceRejectsSchemaViolations(t *testing.T) {
	svc := newTestSeedService(t, newMemoryQuizRepo(), true)

	bundles := []string{
		`not json`,
		`{"quizzes": []}`,
		`{"quizzes": [{"title": "T", "genre": "G", "description": "D", "questions": [{"type": "essay", "question": "Q", "correct_answer": "A"}]}]}`,
	}
	for _, bundle := range bundles {
		_, err := svc.SeedQuizzes(context.Background(), "secret", []byte(bundle))
		require.ErrorIs(t, err, ErrInvalidSeedBundle, bundle)
	}
}

func TestSeedServiceReportsQuizValidationErrors(t *testing.T) {
	svc := newTestSeedService(t, newMemoryQuizRepo(), true)

	bundle := `{"quizzes": [{"title": "Capitals", "genre": "GK", "description": "Capitals", "questions": [
		{"type": "mcq", "question": "Capital of France?", "options": ["Berlin", "Paris", "Madrid", "Rome"], "correct_answer": "paris"}
	]}]}`

	_, err := svc.SeedQuizzes(context.Background(), "secret", []byte(bundle))
	var validationErr *quiz.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Fields, quiz.QuestionField(0, "correctAnswer"))
}

func TestSeedServiceSkipsTitlesAsStored(t *testing.T) {
	repo := newMemoryQuizRepo()
	svc := newTestSeedService(t, repo, true)
	ctx := context.Background()

	bundle := []byte(`{"quizzes": [
		{"title": "  HTML <b>Basics</b> ", "genre": "Web", "description": "Tags and a<b and b>c", "questions": [
			{"type": "truefalse", "question": "<br> is a void element.", "correct_answer": "True"}
		]},
		{"title": "html <B>basics</B>", "genre": "Web", "description": "Duplicate in the same bundle", "questions": [
			{"type": "text", "question": "Tag for a line break?", "correct_answer": "br"}
		]}
	]}`)

	first, err := svc.SeedQuizzes(ctx, "secret", bundle)
	require.NoError(t, err)
	require.Len(t, first.Created, 1)
	require.Equal(t, []string{"html <B>basics</B>"}, first.Skipped)

	stored, err := repo.GetByID(ctx, first.Created[0])
	require.NoError(t, err)
	require.Equal(t, "HTML <b>Basics</b>", stored.Title)

	second, err := svc.SeedQuizzes(ctx, "secret", bundle)
	require.NoError(t, err)
	require.Empty(t, second.Created)
	require.Equal(t, []string{"HTML <b>Basics</b>", "html <B>basics</B>"}, second.Skipped)
	require.Len(t, repo.quizzes, 1)
}
