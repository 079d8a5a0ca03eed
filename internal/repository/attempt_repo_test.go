package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/quizhub-api/internal/models"
)

func TestQuizAttemptRepositoryStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuizAttemptRepository(db)
	ctx := context.Background()

	empty, err := repo.Stats(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, empty.Attempts)
	require.Zero(t, empty.AverageScore)

	for _, score := range []int{10, 20, 30} {
		require.NoError(t, repo.Create(ctx, &models.QuizAttempt{QuizID: 1, Score: score, TotalPossible: 30, QuestionCount: 3}))
	}
	require.NoError(t, repo.Create(ctx, &models.QuizAttempt{QuizID: 2, Score: 0, TotalPossible: 10, QuestionCount: 1}))

	stats, err := repo.Stats(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.Attempts)
	require.InDelta(t, 20.0, stats.AverageScore, 0.001)
	require.Equal(t, 30, stats.BestScore)
	require.Equal(t, 30, stats.TotalPossible)
}
