package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/models"
)

// QuizAttemptRepository records graded attempts and aggregates them.
type QuizAttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	Stats(ctx context.Context, quizID uint) (models.QuizAttemptStats, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

// NewQuizAttemptRepository instantiates a GORM-backed repository.
func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *quizAttemptRepository) Stats(ctx context.Context, quizID uint) (models.QuizAttemptStats, error) {
	var row struct {
		Attempts      int64
		AverageScore  float64
		BestScore     int
		TotalPossible int
	}

	err := r.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Select("COUNT(*) AS attempts, COALESCE(AVG(score), 0) AS average_score, COALESCE(MAX(score), 0) AS best_score, COALESCE(MAX(total_possible), 0) AS total_possible").
		Where("quiz_id = ?", quizID).
		Scan(&row).Error
	if err != nil {
		return models.QuizAttemptStats{}, err
	}

	return models.QuizAttemptStats{
		Attempts:      row.Attempts,
		AverageScore:  row.AverageScore,
		BestScore:     row.BestScore,
		TotalPossible: row.TotalPossible,
	}, nil
}
