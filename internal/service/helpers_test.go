package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/models"
	"github.com/noah-isme/quizhub-api/internal/repository"
	"github.com/noah-isme/quizhub-api/internal/validator"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validator {
	return validator.New()
}

type memoryQuizRepo struct {
	mu      sync.Mutex
	nextID  uint
	quizzes map[uint]models.Quiz
}

func newMemoryQuizRepo() *memoryQuizRepo {
	return &memoryQuizRepo{quizzes: map[uint]models.Quiz{}}
}

func (r *memoryQuizRepo) List(ctx context.Context, filter repository.QuizFilter) ([]models.Quiz, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint, 0, len(r.quizzes))
	for id, quiz := range r.quizzes {
		if filter.Genre != "" && !strings.EqualFold(quiz.Genre, filter.Genre) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	total := int64(len(ids))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(ids) {
		start = len(ids)
	}
	end := start + filter.PageSize
	if end > len(ids) {
		end = len(ids)
	}

	result := make([]models.Quiz, 0, end-start)
	for _, id := range ids[start:end] {
		result = append(result, r.quizzes[id])
	}
	return result, total, nil
}

func (r *memoryQuizRepo) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return models.Quiz{}, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (r *memoryQuizRepo) QuestionKeys(ctx context.Context, quizID uint) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := map[string]struct{}{}
	for _, question := range r.quizzes[quizID].Questions {
		keys[question.Key] = struct{}{}
	}
	return keys, nil
}

func (r *memoryQuizRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, quiz := range r.quizzes {
		if strings.EqualFold(quiz.Title, strings.TrimSpace(title)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	quiz.ID = r.nextID
	for i := range quiz.Questions {
		quiz.Questions[i].QuizID = quiz.ID
	}
	r.quizzes[quiz.ID] = *quiz
	return nil
}

func (r *memoryQuizRepo) Replace(ctx context.Context, quiz *models.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.quizzes[quiz.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	quiz.CreatedBy = stored.CreatedBy
	quiz.CreatedAt = stored.CreatedAt
	r.quizzes[quiz.ID] = *quiz
	return nil
}

func (r *memoryQuizRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quizzes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.quizzes, id)
	return nil
}

type memoryAttemptRepo struct {
	mu       sync.Mutex
	attempts []models.QuizAttempt
	err      error
}

func (r *memoryAttemptRepo) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	attempt.ID = uint(len(r.attempts) + 1)
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *memoryAttemptRepo) Stats(ctx context.Context, quizID uint) (models.QuizAttemptStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stats models.QuizAttemptStats
	var sum int
	for _, attempt := range r.attempts {
		if attempt.QuizID != quizID {
			continue
		}
		stats.Attempts++
		sum += attempt.Score
		if attempt.Score > stats.BestScore {
			stats.BestScore = attempt.Score
		}
		if attempt.TotalPossible > stats.TotalPossible {
			stats.TotalPossible = attempt.TotalPossible
		}
	}
	if stats.Attempts > 0 {
		stats.AverageScore = float64(sum) / float64(stats.Attempts)
	}
	return stats, nil
}

type recordingInvalidator struct {
	mu  sync.Mutex
	ids []uint
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, quizID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, quizID)
}
