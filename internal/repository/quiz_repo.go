package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/models"
)

// QuizFilter describes pagination & search options for the quiz catalogue.
type QuizFilter struct {
	Genre    string
	Search   string
	Page     int
	PageSize int
}

// QuizRepository defines persistence operations for quizzes and their questions.
type QuizRepository interface {
	List(ctx context.Context, filter QuizFilter) ([]models.Quiz, int64, error)
	GetByID(ctx context.Context, id uint) (models.Quiz, error)
	QuestionKeys(ctx context.Context, quizID uint) (map[string]struct{}, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Replace(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository instantiates a GORM-backed repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *quizRepository) List(ctx context.Context, filter QuizFilter) ([]models.Quiz, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Quiz{})

	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		query = query.Where("LOWER(genre) = ?", strings.ToLower(genre))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var quizzes []models.Quiz
	if err := query.Preload("Questions", orderedQuestions).Find(&quizzes).Error; err != nil {
		return nil, 0, err
	}

	return quizzes, total, nil
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).Preload("Questions", orderedQuestions).First(&quiz, id).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

func (r *quizRepository) QuestionKeys(ctx context.Context, quizID uint) (map[string]struct{}, error) {
	var keys []string
	if err := r.db.WithContext(ctx).Model(&models.QuizQuestion{}).Where("quiz_id = ?", quizID).Pluck("question_key", &keys).Error; err != nil {
		return nil, err
	}

	result := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key != "" {
			result[key] = struct{}{}
		}
	}
	return result, nil
}

func (r *quizRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("LOWER(title) = ?", strings.ToLower(strings.TrimSpace(title))).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

// Replace updates the quiz fields and swaps its full question list in one transaction.
func (r *quizRepository) Replace(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Quiz{}).Where("id = ?", quiz.ID).Updates(map[string]interface{}{
			"title":       quiz.Title,
			"genre":       quiz.Genre,
			"description": quiz.Description,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}

		for i := range quiz.Questions {
			quiz.Questions[i].ID = 0
			quiz.Questions[i].QuizID = quiz.ID
		}
		if len(quiz.Questions) > 0 {
			if err := tx.Create(&quiz.Questions).Error; err != nil {
				return err
			}
		}

		var stored models.Quiz
		if err := tx.Preload("Questions", orderedQuestions).First(&stored, quiz.ID).Error; err != nil {
			return err
		}
		*quiz = stored
		return nil
	})
}

func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&models.QuizAttempt{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Quiz{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
