package dto

import (
	"time"

	"github.com/noah-isme/quizhub-api/internal/quiz"
)

// SubmitAnswersRequest carries the answers of one quiz attempt keyed by question id.
type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers" validate:"max=500"`
}

// AnswerResultResponse is the per-question breakdown of a graded attempt.
type AnswerResultResponse struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// GradeResponse is returned after a quiz has been submitted.
type GradeResponse struct {
	QuizID       uint                   `json:"quiz_id"`
	QuizTitle    string                 `json:"quiz_title"`
	AttemptID    *uint                  `json:"attempt_id,omitempty"`
	Score        int                    `json:"score"`
	Total        int                    `json:"total"`
	CorrectCount int                    `json:"correct_count"`
	Details      []AnswerResultResponse `json:"details"`
}

// NewGradeResponse converts a grading result into its wire form.
func NewGradeResponse(quizID uint, title string, result quiz.GradeResult) GradeResponse {
	details := make([]AnswerResultResponse, 0, len(result.PerQuestion))
	for _, item := range result.PerQuestion {
		details = append(details, AnswerResultResponse{
			QuestionID:    item.QuestionID,
			Question:      item.QuestionText,
			UserAnswer:    item.SubmittedAnswer,
			CorrectAnswer: item.CorrectAnswer,
			IsCorrect:     item.IsCorrect,
		})
	}

	return GradeResponse{
		QuizID:       quizID,
		QuizTitle:    title,
		Score:        result.Score,
		Total:        result.TotalPossible,
		CorrectCount: result.CorrectCount(),
		Details:      details,
	}
}

// QuizStatsResponse aggregates the attempts of one quiz.
type QuizStatsResponse struct {
	QuizID        uint    `json:"quiz_id"`
	Attempts      int64   `json:"attempts"`
	AverageScore  float64 `json:"average_score"`
	BestScore     int     `json:"best_score"`
	TotalPossible int     `json:"total_possible"`
}

// AttemptGradedEvent is published after a submission has been graded.
type AttemptGradedEvent struct {
	QuizID        uint      `json:"quiz_id"`
	AttemptID     uint      `json:"attempt_id,omitempty"`
	Score         int       `json:"score"`
	TotalPossible int       `json:"total_possible"`
	CorrectCount  int       `json:"correct_count"`
	QuestionCount int       `json:"question_count"`
	GradedAt      time.Time `json:"graded_at"`
}
