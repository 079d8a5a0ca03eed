package models

import "time"

// QuizAttempt records the outcome of one graded submission.
type QuizAttempt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuizID        uint      `gorm:"not null;index" json:"quiz_id"`
	Score         int       `gorm:"not null" json:"score"`
	TotalPossible int       `gorm:"not null" json:"total_possible"`
	CorrectCount  int       `gorm:"not null" json:"correct_count"`
	QuestionCount int       `gorm:"not null" json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizAttemptStats aggregates attempts of a single quiz.
type QuizAttemptStats struct {
	Attempts      int64
	AverageScore  float64
	BestScore     int
	TotalPossible int
}
