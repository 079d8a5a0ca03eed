package dto

// QuizSeedBundle is the document accepted by the quiz seeding tool.
type QuizSeedBundle struct {
	Quizzes []QuizRequest `json:"quizzes"`
}

// SeedResultResponse reports what a seeding run changed.
type SeedResultResponse struct {
	Created []uint   `json:"created"`
	Skipped []string `json:"skipped"`
}
