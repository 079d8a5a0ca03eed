package quiz

import "strings"

// PointsPerQuestion is awarded for every correct answer.
const PointsPerQuestion = 10

// AnswerSet maps a question identifier to the raw submitted answer.
type AnswerSet map[string]string

// QuestionResult is the grading outcome for a single question.
type QuestionResult struct {
	QuestionID      string
	QuestionText    string
	SubmittedAnswer string
	CorrectAnswer   string
	IsCorrect       bool
}

// GradeResult is the outcome of grading a full answer set.
type GradeResult struct {
	Score         int
	TotalPossible int
	PerQuestion   []QuestionResult
}

// CorrectCount returns how many questions were answered correctly.
func (r GradeResult) CorrectCount() int {
	count := 0
	for _, item := range r.PerQuestion {
		if item.IsCorrect {
			count++
		}
	}
	return count
}

// Grade scores answers against q. Missing answers count as blank and extra
// entries are ignored. Results follow the quiz's question order.
func Grade(q Quiz, answers AnswerSet) GradeResult {
	result := GradeResult{
		TotalPossible: PointsPerQuestion * len(q.Questions),
		PerQuestion:   make([]QuestionResult, 0, len(q.Questions)),
	}

	for i, question := range q.Questions {
		id := Identify(q, i)
		submitted := answers[id]
		correct := normalizeAnswer(submitted) == normalizeAnswer(question.Answer())
		if correct {
			result.Score += PointsPerQuestion
		}

		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			QuestionID:      id,
			QuestionText:    question.Prompt(),
			SubmittedAnswer: submitted,
			CorrectAnswer:   question.Answer(),
			IsCorrect:       correct,
		})
	}

	return result
}

func normalizeAnswer(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
