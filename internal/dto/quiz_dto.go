package dto

import (
	"time"

	"github.com/noah-isme/quizhub-api/internal/models"
	"github.com/noah-isme/quizhub-api/internal/quiz"
)

// QuestionRequest is a single question as sent by the authoring UI.
type QuestionRequest struct {
	ID            string   `json:"id" validate:"max=64"`
	Type          string   `json:"type" validate:"max=32"`
	Question      string   `json:"question" validate:"max=2000"`
	Options       []string `json:"options" validate:"max=10,dive,max=500"`
	CorrectAnswer string   `json:"correct_answer" validate:"max=500"`
}

// QuizRequest is the payload for creating or updating a quiz. Only size limits
// are enforced here; content rules belong to the quiz validator.
type QuizRequest struct {
	Title       string            `json:"title" validate:"max=255"`
	Genre       string            `json:"genre" validate:"max=120"`
	Description string            `json:"description" validate:"max=5000"`
	Questions   []QuestionRequest `json:"questions" validate:"max=200,dive"`
}

// ToDraft converts the request into a quiz draft.
func (r QuizRequest) ToDraft() quiz.QuizDraft {
	draft := quiz.QuizDraft{
		Title:       r.Title,
		Genre:       r.Genre,
		Description: r.Description,
		Questions:   make([]quiz.QuestionDraft, 0, len(r.Questions)),
	}
	for _, question := range r.Questions {
		draft.Questions = append(draft.Questions, question.ToDraft())
	}
	return draft
}

// ToDraft converts the request into a question draft.
func (r QuestionRequest) ToDraft() quiz.QuestionDraft {
	return quiz.QuestionDraft{
		ID:            r.ID,
		Kind:          quiz.ParseKind(r.Type),
		Text:          r.Question,
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
	}
}

// NewQuestionRequest converts a question draft back into its wire form.
func NewQuestionRequest(draft quiz.QuestionDraft) QuestionRequest {
	options := draft.Options
	if options == nil {
		options = []string{}
	}
	return QuestionRequest{
		ID:            draft.ID,
		Type:          string(draft.Kind),
		Question:      draft.Text,
		Options:       options,
		CorrectAnswer: draft.CorrectAnswer,
	}
}

// KindTransitionRequest asks for a draft question to be moved to another kind.
type KindTransitionRequest struct {
	Question QuestionRequest `json:"question"`
	Type     string          `json:"type" validate:"required,oneof=mcq truefalse text"`
}

// DraftValidationResponse reports the outcome of validating a draft without saving it.
type DraftValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// QuizListRequest describes filtering and pagination of the quiz catalogue.
type QuizListRequest struct {
	Genre    string
	Search   string
	Page     int
	PageSize int
}

// PaginationMeta describes a paginated result.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// QuizListResponse is a page of quiz summaries.
type QuizListResponse struct {
	Items      []QuizSummaryResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// QuizSummaryResponse is the catalogue entry for a quiz.
type QuizSummaryResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuestionResponse is a question as shown to quiz takers. It never carries the answer.
type QuestionResponse struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AdminQuestionResponse is a question as shown to authors.
type AdminQuestionResponse struct {
	QuestionResponse
	CorrectAnswer string `json:"correct_answer"`
}

// QuizResponse is the public view of a quiz.
type QuizResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Genre       string             `json:"genre"`
	Description string             `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// AdminQuizResponse is the authoring view of a quiz, including answers.
type AdminQuizResponse struct {
	ID          uint                    `json:"id"`
	Title       string                  `json:"title"`
	Genre       string                  `json:"genre"`
	Description string                  `json:"description"`
	CreatedBy   *uint                   `json:"created_by"`
	Questions   []AdminQuestionResponse `json:"questions"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// NewQuizSummaryResponse converts a model into a catalogue entry.
func NewQuizSummaryResponse(model models.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            model.ID,
		Title:         model.Title,
		Genre:         model.Genre,
		Description:   model.Description,
		QuestionCount: len(model.Questions),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewQuizSummaryResponseSlice converts a slice of models into catalogue entries.
func NewQuizSummaryResponseSlice(quizzes []models.Quiz) []QuizSummaryResponse {
	responses := make([]QuizSummaryResponse, 0, len(quizzes))
	for _, item := range quizzes {
		responses = append(responses, NewQuizSummaryResponse(item))
	}
	return responses
}

// NewQuizResponse converts a model into the public view.
func NewQuizResponse(model models.Quiz) QuizResponse {
	domain := model.ToDomain()
	questions := make([]QuestionResponse, 0, len(domain.Questions))
	for i, question := range domain.Questions {
		questions = append(questions, newQuestionResponse(domain, i, question))
	}

	return QuizResponse{
		ID:          model.ID,
		Title:       model.Title,
		Genre:       model.Genre,
		Description: model.Description,
		Questions:   questions,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewAdminQuizResponse converts a model into the authoring view.
func NewAdminQuizResponse(model models.Quiz) AdminQuizResponse {
	domain := model.ToDomain()
	questions := make([]AdminQuestionResponse, 0, len(domain.Questions))
	for i, question := range domain.Questions {
		questions = append(questions, AdminQuestionResponse{
			QuestionResponse: newQuestionResponse(domain, i, question),
			CorrectAnswer:    question.Answer(),
		})
	}

	return AdminQuizResponse{
		ID:          model.ID,
		Title:       model.Title,
		Genre:       model.Genre,
		Description: model.Description,
		CreatedBy:   model.CreatedBy,
		Questions:   questions,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func newQuestionResponse(domain quiz.Quiz, index int, question quiz.Question) QuestionResponse {
	options := question.Choices()
	if options == nil {
		options = []string{}
	}
	return QuestionResponse{
		ID:       quiz.Identify(domain, index),
		Type:     string(question.Kind()),
		Question: question.Prompt(),
		Options:  options,
	}
}
