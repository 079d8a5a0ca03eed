package models

import (
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/quizhub-api/internal/quiz"
)

// Quiz is the persisted form of a validated quiz.
type Quiz struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Genre       string         `gorm:"size:120;not null;index" json:"genre"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedBy   *uint          `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions"`
}

// QuizQuestion stores a single question. Key is the stable identifier takers
// submit answers against; it survives edits of the quiz.
type QuizQuestion struct {
	ID            uint           `gorm:"primaryKey" json:"-"`
	QuizID        uint           `gorm:"not null;index" json:"quiz_id"`
	Key           string         `gorm:"column:question_key;size:64;index" json:"key"`
	Position      int            `gorm:"not null" json:"position"`
	Kind          string         `gorm:"size:16;not null" json:"kind"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSON `gorm:"type:json" json:"-"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
}

// SetOptions serializes the option list into the JSON storage column.
func (q *QuizQuestion) SetOptions(options []string) {
	if options == nil {
		options = []string{}
	}
	data, err := json.Marshal(options)
	if err != nil {
		q.Options = datatypes.JSON([]byte("[]"))
		return
	}
	q.Options = datatypes.JSON(data)
}

// OptionList deserializes the stored options.
func (q QuizQuestion) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}

	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil
	}
	if len(options) == 0 {
		return nil
	}

	return options
}

// ToDomain rebuilds the domain question. Rows carry validated data, so an
// unrecognised kind is graded as free text.
func (q QuizQuestion) ToDomain() quiz.Question {
	switch quiz.ParseKind(q.Kind) {
	case quiz.KindMultipleChoice:
		return quiz.MultipleChoice{ID: q.Key, Text: q.Text, Options: q.OptionList(), CorrectAnswer: q.CorrectAnswer}
	case quiz.KindTrueFalse:
		return quiz.TrueFalse{ID: q.Key, Text: q.Text, CorrectAnswer: q.CorrectAnswer}
	default:
		return quiz.FreeText{ID: q.Key, Text: q.Text, CorrectAnswer: q.CorrectAnswer}
	}
}

// ToDomain converts the stored quiz into the grading model.
func (q Quiz) ToDomain() quiz.Quiz {
	questions := make([]quiz.Question, 0, len(q.Questions))
	for _, question := range q.Questions {
		questions = append(questions, question.ToDomain())
	}

	return quiz.Quiz{
		ID:          strconv.FormatUint(uint64(q.ID), 10),
		Title:       q.Title,
		Genre:       q.Genre,
		Description: q.Description,
		Questions:   questions,
	}
}

// NewQuizQuestions maps validated domain questions onto rows, in order.
func NewQuizQuestions(questions []quiz.Question) []QuizQuestion {
	rows := make([]QuizQuestion, 0, len(questions))
	for i, question := range questions {
		row := QuizQuestion{
			Key:           question.Identifier(),
			Position:      i,
			Kind:          string(question.Kind()),
			Text:          question.Prompt(),
			CorrectAnswer: question.Answer(),
		}
		row.SetOptions(question.Choices())
		rows = append(rows, row)
	}
	return rows
}
