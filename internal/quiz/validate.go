package quiz

import (
	"fmt"
	"sort"
	"strings"
)

// Field keys for quiz level errors.
const (
	FieldTitle       = "quiz.title"
	FieldGenre       = "quiz.genre"
	FieldDescription = "quiz.description"
	FieldQuestions   = "quiz.questions"
)

// QuestionField returns the error key for a field of the question at index.
func QuestionField(index int, field string) string {
	return fmt.Sprintf("question[%d].%s", index, field)
}

// OptionField returns the error key for one option of a multiple choice question.
func OptionField(index, option int) string {
	return fmt.Sprintf("question[%d].option[%d]", index, option)
}

// FieldErrors maps a field key to the message describing the violated rule.
type FieldErrors map[string]string

// Keys returns the error keys in sorted order.
func (f FieldErrors) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError is returned by Validate when a draft breaks one or more rules.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Fields))
	for _, key := range e.Fields.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return fmt.Sprintf("quiz validation failed: %s", strings.Join(parts, "; "))
}

// NormalizeText is the only correction applied to authored text before it is
// stored: surrounding whitespace is dropped and everything else is kept as typed.
func NormalizeText(value string) string {
	return strings.TrimSpace(value)
}

// Validate checks a draft and, when it is well formed, returns the trimmed
// quiz. Every violated rule is reported; validation never stops at the first
// failure. The returned quiz has no ID, storage assigns one.
func Validate(draft QuizDraft) (Quiz, error) {
	errs := FieldErrors{}

	title := NormalizeText(draft.Title)
	genre := NormalizeText(draft.Genre)
	description := NormalizeText(draft.Description)

	if title == "" {
		errs[FieldTitle] = "title is required"
	}
	if genre == "" {
		errs[FieldGenre] = "genre is required"
	}
	if description == "" {
		errs[FieldDescription] = "description is required"
	}
	if len(draft.Questions) == 0 {
		errs[FieldQuestions] = "at least one question is required"
	}

	questions := make([]Question, 0, len(draft.Questions))
	for i, d := range draft.Questions {
		if q, ok := validateQuestion(i, d, errs); ok {
			questions = append(questions, q)
		}
	}

	if len(errs) > 0 {
		return Quiz{}, &ValidationError{Fields: errs}
	}

	return Quiz{
		Title:       title,
		Genre:       genre,
		Description: description,
		Questions:   questions,
	}, nil
}

func validateQuestion(index int, d QuestionDraft, errs FieldErrors) (Question, bool) {
	before := len(errs)

	id := strings.TrimSpace(d.ID)
	text := NormalizeText(d.Text)
	answer := NormalizeText(d.CorrectAnswer)

	if text == "" {
		errs[QuestionField(index, "text")] = "question text is required"
	}
	if answer == "" {
		errs[QuestionField(index, "correctAnswer")] = "correct answer is required"
	}

	var question Question
	switch d.Kind {
	case KindMultipleChoice:
		options := make([]string, len(d.Options))
		for j, option := range d.Options {
			options[j] = NormalizeText(option)
			if options[j] == "" {
				errs[OptionField(index, j)] = "option cannot be empty"
			}
		}
		if len(options) != OptionCount {
			errs[QuestionField(index, "options")] = fmt.Sprintf("must have exactly %d options", OptionCount)
		}
		if answer != "" && !containsExact(options, answer) {
			errs[QuestionField(index, "correctAnswer")] = "must match one of the options exactly"
		}
		question = MultipleChoice{ID: id, Text: text, Options: options, CorrectAnswer: answer}
	case KindTrueFalse:
		if answer != "" {
			lowered := strings.ToLower(answer)
			if lowered != "true" && lowered != "false" {
				errs[QuestionField(index, "correctAnswer")] = "must be 'True' or 'False'"
			}
		}
		question = TrueFalse{ID: id, Text: text, CorrectAnswer: answer}
	case KindFreeText:
		question = FreeText{ID: id, Text: text, CorrectAnswer: answer}
	default:
		errs[QuestionField(index, "kind")] = fmt.Sprintf("unsupported question kind %q", d.Kind)
	}

	return question, len(errs) == before
}

func containsExact(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
