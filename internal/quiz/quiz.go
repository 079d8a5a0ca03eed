package quiz

import "strconv"

// Quiz is a validated quiz. Values are produced by Validate (or rebuilt from
// storage) and treated as immutable afterwards.
type Quiz struct {
	ID          string
	Title       string
	Genre       string
	Description string
	Questions   []Question
}

// QuizDraft is the editable, not yet validated form of a quiz.
type QuizDraft struct {
	Title       string
	Genre       string
	Description string
	Questions   []QuestionDraft
}

// QuestionDraft is the editable form of a single question. Options are only
// meaningful for multiple choice drafts.
type QuestionDraft struct {
	ID            string
	Kind          Kind
	Text          string
	Options       []string
	CorrectAnswer string
}

// Identify returns the identifier used to look up answers for the question
// at index. Questions without a stored identifier fall back to their
// position, so the same answer set always maps to the same questions.
func Identify(q Quiz, index int) string {
	if index >= 0 && index < len(q.Questions) {
		if id := q.Questions[index].Identifier(); id != "" {
			return id
		}
	}
	return strconv.Itoa(index)
}

// Draft converts the quiz back into its editable form.
func (q Quiz) Draft() QuizDraft {
	draft := QuizDraft{
		Title:       q.Title,
		Genre:       q.Genre,
		Description: q.Description,
		Questions:   make([]QuestionDraft, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		draft.Questions = append(draft.Questions, QuestionDraft{
			ID:            question.Identifier(),
			Kind:          question.Kind(),
			Text:          question.Prompt(),
			Options:       question.Choices(),
			CorrectAnswer: question.Answer(),
		})
	}
	return draft
}

// NewQuestionDraft returns the initial state of a freshly added question: a
// multiple choice question with blank options.
func NewQuestionDraft() QuestionDraft {
	return QuestionDraft{
		Kind:    KindMultipleChoice,
		Options: make([]string, OptionCount),
	}
}

// ChangeKind moves a draft question to another kind. The correct answer is
// always cleared; options are reset to blanks when entering multiple choice
// and dropped when leaving it. Changing to the current kind is a no-op.
func ChangeKind(d QuestionDraft, kind Kind) QuestionDraft {
	if d.Kind == kind {
		return d
	}

	d.Kind = kind
	d.CorrectAnswer = ""
	if kind == KindMultipleChoice {
		d.Options = make([]string, OptionCount)
	} else {
		d.Options = nil
	}
	return d
}
