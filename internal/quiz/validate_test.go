package quiz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/quizhub-api/internal/quiz"
)

func validDraft() quiz.QuizDraft {
	return quiz.QuizDraft{
		Title:       "  JavaScript Basics ",
		Genre:       "Programming",
		Description: "Test your fundamentals of JS.",
		Questions: []quiz.QuestionDraft{
			{
				Kind:          quiz.KindMultipleChoice,
				Text:          "Which company created JavaScript?",
				Options:       []string{"Google", " Netscape ", "Microsoft", "Mozilla"},
				CorrectAnswer: "Netscape ",
			},
			{
				Kind:          quiz.KindTrueFalse,
				Text:          "JavaScript is the same as Java.",
				Options:       []string{"stale", "", "", ""},
				CorrectAnswer: "false",
			},
			{
				Kind:          quiz.KindFreeText,
				Text:          "What does ES6 stand for?",
				CorrectAnswer: " ECMAScript 6",
			},
		},
	}
}

func fieldErrors(t *testing.T, err error) quiz.FieldErrors {
	t.Helper()
	var validationErr *quiz.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected *quiz.ValidationError, got %v", err)
	return validationErr.Fields
}

func TestValidateTrimsAndDropsStaleOptions(t *testing.T) {
	validated, err := quiz.Validate(validDraft())
	require.NoError(t, err)

	require.Equal(t, "JavaScript Basics", validated.Title)
	require.Len(t, validated.Questions, 3)

	mcq, ok := validated.Questions[0].(quiz.MultipleChoice)
	require.True(t, ok)
	require.Equal(t, []string{"Google", "Netscape", "Microsoft", "Mozilla"}, mcq.Options)
	require.Equal(t, "Netscape", mcq.CorrectAnswer)

	tf, ok := validated.Questions[1].(quiz.TrueFalse)
	require.True(t, ok)
	require.Nil(t, tf.Choices())
	require.Equal(t, "false", tf.CorrectAnswer)

	text, ok := validated.Questions[2].(quiz.FreeText)
	require.True(t, ok)
	require.Equal(t, "ECMAScript 6", text.CorrectAnswer)
}

func TestValidateIsIdempotent(t *testing.T) {
	first, err := quiz.Validate(validDraft())
	require.NoError(t, err)

	second, err := quiz.Validate(first.Draft())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestValidateReportsEveryQuizField(t *testing.T) {
	draft := validDraft()
	draft.Title = ""
	draft.Genre = "   "
	draft.Description = "\t"

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)

	require.Equal(t, []string{quiz.FieldDescription, quiz.FieldGenre, quiz.FieldTitle}, fields.Keys())
}

func TestValidateRequiresQuestions(t *testing.T) {
	draft := validDraft()
	draft.Questions = nil

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Contains(t, fields, quiz.FieldQuestions)
}

func TestValidateBlankTitleAndBlankOption(t *testing.T) {
	draft := quiz.QuizDraft{
		Title:       "",
		Genre:       "GK",
		Description: "A quick quiz.",
		Questions: []quiz.QuestionDraft{{
			Kind:          quiz.KindMultipleChoice,
			Text:          "Pick A",
			Options:       []string{"A", "B", "", "D"},
			CorrectAnswer: "A",
		}},
	}

	validated, err := quiz.Validate(draft)
	require.Equal(t, quiz.Quiz{}, validated)

	fields := fieldErrors(t, err)
	require.Len(t, fields, 2)
	require.Equal(t, "title is required", fields[quiz.FieldTitle])
	require.Equal(t, "option cannot be empty", fields[quiz.OptionField(0, 2)])
	require.Equal(t, "question[0].option[2]", quiz.OptionField(0, 2))
}

func TestValidateMultipleChoiceAnswerMustMatchExactly(t *testing.T) {
	draft := validDraft()
	draft.Questions[0].CorrectAnswer = "netscape"

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Equal(t, "must match one of the options exactly", fields[quiz.QuestionField(0, "correctAnswer")])
}

func TestValidateMultipleChoiceOptionCount(t *testing.T) {
	draft := validDraft()
	draft.Questions[0].Options = []string{"Google", "Netscape"}

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Contains(t, fields, quiz.QuestionField(0, "options"))
	require.NotContains(t, fields, quiz.QuestionField(0, "correctAnswer"))
}

func TestValidateTrueFalseMembership(t *testing.T) {
	for _, answer := range []string{"True", "FALSE", " true "} {
		draft := validDraft()
		draft.Questions[1].CorrectAnswer = answer
		_, err := quiz.Validate(draft)
		require.NoError(t, err, answer)
	}

	draft := validDraft()
	draft.Questions[1].CorrectAnswer = "yes"
	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Equal(t, "must be 'True' or 'False'", fields[quiz.QuestionField(1, "correctAnswer")])
}

func TestValidateQuestionsIndependently(t *testing.T) {
	draft := validDraft()
	draft.Questions[0].Text = " "
	draft.Questions[2].CorrectAnswer = ""

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Equal(t, []string{
		quiz.QuestionField(0, "text"),
		quiz.QuestionField(2, "correctAnswer"),
	}, fields.Keys())
}

func TestValidateUnknownKind(t *testing.T) {
	draft := validDraft()
	draft.Questions[2].Kind = quiz.ParseKind("essay")

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Contains(t, fields, quiz.QuestionField(2, "kind"))
}

func TestValidateAfterKindSwitchReportsMissingAnswer(t *testing.T) {
	draft := validDraft()
	draft.Questions[0] = quiz.ChangeKind(draft.Questions[0], quiz.KindTrueFalse)

	_, err := quiz.Validate(draft)
	fields := fieldErrors(t, err)
	require.Equal(t, "correct answer is required", fields[quiz.QuestionField(0, "correctAnswer")])
	require.Len(t, fields, 1)
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	err := &quiz.ValidationError{Fields: quiz.FieldErrors{
		quiz.FieldTitle: "title is required",
		quiz.FieldGenre: "genre is required",
	}}
	require.Equal(t, "quiz validation failed: quiz.genre: genre is required; quiz.title: title is required", err.Error())
}

func TestValidateKeepsAngleBracketsInText(t *testing.T) {
	draft := validDraft()
	draft.Title = " Java Generics: List<T> "
	draft.Description = "Know when a<b and b>c"

	validated, err := quiz.Validate(draft)
	require.NoError(t, err)
	require.Equal(t, "Java Generics: List<T>", validated.Title)
	require.Equal(t, "Know when a<b and b>c", validated.Description)
	require.Equal(t, quiz.NormalizeText(draft.Title), validated.Title)
}
