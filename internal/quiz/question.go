// Package quiz holds the quiz domain model together with the authoring
// validator and the answer grader. Everything in here is pure: no I/O, no
// package-level mutable state, safe to call concurrently on distinct inputs.
package quiz

import "strings"

// Kind names a question variant.
type Kind string

const (
	// KindMultipleChoice is a single-answer question with a fixed option list.
	KindMultipleChoice Kind = "mcq"
	// KindTrueFalse accepts "True" or "False".
	KindTrueFalse Kind = "truefalse"
	// KindFreeText is graded by exact (case-insensitive) text match.
	KindFreeText Kind = "text"
)

// OptionCount is the number of options every multiple choice question carries.
const OptionCount = 4

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindFreeText:
		return true
	default:
		return false
	}
}

// ParseKind normalises a raw kind string. Unknown values are returned as-is
// so the validator can report them.
func ParseKind(raw string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(raw)))
}

// Question is implemented by exactly three types: MultipleChoice, TrueFalse
// and FreeText.
type Question interface {
	Kind() Kind
	Identifier() string
	Prompt() string
	Answer() string
	Choices() []string
	question()
}

// MultipleChoice is a question whose correct answer is one of its options.
type MultipleChoice struct {
	ID            string
	Text          string
	Options       []string
	CorrectAnswer string
}

// TrueFalse is a question answered with "True" or "False".
type TrueFalse struct {
	ID            string
	Text          string
	CorrectAnswer string
}

// FreeText is a question answered with arbitrary text.
type FreeText struct {
	ID            string
	Text          string
	CorrectAnswer string
}

func (MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (TrueFalse) Kind() Kind      { return KindTrueFalse }
func (FreeText) Kind() Kind       { return KindFreeText }

func (q MultipleChoice) Identifier() string { return q.ID }
func (q TrueFalse) Identifier() string      { return q.ID }
func (q FreeText) Identifier() string       { return q.ID }

func (q MultipleChoice) Prompt() string { return q.Text }
func (q TrueFalse) Prompt() string      { return q.Text }
func (q FreeText) Prompt() string       { return q.Text }

func (q MultipleChoice) Answer() string { return q.CorrectAnswer }
func (q TrueFalse) Answer() string      { return q.CorrectAnswer }
func (q FreeText) Answer() string       { return q.CorrectAnswer }

// Choices returns a copy of the option list.
func (q MultipleChoice) Choices() []string {
	return append([]string(nil), q.Options...)
}

func (TrueFalse) Choices() []string { return nil }
func (FreeText) Choices() []string  { return nil }

func (MultipleChoice) question() {}
func (TrueFalse) question()      {}
func (FreeText) question()       {}
