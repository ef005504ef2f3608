package survey

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MaxTitleLength         = 200
	MaxDescriptionLength   = 1000
	MaxQuestionTitleLength = 500
	MaxQuestionsPerSurvey  = 100
	MaxTextAnswerLength    = 5000
)

var ErrInvalidQuestion = errors.New("invalid question")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// ValidateQuestion checks a question against the rules of its type. Choice
// types need at least two unique, non-blank options and scale questions need
// at least two ascending numeric labels.
func ValidateQuestion(q Question) error {
	if err := validate.Var(q.Title, fmt.Sprintf("notblank,max=%d", MaxQuestionTitleLength)); err != nil {
		return fmt.Errorf("%w: title must be present and at most %d characters", ErrInvalidQuestion, MaxQuestionTitleLength)
	}

	switch q.Type {
	case Text:
		return nil
	case MultipleChoice, Checkbox, Dropdown:
		if err := validate.Var(q.Options, "min=2,unique,dive,notblank"); err != nil {
			return fmt.Errorf("%w: %s questions need at least 2 unique, non-empty options", ErrInvalidQuestion, q.Type)
		}
		return nil
	case Scale:
		if err := validate.Var(q.Options, "min=2,unique,dive,number"); err != nil {
			return fmt.Errorf("%w: scale questions need at least 2 numeric labels", ErrInvalidQuestion)
		}
		prev := 0
		for i, option := range q.Options {
			n, _ := strconv.Atoi(option)
			if i > 0 && n <= prev {
				return fmt.Errorf("%w: scale labels must be in ascending order", ErrInvalidQuestion)
			}
			prev = n
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestion, q.Type)
	}
}

// ScaleOptions builds the labels min..max for a scale question.
func ScaleOptions(min, max int) []string {
	if max < min {
		return nil
	}
	options := make([]string, 0, max-min+1)
	for i := min; i <= max; i++ {
		options = append(options, strconv.Itoa(i))
	}
	return options
}

var ErrInvalidAnswer = errors.New("invalid answer")

// ValidateAnswers checks a submission against the survey's questions: every
// answer must target a question of s, required questions must be answered,
// option-based answers must use the question's options and only checkbox
// questions take more than one value.
func ValidateAnswers(s Survey, answers []Answer) error {
	questions := make(map[string]Question, len(s.Questions))
	for _, q := range s.Questions {
		questions[q.ID] = q
	}

	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return fmt.Errorf("%w: question %s is not part of this survey", ErrInvalidAnswer, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return fmt.Errorf("%w: question %s answered more than once", ErrInvalidAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		if err := validateAnswer(q, a); err != nil {
			return err
		}
	}

	for _, q := range s.Questions {
		if q.Required && !seen[q.ID] {
			return fmt.Errorf("%w: %q is required", ErrInvalidAnswer, q.Title)
		}
	}
	return nil
}

func validateAnswer(q Question, a Answer) error {
	qt := NormalizeType(string(q.Type))

	if len(a.Value) == 0 {
		if q.Required {
			return fmt.Errorf("%w: %q is required", ErrInvalidAnswer, q.Title)
		}
		return nil
	}
	if qt != Checkbox && len(a.Value) > 1 {
		return fmt.Errorf("%w: %q takes a single answer", ErrInvalidAnswer, q.Title)
	}

	if qt == Text {
		if q.Required && validate.Var(a.Value[0], "notblank") != nil {
			return fmt.Errorf("%w: %q is required", ErrInvalidAnswer, q.Title)
		}
		if validate.Var(a.Value[0], fmt.Sprintf("max=%d", MaxTextAnswerLength)) != nil {
			return fmt.Errorf("%w: %q answers are limited to %d characters", ErrInvalidAnswer, q.Title, MaxTextAnswerLength)
		}
		return nil
	}

	if !qt.HasOptions() {
		return nil
	}
	if err := validate.Var(a.Value, "unique"); err != nil {
		return fmt.Errorf("%w: %q has repeated options", ErrInvalidAnswer, q.Title)
	}
	for _, v := range a.Value {
		if !containsOption(q.Options, v) {
			return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidAnswer, v, q.Title)
		}
	}
	return nil
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
