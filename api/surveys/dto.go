package surveys

import (
	"time"

	"github.com/Adedunmol/pulso/survey"
)

type CreateSurveyBody struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateSurveyBody struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type PublishSurveyBody struct {
	DurationValue *int   `json:"duration_value" validate:"omitempty,min=1,max=10000"`
	DurationUnit  string `json:"duration_unit" validate:"omitempty,oneof=none minutes hours days"`
}

type QuestionBody struct {
	Title    string   `json:"title" validate:"notblank,max=500"`
	Type     string   `json:"type" validate:"required"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	Order    int      `json:"order" validate:"min=0"`
	ImageURL string   `json:"image_url" validate:"omitempty,url"`
}

type AnswerBody struct {
	QuestionID string   `json:"question_id" validate:"required"`
	Value      []string `json:"value"`
}

type SubmitResponseBody struct {
	Answers []AnswerBody `json:"answers" validate:"required,dive"`
}

// SurveyView is a survey as the API returns it, with its expiry evaluated at
// request time.
type SurveyView struct {
	survey.Survey
	IsExpired bool `json:"is_expired"`
}

func NewSurveyView(s survey.Survey, now time.Time) SurveyView {
	if s.Questions == nil {
		s.Questions = []survey.Question{}
	}
	return SurveyView{Survey: s, IsExpired: survey.IsExpiredAt(s.ExpiresAt, now)}
}

func (b QuestionBody) toQuestion(surveyID string) survey.Question {
	qt := survey.NormalizeType(b.Type)
	options := b.Options
	if options == nil || !qt.HasOptions() {
		options = []string{}
	}
	return survey.Question{
		SurveyID: surveyID,
		Title:    b.Title,
		Type:     qt,
		Options:  options,
		Required: b.Required,
		Order:    b.Order,
		ImageURL: b.ImageURL,
	}
}

func (b SubmitResponseBody) toAnswers() []survey.Answer {
	answers := make([]survey.Answer, 0, len(b.Answers))
	for _, a := range b.Answers {
		value := a.Value
		if value == nil {
			value = []string{}
		}
		answers = append(answers, survey.Answer{QuestionID: a.QuestionID, Value: value})
	}
	return answers
}
