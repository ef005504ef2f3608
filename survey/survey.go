package survey

import "time"

type DurationUnit string

const (
	DurationNone    DurationUnit = "none"
	DurationMinutes DurationUnit = "minutes"
	DurationHours   DurationUnit = "hours"
	DurationDays    DurationUnit = "days"
)

type Survey struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	CreatedBy     string       `json:"created_by"`
	IsPublished   bool         `json:"is_published"`
	DurationValue *int         `json:"duration_value,omitempty"`
	DurationUnit  DurationUnit `json:"duration_unit"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	Questions     []Question   `json:"questions"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type Question struct {
	ID       string       `json:"id"`
	SurveyID string       `json:"survey_id"`
	Title    string       `json:"title"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
	Required bool         `json:"required"`
	Order    int          `json:"order"`
	ImageURL string       `json:"image_url,omitempty"`
}

// Response is one respondent's submission. It is never modified after it is stored.
type Response struct {
	ID           string    `json:"id"`
	SurveyID     string    `json:"survey_id"`
	RespondentID string    `json:"respondent_id"`
	Answers      []Answer  `json:"answers"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Answer always carries a list, single-answer question types use a list of length one.
type Answer struct {
	QuestionID string   `json:"question_id"`
	Value      []string `json:"value"`
}

// Expired reports whether the survey's response window has elapsed.
func (s Survey) Expired() bool {
	return IsExpired(s.ExpiresAt)
}

// Owner reports whether userID created the survey.
func (s Survey) Owner(userID string) bool {
	return userID != "" && s.CreatedBy == userID
}

// AnswerFor returns the answer the response holds for questionID.
func (r Response) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}
