package results

import (
	"time"

	core "github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
	"github.com/shopspring/decimal"
)

const displayPlaces = 2

type AnswerView struct {
	Value      string          `json:"value"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

type QuestionView struct {
	QuestionID     string              `json:"question_id"`
	Title          string              `json:"title"`
	Type           survey.QuestionType `json:"type"`
	TypeLabel      string              `json:"type_label"`
	TotalResponses int                 `json:"total_responses"`
	Answers        []AnswerView        `json:"answers"`
	TextResponses  []string            `json:"text_responses,omitempty"`
	Average        *decimal.Decimal    `json:"average,omitempty"`
}

// ResultsView is the results payload served over HTTP and the live socket.
// Percentages and averages are rounded for display only.
type ResultsView struct {
	SurveyID    string         `json:"survey_id"`
	Title       string         `json:"title"`
	IsPublished bool           `json:"is_published"`
	IsExpired   bool           `json:"is_expired"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	Summary     core.Summary   `json:"summary"`
	Questions   []QuestionView `json:"questions"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// LiveMessage is one frame of the live results stream.
type LiveMessage struct {
	State   core.State   `json:"state"`
	Error   string       `json:"error,omitempty"`
	Results *ResultsView `json:"results,omitempty"`
}

// NewResultsView renders a loaded snapshot. It returns nil when the snapshot
// holds no survey.
func NewResultsView(snap core.Snapshot, now time.Time) *ResultsView {
	if snap.Survey == nil {
		return nil
	}
	s := snap.Survey

	view := &ResultsView{
		SurveyID:    s.ID,
		Title:       s.Title,
		IsPublished: s.IsPublished,
		IsExpired:   survey.IsExpiredAt(s.ExpiresAt, now),
		ExpiresAt:   s.ExpiresAt,
		Summary:     snap.Summary,
		Questions:   make([]QuestionView, 0, len(snap.Results)),
		UpdatedAt:   snap.UpdatedAt,
	}

	for _, r := range snap.Results {
		q := QuestionView{
			QuestionID:     r.QuestionID,
			Title:          r.QuestionTitle,
			Type:           r.QuestionType,
			TypeLabel:      survey.TypeLabel(r.QuestionType),
			TotalResponses: r.TotalResponses,
			Answers:        make([]AnswerView, 0, len(r.Answers)),
			TextResponses:  r.TextResponses,
		}
		for _, a := range r.Answers {
			q.Answers = append(q.Answers, AnswerView{
				Value:      a.Value,
				Count:      a.Count,
				Percentage: decimal.NewFromFloat(a.Percentage).Round(displayPlaces),
			})
		}
		if r.QuestionType == survey.Scale {
			avg := decimal.NewFromFloat(r.Average).Round(displayPlaces)
			q.Average = &avg
		}
		view.Questions = append(view.Questions, q)
	}

	return view
}
