package results

import (
	"sort"
	"strconv"
	"time"

	"github.com/Adedunmol/pulso/survey"
)

type AnswerCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QuestionResult is derived from the response set on every pass and never
// patched in place.
type QuestionResult struct {
	QuestionID     string              `json:"question_id"`
	QuestionTitle  string              `json:"question_title"`
	QuestionType   survey.QuestionType `json:"question_type"`
	TotalResponses int                 `json:"total_responses"`
	Answers        []AnswerCount       `json:"answers"`
	TextResponses  []string            `json:"text_responses,omitempty"`
	Average        float64             `json:"average,omitempty"`
}

type Summary struct {
	TotalResponses int        `json:"total_responses"`
	LastResponseAt *time.Time `json:"last_response_at,omitempty"`
}

// FlattenAnswers concatenates the values every response gave to questionID,
// in response order and then value order. A checkbox answer contributes one
// entry per selected option.
func FlattenAnswers(responses []survey.Response, questionID string) []string {
	values := []string{}
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.QuestionID == questionID {
				values = append(values, a.Value...)
			}
		}
	}
	return values
}

// AggregateSurvey returns one result per survey question, in question order.
func AggregateSurvey(s survey.Survey, responses []survey.Response) []QuestionResult {
	out := make([]QuestionResult, 0, len(s.Questions))
	for _, q := range s.Questions {
		out = append(out, Aggregate(q, responses))
	}
	return out
}

// Aggregate summarises the answers to a single question. An empty response
// set yields a zeroed result.
func Aggregate(q survey.Question, responses []survey.Response) QuestionResult {
	qt := survey.NormalizeType(string(q.Type))
	values := FlattenAnswers(responses, q.ID)

	result := QuestionResult{
		QuestionID:     q.ID,
		QuestionTitle:  q.Title,
		QuestionType:   qt,
		TotalResponses: len(values),
		Answers:        []AnswerCount{},
	}
	ruleFor(qt).apply(&result, values)
	return result
}

// Summarize reports the response count and the most recent completion time.
func Summarize(responses []survey.Response) Summary {
	s := Summary{TotalResponses: len(responses)}
	for _, r := range responses {
		if r.CompletedAt.IsZero() {
			continue
		}
		if s.LastResponseAt == nil || r.CompletedAt.After(*s.LastResponseAt) {
			last := r.CompletedAt
			s.LastResponseAt = &last
		}
	}
	return s
}

type rule interface {
	apply(result *QuestionResult, values []string)
}

type textRule struct{}

type scaleRule struct{}

type rankedRule struct{}

// ruleFor picks the aggregation for a question type. Every known type must
// have a case here; anything else is ranked like a choice question.
func ruleFor(t survey.QuestionType) rule {
	switch t {
	case survey.Text:
		return textRule{}
	case survey.Scale:
		return scaleRule{}
	case survey.MultipleChoice, survey.Checkbox, survey.Dropdown:
		return rankedRule{}
	default:
		return rankedRule{}
	}
}

func (textRule) apply(result *QuestionResult, values []string) {
	result.TextResponses = values
}

func (scaleRule) apply(result *QuestionResult, values []string) {
	counts := tally(values)
	sort.SliceStable(counts, func(i, j int) bool {
		a, aErr := strconv.Atoi(counts[i].Value)
		b, bErr := strconv.Atoi(counts[j].Value)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		default:
			return false
		}
	})
	result.Answers = counts
	result.Average = average(values)
}

func (rankedRule) apply(result *QuestionResult, values []string) {
	counts := tally(values)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	result.Answers = counts
}

// tally counts distinct values in first-seen order.
func tally(values []string) []AnswerCount {
	index := make(map[string]int, len(values))
	counts := []AnswerCount{}
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, AnswerCount{Value: v, Count: 1})
	}

	total := len(values)
	for i := range counts {
		counts[i].Percentage = percentage(counts[i].Count, total)
	}
	return counts
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func average(values []string) float64 {
	sum, n := 0, 0
	for _, v := range values {
		if i, err := strconv.Atoi(v); err == nil {
			sum += i
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
