package results_test

import (
	"math"
	"testing"
	"time"

	"github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
)

func response(id string, completedAt time.Time, answers ...survey.Answer) survey.Response {
	return survey.Response{ID: id, SurveyID: "s1", RespondentID: id + "@example.com", Answers: answers, CompletedAt: completedAt}
}

func answer(questionID string, values ...string) survey.Answer {
	return survey.Answer{QuestionID: questionID, Value: values}
}

func assertCounts(t *testing.T, got []results.AnswerCount, want []results.AnswerCount) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("answers = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].Value != want[i].Value || got[i].Count != want[i].Count {
			t.Errorf("answers[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if math.Abs(got[i].Percentage-want[i].Percentage) > 1e-9 {
			t.Errorf("answers[%d].Percentage = %v, want %v", i, got[i].Percentage, want[i].Percentage)
		}
	}
}

func TestAggregate(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("multiple choice ranked by count", func(t *testing.T) {
		q := survey.Question{ID: "q1", Title: "Color", Type: "MULTIPLE_CHOICE"}
		responses := []survey.Response{
			response("r1", now, answer("q1", "A")),
			response("r2", now, answer("q1", "B")),
			response("r3", now, answer("q1", "A")),
		}

		got := results.Aggregate(q, responses)

		if got.QuestionType != survey.MultipleChoice {
			t.Errorf("type = %q, want %q", got.QuestionType, survey.MultipleChoice)
		}
		if got.TotalResponses != 3 {
			t.Errorf("total = %d, want 3", got.TotalResponses)
		}
		assertCounts(t, got.Answers, []results.AnswerCount{
			{Value: "A", Count: 2, Percentage: 200.0 / 3},
			{Value: "B", Count: 1, Percentage: 100.0 / 3},
		})
	})

	t.Run("checkbox counts every selection", func(t *testing.T) {
		q := survey.Question{ID: "q1", Type: "CHECKBOX"}
		responses := []survey.Response{
			response("r1", now, answer("q1", "x", "y")),
			response("r2", now, answer("q1", "x")),
		}

		got := results.Aggregate(q, responses)

		if got.TotalResponses != 3 {
			t.Errorf("total = %d, want 3", got.TotalResponses)
		}
		assertCounts(t, got.Answers, []results.AnswerCount{
			{Value: "x", Count: 2, Percentage: 200.0 / 3},
			{Value: "y", Count: 1, Percentage: 100.0 / 3},
		})
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		q := survey.Question{ID: "q1", Type: "dropdown"}
		responses := []survey.Response{
			response("r1", now, answer("q1", "Norte")),
			response("r2", now, answer("q1", "Sur")),
		}

		got := results.Aggregate(q, responses)
		assertCounts(t, got.Answers, []results.AnswerCount{
			{Value: "Norte", Count: 1, Percentage: 50},
			{Value: "Sur", Count: 1, Percentage: 50},
		})
	})

	t.Run("scale sorted numerically with average", func(t *testing.T) {
		q := survey.Question{ID: "q1", Type: "SCALE"}
		responses := []survey.Response{
			response("r1", now, answer("q1", "10")),
			response("r2", now, answer("q1", "2")),
			response("r3", now, answer("q1", "3")),
		}

		got := results.Aggregate(q, responses)

		values := []string{}
		for _, a := range got.Answers {
			values = append(values, a.Value)
		}
		want := []string{"2", "3", "10"}
		for i := range want {
			if i >= len(values) || values[i] != want[i] {
				t.Fatalf("scale order = %v, want %v", values, want)
			}
		}
		if got.Average != 5 {
			t.Errorf("average = %v, want 5", got.Average)
		}
	})

	t.Run("text keeps raw answers", func(t *testing.T) {
		q := survey.Question{ID: "q1", Type: "TEXT"}
		responses := []survey.Response{
			response("r1", now, answer("q1", "Muy bien")),
			response("r2", now, answer("q1", "Regular")),
		}

		got := results.Aggregate(q, responses)

		if len(got.Answers) != 0 {
			t.Errorf("answers = %+v, want none", got.Answers)
		}
		if len(got.TextResponses) != 2 || got.TextResponses[0] != "Muy bien" || got.TextResponses[1] != "Regular" {
			t.Errorf("text responses = %v", got.TextResponses)
		}
		if got.TotalResponses != 2 {
			t.Errorf("total = %d, want 2", got.TotalResponses)
		}
	})

	t.Run("no responses yields zeroed result", func(t *testing.T) {
		q := survey.Question{ID: "q1", Type: "MULTIPLE_CHOICE"}

		got := results.Aggregate(q, nil)

		if got.TotalResponses != 0 {
			t.Errorf("total = %d, want 0", got.TotalResponses)
		}
		if got.Answers == nil || len(got.Answers) != 0 {
			t.Errorf("answers = %#v, want empty slice", got.Answers)
		}
	})

	t.Run("unknown type is ranked", func(t *testing.T) {
		q := survey.Question{ID: "q1", Type: "RANKING_GRID"}
		responses := []survey.Response{
			response("r1", now, answer("q1", "b")),
			response("r2", now, answer("q1", "a")),
			response("r3", now, answer("q1", "a")),
		}

		got := results.Aggregate(q, responses)

		if got.QuestionType != survey.QuestionType("ranking-grid") {
			t.Errorf("type = %q", got.QuestionType)
		}
		if got.Answers[0].Value != "a" {
			t.Errorf("first answer = %q, want a", got.Answers[0].Value)
		}
	})
}

func TestAggregateSurveyPercentagesSumToHundred(t *testing.T) {
	now := time.Now()
	s := survey.Survey{
		ID: "s1",
		Questions: []survey.Question{
			{ID: "q1", Type: "CHECKBOX"},
			{ID: "q2", Type: "TEXT"},
		},
	}
	responses := []survey.Response{
		response("r1", now, answer("q1", "a", "b", "c"), answer("q2", "hola")),
		response("r2", now, answer("q1", "c")),
		response("r3", now, answer("q1", "b", "c")),
	}

	got := results.AggregateSurvey(s, responses)

	if len(got) != 2 || got[0].QuestionID != "q1" || got[1].QuestionID != "q2" {
		t.Fatalf("results not in question order: %+v", got)
	}

	sum, count := 0.0, 0
	for _, a := range got[0].Answers {
		sum += a.Percentage
		count += a.Count
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
	if count != got[0].TotalResponses {
		t.Errorf("counts sum to %d, want %d", count, got[0].TotalResponses)
	}
}

func TestFlattenAnswers(t *testing.T) {
	now := time.Now()
	responses := []survey.Response{
		response("r1", now, answer("q1", "a", "b"), answer("q2", "z")),
		response("r2", now, answer("q2", "y")),
		response("r3", now, answer("q1", "c")),
	}

	got := results.FlattenAnswers(responses, "q1")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	if got := results.FlattenAnswers(responses, "missing"); got == nil || len(got) != 0 {
		t.Errorf("missing question = %#v, want empty slice", got)
	}
}

func TestSummarize(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	got := results.Summarize([]survey.Response{
		response("r1", older),
		response("r2", newer),
		response("r3", time.Time{}),
	})

	if got.TotalResponses != 3 {
		t.Errorf("total = %d, want 3", got.TotalResponses)
	}
	if got.LastResponseAt == nil || !got.LastResponseAt.Equal(newer) {
		t.Errorf("last response = %v, want %v", got.LastResponseAt, newer)
	}

	if empty := results.Summarize(nil); empty.LastResponseAt != nil || empty.TotalResponses != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
