package survey_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Adedunmol/pulso/survey"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		raw  string
		want survey.QuestionType
	}{
		{"MULTIPLE_CHOICE", survey.MultipleChoice},
		{"multiple_choice", survey.MultipleChoice},
		{"multiple-choice", survey.MultipleChoice},
		{"CHECKBOX", survey.Checkbox},
		{"Dropdown", survey.Dropdown},
		{"TEXT", survey.Text},
		{"SCALE", survey.Scale},
		{"RANKING_GRID", survey.QuestionType("ranking-grid")},
		{"", survey.QuestionType("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := survey.NormalizeType(tt.raw); got != tt.want {
				t.Errorf("NormalizeType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStorageTokenRoundTrip(t *testing.T) {
	for _, qt := range []survey.QuestionType{survey.Text, survey.MultipleChoice, survey.Checkbox, survey.Dropdown, survey.Scale} {
		token := survey.StorageToken(qt)
		if got := survey.NormalizeType(token); got != qt {
			t.Errorf("NormalizeType(StorageToken(%q)) = %q", qt, got)
		}
	}

	if got := survey.StorageToken(survey.MultipleChoice); got != "MULTIPLE_CHOICE" {
		t.Errorf("StorageToken = %q, want MULTIPLE_CHOICE", got)
	}
}

func TestTypeLabel(t *testing.T) {
	if got := survey.TypeLabel(survey.Checkbox); got != "Casillas de verificación" {
		t.Errorf("label = %q", got)
	}
	if got := survey.TypeLabel(survey.QuestionType("matrix")); got != "matrix" {
		t.Errorf("unknown label = %q, want raw type", got)
	}
}

func TestIsExpired(t *testing.T) {
	t.Run("past timestamp is expired", func(t *testing.T) {
		past := time.Now().Add(-time.Second)
		if !survey.IsExpired(&past) {
			t.Error("expected survey to be expired")
		}
	})

	t.Run("future timestamp is not expired", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		if survey.IsExpired(&future) {
			t.Error("expected survey to be open")
		}
	})

	t.Run("missing timestamp never expires", func(t *testing.T) {
		if survey.IsExpired(nil) {
			t.Error("expected nil expiration to be open")
		}
	})
}

func TestComputeExpiresAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	value := func(v int) *int { return &v }

	tests := []struct {
		name  string
		value *int
		unit  survey.DurationUnit
		want  *time.Time
	}{
		{"none", value(3), survey.DurationNone, nil},
		{"minutes", value(30), survey.DurationMinutes, ptr(now.Add(30 * time.Minute))},
		{"hours", value(2), survey.DurationHours, ptr(now.Add(2 * time.Hour))},
		{"days", value(7), survey.DurationDays, ptr(now.Add(7 * 24 * time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := survey.ComputeExpiresAt(now, tt.value, tt.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("got %v, want %v", *got, *tt.want)
			}
		})
	}

	t.Run("rejects missing value", func(t *testing.T) {
		if _, err := survey.ComputeExpiresAt(now, nil, survey.DurationHours); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		if _, err := survey.ComputeExpiresAt(now, value(1), survey.DurationUnit("weeks")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		q       survey.Question
		wantErr bool
	}{
		{"text", survey.Question{Title: "Comentarios", Type: survey.Text}, false},
		{"blank title", survey.Question{Title: "   ", Type: survey.Text}, true},
		{"choice", survey.Question{Title: "Color", Type: survey.MultipleChoice, Options: []string{"Rojo", "Azul"}}, false},
		{"one option", survey.Question{Title: "Color", Type: survey.Dropdown, Options: []string{"Rojo"}}, true},
		{"duplicate options", survey.Question{Title: "Color", Type: survey.Checkbox, Options: []string{"Rojo", "Rojo"}}, true},
		{"empty option", survey.Question{Title: "Color", Type: survey.Checkbox, Options: []string{"Rojo", " "}}, true},
		{"scale", survey.Question{Title: "Nota", Type: survey.Scale, Options: survey.ScaleOptions(1, 5)}, false},
		{"scale not numeric", survey.Question{Title: "Nota", Type: survey.Scale, Options: []string{"bajo", "alto"}}, true},
		{"scale unordered", survey.Question{Title: "Nota", Type: survey.Scale, Options: []string{"3", "1", "2"}}, true},
		{"unknown type", survey.Question{Title: "Nota", Type: survey.QuestionType("matrix")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := survey.ValidateQuestion(tt.q)
			if tt.wantErr {
				if !errors.Is(err, survey.ErrInvalidQuestion) {
					t.Errorf("err = %v, want ErrInvalidQuestion", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResponseAnswerFor(t *testing.T) {
	r := survey.Response{Answers: []survey.Answer{{QuestionID: "q1", Value: []string{"A"}}}}

	if a, ok := r.AnswerFor("q1"); !ok || a.Value[0] != "A" {
		t.Errorf("AnswerFor(q1) = %v, %v", a, ok)
	}
	if _, ok := r.AnswerFor("q2"); ok {
		t.Error("expected no answer for q2")
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestValidateAnswers(t *testing.T) {
	s := survey.Survey{
		Questions: []survey.Question{
			{ID: "q1", Title: "Color", Type: "MULTIPLE_CHOICE", Options: []string{"Rojo", "Azul"}, Required: true},
			{ID: "q2", Title: "Frutas", Type: "CHECKBOX", Options: []string{"Pera", "Uva", "Kiwi"}},
			{ID: "q3", Title: "Comentario", Type: "TEXT"},
			{ID: "q4", Title: "Nota", Type: "SCALE", Options: survey.ScaleOptions(1, 5)},
		},
	}

	tests := []struct {
		name    string
		answers []survey.Answer
		wantErr bool
	}{
		{"only required", []survey.Answer{{QuestionID: "q1", Value: []string{"Rojo"}}}, false},
		{"all answered", []survey.Answer{
			{QuestionID: "q1", Value: []string{"Azul"}},
			{QuestionID: "q2", Value: []string{"Pera", "Kiwi"}},
			{QuestionID: "q3", Value: []string{"Todo bien"}},
			{QuestionID: "q4", Value: []string{"4"}},
		}, false},
		{"required missing", []survey.Answer{{QuestionID: "q3", Value: []string{"hola"}}}, true},
		{"required empty", []survey.Answer{{QuestionID: "q1", Value: []string{}}}, true},
		{"unknown option", []survey.Answer{{QuestionID: "q1", Value: []string{"Verde"}}}, true},
		{"two values on single choice", []survey.Answer{{QuestionID: "q1", Value: []string{"Rojo", "Azul"}}}, true},
		{"repeated checkbox option", []survey.Answer{
			{QuestionID: "q1", Value: []string{"Rojo"}},
			{QuestionID: "q2", Value: []string{"Uva", "Uva"}},
		}, true},
		{"scale out of range", []survey.Answer{
			{QuestionID: "q1", Value: []string{"Rojo"}},
			{QuestionID: "q4", Value: []string{"9"}},
		}, true},
		{"foreign question", []survey.Answer{
			{QuestionID: "q1", Value: []string{"Rojo"}},
			{QuestionID: "zz", Value: []string{"x"}},
		}, true},
		{"duplicate answer", []survey.Answer{
			{QuestionID: "q1", Value: []string{"Rojo"}},
			{QuestionID: "q1", Value: []string{"Azul"}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := survey.ValidateAnswers(s, tt.answers)
			if tt.wantErr {
				if !errors.Is(err, survey.ErrInvalidAnswer) {
					t.Errorf("err = %v, want ErrInvalidAnswer", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
