package survey

import "strings"

type QuestionType string

const (
	Text           QuestionType = "text"
	MultipleChoice QuestionType = "multiple-choice"
	Checkbox       QuestionType = "checkbox"
	Dropdown       QuestionType = "dropdown"
	Scale          QuestionType = "scale"
)

var typeLabels = map[QuestionType]string{
	MultipleChoice: "Opción múltiple",
	Checkbox:       "Casillas de verificación",
	Dropdown:       "Desplegable",
	Text:           "Respuesta corta",
	Scale:          "Escala lineal",
}

// NormalizeType maps a stored type token such as MULTIPLE_CHOICE to its
// hyphenated form. Unknown tokens come back with the same treatment applied
// and are never rejected, so bad data shows up as a wrong label.
func NormalizeType(raw string) QuestionType {
	return QuestionType(strings.ReplaceAll(strings.ToLower(raw), "_", "-"))
}

// StorageToken is the inverse of NormalizeType.
func StorageToken(t QuestionType) string {
	return strings.ReplaceAll(strings.ToUpper(string(t)), "-", "_")
}

// Known reports whether t is one of the supported question types.
func (t QuestionType) Known() bool {
	_, ok := typeLabels[t]
	return ok
}

// HasOptions reports whether answers to t are picked from Question.Options.
func (t QuestionType) HasOptions() bool {
	switch t {
	case MultipleChoice, Checkbox, Dropdown, Scale:
		return true
	}
	return false
}

// TypeLabel returns the display label for t, or t itself when unknown.
func TypeLabel(t QuestionType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}
