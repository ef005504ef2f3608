package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
)

const (
	barWidth      = 30
	maxTextShown  = 5
	timeLayout    = "02/01/2006 15:04:05"
	noResponses   = "Aún no hay respuestas"
	averageFormat = "  Promedio: %.2f\n"
)

func render(w io.Writer, snap results.Snapshot) {
	if snap.Survey == nil {
		fmt.Fprintf(w, "%s\n", snap.State)
		if snap.Error != "" {
			fmt.Fprintf(w, "error: %s\n", snap.Error)
		}
		return
	}

	fmt.Fprintf(w, "%s\n", snap.Survey.Title)
	fmt.Fprintf(w, "Respuestas: %d", snap.Summary.TotalResponses)
	if snap.Summary.LastResponseAt != nil {
		fmt.Fprintf(w, "  (última: %s)", snap.Summary.LastResponseAt.Local().Format(timeLayout))
	}
	fmt.Fprintf(w, "\nActualizado: %s\n\n", snap.UpdatedAt.Local().Format(timeLayout))

	if snap.Summary.TotalResponses == 0 {
		fmt.Fprintln(w, noResponses)
		return
	}

	for i, r := range snap.Results {
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, r.QuestionTitle, survey.TypeLabel(r.QuestionType))

		if r.QuestionType == survey.Text {
			for j, text := range r.TextResponses {
				if j == maxTextShown {
					fmt.Fprintf(w, "  … y %d más\n", len(r.TextResponses)-maxTextShown)
					break
				}
				fmt.Fprintf(w, "  - %s\n", text)
			}
			fmt.Fprintln(w)
			continue
		}

		for _, a := range r.Answers {
			fmt.Fprintf(w, "  %-20s %s %3d (%.1f%%)\n", a.Value, bar(a.Percentage), a.Count, a.Percentage)
		}
		if r.QuestionType == survey.Scale {
			fmt.Fprintf(w, averageFormat, r.Average)
		}
		fmt.Fprintln(w)
	}
}

func bar(percentage float64) string {
	filled := int(percentage / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}
