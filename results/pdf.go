package results

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Adedunmol/pulso/survey"
	"github.com/jung-kurt/gofpdf"
)

const (
	PDFMimeType = "application/pdf"

	reportFont       = "Helvetica"
	maxReportedTexts = 20
)

// ExportPDF renders a printable summary of the aggregated results: one block
// per question with its counts and percentages, or the first free-text
// answers for text questions.
func ExportPDF(s survey.Survey, computed []QuestionResult, summary Summary, now time.Time) (Export, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; accents in Spanish titles survive the translation
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(s.Title, true)
	pdf.AddPage()

	pdf.SetFont(reportFont, "B", 16)
	pdf.MultiCell(0, 10, tr("Resultados: "+s.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(reportFont, "", 11)
	info := fmt.Sprintf("Fecha de exportación: %s\nTotal de respuestas: %d\n",
		now.Format(exportDateLayout), summary.TotalResponses)
	if summary.LastResponseAt != nil {
		info += fmt.Sprintf("Última respuesta: %s\n", summary.LastResponseAt.In(now.Location()).Format(responseDateLayout))
	}
	pdf.MultiCell(0, 6, tr(info), "", "L", false)
	pdf.Ln(4)

	for i, r := range computed {
		pdf.SetFont(reportFont, "B", 12)
		header := fmt.Sprintf("%d. %s (%s)", i+1, r.QuestionTitle, survey.TypeLabel(r.QuestionType))
		pdf.MultiCell(0, 7, tr(header), "", "L", false)

		pdf.SetFont(reportFont, "", 10)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Respuestas: %d", r.TotalResponses)), "", "L", false)

		if r.QuestionType == survey.Text {
			writeTextAnswers(pdf, tr, r.TextResponses)
		} else {
			writeAnswerTable(pdf, tr, r)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return Export{}, fmt.Errorf("error rendering results report: %w", err)
	}

	return Export{
		Data:     buf.Bytes(),
		Filename: ExportFilename(s.Title, now, "pdf"),
		MimeType: PDFMimeType,
	}, nil
}

func writeAnswerTable(pdf *gofpdf.Fpdf, tr func(string) string, r QuestionResult) {
	if len(r.Answers) == 0 {
		pdf.MultiCell(0, 6, tr(noAnswer), "", "L", false)
		return
	}

	pdf.SetFont(reportFont, "B", 10)
	pdf.CellFormat(110, 7, tr("Opción"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "%", "1", 1, "R", false, 0, "")

	pdf.SetFont(reportFont, "", 10)
	for _, a := range r.Answers {
		pdf.CellFormat(110, 7, tr(truncate(a.Value, 60)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", a.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f", a.Percentage), "1", 1, "R", false, 0, "")
	}

	if r.QuestionType == survey.Scale && r.TotalResponses > 0 {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Promedio: %.2f", r.Average)), "", "L", false)
	}
}

func writeTextAnswers(pdf *gofpdf.Fpdf, tr func(string) string, answers []string) {
	if len(answers) == 0 {
		pdf.MultiCell(0, 6, tr(noAnswer), "", "L", false)
		return
	}

	shown := answers
	if len(shown) > maxReportedTexts {
		shown = shown[:maxReportedTexts]
	}
	for _, a := range shown {
		pdf.MultiCell(0, 6, tr("- "+strings.TrimSpace(a)), "", "L", false)
	}
	if rest := len(answers) - len(shown); rest > 0 {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("... y %d más", rest)), "", "L", false)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
