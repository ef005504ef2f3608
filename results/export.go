package results

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Adedunmol/pulso/survey"
)

const (
	CSVMimeType = "text/csv;charset=utf-8;"

	utf8BOM   = "\uFEFF"
	lineBreak = "\r\n"

	exportDateLayout   = "02/01/2006, 15:04:05"
	responseDateLayout = "02/01/2006 15:04:05"

	noAnswer     = "Sin respuesta"
	noDate       = "Sin fecha"
	anonymous    = "Anónimo"
	answerJoiner = " | "
)

// Export is a finished document ready for a Downloader.
type Export struct {
	Data     []byte
	Filename string
	MimeType string
}

// ExportCSV renders the survey and its responses as a spreadsheet-friendly
// CSV document: UTF-8 with BOM, CRLF line endings and every cell quoted.
// Rows are ordered most recent first and numbered after sorting. Dates are
// rendered in now's location.
func ExportCSV(s survey.Survey, responses []survey.Response, now time.Time) Export {
	buf := &bytes.Buffer{}
	buf.WriteString(utf8BOM)

	writeLine(buf, "Encuesta: "+s.Title)
	writeLine(buf, "Fecha de exportación: "+now.Format(exportDateLayout))
	writeLine(buf, "Total de respuestas: "+strconv.Itoa(len(responses)))
	buf.WriteString(lineBreak)

	header := []string{"No.", "Email del participante", "Fecha y hora de respuesta"}
	for _, q := range s.Questions {
		qt := survey.NormalizeType(string(q.Type))
		header = append(header, fmt.Sprintf("%s (%s)", q.Title, survey.TypeLabel(qt)))
	}
	writeLine(buf, header...)

	for i, r := range sortByCompletion(responses) {
		row := make([]string, 0, 3+len(s.Questions))
		row = append(row, strconv.Itoa(i+1), respondent(r), formatResponseDate(r.CompletedAt, now.Location()))
		for _, q := range s.Questions {
			row = append(row, answerCell(r, q.ID))
		}
		writeLine(buf, row...)
	}

	return Export{
		Data:     buf.Bytes(),
		Filename: ExportFilename(s.Title, now, "csv"),
		MimeType: CSVMimeType,
	}
}

// ExportFilename builds Resultados_<title>_<date>.<ext>, replacing every
// character outside [A-Za-z0-9] with an underscore.
func ExportFilename(title string, now time.Time, ext string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r > 0xFFFF:
			// outside the BMP: one underscore per UTF-16 code unit
			b.WriteString("__")
		default:
			b.WriteByte('_')
		}
	}
	return fmt.Sprintf("Resultados_%s_%s.%s", b.String(), now.UTC().Format("2006-01-02"), ext)
}

func sortByCompletion(responses []survey.Response) []survey.Response {
	sorted := make([]survey.Response, len(responses))
	copy(sorted, responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})
	return sorted
}

func respondent(r survey.Response) string {
	if r.RespondentID == "" {
		return anonymous
	}
	return r.RespondentID
}

func formatResponseDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return noDate
	}
	return t.In(loc).Format(responseDateLayout)
}

func answerCell(r survey.Response, questionID string) string {
	a, ok := r.AnswerFor(questionID)
	if !ok || len(a.Value) == 0 {
		return noAnswer
	}
	return strings.Join(a.Value, answerJoiner)
}

func writeLine(buf *bytes.Buffer, cells ...string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString(lineBreak)
}
