package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/smtp"
	"os"
	"sort"
	"strings"

	"github.com/Adedunmol/pulso/config"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

type Email struct {
	ToAddr   string `json:"to_addr"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	Vars     any    `json:"vars"`
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg       config.SMTP
	templates fs.FS
	send      SendFunc
}

// NewMailer renders templates from templatesDir, or from the embedded set
// when templatesDir is empty.
func NewMailer(cfg config.SMTP, templatesDir string) *Mailer {
	var templates fs.FS
	if templatesDir != "" {
		templates = os.DirFS(templatesDir)
	} else {
		templates, _ = fs.Sub(embeddedTemplates, "templates")
	}
	return &Mailer{cfg: cfg, templates: templates, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport.
func (m *Mailer) WithSender(send SendFunc) *Mailer {
	m.send = send
	return m
}

func (m *Mailer) SendHTMLEmail(to []string, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Addr)

	from := m.cfg.AdminEmail
	if from == "" {
		from = m.cfg.From
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ", "),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, headers[k]))
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return m.send(m.cfg.Addr+":"+m.cfg.Port, auth, m.cfg.From, to, []byte(msg.String()))
}

func (m *Mailer) Render(data Email) (string, error) {
	tmpl, err := template.ParseFS(m.templates, data.Template+".html")
	if err != nil {
		return "", fmt.Errorf("error parsing template: %w", err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data.Vars); err != nil {
		return "", fmt.Errorf("error executing template: %w", err)
	}

	return rendered.String(), nil
}

func (m *Mailer) SendTemplateEmail(e Email) error {
	to := strings.Split(e.ToAddr, ",")

	rendered, err := m.Render(e)
	if err != nil {
		return err
	}

	return m.SendHTMLEmail(to, e.Subject, rendered)
}
