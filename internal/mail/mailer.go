// AngelaMos | 2026
// mailer.go

// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/carterperez-dev/invoicery/internal/config"
)

// Sender is what the auth flows depend on; the SMTP mailer is the only
// production implementation.
type Sender interface {
	SendVerificationCode(to, name, code string) error
	SendResetCode(to, name, code string) error
	SendResetConfirmation(to, name string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	app    string
}

func NewMailer(cfg config.SMTPConfig, appName string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		app:    appName,
	}
}

func (m *Mailer) SendVerificationCode(to, name, code string) error {
	body, err := render(verificationTmpl, mailData{
		App:  m.app,
		Name: name,
		Code: code,
	})
	if err != nil {
		return err
	}

	return m.send(to, fmt.Sprintf("%s — verify your email", m.app), body)
}

func (m *Mailer) SendResetCode(to, name, code string) error {
	body, err := render(resetTmpl, mailData{
		App:  m.app,
		Name: name,
		Code: code,
	})
	if err != nil {
		return err
	}

	return m.send(to, fmt.Sprintf("%s — password reset code", m.app), body)
}

func (m *Mailer) SendResetConfirmation(to, name string) error {
	body, err := render(resetDoneTmpl, mailData{
		App:  m.app,
		Name: name,
	})
	if err != nil {
		return err
	}

	return m.send(to, fmt.Sprintf("%s — your password was changed", m.app), body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}

type mailData struct {
	App  string
	Name string
	Code string
}

func render(tmpl *template.Template, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return buf.String(), nil
}

var verificationTmpl = template.Must(template.New("verify").Parse(`
<html><body style="font-family: sans-serif; color: #1f2937;">
<h2>Welcome to {{.App}}{{if .Name}}, {{.Name}}{{end}}</h2>
<p>Enter this code to verify your email address:</p>
<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
<p>The code expires in 10 minutes. If you did not create an account,
you can ignore this message.</p>
</body></html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<html><body style="font-family: sans-serif; color: #1f2937;">
<h2>Password reset{{if .Name}} for {{.Name}}{{end}}</h2>
<p>Enter this code to reset your {{.App}} password:</p>
<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
<p>The code expires in 10 minutes. If you did not request a reset,
no action is needed.</p>
</body></html>`))

var resetDoneTmpl = template.Must(template.New("resetDone").Parse(`
<html><body style="font-family: sans-serif; color: #1f2937;">
<h2>Your password was changed</h2>
<p>{{if .Name}}{{.Name}}, your{{else}}Your{{end}} {{.App}} password was
just changed and all sessions were signed out.</p>
<p>If this was not you, reset your password immediately.</p>
</body></html>`))
