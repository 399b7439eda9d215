// internal/service/email/service.go
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers outgoing client messages over SMTP.
type EmailSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewEmailSender creates a new SMTP email sender. Port 465 uses implicit TLS,
// anything else upgrades with STARTTLS when the server offers it.
func NewEmailSender(host string, port int, user, pass, from, fromName string) *EmailSender {
	d := gomail.NewDialer(host, port, user, pass)
	d.SSL = port == 465
	if from == "" {
		from = user
	}
	return &EmailSender{dialer: d, from: from, fromName: fromName}
}

// Send sends a plain-text message body wrapped in the branded HTML layout.
func (e *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.from, e.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", buildHTMLTemplate(e.fromName, body))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail failed: %w", err)
	}
	return nil
}

// buildHTMLTemplate renders text into the business email layout. Line breaks
// are kept.
func buildHTMLTemplate(brand, text string) string {
	if brand == "" {
		brand = "Your service team"
	}
	escaped := strings.ReplaceAll(html.EscapeString(strings.TrimSpace(text)), "\n", "<br />")

	return `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8" />
	<style>
		body { font-family: Arial, sans-serif; background-color: #f6f8fa; padding: 30px; }
		.container { max-width: 600px; margin: auto; background: #fff; border-radius: 10px; overflow: hidden; }
		.header { background: #1f6f5c; color: white; text-align: center; padding: 20px; font-size: 20px; font-weight: bold; }
		.body { padding: 25px; color: #333; line-height: 1.6; }
		.footer { background: #f1f1f1; color: #555; text-align: center; padding: 15px; font-size: 13px; }
	</style>
</head>
<body>
<div class="container">
	<div class="header">` + html.EscapeString(brand) + `</div>
	<div class="body">` + escaped + `</div>
	<div class="footer">Reply to this email to reach us.</div>
</div>
</body>
</html>`
}
