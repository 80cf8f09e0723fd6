package notifications

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends one HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (m SMTPMailer) Send(to, subject, htmlBody string) error {
	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Support Desk <%s>\r\n", m.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// SendGridMailer sends through the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Support Desk", from),
	}
}

func (m *SendGridMailer) Send(to, subject, htmlBody string) error {
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), "", htmlBody)
	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", to, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send to %s: status %d", to, resp.StatusCode)
	}
	return nil
}

// Email mails the notification to users who keep email notifications on.
type Email struct {
	lookup RecipientLookup
	mailer Mailer
	// Async hands the send to a goroutine; failures are then only logged.
	Async bool
}

func NewEmail(lookup RecipientLookup, mailer Mailer) *Email {
	return &Email{lookup: lookup, mailer: mailer, Async: true}
}

func (e *Email) Notify(ctx context.Context, userID uint, title, body, kind string) error {
	r, err := e.lookup(ctx, userID)
	if err != nil {
		return err
	}
	if !r.Settings.EmailNotifications || r.Email == "" {
		return nil
	}

	htmlBody := EmailTemplate(title, fmt.Sprintf(
		"<p>Dear %s,</p>\n<p>%s</p>",
		html.EscapeString(displayName(r)), html.EscapeString(body),
	))

	if !e.Async {
		return e.mailer.Send(r.Email, title, htmlBody)
	}
	go func() {
		if err := e.mailer.Send(r.Email, title, htmlBody); err != nil {
			log.Printf("[NOTIFY] email to user %d failed: %v", userID, err)
		}
	}()
	return nil
}

func displayName(r Recipient) string {
	if strings.TrimSpace(r.Name) != "" {
		return r.Name
	}
	return "Customer"
}

// EmailTemplate wraps body content in the platform's email layout.
func EmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00004D; padding: 24px; text-align: center; color: #FFFFFF; }
			.content { padding: 32px 30px; color: #00004D; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>SUPPORT DESK</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">Reply from your dashboard to continue the conversation.</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(title), bodyContent)
}
