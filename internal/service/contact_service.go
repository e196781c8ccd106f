package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// DefaultContactSubject is used when a submission has no subject
const DefaultContactSubject = "New Portfolio Contact Form Submission"

// ContactSubmission is a validated contact form submission
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SubjectOrDefault returns the submitted subject or DefaultContactSubject
func (s ContactSubmission) SubjectOrDefault() string {
	if subject := strings.TrimSpace(s.Subject); subject != "" {
		return subject
	}
	return DefaultContactSubject
}

var contactHTML = template.Must(template.New("contact").Funcs(template.FuncMap{
	"nl2br": nl2br,
}).Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{nl2br .Message}}</p>
`))

// ContactService renders contact submissions and hands them to a Mailer
type ContactService struct {
	mailer  Mailer
	from    string
	to      string
	timeout time.Duration
}

// NewContactService creates a contact service. from is the fixed sender
// identity and to is the owner's inbox.
func NewContactService(mailer Mailer, from, to string, timeout time.Duration) *ContactService {
	return &ContactService{
		mailer:  mailer,
		from:    from,
		to:      to,
		timeout: timeout,
	}
}

// Send renders sub and performs exactly one delivery attempt.
func (s *ContactService) Send(ctx context.Context, sub ContactSubmission) error {
	msg, err := s.Compose(sub)
	if err != nil {
		return err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return wrapProvider("mail", s.mailer.Send(ctx, msg))
}

// Compose builds the outbound message for sub without sending it
func (s *ContactService) Compose(sub ContactSubmission) (*MailMessage, error) {
	sub.Subject = sub.SubjectOrDefault()

	html, err := RenderContactHTML(sub)
	if err != nil {
		return nil, err
	}

	return &MailMessage{
		From:    s.from,
		To:      s.to,
		ReplyTo: sub.Email,
		Subject: sub.Subject,
		Text:    RenderContactText(sub),
		HTML:    html,
	}, nil
}

// RenderContactText renders the plain-text body: labelled fields, then the
// message verbatim.
func RenderContactText(sub ContactSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact form submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "Subject: %s\n\n", sub.SubjectOrDefault())
	fmt.Fprintf(&b, "Message:\n%s\n", sub.Message)
	return b.String()
}

// RenderContactHTML renders the HTML body. Every field is escaped and
// newlines in the message become <br>.
func RenderContactHTML(sub ContactSubmission) (string, error) {
	sub.Subject = sub.SubjectOrDefault()

	var buf bytes.Buffer
	if err := contactHTML.Execute(&buf, sub); err != nil {
		return "", fmt.Errorf("failed to render contact email: %w", err)
	}
	return buf.String(), nil
}

func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
