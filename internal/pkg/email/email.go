package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"
)

// EmailService defines the interface for email operations
type EmailService interface {
	Send(ctx context.Context, msg Message) error
}

// Attachment is a file sent with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outgoing email to a single recipient.
type Message struct {
	ToName      string
	ToAddress   string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// SendGridConfig holds configuration for the SendGrid API
type SendGridConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
	Host        string // API base URL, defaults to the public endpoint
}

// SendGridService implements EmailService
type SendGridService struct {
	config SendGridConfig
	from   *sgmail.Email
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SendGridConfig, logger zerolog.Logger) *SendGridService {
	if config.Host == "" {
		config.Host = defaultHost
	}
	return &SendGridService{
		config: config,
		from:   sgmail.NewEmail(config.FromName, config.FromAddress),
		logger: logger,
	}
}

// Send delivers msg. Without an API key the message is logged and dropped.
func (s *SendGridService) Send(ctx context.Context, msg Message) error {
	if s.config.APIKey == "" {
		s.logger.Warn().
			Str("to", msg.ToAddress).
			Str("subject", msg.Subject).
			Int("attachments", len(msg.Attachments)).
			Msg("SendGrid API key not configured - email not sent")
		return nil
	}

	req := sendgrid.GetRequest(s.config.APIKey, endpoint, s.config.Host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("failed to send email: sendgrid responded %d: %s", res.StatusCode, res.Body)
	}

	s.logger.Info().Str("to", msg.ToAddress).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

func (s *SendGridService) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddress))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)

	for _, a := range msg.Attachments {
		m.AddAttachment(&sgmail.Attachment{
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			Type:        a.ContentType,
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}
	return m
}

// AdmissionMessage builds the email that carries a student's admission
// package.
func AdmissionMessage(institution, studentName, address, admissionNumber, filename string, pdf []byte) Message {
	text := fmt.Sprintf("Dear %s,\n\n"+
		"Congratulations on your admission to %s. Your admission number is %s.\n"+
		"Your admission letter, bursary letter, requirements list and fee structure are attached.\n\n"+
		"Regards,\nAdmissions Office", studentName, institution, admissionNumber)

	body := fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Dear %s,</p>
		<p>Congratulations on your admission to %s. Your admission number is <strong>%s</strong>.</p>
		<p>Your admission letter, bursary letter, requirements list and fee structure are attached.</p>
		<p>Regards,<br>Admissions Office</p>
	</div>
</body>
</html>`, html.EscapeString(studentName), html.EscapeString(institution), html.EscapeString(admissionNumber))

	return Message{
		ToName:    studentName,
		ToAddress: address,
		Subject:   "Admission Letter - " + admissionNumber,
		Text:      text,
		HTML:      body,
		Attachments: []Attachment{{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
}
