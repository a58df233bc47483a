package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	sharedconfig "github.com/boostline-inc/boostline/internal/shared/config"
)

// SMTPEmailService sends account lifecycle mail. It implements the
// verification use cases' Mailer interface.
type SMTPEmailService struct {
	config sharedconfig.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config sharedconfig.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendVerificationEmail(to, username, token string) error {
	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.config.BaseURL, token)

	subject := "Verify Your Email Address"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>Please verify your email address by clicking the link below:</p>
			<p><a href="%s">Verify Email Address</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link will expire in 24 hours.</p>
			<p>If you didn't create an account, please ignore this email.</p>
		</body>
		</html>
	`, username, verificationURL, verificationURL)

	plainBody := fmt.Sprintf(`
Hi %s,

Please verify your email address by visiting:
%s

This link will expire in 24 hours.

If you didn't create an account, please ignore this email.
	`, username, verificationURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendWelcomeEmail(to, username string) error {
	subject := "Welcome to Boostline"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome, %s!</h2>
			<p>Your email address has been verified and your account is ready.</p>
			<p>You can browse the available plans and subscribe at any time:</p>
			<p><a href="%s/plans">View Plans</a></p>
		</body>
		</html>
	`, username, s.config.BaseURL)

	plainBody := fmt.Sprintf(`
Welcome, %s!

Your email address has been verified and your account is ready.

Browse the available plans at %s/plans and subscribe at any time.
	`, username, s.config.BaseURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
