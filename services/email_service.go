// services/email_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional email through the configured SMTP relay
type EmailService struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewEmailService builds an EmailService from SMTP_* environment variables
func NewEmailService() *EmailService {
	port := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &port)
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &EmailService{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: from,
	}
}

func (s *EmailService) send(to, subject, body string) error {
	if s.host == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}

// SendOTPEmail sends a password reset OTP to an admin
func (s *EmailService) SendOTPEmail(to, fullName, otp string) error {
	subject := "Your Password Reset Code"
	body := fmt.Sprintf("Dear %s,\n\nYour password reset code is: %s\n\nThis code expires in 10 minutes. If you did not request a reset, you can ignore this email.\n\nVelomart Admin Console", fullName, otp)
	return s.send(to, subject, body)
}

// SendVerificationDecisionEmail notifies the account owner of an approval
// or rejection on their verification.
func (s *EmailService) SendVerificationDecisionEmail(to, fullName, entityType, status, reason string) error {
	subject := fmt.Sprintf("Your %s verification was %s", entityType, status)
	body := fmt.Sprintf("Dear %s,\n\nYour %s verification has been %s.", fullName, entityType, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nVelomart Team"
	return s.send(to, subject, body)
}

// SendAdminWelcomeEmail notifies a newly created admin of their account
func (s *EmailService) SendAdminWelcomeEmail(to, fullName, role, country string) error {
	subject := "Your Admin Console Account"
	body := fmt.Sprintf("Dear %s,\n\nAn admin account has been created for you with the role %q", fullName, role)
	if country != "" {
		body += fmt.Sprintf(" for country %s", country)
	}
	body += ".\n\nUse the password reset flow to set your password before first login.\n\nVelomart Admin Console"
	return s.send(to, subject, body)
}
