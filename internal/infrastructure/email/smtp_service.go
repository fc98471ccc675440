package email

import (
	"context"
	"fmt"
	"net/smtp"

	"friendshavestuff-backend/pkg/logger"
)

// EmailService delivers notification mail. Delivery is best effort: callers
// log failures but never fail the triggering operation on them.
type EmailService interface {
	Send(ctx context.Context, msg Message) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) Send(ctx context.Context, msg Message) error {
	raw := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, msg.To, msg.Subject, msg.Body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{msg.To}, raw); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        msg.To,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
