package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gras5/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

// Mailer delivers confirmation codes out-of-band. Delivery is best-effort:
// callers treat failures as non-fatal and only log them.
type Mailer interface {
	SendConfirmationCode(recipient, code string) error
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *smtpMailer) SendConfirmationCode(recipient, code string) error {
	// Without an SMTP host the code is only logged, handy for development.
	if m.config.Host == "" {
		m.log.Info("SMTP not configured, confirmation code logged only",
			zap.String("recipient", recipient),
			zap.String("confirmation_code", code),
		)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + recipient,
		"Subject: YaMDb confirmation code",
		"",
		"Your confirmation code: " + code,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.config.From, []string{recipient}, []byte(msg)); err != nil {
		m.log.Error("Failed to send confirmation mail",
			zap.Error(err),
			zap.String("recipient", recipient),
		)
		return fmt.Errorf("send confirmation mail to %s: %w", recipient, err)
	}

	m.log.Info("Confirmation mail sent", zap.String("recipient", recipient))
	return nil
}
