package newsletter

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/pkg/config"
)

// SMTPMailer sends localized welcome emails over SMTP
type SMTPMailer struct {
	cfg     config.SMTPConfig
	catalog *i18n.Catalog
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.SMTPConfig, catalog *i18n.Catalog) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPMailer{cfg: cfg, catalog: catalog}
}

// Message builds the welcome email for to in lang
func (m *SMTPMailer) Message(to string, lang i18n.Language) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(m.catalog.T(lang, "welcome_subject"))
	msg.SetBodyString(gomail.TypeTextPlain, m.catalog.T(lang, "welcome_body", to))
	return msg, nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to string, lang i18n.Language) error {
	msg, err := m.Message(to, lang)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
