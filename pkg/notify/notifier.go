// Package notify turns booking events into emails and delivers them.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers one message. Implementations: Mailer (SMTP) and Console.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

type Console struct {
	log zerolog.Logger
}

func NewConsole(l zerolog.Logger) *Console {
	return &Console{log: l}
}

func (c *Console) Notify(_ context.Context, msg Message) error {
	c.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("notify")
	return nil
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer sends through an authenticated SMTP relay (gmail by default), from the relay account.
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Notify(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mailer: empty recipient for %q", msg.Subject)
	}
	em := mail.NewMsg()
	if err := em.From(m.cfg.Username); err != nil {
		return fmt.Errorf("mailer: from: %w", err)
	}
	if err := em.To(msg.To); err != nil {
		return fmt.Errorf("mailer: to: %w", err)
	}
	em.Subject(msg.Subject)
	em.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("mailer: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, em); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
