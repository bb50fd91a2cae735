package mailer

import (
	"context"
	"fmt"

	"github.com/sheikh-saqib/ledger-statement-mailer/internal/config"
	interfaces "github.com/sheikh-saqib/ledger-statement-mailer/internal/interfaces"
	"github.com/wneessen/go-mail"
)

// SMTPSender delivers mail through one SMTP relay. Port 465 uses implicit
// TLS; any other port upgrades with STARTTLS when the server offers it.
// Dial and I/O use go-mail's default timeout.
type SMTPSender struct {
	cfg  config.SMTPConfig
	port int
}

// NewSMTPSender fails with config.ErrSMTPConfigIncomplete before any network
// activity when host, port or credentials are missing.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	port, err := cfg.PortNumber()
	if err != nil {
		return nil, config.ErrSMTPConfigIncomplete
	}
	return &SMTPSender{cfg: cfg, port: port}, nil
}

func (s *SMTPSender) Send(ctx context.Context, m interfaces.Mail) error {
	msg, err := s.message(m)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", m.To, err)
	}
	return nil
}

func (s *SMTPSender) message(m interfaces.Mail) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.FromAddress()); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	if m.AttachmentPath != "" {
		msg.AttachFile(m.AttachmentPath, mail.WithFileName(m.AttachmentName))
	}
	return msg, nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	if s.cfg.ImplicitTLS() {
		return append(opts, mail.WithSSL())
	}
	return append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
}

var _ interfaces.Mailer = (*SMTPSender)(nil)
