package utils

import (
	"bytes"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"elite_market/internal/config"
)

type Attachment struct {
	Name string
	Data []byte
}

// Mailer delivers HTML mail through the configured SMTP relay.
type Mailer struct {
	cfg  config.SMTP
	dial func(*mail.Msg) error
}

func NewMailer(cfg config.SMTP) *Mailer {
	m := &Mailer{cfg: cfg}
	m.dial = m.dialAndSend
	return m
}

// Configured is false when no SMTP credentials were provided.
func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != ""
}

func (m *Mailer) Send(to, subject, html string, attachments ...Attachment) error {
	msg, err := m.message(to, subject, html, attachments...)
	if err != nil {
		return err
	}

	log.Println("📤 Sending e-mail to", to)
	return m.dial(msg)
}

func (m *Mailer) message(to, subject, html string, attachments ...Attachment) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	for _, a := range attachments {
		if len(a.Data) == 0 {
			continue
		}
		if err := msg.AttachReader(a.Name, bytes.NewReader(a.Data)); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Name, err)
		}
	}
	return msg, nil
}

func (m *Mailer) dialAndSend(msg *mail.Msg) error {
	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}
