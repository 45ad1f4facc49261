package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// SMTPMailer sends messages through an SMTP relay. Without credentials it only
// logs what it would have sent.
type SMTPMailer struct {
	cfg     config.SMTP
	enabled bool
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	enabled := cfg.Username != "" && cfg.Password != ""
	if !enabled {
		logrus.Warn("SMTP credentials not provided, emails will be logged only")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg, enabled: enabled}
}

// Build turns a Message into a go-mail message ready to send.
func (m *SMTPMailer) Build(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	for _, a := range msg.Attachments {
		opts := []mail.FileOption{}
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if err := out.AttachReader(a.Name, bytes.NewReader(a.Data), opts...); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Name, err)
		}
	}
	return out, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.enabled {
		total := 0
		for _, a := range msg.Attachments {
			total += len(a.Data)
		}
		logrus.WithFields(logrus.Fields{
			"to":          msg.To,
			"subject":     msg.Subject,
			"attachments": len(msg.Attachments),
			"bytes":       total,
		}).Info("[SIMULATED] email not sent, SMTP disabled")
		return nil
	}

	out, err := m.Build(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	logrus.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("email sent")
	return nil
}
