package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

const providerNameSMTP = "gomail/smtp"

// Client sends mail over SMTP.
type Client struct {
	cfg    Config
	dialer *gomail.Dialer
}

func New(cfg Config) (*Client, error) {
	if cfg.Enabled && strings.TrimSpace(cfg.SMTPHost) == "" {
		return nil, fmt.Errorf("email: smtp host is required")
	}

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if cfg.SMTPUseTLS {
		d.SSL = true
		d.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
	}

	return &Client{cfg: cfg, dialer: d}, nil
}

// Send blocks until the server accepted the message, ctx is done or the
// SMTP timeout passed, whichever comes first. gomail has no context
// support, so an abandoned dial keeps running in the background until the
// server answers.
func (c *Client) Send(ctx context.Context, m Message) (Receipt, error) {
	if !c.cfg.Enabled {
		return Receipt{}, ErrDisabled{}
	}
	if m.ReplyTo == "" {
		m.ReplyTo = c.cfg.ReplyTo
	}

	msg, err := buildMessage(c.cfg.From, m)
	if err != nil {
		return Receipt{}, err
	}
	id := messageID(c.cfg.From)
	msg.SetHeader("Message-ID", id)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.SMTPTimeout())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return Receipt{}, ErrSend{Provider: providerNameSMTP, Err: err}
		}
		return Receipt{Provider: ProviderSMTP, MessageID: id}, nil
	case <-ctx.Done():
		return Receipt{}, ErrSend{Provider: providerNameSMTP, Err: ctx.Err()}
	}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	out, err := m.prepare(from)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", out.From)
	msg.SetHeader("To", out.To...)
	if len(out.CC) > 0 {
		msg.SetHeader("Cc", out.CC...)
	}
	if len(out.BCC) > 0 {
		msg.SetHeader("Bcc", out.BCC...)
	}
	if out.ReplyTo != "" {
		msg.SetHeader("Reply-To", out.ReplyTo)
	}
	msg.SetHeader("Subject", out.Subject)
	for k, v := range out.Headers {
		msg.SetHeader(k, v)
	}

	switch {
	case out.TextBody != "" && out.HTMLBody != "":
		msg.SetBody("text/plain", out.TextBody)
		msg.AddAlternative("text/html", out.HTMLBody)
	case out.HTMLBody != "":
		msg.SetBody("text/html", out.HTMLBody)
	default:
		msg.SetBody("text/plain", out.TextBody)
	}

	return msg, nil
}

// messageID builds an RFC 5322 Message-ID on the sender's domain.
func messageID(from string) string {
	domain := "localhost"
	if addr, err := mail.ParseAddress(from); err == nil {
		if _, d, ok := strings.Cut(addr.Address, "@"); ok && d != "" {
			domain = d
		}
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
