package email

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends mail through the Resend HTTP API.
type ResendSender struct {
	cfg    Config
	client *resend.Client
}

func NewResend(cfg Config) (*ResendSender, error) {
	if strings.TrimSpace(cfg.ResendAPIKey) == "" {
		return nil, fmt.Errorf("email: resend api key is required")
	}

	httpClient := &http.Client{Timeout: cfg.ResendTimeout()}
	client := resend.NewCustomClient(httpClient, cfg.ResendAPIKey)

	if cfg.ResendBaseURL != "" {
		u, err := url.Parse(strings.TrimRight(cfg.ResendBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("email: invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendSender{cfg: cfg, client: client}, nil
}

func (r *ResendSender) Send(ctx context.Context, m Message) (Receipt, error) {
	if !r.cfg.Enabled {
		return Receipt{}, ErrDisabled{}
	}

	if m.ReplyTo == "" {
		m.ReplyTo = r.cfg.ReplyTo
	}
	out, err := m.prepare(r.cfg.From)
	if err != nil {
		return Receipt{}, err
	}

	req := &resend.SendEmailRequest{
		From:    out.From,
		To:      out.To,
		Cc:      out.CC,
		Bcc:     out.BCC,
		ReplyTo: out.ReplyTo,
		Subject: out.Subject,
		Html:    out.HTMLBody,
		Text:    out.TextBody,
		Headers: out.Headers,
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ResendTimeout())
	defer cancel()

	sent, err := r.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return Receipt{}, ErrSend{Provider: "resend", Err: err}
	}

	return Receipt{Provider: ProviderResend, MessageID: sent.Id}, nil
}
