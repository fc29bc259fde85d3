package email

import (
	"context"
	"strings"
)

type Message struct {
	To       []string
	CC       []string
	BCC      []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}

// Receipt is what a provider hands back once it accepted a message.
type Receipt struct {
	Provider  string
	MessageID string
}

// Sender delivers one message. Implementations must honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, m Message) (Receipt, error)
}

// outgoing is a Message that passed the provider independent checks, with
// addresses trimmed and empty entries dropped.
type outgoing struct {
	Message
	From string
}

func (m Message) prepare(from string) (outgoing, error) {
	out := outgoing{Message: m, From: strings.TrimSpace(from)}
	if out.From == "" {
		return out, ErrInvalidMessage{Reason: "from is required"}
	}

	out.To = cleanAddrs(m.To)
	if len(out.To) == 0 {
		return out, ErrInvalidMessage{Reason: "at least one recipient is required"}
	}
	out.CC = cleanAddrs(m.CC)
	out.BCC = cleanAddrs(m.BCC)
	out.ReplyTo = strings.TrimSpace(m.ReplyTo)

	out.Subject = strings.TrimSpace(m.Subject)
	if out.Subject == "" {
		return out, ErrInvalidMessage{Reason: "subject is required"}
	}
	if strings.TrimSpace(m.TextBody) == "" && strings.TrimSpace(m.HTMLBody) == "" {
		return out, ErrInvalidMessage{Reason: "either TextBody or HTMLBody is required"}
	}
	if strings.TrimSpace(m.TextBody) == "" {
		out.TextBody = ""
	}
	if strings.TrimSpace(m.HTMLBody) == "" {
		out.HTMLBody = ""
	}

	out.Headers = make(map[string]string, len(m.Headers))
	for k, v := range m.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out.Headers[k] = v
		}
	}
	return out, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
