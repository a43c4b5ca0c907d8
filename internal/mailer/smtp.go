// Package mailer delivers outbound email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dtroode/storefront-server/internal/config"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const defaultBackoff = 200 * time.Millisecond

var _ model.Mailer = (*SMTP)(nil)

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTP sends plain-text messages through a relay, retrying transient failures.
type SMTP struct {
	addr     string
	from     string
	auth     smtp.Auth
	attempts uint64
	backoff  time.Duration
	send     sendFunc
	logger   *logger.Logger
}

// NewSMTP creates a mailer for the configured relay. Authentication is used
// only when a username is set.
func NewSMTP(cfg config.SMTP, logger *logger.Logger) *SMTP {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from:     cfg.From,
		auth:     auth,
		attempts: max(cfg.Attempts, 1),
		backoff:  defaultBackoff,
		send:     smtp.SendMail,
		logger:   logger,
	}
}

// Send delivers message, making up to the configured number of attempts.
func (m *SMTP) Send(ctx context.Context, message model.Message) error {
	raw := m.compose(message)
	backoff := retry.WithMaxRetries(m.attempts-1, retry.NewExponential(m.backoff))

	var attempt int
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := m.send(m.addr, m.auth, m.from, []string{message.To}, raw); err != nil {
			m.logger.Warn("Mailer: send attempt failed",
				"attempt", attempt,
				"error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to send email after %d attempts: %w", attempt, err)
	}

	m.logger.Debug("Mailer: message sent",
		"subject", message.Subject,
		"attempts", attempt)

	return nil
}

func (m *SMTP) compose(message model.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(m.from))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(message.To))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(message.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// headerValue drops line breaks so a value cannot start a new header.
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
