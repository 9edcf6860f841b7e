// Package notify contains the outbound channel senders. Each sender is one
// synchronous round trip to an external delivery provider; callers decide
// whether to run them inline or behind the queue dispatcher.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

const smtpDialTimeout = 8 * time.Second

// EmailSender delivers notifications over SMTP with STARTTLS.
type EmailSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func NewEmailSender(cfg EmailConfig) *EmailSender {
	return &EmailSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Send delivers n to its destination mailbox. The connection carries a hard
// deadline derived from ctx so a stalled provider cannot hold a worker.
func (s *EmailSender) Send(ctx context.Context, n domain.Notification) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.fromName, s.from),
		fmt.Sprintf("To: %s", n.Destination),
		fmt.Sprintf("Subject: %s", n.Subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		n.Body,
	}, "\r\n")

	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	deadline := time.Now().Add(15 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(s.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(n.Destination); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return nil
}
