package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/config"
)

// Mailer performs a single outbound email delivery attempt.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail over a single-use SMTP session. Each call opens its
// own connection and tears it down on every exit path; the whole
// connect/auth/send/disconnect sequence shares one deadline.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer constructs the mailer.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

type securityMode int

const (
	securityNone securityMode = iota
	securityImplicitTLS
	securityStartTLS
)

// securityFor maps relay port and config flag to a session security mode.
// Port 465 is implicit TLS at connect time regardless of the flag; any other
// port upgrades via STARTTLS only when requested.
func securityFor(port int, useStartTLS bool) securityMode {
	if port == 465 {
		return securityImplicitTLS
	}
	if useStartTLS {
		return securityStartTLS
	}
	return securityNone
}

// Send delivers one message. Errors are returned to the caller; the dispatch
// worker is the single place that logs and discards them.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout())
	defer cancel()

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	mode := securityFor(m.cfg.Port, m.cfg.UseStartTLS)
	if mode == securityImplicitTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: m.cfg.Host})
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	if mode == securityStartTLS {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := writer.Write(buildMessage(m.cfg.DisplayName, m.cfg.From, to, subject, htmlBody)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish body: %w", err)
	}
	if err := client.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}

	m.logger.Info("email sent", zap.String("recipient", to))
	return nil
}
