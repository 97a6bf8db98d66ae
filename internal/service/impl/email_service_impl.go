package impl

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailServiceSMTP delivers recovery mail over implicit-TLS SMTP, as the
// deployment has always done. No third-party mail dependency: the message is
// a single short HTML body.
type EmailServiceSMTP struct {
	cfg SMTPConfig
}

func NewEmailServiceSMTP(cfg SMTPConfig) *EmailServiceSMTP {
	return &EmailServiceSMTP{cfg: cfg}
}

func (e *EmailServiceSMTP) SendPasswordRecovery(ctx context.Context, to, link string) error {
	addr := net.JoinHostPort(e.cfg.Host, strconv.Itoa(e.cfg.Port))

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Password recovery\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "<b>Follow this link to reset your password: %s</b>\r\n", link)

	dialer := &net.Dialer{}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: e.cfg.Host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, e.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if e.cfg.User != "" {
		auth := smtp.PlainAuth("", e.cfg.User, e.cfg.Password, e.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(e.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg.String())); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}

// EmailServiceLog is the dev/test sender: it logs instead of dialing SMTP.
type EmailServiceLog struct{}

func NewEmailServiceLog() *EmailServiceLog { return &EmailServiceLog{} }

func (e *EmailServiceLog) SendPasswordRecovery(ctx context.Context, to, link string) error {
	slog.InfoContext(ctx, "password recovery mail (smtp disabled)", "to", to, "link", link)
	return nil
}
