package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/urbantrove-ng/Urbantrove-Api/config"
	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

// sendFunc delivers one rendered HTML message.
type sendFunc func(ctx context.Context, to, subject, html string) error

// Mailer is the SMTP-backed Notifier.
type Mailer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = m.deliver
	return m
}

func (m *Mailer) OrderConfirmed(ctx context.Context, buyer models.User, order models.Order) error {
	if buyer.Email == "" {
		return fmt.Errorf("buyer %s has no email address", buyer.ID)
	}
	subject, body, err := buyerMail(buyer, order)
	if err != nil {
		return err
	}
	if err := m.send(ctx, buyer.Email, subject, body); err != nil {
		return err
	}
	log.Printf("📧 Order confirmation for %s sent to %s", order.OrderNo, buyer.Email)
	return nil
}

func (m *Mailer) VendorOrder(ctx context.Context, vendor models.User, order models.Order, items []models.OrderItem) error {
	if vendor.Email == "" {
		return fmt.Errorf("vendor %s has no email address", vendor.ID)
	}
	subject, body, err := vendorMail(vendor, order, items)
	if err != nil {
		return err
	}
	if err := m.send(ctx, vendor.Email, subject, body); err != nil {
		return err
	}
	log.Printf("📧 Email sent to vendor: %s", vendor.Email)
	return nil
}

func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(html)
	return []byte(b.String())
}

// deliver speaks SMTP directly. Port 465 uses implicit TLS, other ports upgrade
// with STARTTLS when the server offers it.
func (m *Mailer) deliver(ctx context.Context, to, subject, html string) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	var conn net.Conn
	var err error
	if m.cfg.Port == 465 {
		dialer := &tls.Dialer{Config: tlsConfig}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("%w: smtp dial %s: %v", models.ErrUpstream, addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: smtp handshake: %v", models.ErrUpstream, err)
	}
	defer client.Close()

	if m.cfg.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("%w: smtp starttls: %v", models.ErrUpstream, err)
			}
		}
	}
	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: smtp auth: %v", models.ErrUpstream, err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("%w: smtp MAIL FROM: %v", models.ErrUpstream, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%w: smtp RCPT TO: %v", models.ErrUpstream, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: smtp DATA: %v", models.ErrUpstream, err)
	}
	if _, err := w.Write(buildMessage(m.cfg.From, to, subject, html)); err != nil {
		w.Close()
		return fmt.Errorf("%w: smtp write: %v", models.ErrUpstream, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: smtp close: %v", models.ErrUpstream, err)
	}
	return client.Quit()
}
