package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/ledgerline/backend/internal/model"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// DefaultTo receives notifications when no recipient is given.
	DefaultTo string
}

// Enabled reports whether enough is configured to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	cfg  SMTPConfig
	send func(e *email.Email) error
}

// NewMailer creates a Mailer for cfg.
func NewMailer(cfg SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = m.smtpSend
	return m
}

var _ Notifier = (*Mailer)(nil)

func (m *Mailer) smtpSend(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return e.Send(addr, auth)
}

func (m *Mailer) ContactReceived(_ context.Context, to string, msg *model.ContactMessage) error {
	subject := "New enquiry from " + msg.Name
	if msg.Urgency == "urgent" || msg.Urgency == "high" {
		subject = "[" + strings.ToUpper(msg.Urgency) + "] " + subject
	}
	return m.deliver(to, subject, contactBody(msg), msg.Email)
}

func (m *Mailer) BookingReceived(_ context.Context, to string, b *model.Booking) error {
	subject := fmt.Sprintf("Consultation request: %s on %s %s", b.Name, b.PreferredDate, b.PreferredTime)
	return m.deliver(to, subject, bookingBody(b), b.Email)
}

func (m *Mailer) DailyDigest(_ context.Context, to, date string, bookings []*model.Booking) error {
	subject := fmt.Sprintf("Consultations for %s (%d)", date, len(bookings))
	return m.deliver(to, subject, digestBody(date, bookings), "")
}

func (m *Mailer) deliver(to, subject, body, replyTo string) error {
	if to == "" {
		to = m.cfg.DefaultTo
	}
	if to == "" {
		slog.Warn("notification skipped: no recipient", "subject", subject)
		return nil
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	if replyTo != "" {
		e.ReplyTo = []string{replyTo}
	}

	if err := m.send(e); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, to, err)
	}
	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}

func contactBody(msg *model.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	writeOptional(&b, "Phone", msg.Phone)
	writeOptional(&b, "Company", msg.Company)
	writeOptional(&b, "Service", msg.ServiceType)
	fmt.Fprintf(&b, "Preferred contact: %s\n", msg.PreferredContact)
	fmt.Fprintf(&b, "Urgency: %s\n", msg.Urgency)
	writeOptional(&b, "Subject", msg.Subject)
	fmt.Fprintf(&b, "\n%s\n", msg.Message)
	return b.String()
}

func bookingBody(bk *model.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", bk.Name)
	fmt.Fprintf(&b, "Email: %s\n", bk.Email)
	writeOptional(&b, "Phone", bk.Phone)
	writeOptional(&b, "Company", bk.Company)
	fmt.Fprintf(&b, "Service: %s\n", bk.ServiceType)
	fmt.Fprintf(&b, "Requested slot: %s %s (%s)\n", bk.PreferredDate, bk.PreferredTime, bk.MeetingType)
	fmt.Fprintf(&b, "Urgency: %s\n", bk.Urgency)
	if bk.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", bk.Notes)
	}
	return b.String()
}

func digestBody(date string, bookings []*model.Booking) string {
	var b strings.Builder
	if len(bookings) == 0 {
		fmt.Fprintf(&b, "No consultations are scheduled for %s.\n", date)
		return b.String()
	}
	fmt.Fprintf(&b, "Consultations scheduled for %s:\n\n", date)
	for _, bk := range bookings {
		fmt.Fprintf(&b, "%s  %-9s  %s", bk.PreferredTime, bk.Status, bk.Name)
		if bk.Company != "" {
			fmt.Fprintf(&b, " (%s)", bk.Company)
		}
		fmt.Fprintf(&b, "  %s, %s\n", bk.ServiceType, bk.MeetingType)
	}
	return b.String()
}

func writeOptional(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}
