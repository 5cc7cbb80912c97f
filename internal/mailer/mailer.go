package mailer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/studiomart/orderpay/config"
	"gopkg.in/gomail.v2"
)

// OrderEmail is the content of a payment confirmation
type OrderEmail struct {
	To           string
	SiteName     string
	WorkTitle    string
	OrderNo      string
	Amount       decimal.Decimal
	FigmaURL     *string
	DeliveryURL  *string
	VersionLabel *string
}

// RefundEmail is the content of a refund notification
type RefundEmail struct {
	To        string
	SiteName  string
	WorkTitle string
	OrderNo   string
	Amount    decimal.Decimal
}

// Mailer sends buyer notifications
type Mailer interface {
	SendOrderPaid(email OrderEmail) error
	SendRefund(email RefundEmail) error
}

// SMTPMailer implements Mailer over an SMTP transport
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates new SMTPMailer instance
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendOrderPaid sends payment confirmation with the releasable links
func (m *SMTPMailer) SendOrderPaid(email OrderEmail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s for %q has been paid.\n", email.OrderNo, email.WorkTitle)
	fmt.Fprintf(&b, "Amount: ￥%s\n", email.Amount.StringFixed(2))
	if email.VersionLabel != nil {
		fmt.Fprintf(&b, "Version: %s\n", *email.VersionLabel)
	}
	if email.FigmaURL != nil {
		fmt.Fprintf(&b, "Design file: %s\n", *email.FigmaURL)
	}
	if email.DeliveryURL != nil {
		fmt.Fprintf(&b, "Download: %s\n", *email.DeliveryURL)
	}

	subject := fmt.Sprintf("[%s] Order %s paid", email.SiteName, email.OrderNo)

	return m.send(email.To, subject, b.String())
}

// SendRefund sends refund notification
func (m *SMTPMailer) SendRefund(email RefundEmail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s for %q has been refunded.\n", email.OrderNo, email.WorkTitle)
	fmt.Fprintf(&b, "Refund amount: ￥%s\n", email.Amount.StringFixed(2))
	fmt.Fprintf(&b, "The original payment route will receive the funds shortly.\n")

	subject := fmt.Sprintf("[%s] Order %s refunded", email.SiteName, email.OrderNo)

	return m.send(email.To, subject, b.String())
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
