// Package smtp sends the application's transactional mail.
package smtp

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type Options struct {
	From   string
	Domain string
}

// Client represents the mail client.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

func NewClient(dialer *gomail.Dialer, opts Options) *Client {
	return &Client{
		dialer: dialer,
		from:   opts.From,
		domain: opts.Domain,
	}
}

// SendValidationCode sends the onboarding validation code.
func (c *Client) SendValidationCode(to string, code string) error {
	msg := c.newMessage(to, "Confirm your membership application")
	msg.SetBody("text/plain", fmt.Sprintf("Your validation code is %s", code))
	return c.dialer.DialAndSend(msg)
}

// SendOrderConfirmation confirms a completed order. The pass attachment is
// optional and carries the participant's entry QR code.
func (c *Client) SendOrderConfirmation(to string, orderID string, totalAmount int64, pass *bytes.Buffer) error {
	msg := c.newMessage(to, "Order confirmation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your order %s is completed. Amount charged: %d.%02d.",
		orderID, totalAmount/100, totalAmount%100,
	))
	if pass != nil {
		msg.Attach("pass.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pass.Bytes())
			return err
		}))
	}
	return c.dialer.DialAndSend(msg)
}

// SendMembershipReminder warns about an expiring membership.
func (c *Client) SendMembershipReminder(to string, expiresAt time.Time) error {
	msg := c.newMessage(to, "Your membership is expiring")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your membership expires on %s. Renew it in the member portal to keep your access.",
		expiresAt.Format("2 January 2006"),
	))
	return c.dialer.DialAndSend(msg)
}

func (c *Client) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
