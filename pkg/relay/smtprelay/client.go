// Package smtprelay provides a relay.Client that forwards signups by email
// over SMTP, for deployments that do not use a hosted form-relay service.
package smtprelay

import (
	"bigbraintime/pkg/relay"
	"bigbraintime/pkg/serrors"
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Options configures the SMTP connection and the forwarded message.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	// TLS requires STARTTLS when set; otherwise TLS is used opportunistically.
	TLS     bool
	Timeout time.Duration
	// From is the envelope sender of forwarded signups.
	From string
	// To is the inbox that receives forwarded signups.
	To string
}

// Sender delivers composed messages. *mail.Client implements it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Client forwards each submission as one email to Options.To, with the
// visitor's address as Reply-To.
type Client struct {
	opts   Options
	sender Sender
}

// New builds a go-mail client from opts.
func New(opts Options) (*Client, error) {
	mailOpts := []mail.Option{
		mail.WithPort(opts.Port),
	}
	if opts.Timeout > 0 {
		mailOpts = append(mailOpts, mail.WithTimeout(opts.Timeout))
	}
	if opts.Username != "" && opts.Password != "" {
		mailOpts = append(mailOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}
	if opts.TLS {
		mailOpts = append(mailOpts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		mailOpts = append(mailOpts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	c, err := mail.NewClient(opts.Host, mailOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not create mail client: %w", err)
	}

	return NewWithSender(opts, c), nil
}

// NewWithSender constructs a Client delivering through sender.
func NewWithSender(opts Options, sender Sender) *Client {
	return &Client{opts: opts, sender: sender}
}

// Message composes the email forwarded for sub.
func (c *Client) Message(sub relay.Submission) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(c.opts.From); err != nil {
		return nil, fmt.Errorf("could not set from address: %w", err)
	}
	if err := msg.To(c.opts.To); err != nil {
		return nil, fmt.Errorf("could not set to address: %w", err)
	}
	if err := msg.ReplyTo(sub.Email); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid signup address")
	}
	msg.Subject(sub.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("New launch signup: %s\n", sub.Email))

	return msg, nil
}

// Submit composes and sends one message for sub.
func (c *Client) Submit(ctx context.Context, sub relay.Submission) error {
	msg, err := c.Message(sub)
	if err != nil {
		return err
	}

	if err := c.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not send signup email")
	}

	return nil
}

var _ relay.Client = (*Client)(nil)
