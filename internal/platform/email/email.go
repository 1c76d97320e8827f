package email

import (
	"context"

	"github.com/wneessen/go-mail"

	"feedback360/internal/domain/evaluation"
	"feedback360/internal/platform/config"
)

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, to, subject, body string) error {
	return nil
}

type smtpNotifier struct {
	client *mail.Client
	from   string
}

// New returns an SMTP-backed notifier, or a noop when email is disabled.
func New(cfg config.Config) (evaluation.Notifier, error) {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopNotifier{}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, err
	}
	return &smtpNotifier{client: client, from: cfg.EmailFrom}, nil
}

func (n *smtpNotifier) Notify(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return n.client.DialAndSendWithContext(ctx, msg)
}
