package notify

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Config struct {
	Host     string `envconfig:"SMTP_HOST" default:"localhost"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"bookings@tripstack.io"`
}

type template struct {
	subject string
	body    string
}

var templates = map[string]template{
	"reservation": {
		subject: "Your reservation is confirmed",
		body:    "Hello %s,\n\nYour reservation is confirmed. Thank you for booking with us.\n",
	},
}

type Mailer struct {
	cli  *mail.Client
	from string
	log  *zap.Logger
}

func NewMailer(cfg Config, log *zap.Logger) (*Mailer, error) {
	cli, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, errors.Wrap(err, "smtp client")
	}
	return &Mailer{
		cli:  cli,
		from: cfg.From,
		log:  log.Named("notify"),
	}, nil
}

func (m *Mailer) Send(ctx context.Context, to, recipientName, templateName string) error {
	tpl, ok := templates[templateName]
	if !ok {
		return errors.Errorf("unknown mail template %q", templateName)
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(tpl.subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(tpl.body, recipientName))

	if err := m.cli.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "send mail")
	}
	m.log.Debug("mail sent", zap.String("to", to), zap.String("template", templateName))
	return nil
}
