package tools

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/praxislabs/praxis/pkg/config"
	"github.com/praxislabs/praxis/pkg/errors"
	"github.com/praxislabs/praxis/pkg/resilience"
	"github.com/praxislabs/praxis/pkg/tool"
)

// SendFunc performs one SMTP delivery attempt. Replaceable in tests.
type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// NewSendEmail returns the email tool. Transient delivery failures are
// retried with backoff; authentication and address errors are permanent.
func NewSendEmail(cfg config.SMTPConfig) tool.Tool {
	return newSendEmail(cfg, smtp.SendMail, resilience.DefaultRetryConfig())
}

func newSendEmail(cfg config.SMTPConfig, send SendFunc, retry resilience.RetryConfig) tool.Tool {
	retry = retry.WithIsRecoverable(func(err error) bool {
		return errors.CodeOf(err) != errors.CodeInvalidInput
	})

	return tool.New(tool.Descriptor{
		Name:        "send_email",
		Description: "Sends an email to a recipient with a subject and plain-text body.",
		Category:    tool.CategoryCommunication,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"to": {
				Type:        "string",
				Description: "Recipient email address",
			},
			"subject": {
				Type:        "string",
				Description: "Email subject line",
			},
			"body": {
				Type:        "string",
				Description: "Plain-text message body",
			},
		}, "to", "subject", "body"),
	}, func(ctx context.Context, args map[string]any) tool.Result {
		if cfg.Host == "" || cfg.From == "" {
			return tool.Fail("email is not configured")
		}

		to := strings.TrimSpace(strArg(args, "to", ""))
		if !strings.Contains(to, "@") {
			return tool.Fail("invalid recipient address %q", to)
		}
		subject := strArg(args, "subject", "")
		body := strArg(args, "body", "")

		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
			cfg.From, to, subject, body)

		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		var auth smtp.Auth
		if cfg.Username != "" {
			auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
		}

		err := retry.Do(ctx, func() error {
			if err := send(addr, auth, cfg.From, []string{to}, []byte(msg)); err != nil {
				return classifySMTPError(err)
			}
			return nil
		})
		if err != nil {
			return tool.Fail("email delivery failed: %v", err)
		}
		return tool.OkMeta(fmt.Sprintf("email sent to %s", to), map[string]any{
			"to":      to,
			"subject": subject,
		})
	})
}

// classifySMTPError marks failures the retry loop should not repeat:
// 5xx responses are permanent per RFC 5321.
func classifySMTPError(err error) error {
	msg := err.Error()
	for _, code := range []string{"501", "530", "535", "550", "553", "554"} {
		if strings.Contains(msg, code) {
			return errors.New(errors.CodeInvalidInput, "permanent smtp failure", err).
				WithRecoverable(false)
		}
	}
	return errors.New(errors.CodeInternal, "transient smtp failure", err).
		WithRecoverable(true)
}
