package tools

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/praxislabs/praxis/pkg/config"
	"github.com/praxislabs/praxis/pkg/resilience"
)

func fastRetry() resilience.RetryConfig {
	return resilience.DefaultRetryConfig().
		WithMaxAttempts(3).
		WithInitialDelay(time.Microsecond)
}

func smtpConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "agent@example.com",
	}
}

func TestSendEmailSuccess(t *testing.T) {
	var gotTo []string
	var gotMsg string
	send := func(_ string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	res := run(t, newSendEmail(smtpConfig(), send, fastRetry()), map[string]any{
		"to":      "user@example.com",
		"subject": "hi",
		"body":    "hello there",
	})
	mustSucceed(t, res)

	if len(gotTo) != 1 || gotTo[0] != "user@example.com" {
		t.Errorf("unexpected recipients: %v", gotTo)
	}
	if !strings.Contains(gotMsg, "Subject: hi") || !strings.Contains(gotMsg, "hello there") {
		t.Errorf("message malformed:\n%s", gotMsg)
	}
}

func TestSendEmailRetriesTransientFailure(t *testing.T) {
	attempts := 0
	send := func(_ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		attempts++
		if attempts < 3 {
			return errors.New("421 service not available")
		}
		return nil
	}

	res := run(t, newSendEmail(smtpConfig(), send, fastRetry()), map[string]any{
		"to": "user@example.com", "subject": "s", "body": "b",
	})
	mustSucceed(t, res)
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestSendEmailPermanentFailureNotRetried(t *testing.T) {
	attempts := 0
	send := func(_ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		attempts++
		return errors.New("535 authentication failed")
	}

	res := run(t, newSendEmail(smtpConfig(), send, fastRetry()), map[string]any{
		"to": "user@example.com", "subject": "s", "body": "b",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	if attempts != 1 {
		t.Errorf("permanent failure retried %d times", attempts)
	}
}

func TestSendEmailValidation(t *testing.T) {
	send := func(_ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		t.Fatal("send should not be reached")
		return nil
	}

	res := run(t, newSendEmail(smtpConfig(), send, fastRetry()), map[string]any{
		"to": "not-an-address", "subject": "s", "body": "b",
	})
	if res.Success {
		t.Error("expected failure for invalid recipient")
	}

	res = run(t, newSendEmail(config.SMTPConfig{}, send, fastRetry()), map[string]any{
		"to": "user@example.com", "subject": "s", "body": "b",
	})
	if res.Success {
		t.Error("expected failure when unconfigured")
	}
}
