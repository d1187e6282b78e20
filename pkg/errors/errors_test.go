package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := stderrors.New("boom")
	err := New(CodeToolFailure, "calculator failed", cause)

	msg := err.Error()
	if !strings.Contains(msg, "TOOL_FAILURE") {
		t.Errorf("expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "boom") {
		t.Errorf("expected cause in message, got %q", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := New(CodeLLMError, "gateway call failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestWithContextChaining(t *testing.T) {
	err := New(CodeNotFound, "tool not registered", nil).
		WithContext("tool", "calculator").
		WithRecoverable(true)

	if err.Context["tool"] != "calculator" {
		t.Errorf("unexpected context: %v", err.Context)
	}
	if !err.Recoverable {
		t.Error("expected recoverable")
	}
}

func TestAsPraxisError(t *testing.T) {
	pe := New(CodeTimeout, "deadline", nil)
	if got := AsPraxisError(pe); got != pe {
		t.Error("expected identity for PraxisError")
	}

	wrapped := AsPraxisError(stderrors.New("plain"))
	if wrapped.Code != CodeInternal {
		t.Errorf("expected CodeInternal, got %s", wrapped.Code)
	}

	if AsPraxisError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(New(CodeMemoryError, "x", nil)) != CodeMemoryError {
		t.Error("expected CodeMemoryError")
	}
	if CodeOf(stderrors.New("x")) != CodeInternal {
		t.Error("expected CodeInternal for foreign error")
	}
	if CodeOf(nil) != "" {
		t.Error("expected empty code for nil")
	}
}
