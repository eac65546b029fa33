package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeTicketNotFound, "no ticket found matching %q", "bg-a1")

	if err.Code != ErrCodeTicketNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTicketNotFound)
	}

	if err.Message != `no ticket found matching "bg-a1"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `TICKET_NOT_FOUND: no ticket found matching "bg-a1"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeStorage, cause, "write ticket bg-a1b2c3")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	expected := "STORAGE_ERROR: write ticket bg-a1b2c3: permission denied"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeAmbiguousID, "ambiguous ID")

	if !Is(err, ErrCodeAmbiguousID) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeTicketNotFound) {
		t.Error("Is() = true, want false for non-matching code")
	}
	if Is(errors.New("plain error"), ErrCodeAmbiguousID) {
		t.Error("Is() = true, want false for plain error")
	}
}

func TestIsWrappedChain(t *testing.T) {
	inner := New(ErrCodeDependencyCycle, "would create a cycle")
	outer := fmt.Errorf("add dependency: %w", inner)

	if !Is(outer, ErrCodeDependencyCycle) {
		t.Error("Is() should find code through wrapped chain")
	}
	if GetCode(outer) != ErrCodeDependencyCycle {
		t.Errorf("GetCode() = %v, want %v", GetCode(outer), ErrCodeDependencyCycle)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeSelfDependency, "ticket cannot depend on itself")
	if got := UserMessage(err); got != "ticket cannot depend on itself" {
		t.Errorf("UserMessage() = %v", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestGetCodeNonStructured(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}
