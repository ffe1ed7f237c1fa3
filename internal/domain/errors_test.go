package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{Op: "logo.load", Kind: KindNotFound, Path: "logos/acme.png", Err: ErrNotFound}
	msg := err.Error()
	for _, want := range []string{"logo.load", "not_found", "path=logos/acme.png", "not found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestOpErrorUnwrapAndKind(t *testing.T) {
	wrapped := fmt.Errorf("record 3: %w", &OpError{Op: "roster.parse", Kind: KindInvalidInput, Err: ErrInvalidRecord})
	if !errors.Is(wrapped, ErrInvalidRecord) {
		t.Fatalf("expected errors.Is to find ErrInvalidRecord")
	}
	if !IsKind(wrapped, KindInvalidInput) {
		t.Fatalf("expected IsKind to match invalid_input")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Fatalf("unexpected not_found match")
	}
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestNilOpError(t *testing.T) {
	var e *OpError
	if e.Error() != "<nil>" {
		t.Fatalf("unexpected message %q", e.Error())
	}
	if e.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
