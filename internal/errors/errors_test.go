package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestDomainErrorWrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("fetch board: %w", Unavailable("executing request", cause))

	if !IsType(err, ErrTypeUnavailable) {
		t.Fatalf("expected unavailable error type")
	}
	if IsType(err, ErrTypeInternal) {
		t.Fatalf("did not expect internal error type")
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through the chain")
	}
	if !strings.Contains(err.Error(), "UNAVAILABLE: executing request: connection refused") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestBadStatus(t *testing.T) {
	err := fmt.Errorf("board acme: %w", BadStatus("404 Not Found", http.StatusNotFound))

	if got := StatusCode(err); got != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", got)
	}
	if !IsType(err, ErrTypeUnavailable) {
		t.Fatalf("expected unavailable error type")
	}
	if StatusCode(stderrors.New("plain")) != 0 {
		t.Fatalf("expected zero status for plain errors")
	}
}

func TestStackIsCaptured(t *testing.T) {
	err := Internal("boom", nil)
	if len(err.StackTrace()) == 0 {
		t.Fatalf("expected stack trace to be captured")
	}
}
