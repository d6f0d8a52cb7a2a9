package apperror

import (
	"errors"
	"fmt"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestErrorMessagePrecedence(t *testing.T) {
	if got := Validation("width must be positive", errSentinel).Error(); got != "width must be positive" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := NotFound("", errSentinel).Error(); got != "sentinel" {
		t.Fatalf("expected wrapped message, got %q", got)
	}
	if got := Conflict("", nil).Error(); got != string(KindConflict) {
		t.Fatalf("expected kind as message, got %q", got)
	}
}

func TestIsAndUnwrapThroughWrapping(t *testing.T) {
	err := fmt.Errorf("calculate: %w", Validation("bad quantity", errSentinel))

	if !Is(err, KindValidation) {
		t.Fatalf("expected validation kind")
	}
	if Is(err, KindNotFound) {
		t.Fatalf("did not expect not_found kind")
	}
	if !errors.Is(err, errSentinel) {
		t.Fatalf("expected sentinel to be reachable through the wrapper")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("unexpected KindOf result %q", KindOf(err))
	}
	if KindOf(errSentinel) != "" {
		t.Fatalf("expected empty kind for plain error")
	}
}

func TestNilError(t *testing.T) {
	var e *Error
	if e.Error() != "" || e.Unwrap() != nil {
		t.Fatalf("nil *Error should be inert")
	}
}
