package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"already signed revert", errors.New("execution reverted: Creator already signed"), KindKnownRevert},
		{"already signed casing", errors.New("execution reverted: ALREADY SIGNED"), KindKnownRevert},
		{"plain revert", errors.New("execution reverted: not authorized"), KindUnknownRevert},
		{"insufficient funds", errors.New("insufficient funds for gas * price + value"), KindUnknownRevert},
		{"nonce too low", errors.New("nonce too low"), KindUnknownRevert},
		{"deadline", context.DeadlineExceeded, KindUnreachable},
		{"canceled", context.Canceled, KindUnreachable},
		{"connection refused", errors.New("dial tcp 127.0.0.1:8545: connect: connection refused"), KindUnreachable},
		{"websocket closed", errors.New("websocket: close 1006 (abnormal closure)"), KindUnreachable},
		{"unrecognized", errors.New("something unexpected"), KindUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got == nil {
				t.Fatal("Classify returned nil for non-nil error")
			}
			if got.Kind != tt.want {
				t.Errorf("Classify(%q).Kind = %s, want %s", tt.err, got.Kind, tt.want)
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassify_PreservesWrappedClassification(t *testing.T) {
	inner := Classify(errors.New("execution reverted: already signed"))
	wrapped := fmt.Errorf("submitting signCreator: %w", inner)

	got := Classify(wrapped)
	if got.Kind != KindKnownRevert {
		t.Errorf("Expected wrapped classification to survive, got %s", got.Kind)
	}
}

func TestClassify_UnwrapsToOriginal(t *testing.T) {
	raw := errors.New("execution reverted: already signed")
	classified := Classify(raw)

	if !errors.Is(classified, raw) {
		t.Error("ClassifiedError should unwrap to the raw client error")
	}
}

func TestIsAlreadySigned(t *testing.T) {
	if !IsAlreadySigned(errors.New("execution reverted: already signed")) {
		t.Error("Expected already-signed revert to be detected")
	}
	if IsAlreadySigned(errors.New("execution reverted: paused")) {
		t.Error("Unrelated revert must not count as already signed")
	}
	if IsAlreadySigned(nil) {
		t.Error("nil is not already signed")
	}
}
