package ledger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind buckets every failed ledger submission into one of three outcomes the
// approval workflows branch on. Classification lives here, away from the
// workflow code, so new revert reasons are additive.
type Kind int

const (
	// KindKnownRevert means the contract rejected the call because the
	// desired end state already holds (e.g. "already signed"). Treated as
	// proof of ledger truth, not as failure.
	KindKnownRevert Kind = iota

	// KindUnknownRevert is any other contract-level rejection. The call
	// definitively did not take effect.
	KindUnknownRevert

	// KindUnreachable covers timeouts and connectivity failures. The
	// outcome on the ledger is unknown and must never be assumed a success.
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindKnownRevert:
		return "KNOWN_REVERT"
	case KindUnknownRevert:
		return "UNKNOWN_REVERT"
	case KindUnreachable:
		return "UNREACHABLE"
	default:
		return "UNKNOWN"
	}
}

// ClassifiedError wraps a raw client error with its classification.
type ClassifiedError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("ledger %s: %s", e.Kind, e.Reason)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Revert reasons the contract is known to emit.
const reasonAlreadySigned = "already signed"

// Substrings identifying contract-level rejections where the call
// definitively did not take effect.
var revertMarkers = []string{
	"execution reverted",
	"insufficient funds",
	"nonce too low",
	"replacement transaction underpriced",
	"gas required exceeds allowance",
	"intrinsic gas too low",
}

// Substrings identifying transport failures where the outcome is unknown.
var transportMarkers = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"i/o timeout",
	"websocket",
	"eof",
	"broken pipe",
	"too many requests",
}

// Classify maps a raw client error to the reconciliation taxonomy. A nil
// error returns nil. Anything that cannot be proven to be a contract
// rejection is classified unreachable, because assuming a revert for a
// transport hiccup would suppress legitimate retries.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, reasonAlreadySigned) {
		return &ClassifiedError{Kind: KindKnownRevert, Reason: err.Error(), Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ClassifiedError{Kind: KindUnreachable, Reason: err.Error(), Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ClassifiedError{Kind: KindUnreachable, Reason: err.Error(), Err: err}
	}

	for _, marker := range revertMarkers {
		if strings.Contains(msg, marker) {
			return &ClassifiedError{Kind: KindUnknownRevert, Reason: err.Error(), Err: err}
		}
	}
	for _, marker := range transportMarkers {
		if strings.Contains(msg, marker) {
			return &ClassifiedError{Kind: KindUnreachable, Reason: err.Error(), Err: err}
		}
	}

	return &ClassifiedError{Kind: KindUnreachable, Reason: err.Error(), Err: err}
}

// IsAlreadySigned reports whether err is the benign "already signed" revert.
func IsAlreadySigned(err error) bool {
	c := Classify(err)
	return c != nil && c.Kind == KindKnownRevert
}
