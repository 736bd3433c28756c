// Package gateway is the narrow client the payment service uses to talk to
// the external payment processor.
package gateway

import (
	"context"
	"encoding/json"
)

// Status is the processor's intent status folded onto the states the
// payment service branches on.
type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusRequiresAction      Status = "requires_action"
	StatusSucceeded           Status = "succeeded"
	StatusFailed              Status = "failed"
	// StatusUnknown is any raw status outside the documented set. Callers
	// treat it like a pending intent.
	StatusUnknown Status = "unknown"
)

// IsCompleted reports whether the intent needs no further client action.
func (s Status) IsCompleted() bool {
	return s == StatusSucceeded
}

// CreateIntentParams describes a new payment intent. Redirect-based payment
// methods are always disabled.
type CreateIntentParams struct {
	Amount      int64
	Currency    string
	Description string
}

// Intent is the processor-owned payment intent. Raw holds the processor's
// JSON exactly as received.
type Intent struct {
	ID          string
	Status      Status
	RawStatus   string
	Amount      int64
	Currency    string
	Description string
	Raw         json.RawMessage
}

type Client interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID, paymentMethod string) (*Intent, error)
}
