package payment

import (
	"context"
	"fmt"

	"pagos/internal/models"
	"pagos/internal/services/gateway"

	"golang.org/x/crypto/bcrypt"
)

const (
	CardResolverUnavailable = "unavailable"
	CardResolverPlaceholder = "placeholder"
)

// CardDetails is the card metadata for one payment. Nil fields mean the value
// is not known; the gateway keeps the real card.
type CardDetails struct {
	Number     *string
	Expiration *string
	CVV        *string
}

// Available reports whether any card value is present.
func (d *CardDetails) Available() bool {
	return d.Number != nil || d.Expiration != nil || d.CVV != nil
}

// toModel builds the card row. The CVV is only ever stored as a bcrypt digest.
func (d *CardDetails) toModel() (*models.PaymentCard, error) {
	card := &models.PaymentCard{
		CardNumber:     d.Number,
		ExpirationDate: d.Expiration,
	}
	if d.CVV != nil {
		digest, err := bcrypt.GenerateFromPassword([]byte(*d.CVV), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash cvv: %w", err)
		}
		sealed := string(digest)
		card.CVV = &sealed
	}
	return card, nil
}

// UnavailableCardResolver stores a card row without card values.
type UnavailableCardResolver struct{}

func (UnavailableCardResolver) Resolve(context.Context, *gateway.Intent, models.CreatePaymentRequest) (*CardDetails, error) {
	return &CardDetails{}, nil
}

// PlaceholderCardResolver stores the fixed values older clients of the
// history endpoint expect.
type PlaceholderCardResolver struct{}

func (PlaceholderCardResolver) Resolve(context.Context, *gateway.Intent, models.CreatePaymentRequest) (*CardDetails, error) {
	number, expiration, cvv := "1234", "12/25", "123"
	return &CardDetails{Number: &number, Expiration: &expiration, CVV: &cvv}, nil
}

// NewCardResolver returns the resolver registered under name.
func NewCardResolver(name string) (CardResolver, error) {
	switch name {
	case "", CardResolverUnavailable:
		return UnavailableCardResolver{}, nil
	case CardResolverPlaceholder:
		return PlaceholderCardResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown card resolver %q", name)
	}
}
