package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	apperrors "pagos/internal/errors"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

const fallbackErrorMessage = "Unknown error occurred"

// StripeClient creates and confirms Stripe payment intents.
type StripeClient struct {
	api    *client.API
	logger *slog.Logger
}

type StripeConfig struct {
	SecretKey string
	// BaseURL points the client at another API host, e.g. stripe-mock.
	BaseURL string
}

// NewStripeClient builds a client with network retries disabled: every call
// reaches Stripe at most once per request.
func NewStripeClient(cfg StripeConfig, logger *slog.Logger) *StripeClient {
	backendCfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	api := client.New(cfg.SecretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
	return &StripeClient{api: api, logger: logger}
}

func (c *StripeClient) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	p := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(params.Amount),
		Currency:    stripe.String(params.Currency),
		Description: stripe.String(params.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	p.Context = ctx
	p.AddExtra("automatic_payment_methods[allow_redirects]", "never")

	pi, err := c.api.PaymentIntents.New(p)
	if err != nil {
		c.logger.Warn("stripe rejected payment intent", "amount", params.Amount, "currency", params.Currency, "error", err)
		return nil, mapStripeError(err)
	}
	return toIntent(pi)
}

func (c *StripeClient) ConfirmIntent(ctx context.Context, intentID, paymentMethod string) (*Intent, error) {
	p := &stripe.PaymentIntentConfirmParams{}
	if paymentMethod != "" {
		p.PaymentMethod = stripe.String(paymentMethod)
	}
	p.Context = ctx

	pi, err := c.api.PaymentIntents.Confirm(intentID, p)
	if err != nil {
		c.logger.Warn("stripe rejected confirmation", "intent_id", intentID, "error", err)
		return nil, mapStripeError(err)
	}
	return toIntent(pi)
}

func toIntent(pi *stripe.PaymentIntent) (*Intent, error) {
	var raw json.RawMessage
	if pi.LastResponse != nil && len(pi.LastResponse.RawJSON) > 0 {
		raw = json.RawMessage(pi.LastResponse.RawJSON)
	} else {
		b, err := json.Marshal(pi)
		if err != nil {
			return nil, fmt.Errorf("encode payment intent: %w", err)
		}
		raw = b
	}

	return &Intent{
		ID:          pi.ID,
		Status:      MapStripeStatus(pi.Status),
		RawStatus:   string(pi.Status),
		Amount:      pi.Amount,
		Currency:    string(pi.Currency),
		Description: pi.Description,
		Raw:         raw,
	}, nil
}

// mapStripeError prefers the message Stripe put in the error body over the
// client library's rendering of the whole error.
func mapStripeError(err error) error {
	message := err.Error()

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		message = stripeErr.Msg
	}
	if message == "" {
		message = fallbackErrorMessage
	}
	return apperrors.GatewayRejected(message, err)
}
