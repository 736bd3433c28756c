package payment

import (
	"context"
	"encoding/json"

	"pagos/internal/models"
	"pagos/internal/services/gateway"
)

// Service defines the payment orchestration flows
type Service interface {
	// CreatePayment opens a gateway intent and records it with its card row.
	CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (*models.CreatePaymentResponse, error)

	// ConfirmPayment confirms an intent at the gateway and returns the
	// gateway's intent JSON untouched. Nothing is written locally.
	ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (json.RawMessage, error)

	// ListPayments returns every payment joined with its card row.
	ListPayments(ctx context.Context) ([]models.PaymentHistoryRow, error)
}

// HistoryCache stores the last ListPayments result. Every invalidation moves
// the generation; SetHistory drops rows read under an older generation.
type HistoryCache interface {
	GetHistory(ctx context.Context) ([]models.PaymentHistoryRow, bool, error)
	HistoryGeneration(ctx context.Context) (int64, error)
	SetHistory(ctx context.Context, generation int64, rows []models.PaymentHistoryRow) error
	InvalidateHistory(ctx context.Context) error
}

// CardResolver decides which card metadata is stored with a new payment.
type CardResolver interface {
	Resolve(ctx context.Context, intent *gateway.Intent, req models.CreatePaymentRequest) (*CardDetails, error)
}

// NoopHistoryCache is used when Redis is not configured.
type NoopHistoryCache struct{}

func (NoopHistoryCache) GetHistory(context.Context) ([]models.PaymentHistoryRow, bool, error) {
	return nil, false, nil
}
func (NoopHistoryCache) HistoryGeneration(context.Context) (int64, error) { return 0, nil }
func (NoopHistoryCache) SetHistory(context.Context, int64, []models.PaymentHistoryRow) error {
	return nil
}
func (NoopHistoryCache) InvalidateHistory(context.Context) error { return nil }
