package repositories

import (
	"context"

	"pagos/internal/models"
)

type PaymentRepository interface {
	// CreateWithCard inserts the payment and then its card row in one
	// transaction. On success payment.ID and card.PaymentID are set.
	CreateWithCard(ctx context.Context, payment *models.Payment, card *models.PaymentCard) error

	// ListWithCards returns every payment left-joined with its card row, in
	// whatever order the database yields them.
	ListWithCards(ctx context.Context) ([]models.PaymentHistoryRow, error)

	Ping(ctx context.Context) error
}
