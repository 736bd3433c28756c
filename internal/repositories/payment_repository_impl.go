package repositories

import (
	"context"
	"errors"
	"fmt"

	"pagos/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const historyColumns = `pagos.pago_id, pagos.monto, pagos.fecha, pagos.tipo_pago_id,
	pagos.usuario_id, pagos.evento_id, pagos.intent_id,
	pago_tarjeta.tarjeta_id, pago_tarjeta.numero_tarjeta,
	pago_tarjeta.fecha_expiracion, pago_tarjeta.cvv`

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) CreateWithCard(ctx context.Context, payment *models.Payment, card *models.PaymentCard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		card.PaymentID = payment.ID
		if err := tx.Omit(clause.Associations).Create(card).Error; err != nil {
			return fmt.Errorf("insert payment card: %w", err)
		}

		return nil
	})
}

func (r *paymentRepository) ListWithCards(ctx context.Context) ([]models.PaymentHistoryRow, error) {
	rows := make([]models.PaymentHistoryRow, 0)
	err := r.db.WithContext(ctx).
		Table(models.Payment{}.TableName()).
		Select(historyColumns).
		Joins("LEFT JOIN pago_tarjeta ON pagos.pago_id = pago_tarjeta.pago_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if rows == nil {
		rows = []models.PaymentHistoryRow{}
	}
	return rows, nil
}

func (r *paymentRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// StoreMessage returns the message the database reported, without the
// driver's SQLSTATE decoration, or err's text for non-database errors.
func StoreMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return err.Error()
}
