package models

import "time"

// Payment is one row of the pagos table. Fecha is filled by the database.
type Payment struct {
	ID            uint      `gorm:"column:pago_id;primaryKey" json:"pago_id"`
	Amount        int64     `gorm:"column:monto;not null" json:"monto"`
	Date          time.Time `gorm:"column:fecha;type:date;not null;default:CURRENT_DATE" json:"fecha"`
	PaymentTypeID *uint     `gorm:"column:tipo_pago_id" json:"tipo_pago_id"`
	UserID        *uint     `gorm:"column:usuario_id" json:"usuario_id"`
	EventID       *uint     `gorm:"column:evento_id" json:"evento_id"`
	IntentID      string    `gorm:"column:intent_id;size:255" json:"intent_id"`
}

func (Payment) TableName() string {
	return "pagos"
}

// PaymentHistoryRow is a payment joined with its card row. Card columns are
// nil when the payment has no card.
type PaymentHistoryRow struct {
	PaymentID      uint      `gorm:"column:pago_id" json:"pago_id"`
	Amount         int64     `gorm:"column:monto" json:"monto"`
	Date           time.Time `gorm:"column:fecha" json:"fecha"`
	PaymentTypeID  *uint     `gorm:"column:tipo_pago_id" json:"tipo_pago_id"`
	UserID         *uint     `gorm:"column:usuario_id" json:"usuario_id"`
	EventID        *uint     `gorm:"column:evento_id" json:"evento_id"`
	IntentID       string    `gorm:"column:intent_id" json:"intent_id"`
	CardID         *uint     `gorm:"column:tarjeta_id" json:"tarjeta_id"`
	CardNumber     *string   `gorm:"column:numero_tarjeta" json:"numero_tarjeta"`
	ExpirationDate *string   `gorm:"column:fecha_expiracion" json:"fecha_expiracion"`
	CVV            *string   `gorm:"column:cvv" json:"cvv"`
}

// CreatePaymentRequest is the body of POST /pago.
type CreatePaymentRequest struct {
	Amount   int64  `json:"amount" form:"amount"`
	Currency string `json:"currency" form:"currency"`
}

// ConfirmPaymentRequest is the body of POST /confirmarpago.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" form:"paymentIntentId" validate:"required"`
	PaymentMethod   string `json:"paymentMethod" form:"paymentMethod"`
}

// CreatePaymentResponse is either a confirmation prompt carrying the intent id
// or a plain completion message.
type CreatePaymentResponse struct {
	Message      string `json:"message"`
	ClientSecret string `json:"client_secret,omitempty"`
}

const (
	MessageConfirmPayment   = "Confirma tu pago"
	MessagePaymentCompleted = "Pago completado"
)
