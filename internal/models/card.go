package models

// PaymentCard is one row of the pago_tarjeta table. The card columns are
// nullable: a payment may be stored without real card data.
type PaymentCard struct {
	ID             uint    `gorm:"column:tarjeta_id;primaryKey" json:"tarjeta_id"`
	CardNumber     *string `gorm:"column:numero_tarjeta;size:32" json:"numero_tarjeta"`
	ExpirationDate *string `gorm:"column:fecha_expiracion;size:8" json:"fecha_expiracion"`
	CVV            *string `gorm:"column:cvv;size:72" json:"cvv"`
	PaymentID      uint    `gorm:"column:pago_id;not null;index" json:"pago_id"`
	Payment        Payment `gorm:"foreignKey:PaymentID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (PaymentCard) TableName() string {
	return "pago_tarjeta"
}
