package models

import "villas/src/types"

type PaymentTransaction struct {
	ID            string                  `gorm:"primarykey" json:"id" bson:"id"`
	SessionID     string                  `gorm:"uniqueIndex" json:"session_id" bson:"session_id"`
	BookingID     string                  `gorm:"index" json:"booking_id" bson:"booking_id"`
	Amount        float64                 `json:"amount" bson:"amount"`
	Currency      string                  `json:"currency" bson:"currency"`
	Status        types.TransactionStatus `gorm:"default:initiated" json:"status" bson:"status"`
	PaymentStatus types.PaymentStatus     `gorm:"default:pending" json:"payment_status" bson:"payment_status"`
	Metadata      types.StringMap         `json:"metadata" bson:"metadata"`

	types.Timestamps `bson:",inline"`
}

func (t *PaymentTransaction) IsSettled() bool {
	return t.Status == types.TRANSACTION_COMPLETED && t.PaymentStatus == types.PAYMENT_PAID
}
