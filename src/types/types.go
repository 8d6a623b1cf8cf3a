package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty" bson:"updated_at"`
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
)

// ActiveBookingStatuses block a date range for other guests.
var ActiveBookingStatuses = []BookingStatus{BOOKING_PENDING, BOOKING_CONFIRMED}

type TransactionStatus string

const (
	TRANSACTION_INITIATED TransactionStatus = "initiated"
	TRANSACTION_COMPLETED TransactionStatus = "completed"
	TRANSACTION_FAILED    TransactionStatus = "failed"
	TRANSACTION_EXPIRED   TransactionStatus = "expired"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PAID    PaymentStatus = "paid"
	PAYMENT_UNPAID  PaymentStatus = "unpaid"
)

// StringMap is stored as a JSON document column.
type StringMap map[string]string

func (a StringMap) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringMap) Scan(value any) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}
func (StringMap) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

type StringList []string

func (a StringList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringList) Scan(value any) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, a)
}
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

func scanBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	}
	return nil, errors.New("type assertion to []byte failed")
}

func jsonColumnType(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
