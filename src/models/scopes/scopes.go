package scopes

import (
	"villas/src/types"

	"gorm.io/gorm"
)

func WithID(id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithVilla(villaID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("villa_id = ?", villaID)
	}
}

func WithActiveStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", types.ActiveBookingStatuses)
}

// Overlapping matches stored ranges intersecting the half-open range [checkIn, checkOut).
// Dates are YYYY-MM-DD strings so lexical order equals calendar order.
func Overlapping(checkIn, checkOut string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	}
}

func WithSession(sessionID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("session_id = ?", sessionID)
	}
}

func NotCompleted(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", types.TRANSACTION_COMPLETED)
}

func WithTransactionStatus(status types.TransactionStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}
