package store

import (
	"context"
	"time"

	"villas/src/models"
	"villas/src/types"
)

// Store is the collection store shared by the catalog, booking and payment components.
type Store interface {
	CountVillas(ctx context.Context) (int64, error)
	InsertVillas(ctx context.Context, villas []models.Villa) error
	ListVillas(ctx context.Context) ([]models.Villa, error)
	FindVilla(ctx context.Context, id string) (*models.Villa, error)

	FindOverlappingBookings(ctx context.Context, villaID, checkIn, checkOut string) ([]models.Booking, error)
	InsertBooking(ctx context.Context, booking *models.Booking) error
	FindBooking(ctx context.Context, id string) (*models.Booking, error)
	SetBookingSession(ctx context.Context, bookingID, sessionID string) error

	InsertTransaction(ctx context.Context, txn *models.PaymentTransaction) error
	FindTransaction(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	// UpdateTransaction writes status fields with a conditional update. With confirm set it matches
	// any transaction that is not completed and moves the owning booking from pending to confirmed
	// in the same unit of work. Without confirm it only matches an initiated transaction.
	// matched reports the transaction write, confirmed reports that the booking row changed.
	UpdateTransaction(ctx context.Context, sessionID string, status types.TransactionStatus, paymentStatus types.PaymentStatus, confirm bool) (matched bool, confirmed bool, err error)
	ListStaleTransactions(ctx context.Context, olderThan time.Time, limit int) ([]models.PaymentTransaction, error)
	// ListUnconfirmedPaid returns completed and paid transactions whose booking is still pending.
	ListUnconfirmedPaid(ctx context.Context, limit int) ([]models.PaymentTransaction, error)
	// ConfirmBooking moves a pending booking to confirmed. Reports whether the row changed.
	ConfirmBooking(ctx context.Context, bookingID string) (bool, error)

	InsertContact(ctx context.Context, contact *models.ContactSubmission) error
}
