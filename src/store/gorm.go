package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"villas/src/models"
	"villas/src/models/scopes"
	"villas/src/types"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, types.ErrNotFound)
	}
	return err
}

func (s *GormStore) CountVillas(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Villa{}).Count(&count).Error
	return count, err
}

func (s *GormStore) InsertVillas(ctx context.Context, villas []models.Villa) error {
	if len(villas) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&villas).Error
}

func (s *GormStore) ListVillas(ctx context.Context) ([]models.Villa, error) {
	villas := make([]models.Villa, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Villa{}).
		Order("sort_order asc").
		Limit(100).
		Find(&villas).
		Error
	return villas, err
}

func (s *GormStore) FindVilla(ctx context.Context, id string) (*models.Villa, error) {
	var villa models.Villa
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&villa).
		Error
	if err != nil {
		return nil, notFound(err, "villa "+id)
	}
	return &villa, nil
}

func (s *GormStore) FindOverlappingBookings(ctx context.Context, villaID, checkIn, checkOut string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(
			scopes.WithVilla(villaID),
			scopes.WithActiveStatus,
			scopes.Overlapping(checkIn, checkOut),
		).
		Find(&bookings).
		Error
	return bookings, err
}

func (s *GormStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *GormStore) FindBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithID(id)).
		First(&booking).
		Error
	if err != nil {
		return nil, notFound(err, "booking "+id)
	}
	return &booking, nil
}

func (s *GormStore) SetBookingSession(ctx context.Context, bookingID, sessionID string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scopes.WithID(bookingID)).
		Update("payment_session_id", sessionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, types.ErrNotFound)
	}
	return nil
}

func (s *GormStore) InsertTransaction(ctx context.Context, txn *models.PaymentTransaction) error {
	return s.db.WithContext(ctx).Create(txn).Error
}

func (s *GormStore) FindTransaction(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithSession(sessionID)).
		First(&txn).
		Error
	if err != nil {
		return nil, notFound(err, "transaction "+sessionID)
	}
	return &txn, nil
}

func (s *GormStore) UpdateTransaction(ctx context.Context, sessionID string, status types.TransactionStatus, paymentStatus types.PaymentStatus, confirm bool) (bool, bool, error) {
	matched, confirmed := false, false
	guard := scopes.WithTransactionStatus(types.TRANSACTION_INITIATED)
	if confirm {
		guard = scopes.NotCompleted
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.PaymentTransaction{}).
			Scopes(scopes.WithSession(sessionID), guard).
			Updates(map[string]any{
				"status":         status,
				"payment_status": paymentStatus,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		matched = true
		if !confirm {
			return nil
		}
		var txn models.PaymentTransaction
		if err := tx.
			Select("booking_id").
			Scopes(scopes.WithSession(sessionID)).
			First(&txn).
			Error; err != nil {
			return err
		}
		moved, err := confirmBooking(tx, txn.BookingID)
		confirmed = moved
		return err
	})
	if err != nil {
		return false, false, err
	}
	return matched, confirmed, nil
}

func confirmBooking(tx *gorm.DB, bookingID string) (bool, error) {
	res := tx.
		Model(&models.Booking{}).
		Scopes(scopes.WithID(bookingID)).
		Where("status = ?", types.BOOKING_PENDING).
		Update("status", types.BOOKING_CONFIRMED)
	return res.RowsAffected > 0, res.Error
}

func (s *GormStore) ConfirmBooking(ctx context.Context, bookingID string) (bool, error) {
	return confirmBooking(s.db.WithContext(ctx), bookingID)
}

func (s *GormStore) ListStaleTransactions(ctx context.Context, olderThan time.Time, limit int) ([]models.PaymentTransaction, error) {
	var txns []models.PaymentTransaction
	err := s.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Scopes(scopes.WithTransactionStatus(types.TRANSACTION_INITIATED)).
		Where("created_at < ?", olderThan).
		Order("created_at asc").
		Limit(limit).
		Find(&txns).
		Error
	return txns, err
}

func (s *GormStore) ListUnconfirmedPaid(ctx context.Context, limit int) ([]models.PaymentTransaction, error) {
	var txns []models.PaymentTransaction
	err := s.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Select("payment_transactions.*").
		Joins("JOIN bookings ON bookings.id = payment_transactions.booking_id").
		Where("payment_transactions.status = ? AND payment_transactions.payment_status = ?", types.TRANSACTION_COMPLETED, types.PAYMENT_PAID).
		Where("bookings.status = ?", types.BOOKING_PENDING).
		Order("payment_transactions.updated_at asc").
		Limit(limit).
		Find(&txns).
		Error
	return txns, err
}

func (s *GormStore) InsertContact(ctx context.Context, contact *models.ContactSubmission) error {
	return s.db.WithContext(ctx).Create(contact).Error
}
