package booking

import (
	"context"
	"fmt"
	"log"

	"villas/src/config"
	"villas/src/models"
	"villas/src/store"
	"villas/src/types"

	"github.com/google/uuid"
)

type CreateInput struct {
	VillaID   string
	GuestName string
	Email     string
	Phone     string
	CheckIn   string
	CheckOut  string
	Guests    int
}

type Manager struct {
	store  store.Store
	locker Locker
}

func NewManager(s store.Store, l Locker) *Manager {
	if l == nil {
		l = NewLocalLocker()
	}
	return &Manager{store: s, locker: l}
}

func lockKey(villaID string) string {
	return "booking:villa:" + villaID
}

// Create records a pending booking. The availability check and the insert run under the villa lock.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*models.Booking, error) {
	r, err := ParseRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	unlock, err := m.locker.Lock(ctx, lockKey(in.VillaID))
	if err != nil {
		return nil, fmt.Errorf("acquire lock for villa %s: %w", in.VillaID, err)
	}
	defer unlock()

	villa, err := m.store.FindVilla(ctx, in.VillaID)
	if err != nil {
		return nil, err
	}
	if in.Guests > villa.MaxGuests {
		return nil, fmt.Errorf("%d guests for %s: %w", in.Guests, villa.Name, types.ErrInvalidGuests)
	}
	ok, err := m.available(ctx, villa.ID, r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", villa.ID, r, types.ErrUnavailable)
	}

	booking := &models.Booking{
		ID:         uuid.NewString(),
		VillaID:    villa.ID,
		VillaName:  villa.Name,
		GuestName:  in.GuestName,
		Email:      in.Email,
		Phone:      in.Phone,
		CheckIn:    r.CheckIn.Format(config.DATE_FORMAT),
		CheckOut:   r.CheckOut.Format(config.DATE_FORMAT),
		Guests:     in.Guests,
		TotalPrice: float64(r.Nights()) * villa.PricePerNight,
		Status:     types.BOOKING_PENDING,
	}
	if err := m.store.InsertBooking(ctx, booking); err != nil {
		log.Printf("[booking] Error saving booking for %s: %s\n", villa.ID, err.Error())
		return nil, err
	}
	log.Printf("[booking] Created booking %s for %s %s total=%.2f\n", booking.ID, villa.ID, r, booking.TotalPrice)
	return booking, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*models.Booking, error) {
	return m.store.FindBooking(ctx, id)
}
