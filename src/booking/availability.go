package booking

import (
	"context"
	"fmt"
	"slices"
	"time"

	"villas/src/config"
	"villas/src/models"
	"villas/src/types"
)

// DateRange is a half-open interval [CheckIn, CheckOut) of calendar days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func ParseRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(config.DATE_FORMAT, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("check_in %q: %w", checkIn, types.ErrInvalidRange)
	}
	out, err := time.Parse(config.DATE_FORMAT, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("check_out %q: %w", checkOut, types.ErrInvalidRange)
	}
	r := DateRange{CheckIn: in, CheckOut: out}
	if r.Nights() < 1 {
		return DateRange{}, types.ErrInvalidRange
	}
	return r, nil
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

func (r DateRange) String() string {
	return r.CheckIn.Format(config.DATE_FORMAT) + ".." + r.CheckOut.Format(config.DATE_FORMAT)
}

// Available reports whether none of the pending or confirmed bookings intersect r.
func Available(existing []models.Booking, r DateRange) bool {
	for _, b := range existing {
		if !slices.Contains(types.ActiveBookingStatuses, b.Status) {
			continue
		}
		br, err := ParseRange(b.CheckIn, b.CheckOut)
		if err != nil {
			continue
		}
		if br.Overlaps(r) {
			return false
		}
	}
	return true
}

func (m *Manager) IsAvailable(ctx context.Context, villaID, checkIn, checkOut string) (bool, error) {
	r, err := ParseRange(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return m.available(ctx, villaID, r)
}

func (m *Manager) available(ctx context.Context, villaID string, r DateRange) (bool, error) {
	in, out := r.CheckIn.Format(config.DATE_FORMAT), r.CheckOut.Format(config.DATE_FORMAT)
	existing, err := m.store.FindOverlappingBookings(ctx, villaID, in, out)
	if err != nil {
		return false, err
	}
	return Available(existing, r), nil
}
