package models

import (
	"time"

	"villas/src/types"
)

type Booking struct {
	ID               string              `gorm:"primarykey" json:"id" bson:"id"`
	VillaID          string              `gorm:"index:idx_booking_villa_dates" json:"villa_id" bson:"villa_id"`
	VillaName        string              `json:"villa_name" bson:"villa_name"`
	GuestName        string              `json:"guest_name" bson:"guest_name"`
	Email            string              `json:"email" bson:"email"`
	Phone            string              `json:"phone" bson:"phone"`
	CheckIn          string              `gorm:"index:idx_booking_villa_dates" json:"check_in" bson:"check_in"`
	CheckOut         string              `gorm:"index:idx_booking_villa_dates" json:"check_out" bson:"check_out"`
	Guests           int                 `json:"guests" bson:"guests"`
	TotalPrice       float64             `json:"total_price" bson:"total_price"`
	Status           types.BookingStatus `gorm:"default:pending" json:"status" bson:"status"`
	PaymentSessionID *string             `json:"payment_session_id" bson:"payment_session_id,omitempty"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at" bson:"created_at"`
}
