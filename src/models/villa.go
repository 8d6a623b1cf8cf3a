package models

import "villas/src/types"

type Villa struct {
	ID            string           `gorm:"primarykey" json:"id" bson:"id"`
	Name          string           `json:"name" bson:"name"`
	Description   string           `json:"description" bson:"description"`
	MaxGuests     int              `json:"max_guests" bson:"max_guests"`
	PricePerNight float64          `json:"price_per_night" bson:"price_per_night"`
	Amenities     types.StringList `json:"amenities" bson:"amenities"`
	ImageURL      string           `json:"image_url" bson:"image_url"`
	SortOrder     int              `json:"-" bson:"sort_order"`
}
