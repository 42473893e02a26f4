package models

import "travelapi/src/types"

type Listing struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	OwnerID       uint    `json:"owner_id,omitempty"`
	Title         string  `json:"title,omitempty"`
	Description   string  `json:"description,omitempty"`
	PricePerNight float64 `gorm:"type:numeric(8,2)" json:"price_per_night,omitempty"`
	MaxGuests     uint    `json:"max_guests,omitempty"`
	IsAvailable   bool    `gorm:"default:true" json:"is_available"`

	Owner    *User     `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Bookings []Booking `gorm:"foreignKey:listing_id;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:listing_id;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`

	types.Timestamps
}
