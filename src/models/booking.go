package models

import (
	"time"

	"travelapi/src/types"
)

// Booking reserves a listing for an exact date range. The composite
// unique index rejects a second booking for the identical
// (listing, check_in, check_out) tuple; overlapping but distinct
// ranges are allowed.
type Booking struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ListingID    uint      `gorm:"uniqueIndex:idx_booking_stay" json:"listing_id,omitempty"`
	GuestID      uint      `json:"guest_id,omitempty"`
	Reference    string    `gorm:"uniqueIndex" json:"booking_reference,omitempty"`
	CheckInDate  time.Time `gorm:"type:date;uniqueIndex:idx_booking_stay" json:"check_in_date,omitempty"`
	CheckOutDate time.Time `gorm:"type:date;uniqueIndex:idx_booking_stay" json:"check_out_date,omitempty"`
	TotalPrice   float64   `gorm:"type:numeric(8,2)" json:"total_price,omitempty"`
	IsConfirmed  bool      `gorm:"default:false" json:"is_confirmed"`

	Listing *Listing `gorm:"foreignKey:listing_id" json:"listing,omitempty"`
	Guest   *User    `gorm:"foreignKey:guest_id" json:"guest,omitempty"`

	types.Timestamps
}
