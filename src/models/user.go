package models

import "travelapi/src/types"

type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `gorm:"uniqueIndex" json:"username,omitempty"`
	Email    string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role     string `gorm:"default:'guest'" json:"role,omitempty"`

	Listings []Listing `gorm:"foreignKey:owner_id" json:"listings,omitempty"`
	Bookings []Booking `gorm:"foreignKey:guest_id" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:reviewer_id" json:"reviews,omitempty"`

	types.Timestamps
}
