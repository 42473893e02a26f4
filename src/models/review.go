package models

import "travelapi/src/types"

type Review struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	ListingID  uint   `gorm:"uniqueIndex:idx_review_once" json:"listing_id,omitempty"`
	ReviewerID uint   `gorm:"uniqueIndex:idx_review_once" json:"reviewer_id,omitempty"`
	Rating     int    `json:"rating,omitempty"`
	Comment    string `json:"comment,omitempty"`

	Listing  *Listing `gorm:"foreignKey:listing_id" json:"listing,omitempty"`
	Reviewer *User    `gorm:"foreignKey:reviewer_id" json:"reviewer,omitempty"`

	types.Timestamps
}
