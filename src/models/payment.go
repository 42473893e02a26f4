package models

import (
	"travelapi/src/types"

	"github.com/google/uuid"
)

// Payment tracks a gateway transaction for a booking reference. Rows
// are created PENDING and only ever move to SUCCESS or FAILED; they
// are never deleted.
type Payment struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	BookingReference string              `gorm:"uniqueIndex" json:"booking_reference"`
	TransactionID    string              `gorm:"uniqueIndex" json:"transaction_id"`
	Amount           float64             `gorm:"type:numeric(8,2)" json:"amount"`
	Currency         string              `gorm:"default:'ETB'" json:"currency,omitempty"`
	Status           types.PaymentStatus `gorm:"default:'PENDING'" json:"status"`
	Metadata         *types.JSONB        `gorm:"type:jsonb" json:"-"`

	types.Timestamps
}
