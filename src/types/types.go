package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "PENDING"
	PAYMENT_SUCCESS PaymentStatus = "SUCCESS"
	PAYMENT_FAILED  PaymentStatus = "FAILED"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateListingRequestBody struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	MaxGuests     uint    `json:"max_guests" binding:"required,min=1"`
	IsAvailable   *bool   `json:"is_available,omitempty"`
}

type UpdateListingRequestBody struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	PricePerNight *float64 `json:"price_per_night,omitempty" binding:"omitempty,gt=0"`
	MaxGuests     *uint    `json:"max_guests,omitempty" binding:"omitempty,min=1"`
	IsAvailable   *bool    `json:"is_available,omitempty"`
}

type CreateBookingRequestBody struct {
	ListingID    uint    `json:"listing" binding:"required"`
	CheckInDate  string  `json:"check_in_date" binding:"required,staydate" time_format:"2006-01-02"`
	CheckOutDate string  `json:"check_out_date" binding:"required,staydate,gtdate=CheckInDate" time_format:"2006-01-02"`
	TotalPrice   float64 `json:"total_price" binding:"required,gt=0"`
}

type UpdateBookingRequestBody struct {
	CheckInDate  *string  `json:"check_in_date,omitempty" binding:"omitempty,staydate"`
	CheckOutDate *string  `json:"check_out_date,omitempty" binding:"omitempty,staydate"`
	TotalPrice   *float64 `json:"total_price,omitempty" binding:"omitempty,gt=0"`
}

type CreateReviewRequestBody struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type InitiatePaymentRequestBody struct {
	BookingReference string  `json:"booking_reference" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Email            string  `json:"email" binding:"required,email"`
}

type PaymentCallbackRequestBody struct {
	TransactionID string `json:"trx_ref" binding:"required"`
	RefID         string `json:"ref_id,omitempty"`
	Status        string `json:"status" binding:"required"`
}

type CreateBookingPaymentRequestBody struct {
	CreateBookingRequestBody
	Email string `json:"email" binding:"required,email"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

// API response shapes. Related users are flattened to display strings
// so the payloads never leak numeric account ids.
type APIResponseListing struct {
	ID            uint    `json:"id"`
	Owner         string  `json:"owner"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"price_per_night"`
	MaxGuests     uint    `json:"max_guests"`
	IsAvailable   bool    `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
}

type APIResponseBooking struct {
	ID            uint    `json:"id"`
	ListingID     uint    `json:"listing"`
	ListingTitle  string  `json:"listing_title"`
	GuestUsername string  `json:"guest_username"`
	Reference     string  `json:"booking_reference"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	TotalPrice    float64 `json:"total_price"`
	IsConfirmed   bool    `json:"is_confirmed"`

	CreatedAt time.Time `json:"created_at"`
}

type APIResponseReview struct {
	ID        uint      `json:"id"`
	ListingID uint      `json:"listing"`
	Reviewer  string    `json:"reviewer"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type Handler func(payload string)
