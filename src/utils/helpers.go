package utils

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"travelapi/src/config"
	"travelapi/src/db"
	"travelapi/src/lib"
	"travelapi/src/lib/mailer"
	"travelapi/src/models"
	"travelapi/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrListingUnavailable  = errors.New("listing is not available for booking")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrDuplicateBooking    = errors.New("a booking already exists for this listing and date range")
	ErrDuplicateReview     = errors.New("you have already reviewed this listing")
	ErrDuplicatePayment    = errors.New("a payment already exists for this booking reference")
	ErrGatewayUnavailable  = errors.New("payment gateway is unavailable")
	ErrPaymentNotPermitted = errors.New("payment amount does not match the booking total")
)

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

func IsProd() bool {
	return config.Get().APIEnv == "production"
}

func CreateNewListing(params *types.CreateListingRequestBody, ownerId uint) (*models.Listing, error) {
	listing := models.Listing{
		OwnerID:       ownerId,
		Title:         params.Title,
		Description:   params.Description,
		PricePerNight: params.PricePerNight,
		MaxGuests:     params.MaxGuests,
		IsAvailable:   true,
	}
	if params.IsAvailable != nil {
		listing.IsAvailable = *params.IsAvailable
	}
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}
		if err := tx.Preload("Owner").First(&listing, listing.ID).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func UpdateListing(id uint, ownerId uint, params *types.UpdateListingRequestBody) (*models.Listing, error) {
	var listing models.Listing
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&models.Listing{ID: id, OwnerID: ownerId}).First(&listing).Error; err != nil {
			return ErrListingNotFound
		}
		updates := map[string]any{}
		if params.Title != nil {
			updates["title"] = *params.Title
		}
		if params.Description != nil {
			updates["description"] = *params.Description
		}
		if params.PricePerNight != nil {
			updates["price_per_night"] = *params.PricePerNight
		}
		if params.MaxGuests != nil {
			updates["max_guests"] = *params.MaxGuests
		}
		if params.IsAvailable != nil {
			updates["is_available"] = *params.IsAvailable
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Listing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Preload("Owner").First(&listing, id).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// DeleteListing removes a listing owned by ownerId. Bookings and
// reviews go with it through the FK cascade.
func DeleteListing(id uint, ownerId uint) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Where(&models.Listing{ID: id, OwnerID: ownerId}).First(&listing).Error; err != nil {
			return ErrListingNotFound
		}
		if err := tx.Unscoped().Delete(&listing).Error; err != nil {
			return err
		}
		return nil
	})
}

// CreateBooking persists an unconfirmed booking with a server-assigned
// reference. The stay is stored as exact dates; the composite unique
// index surfaces duplicate (listing, check_in, check_out) tuples as a
// unique violation.
func CreateBooking(params *types.CreateBookingRequestBody, guestId uint) (*models.Booking, error) {
	checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckOutDate)
	if err != nil {
		return nil, err
	}
	booking := models.Booking{
		ListingID:    params.ListingID,
		GuestID:      guestId,
		Reference:    uuid.NewString(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   params.TotalPrice,
		IsConfirmed:  false,
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Where(&models.Listing{ID: params.ListingID}).First(&listing).Error; err != nil {
			return ErrListingNotFound
		}
		if !listing.IsAvailable {
			return ErrListingUnavailable
		}
		if err := tx.Create(&booking).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicateBooking
			}
			return err
		}
		if err := tx.Preload("Listing").Preload("Guest").First(&booking, booking.ID).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// InitiatePayment creates a PENDING payment row for a booking
// reference, then asks the gateway for a hosted checkout. The row is
// committed before the gateway call; a gateway failure marks it FAILED.
func InitiatePayment(params *types.InitiatePaymentRequestBody) (*models.Payment, string, error) {
	payment := models.Payment{
		BookingReference: params.BookingReference,
		TransactionID:    uuid.NewString(),
		Amount:           params.Amount,
		Currency:         "ETB",
		Status:           types.PAYMENT_PENDING,
	}
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where(&models.Booking{Reference: params.BookingReference}).First(&booking).Error; err != nil {
			return ErrBookingNotFound
		}
		if booking.TotalPrice != params.Amount {
			return ErrPaymentNotPermitted
		}
		if err := tx.Create(&payment).Error; err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicatePayment
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	cfg := config.Get()
	chapa := lib.GetChapaClient()
	checkout, err := chapa.InitializeTransaction(&lib.ChapaCheckoutInput{
		Amount:      strconv.FormatFloat(params.Amount, 'f', 2, 64),
		Currency:    payment.Currency,
		Email:       params.Email,
		TxRef:       payment.TransactionID,
		CallbackURL: cfg.CallbackURL,
	})
	if err != nil {
		log.Printf("Error initializing transaction [%s]: %s\n", payment.TransactionID, err.Error())
		if uerr := d.Model(&models.Payment{}).
			Where("transaction_id = ? AND status = ?", payment.TransactionID, types.PAYMENT_PENDING).
			Update("status", types.PAYMENT_FAILED).
			Error; uerr != nil {
			log.Printf("Error marking payment [%s] as failed: %s\n", payment.TransactionID, uerr.Error())
		}
		return nil, "", ErrGatewayUnavailable
	}

	md := types.JSONB{"checkout_url": checkout.Data.CheckoutURL, "email": params.Email}
	if err := d.Model(&models.Payment{}).
		Where("transaction_id = ?", payment.TransactionID).
		Update("metadata", &md).
		Error; err != nil {
		log.Printf("Error storing checkout metadata for [%s]: %s\n", payment.TransactionID, err.Error())
	}
	return &payment, checkout.Data.CheckoutURL, nil
}

// CompletePayment applies the single PENDING to terminal transition for
// a transaction id. The conditional update is the idempotency guard:
// concurrent or repeated deliveries see zero affected rows and report
// transitioned=false. On the first SUCCESS transition the referenced
// booking is confirmed inside the same database transaction.
func CompletePayment(txRef string, outcome types.PaymentStatus) (*models.Payment, bool, error) {
	if outcome != types.PAYMENT_SUCCESS && outcome != types.PAYMENT_FAILED {
		return nil, false, fmt.Errorf("invalid payment outcome: %s", outcome)
	}
	var payment models.Payment
	transitioned := false
	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("transaction_id = ? AND status = ?", txRef, types.PAYMENT_PENDING).
			Update("status", outcome)
		if res.Error != nil {
			return res.Error
		}
		transitioned = res.RowsAffected == 1
		if err := tx.Where("transaction_id = ?", txRef).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if transitioned && outcome == types.PAYMENT_SUCCESS {
			if err := tx.Model(&models.Booking{}).
				Where("reference = ?", payment.BookingReference).
				Update("is_confirmed", true).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &payment, transitioned, nil
}

func SendBookingConfirmationEmail(customerEmail string, bookingId uint) error {
	cfg := config.Get()
	if err := mailer.NewMailerMessage(&lib.SendMailInput{
		From:     cfg.FromEmail,
		FromName: cfg.FromName,
		To:       []string{customerEmail},
		Subject:  fmt.Sprintf("Booking Confirmation #%d", bookingId),
		Body:     fmt.Sprintf("Hello, your booking #%d has been confirmed. Thank you!", bookingId),
	}); err != nil {
		log.Printf("Could not enqueue booking confirmation for [%s]: %s\n", customerEmail, err.Error())
		return err
	}
	return nil
}

func SendPaymentConfirmationEmail(userEmail string, bookingReference string, amount float64) error {
	cfg := config.Get()
	if err := mailer.NewMailerMessage(&lib.SendMailInput{
		From:     cfg.FromEmail,
		FromName: cfg.FromName,
		To:       []string{userEmail},
		Subject:  "Payment Confirmation",
		Body:     fmt.Sprintf("Your payment for booking %s of amount %.2f has been successfully completed.", bookingReference, amount),
	}); err != nil {
		log.Printf("Could not enqueue payment confirmation for [%s]: %s\n", userEmail, err.Error())
		return err
	}
	return nil
}

func SerializeListing(l *models.Listing) *types.APIResponseListing {
	owner := ""
	if l.Owner != nil {
		owner = l.Owner.Username
	}
	return &types.APIResponseListing{
		ID:            l.ID,
		Owner:         owner,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight,
		MaxGuests:     l.MaxGuests,
		IsAvailable:   l.IsAvailable,
		CreatedAt:     l.CreatedAt,
	}
}

func SerializeBooking(b *models.Booking) *types.APIResponseBooking {
	res := &types.APIResponseBooking{
		ID:           b.ID,
		ListingID:    b.ListingID,
		Reference:    b.Reference,
		CheckInDate:  b.CheckInDate.Format(config.DATE_PARSE_FORMAT),
		CheckOutDate: b.CheckOutDate.Format(config.DATE_PARSE_FORMAT),
		TotalPrice:   b.TotalPrice,
		IsConfirmed:  b.IsConfirmed,
		CreatedAt:    b.CreatedAt,
	}
	if b.Listing != nil {
		res.ListingTitle = b.Listing.Title
	}
	if b.Guest != nil {
		res.GuestUsername = b.Guest.Username
	}
	return res
}

func SerializeReview(r *models.Review) *types.APIResponseReview {
	reviewer := ""
	if r.Reviewer != nil {
		reviewer = r.Reviewer.Username
	}
	return &types.APIResponseReview{
		ID:        r.ID,
		ListingID: r.ListingID,
		Reviewer:  reviewer,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
