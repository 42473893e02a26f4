package common

import (
	"log"
	"time"

	"travelapi/src/db"
	"travelapi/src/lib"
	"travelapi/src/models"
	"travelapi/src/types"
	"travelapi/src/utils"

	"gorm.io/gorm"
)

// ReconcilePendingPayments re-checks payments stuck in PENDING against
// the gateway and pushes them through the same conditional transition
// the callback uses, so a missed webhook cannot strand a booking.
func ReconcilePendingPayments(gracePeriod time.Duration) {
	var payments []models.Payment
	d := db.GetDb()
	ss := d.Session(&gorm.Session{PrepareStmt: true})
	cutoff := time.Now().Add(-gracePeriod)
	err := ss.
		Model(&models.Payment{}).
		Where("status = ?", types.PAYMENT_PENDING).
		Where("created_at < ?", cutoff).
		Order("created_at asc").
		Limit(100).
		Find(&payments).
		Error
	if err != nil {
		log.Printf("Error retrieving pending payments: %s\n", err.Error())
		return
	}
	if len(payments) == 0 {
		return
	}
	log.Printf("Found %d pending payments to reconcile", len(payments))
	chapa := lib.GetChapaClient()
	for _, p := range payments {
		res, err := chapa.VerifyTransaction(p.TransactionID)
		if err != nil {
			log.Printf("Could not verify transaction [%s]: %s\n", p.TransactionID, err.Error())
			continue
		}
		var outcome types.PaymentStatus
		switch res.Data.Status {
		case "success":
			outcome = types.PAYMENT_SUCCESS
		case "failed":
			outcome = types.PAYMENT_FAILED
		default:
			continue
		}
		payment, transitioned, err := utils.CompletePayment(p.TransactionID, outcome)
		if err != nil {
			log.Printf("Error reconciling payment [%s]: %s\n", p.TransactionID, err.Error())
			continue
		}
		if transitioned && outcome == types.PAYMENT_SUCCESS {
			if email := paymentEmail(payment); email != "" {
				go utils.SendPaymentConfirmationEmail(email, payment.BookingReference, payment.Amount)
			}
		}
	}
}

func paymentEmail(p *models.Payment) string {
	if p.Metadata == nil {
		return ""
	}
	email, _ := (*p.Metadata)["email"].(string)
	return email
}
