package main

import (
	"errors"
	"log"
	"net/http"

	"travelapi/src/lib"
	"travelapi/src/types"
	"travelapi/src/utils"

	"github.com/gin-gonic/gin"
)

func paymentOutcome(status string) (types.PaymentStatus, bool) {
	switch status {
	case "success", "SUCCESS":
		return types.PAYMENT_SUCCESS, true
	case "failed", "FAILED":
		return types.PAYMENT_FAILED, true
	}
	return "", false
}

func completeAndNotify(txRef string, outcome types.PaymentStatus) error {
	payment, transitioned, err := utils.CompletePayment(txRef, outcome)
	if err != nil {
		return err
	}
	if transitioned && outcome == types.PAYMENT_SUCCESS {
		if email := paymentMetadataEmail(payment.Metadata); email != "" {
			go func() {
				if err := utils.SendPaymentConfirmationEmail(email, payment.BookingReference, payment.Amount); err != nil {
					log.Printf("Error queueing payment confirmation email: %s\n", err.Error())
				}
			}()
		}
	}
	return nil
}

func paymentMetadataEmail(meta *types.JSONB) string {
	if meta == nil {
		return ""
	}
	email, _ := (*meta)["email"].(string)
	return email
}

// paymentCallbackRoute is registered outside the authorized group. The
// gateway calls it server-to-server with no user token attached.
func paymentCallbackRoute(g *gin.RouterGroup) *gin.RouterGroup {
	g.POST("/payment/callback", func(ctx *gin.Context) {
		var body types.PaymentCallbackRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		outcome, ok := paymentOutcome(body.Status)
		if !ok {
			log.Printf("Ignoring callback with status [%s] for transaction [%s]\n", body.Status, body.TransactionID)
			ctx.JSON(http.StatusOK, gin.H{"message": "ignored"})
			return
		}
		if err := completeAndNotify(body.TransactionID, outcome); err != nil {
			if errors.Is(err, utils.ErrPaymentNotFound) {
				log.Printf("Callback for unknown transaction [%s]\n", body.TransactionID)
				ctx.JSON(http.StatusOK, gin.H{"message": "ignored"})
				return
			}
			log.Printf("Error processing payment callback [%s]: %s\n", body.TransactionID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return g
}

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/initiate-payment", func(ctx *gin.Context) {
			var body types.InitiatePaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			payment, checkoutURL, err := utils.InitiatePayment(&body)
			if err != nil {
				switch {
				case errors.Is(err, utils.ErrBookingNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, utils.ErrDuplicatePayment):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				case errors.Is(err, utils.ErrGatewayUnavailable):
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				default:
					log.Printf("Error initiating payment: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				}
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": gin.H{
				"checkout_url":      checkoutURL,
				"transaction_id":    payment.TransactionID,
				"booking_reference": payment.BookingReference,
				"status":            payment.Status,
			}})
		}).
		GET("/verify-payment/:tx_ref", func(ctx *gin.Context) {
			txRef := ctx.Param("tx_ref")
			chapa := lib.GetChapaClient()
			res, err := chapa.VerifyTransaction(txRef)
			if err != nil {
				log.Printf("Could not verify transaction [%s]: %s\n", txRef, err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrGatewayUnavailable.Error()})
				return
			}
			if outcome, ok := paymentOutcome(res.Data.Status); ok {
				if err := completeAndNotify(txRef, outcome); err != nil {
					if errors.Is(err, utils.ErrPaymentNotFound) {
						ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
						return
					}
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
					return
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"transaction_id": txRef,
				"status":         res.Data.Status,
				"amount":         res.Data.Amount,
				"currency":       res.Data.Currency,
			}})
		}).
		POST("/booking/create-payment", func(ctx *gin.Context) {
			var body types.CreateBookingPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			guestId := ctx.GetUint("id")
			booking, err := utils.CreateBooking(&body.CreateBookingRequestBody, guestId)
			if err != nil {
				if errors.Is(err, utils.ErrListingNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			if email == "" {
				email = body.Email
			}
			go func(email string, id uint) {
				if err := utils.SendBookingConfirmationEmail(email, id); err != nil {
					log.Printf("Error queueing booking confirmation email: %s\n", err.Error())
				}
			}(email, booking.ID)
			payment, checkoutURL, err := utils.InitiatePayment(&types.InitiatePaymentRequestBody{
				BookingReference: booking.Reference,
				Amount:           booking.TotalPrice,
				Email:            body.Email,
			})
			if err != nil {
				if errors.Is(err, utils.ErrGatewayUnavailable) {
					ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": gin.H{
				"booking":           utils.SerializeBooking(booking),
				"checkout_url":      checkoutURL,
				"transaction_id":    payment.TransactionID,
				"booking_reference": payment.BookingReference,
			}})
		})
	return g
}
