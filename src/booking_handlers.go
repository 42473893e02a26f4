package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"travelapi/src/config"
	"travelapi/src/db"
	"travelapi/src/models"
	"travelapi/src/types"
	"travelapi/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateBooking := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		var body types.UpdateBookingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		guestId := ctx.GetUint("id")
		var booking models.Booking
		db := db.GetDb()
		if err := db.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: params.ID, GuestID: guestId}).
			First(&booking).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		checkIn := booking.CheckInDate
		checkOut := booking.CheckOutDate
		values := map[string]any{}
		if body.CheckInDate != nil {
			date, err := time.Parse(config.DATE_PARSE_FORMAT, *body.CheckInDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn = date
			values["check_in_date"] = date
		}
		if body.CheckOutDate != nil {
			date, err := time.Parse(config.DATE_PARSE_FORMAT, *body.CheckOutDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkOut = date
			values["check_out_date"] = date
		}
		// Partial updates can move either end of the stay, so the pair
		// is checked against what will actually be persisted.
		if !checkOut.After(checkIn) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "check_out_date must be after check_in_date"})
			return
		}
		if body.TotalPrice != nil {
			values["total_price"] = *body.TotalPrice
		}
		if len(values) > 0 {
			if err := db.Model(&booking).Updates(values).Error; err != nil {
				if utils.IsUniqueViolation(err) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrDuplicateBooking.Error()})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		db.Model(&models.Booking{}).Where(&models.Booking{ID: booking.ID}).Preload("Listing").Preload("Guest").First(&booking)
		ctx.JSON(http.StatusOK, gin.H{"data": utils.SerializeBooking(&booking)})
	}

	g.
		GET("/bookings", func(ctx *gin.Context) {
			guestId := ctx.GetUint("id")
			var bookings []models.Booking
			db := db.GetDb()
			q := db.Model(&models.Booking{}).Preload("Listing").Preload("Guest")
			if ctx.GetString("role") != "host" {
				q = q.Where(&models.Booking{GuestID: guestId})
			}
			if err := q.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data := make([]*types.APIResponseBooking, 0, len(bookings))
			for i := range bookings {
				data = append(data, utils.SerializeBooking(&bookings[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			guestId := ctx.GetUint("id")
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID, GuestID: guestId}).
				Preload("Listing").
				Preload("Guest").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": utils.SerializeBooking(&booking)})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			guestId := ctx.GetUint("id")
			booking, err := utils.CreateBooking(&body, guestId)
			if err != nil {
				if errors.Is(err, utils.ErrListingNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error creating Booking: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if email := ctx.GetString("email"); email != "" {
				go func(email string, id uint) {
					if err := utils.SendBookingConfirmationEmail(email, id); err != nil {
						log.Printf("Error queueing booking confirmation email: %s\n", err.Error())
					}
				}(email, booking.ID)
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": utils.SerializeBooking(booking)})
		}).
		PUT("/bookings/:id", updateBooking).
		PATCH("/bookings/:id", updateBooking).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			guestId := ctx.GetUint("id")
			db := db.GetDb()
			tx := db.Unscoped().Where(&models.Booking{ID: params.ID, GuestID: guestId}).Delete(&models.Booking{})
			if tx.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": tx.Error.Error()})
				return
			}
			if tx.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
