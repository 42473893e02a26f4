package main

import (
	"log"
	"net/http"

	"travelapi/src/db"
	"travelapi/src/models"
	"travelapi/src/types"
	"travelapi/src/utils"

	"github.com/gin-gonic/gin"
)

func reviewPublicHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.GET("/listings/:id/reviews", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		db := db.GetDb()
		var listing models.Listing
		if err := db.
			Model(&models.Listing{}).
			Where(&models.Listing{ID: params.ID}).
			First(&listing).
			Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": utils.ErrListingNotFound.Error()})
			return
		}
		var reviews []models.Review
		if err := db.
			Model(&models.Review{}).
			Where(&models.Review{ListingID: params.ID}).
			Preload("Reviewer").
			Order("created_at desc").
			Find(&reviews).
			Error; err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		data := make([]*types.APIResponseReview, 0, len(reviews))
		for i := range reviews {
			data = append(data, utils.SerializeReview(&reviews[i]))
		}
		ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
	})
	return g
}

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/listings/:id/reviews", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reviewerId := ctx.GetUint("id")
			db := db.GetDb()
			var listing models.Listing
			if err := db.
				Model(&models.Listing{}).
				Where(&models.Listing{ID: params.ID}).
				First(&listing).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": utils.ErrListingNotFound.Error()})
				return
			}
			review := models.Review{
				ListingID:  params.ID,
				ReviewerID: reviewerId,
				Rating:     body.Rating,
				Comment:    body.Comment,
			}
			if err := db.Create(&review).Error; err != nil {
				if utils.IsUniqueViolation(err) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrDuplicateReview.Error()})
					return
				}
				log.Printf("Error creating Review: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db.Model(&models.Review{}).Where(&models.Review{ID: review.ID}).Preload("Reviewer").First(&review)
			ctx.JSON(http.StatusCreated, gin.H{"data": utils.SerializeReview(&review)})
		}).
		DELETE("/reviews/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			reviewerId := ctx.GetUint("id")
			db := db.GetDb()
			tx := db.Unscoped().Where(&models.Review{ID: params.ID, ReviewerID: reviewerId}).Delete(&models.Review{})
			if tx.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": tx.Error.Error()})
				return
			}
			if tx.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
