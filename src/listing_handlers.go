package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"travelapi/src/db"
	"travelapi/src/lib"
	"travelapi/src/models"
	"travelapi/src/types"
	"travelapi/src/utils"

	"github.com/gin-gonic/gin"
)

func listingCacheKey(id uint) string {
	return fmt.Sprintf("listing:%d", id)
}

func invalidateListingCache(id uint) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	go rd.Del(context.Background(), listingCacheKey(id))
}

func listingPublicHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/listings", func(ctx *gin.Context) {
			var listings []models.Listing
			db := db.GetDb()
			q := db.Model(&models.Listing{}).Preload("Owner")
			if avail := ctx.Query("available"); avail != "" {
				parsed, err := strconv.ParseBool(avail)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				q = q.Where("is_available = ?", parsed)
			}
			if err := q.Find(&listings).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data := make([]*types.APIResponseListing, 0, len(listings))
			for i := range listings {
				data = append(data, utils.SerializeListing(&listings[i]))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/listings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			rd := lib.GetRedisClient()
			if rd != nil {
				cached := rd.JSONGet(context.Background(), listingCacheKey(params.ID)).Val()
				if cached != "" {
					var data types.APIResponseListing
					if err := json.Unmarshal([]byte(cached), &data); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": &data})
						return
					}
				}
			}
			var listing models.Listing
			db := db.GetDb()
			if err := db.
				Model(&models.Listing{}).
				Where(&models.Listing{ID: params.ID}).
				Preload("Owner").
				First(&listing).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
				return
			}
			data := utils.SerializeListing(&listing)
			if rd != nil {
				go func() {
					if _, err := rd.JSONSet(context.Background(), listingCacheKey(params.ID), "$", data).Result(); err != nil {
						log.Printf("[redis] Error updating listing cache: %s\n", err.Error())
					}
				}()
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data})
		})
	return g
}

func listingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	updateListing := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		var body types.UpdateListingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ownerId := ctx.GetUint("id")
		listing, err := utils.UpdateListing(params.ID, ownerId, &body)
		if err != nil {
			if errors.Is(err, utils.ErrListingNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		invalidateListingCache(params.ID)
		ctx.JSON(http.StatusOK, gin.H{"data": utils.SerializeListing(listing)})
	}

	g.
		POST("/listings", func(ctx *gin.Context) {
			var body types.CreateListingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ownerId := ctx.GetUint("id")
			listing, err := utils.CreateNewListing(&body, ownerId)
			if err != nil {
				log.Printf("Error creating Listing: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": utils.SerializeListing(listing)})
		}).
		PUT("/listings/:id", updateListing).
		PATCH("/listings/:id", updateListing).
		DELETE("/listings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			ownerId := ctx.GetUint("id")
			if err := utils.DeleteListing(params.ID, ownerId); err != nil {
				if errors.Is(err, utils.ErrListingNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error deleting Listing [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invalidateListingCache(params.ID)
			ctx.Status(http.StatusNoContent)
		})
	return g
}
