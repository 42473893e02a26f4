package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"travelapi/src/config"
	"travelapi/src/db"
	"travelapi/src/models"
	"travelapi/src/types"
	"travelapi/src/utils"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v4"
)

func issueToken(user *models.User) (string, error) {
	claims := &types.Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Get().JWTSecret))
}

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/auth/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user := models.User{
				Name:     body.Name,
				Username: body.Username,
				Email:    body.Email,
			}
			db := db.GetDb()
			if err := db.Create(&user).Error; err != nil {
				if utils.IsUniqueViolation(err) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "account already exists"})
					return
				}
				log.Printf("Error creating User: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			token, err := issueToken(&user)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"token":    token,
			}})
		}).
		POST("/auth/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			db := db.GetDb()
			if err := db.
				Model(&models.User{}).
				Where(&models.User{Email: body.Email}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			token, err := issueToken(&user)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"token":    token,
			}})
		})
	return g
}
