package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"time"

	"travelapi/src/boot"
	"travelapi/src/config"
	"travelapi/src/middlewares"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const apiPrefix = "/api/v1"

var staydate validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	today := time.Now().Truncate(24 * time.Hour)
	return !datetime.Before(today)
}

var gtdate validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue, ok := field.Interface().(string)
	if !ok {
		return false
	}
	fielddatetime, err := time.Parse(config.DATE_PARSE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	return datetime.After(fielddatetime)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	listingPublicHandlers(apiv1)
	reviewPublicHandlers(apiv1)
	authHandlers(apiv1)
	paymentCallbackRoute(apiv1)
	return apiv1
}

func authorizedRoutes(g *gin.Engine) *gin.RouterGroup {
	authorized := apiv1Group(g)
	authorized.Use(middlewares.AuthMiddleware)
	listingHandlers(authorized)
	bookingHandlers(authorized)
	reviewHandlers(authorized)
	paymentHandlers(authorized)
	return authorized
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler()
	go boot.InitBroker()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("staydate", staydate)
		v.RegisterValidation("gtdate", gtdate)
	}

	router = maintenanceModeMiddleware(router)

	publicRoutes(router)

	authorizedRoutes(router)

	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
