package boot

import (
	"log"
	"time"

	"travelapi/src/common"
	"travelapi/src/config"
	"travelapi/src/db"
	"travelapi/src/lib"
	"travelapi/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
		&models.Review{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	cfg := config.Get()
	if cfg.APIEnv == "local" {
		go lib.KafkaCreateTopics(cfg.EmailQueue)
		go common.EmailsToSendKafkaConsumer()
		return
	}
	go common.EmailsToSendConsumer()
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(common.ReconcilePendingPayments, 15*time.Minute, 15*time.Minute)
	if err != nil {
		log.Printf("Error scheduling payment reconciler: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled payment reconciler: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
