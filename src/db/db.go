package db

import (
	"log"

	"travelapi/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// GetDb opens the shared postgres connection on first use. Handlers,
// workers and the reconciler all go through this one instance.
func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	conn, err := gorm.Open(postgres.Open(config.GetDSN()))
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = conn
	return conn
}

// NewDB replaces the shared instance. Used by tests.
func NewDB(newdb *gorm.DB) {
	db = newdb
}
