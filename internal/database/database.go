package database

import (
	"log"

	"github.com/lancer-lens/booking-api/internal/config"
	"github.com/lancer-lens/booking-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	// The busy timeout covers writers outside this process; the
	// single-connection pool makes in-process transactions queue instead
	// of failing with SQLITE_BUSY mid-transaction.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath+"?_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	// Auto Migrate
	err = db.AutoMigrate(&models.User{}, &models.Booking{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
