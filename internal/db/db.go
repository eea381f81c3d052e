package db

import (
	"log"
	"time"

	"github.com/slotcal/slotcal-api/internal/config"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Engine-level backstop for concurrent claims: no two scheduled
	// bookings for the same host may occupy overlapping intervals. The
	// losing writer gets SQLSTATE 23P01 (see httperr.IsExclusionConflict).
	// Without this constraint the locked conflict check alone cannot stop
	// two simultaneous claims of a free slot, so a failed bootstrap is
	// fatal rather than a degraded start.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	err = db.Exec(`
        ALTER TABLE bookings
        ADD CONSTRAINT bookings_no_host_overlap
        EXCLUDE USING gist (
            host_id WITH =,
            tstzrange(start, "end") WITH &&
        )
        WHERE (status = 'scheduled')
    `).Error
	if err != nil && !httperr.IsDuplicateObject(err) {
		log.Fatalf("failed to create overlap constraint: %v", err)
	}

	return db
}
