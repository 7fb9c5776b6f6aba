package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeyakmania/booking-api/internal/config"
	"github.com/yeyakmania/booking-api/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	maxOpen := cfg.DBMaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen / 2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates tables and the indexes AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.InstructorSettings{},
		&models.GoogleConnection{},
		&models.Coaching{},
		&models.PackageTemplate{},
		&models.Package{},
		&models.Reservation{},
		&models.Invitation{},
		&models.StudentInstructor{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	statements := []string{
		// A NULL coaching still counts as one link per student/instructor pair.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_student_instructor_link
		   ON student_instructors (student_id, instructor_id,
		      COALESCE(coaching_id, '00000000-0000-0000-0000-000000000000'::uuid))`,
		`CREATE INDEX IF NOT EXISTS idx_reservation_blocking
		   ON reservations (instructor_id, start_time)
		   WHERE status IN ('pending', 'confirmed')`,
		`CREATE INDEX IF NOT EXISTS idx_reservation_confirmed_start
		   ON reservations (start_time)
		   WHERE status = 'confirmed'`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
