package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the repositories use. On
// PostgreSQL it additionally installs the range exclusion constraint that
// rejects overlapping active bookings at the store layer, so two racing
// saves cannot both land.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&bookingModel{},
		&guestModel{},
		&roomStatusModel{},
		&maintenanceIssueModel{},
		&recurringTaskModel{},
		&staffModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return fmt.Errorf("btree_gist extension: %w", err)
		}
		err := db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT idx_no_overlap
EXCLUDE USING gist (
  room_id WITH =,
  daterange(check_in::date, check_out::date, '[)') WITH &&
) WHERE (status <> 'cancelled')
`).Error
		if err != nil && !isDuplicateObject(err) {
			return fmt.Errorf("overlap constraint: %w", err)
		}
	}
	return nil
}

// isDuplicateObject matches the PostgreSQL errors a repeated migration run
// raises for an already-installed constraint.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42710" || pgErr.Code == "42P07"
}
