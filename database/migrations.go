package database

import (
	"fmt"
	"log"
	"time"

	"supportdesk/models"

	"gorm.io/gorm"
)

// Migration is one numbered schema step. Versions are applied in ascending order, once.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

// Migrations lists every schema version. Append only.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users_and_support_tickets",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.User{}, &models.SupportTicket{})
		},
	},
	{
		Version: 2,
		Name:    "create_support_ticket_histories",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.TicketHistory{})
		},
	},
	{
		Version: 3,
		Name:    "create_user_settings",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.UserSettings{})
		},
	},
	{
		Version: 4,
		Name:    "create_notifications",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.Notification{})
		},
	},
}

// Migrate applies every migration newer than the recorded schema version.
func Migrate(db *gorm.DB) error {
	return migrate(db, Migrations)
}

func migrate(db *gorm.DB, migrations []Migration) error {
	if err := db.AutoMigrate(&models.SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []models.SchemaMigration
	if err := db.Find(&applied).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, m := range applied {
		done[m.Version] = true
	}

	for _, m := range migrations {
		if done[m.Version] {
			continue
		}
		log.Printf("[MIGRATE] applying %d_%s", m.Version, m.Name)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&models.SchemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d_%s: %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version, or 0.
func SchemaVersion(db *gorm.DB) (int, error) {
	var version int
	err := db.Model(&models.SchemaMigration{}).Select("COALESCE(MAX(version), 0)").Scan(&version).Error
	return version, err
}
