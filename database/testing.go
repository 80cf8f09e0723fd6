package database

import (
	"fmt"

	"supportdesk/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenMemory opens a private, fully migrated in-memory sqlite database.
func OpenMemory() (*gorm.DB, error) {
	db, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
