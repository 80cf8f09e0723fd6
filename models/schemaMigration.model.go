package models

import "time"

// SchemaMigration marks one applied schema version.
type SchemaMigration struct {
	Version   int       `gorm:"primarykey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(100);not null"`
	AppliedAt time.Time `gorm:"not null"`
}
