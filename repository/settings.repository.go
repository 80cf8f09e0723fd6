package repository

import (
	"context"
	"errors"

	"supportdesk/apperror"
	"supportdesk/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Find returns the stored settings row and whether one exists.
func (s *SettingsStore) Find(ctx context.Context, userID uint) (models.UserSettings, bool, error) {
	var settings models.UserSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settings, false, nil
	}
	if err != nil {
		return settings, false, apperror.Storage("get settings", err)
	}
	return settings, true, nil
}

// Upsert inserts row when the user has no settings yet; otherwise it overwrites only
// the given columns (and updated_at) of the existing row.
func (s *SettingsStore) Upsert(ctx context.Context, row models.UserSettings, columns []string) error {
	assign := append(append([]string{}, columns...), "updated_at")
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(assign),
		}).
		Create(&row).Error
	if err != nil {
		return apperror.Storage("save settings", err)
	}
	return nil
}
