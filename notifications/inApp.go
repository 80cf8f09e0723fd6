package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"supportdesk/apperror"
	"supportdesk/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InApp stores notifications in the user's inbox table.
type InApp struct {
	db     *gorm.DB
	source string
	now    func() time.Time
}

func NewInApp(db *gorm.DB, source string) *InApp {
	return &InApp{db: db, source: source, now: func() time.Time { return time.Now().UTC() }}
}

func (n *InApp) Notify(ctx context.Context, userID uint, title, body, kind string) error {
	meta, err := json.Marshal(map[string]string{"source": n.source})
	if err != nil {
		return err
	}
	row := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   body,
		Type:      kind,
		Meta:      datatypes.JSON(meta),
		CreatedAt: n.now(),
	}
	if err := n.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

// Unread lists a user's unread inbox entries, newest first.
func (n *InApp) Unread(ctx context.Context, userID uint) ([]models.Notification, error) {
	rows := []models.Notification{}
	err := n.db.WithContext(ctx).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Storage("unread notifications", err)
	}
	return rows, nil
}
