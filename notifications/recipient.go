package notifications

import (
	"context"
	"errors"
	"fmt"

	"supportdesk/models"

	"gorm.io/gorm"
)

// Recipient is what the email and SMS channels need to reach a user.
type Recipient struct {
	Name     string
	Email    string
	Mobile   string
	Settings models.UserSettings
}

// RecipientLookup resolves a user id to contact details and preferences.
type RecipientLookup func(ctx context.Context, userID uint) (Recipient, error)

// PreferenceReader returns a user's effective settings.
type PreferenceReader interface {
	GetSettings(ctx context.Context, userID uint) (models.UserSettings, error)
}

// NewRecipientLookup reads contact details from users and preferences from prefs.
func NewRecipientLookup(db *gorm.DB, prefs PreferenceReader) RecipientLookup {
	return func(ctx context.Context, userID uint) (Recipient, error) {
		var user models.User
		err := db.WithContext(ctx).Select("id", "name", "email", "mobile").
			Where("id = ? AND is_deleted = ?", userID, false).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Recipient{}, fmt.Errorf("user %d not found", userID)
		}
		if err != nil {
			return Recipient{}, fmt.Errorf("load user %d: %w", userID, err)
		}

		settings, err := prefs.GetSettings(ctx, userID)
		if err != nil {
			return Recipient{}, err
		}
		return Recipient{Name: user.Name, Email: user.Email, Mobile: user.Mobile, Settings: settings}, nil
	}
}
