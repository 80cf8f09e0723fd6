package settingsServices

import (
	"context"

	"supportdesk/apperror"
	"supportdesk/models"
	"supportdesk/repository"
)

// NotificationPrefs is the notification form. An unchecked box arrives as false.
type NotificationPrefs struct {
	EmailNotifications       bool
	SMSNotifications         bool
	ROINotifications         bool
	TransactionNotifications bool
	ReferralNotifications    bool
}

// PrivacyPrefs is the privacy form. A blank visibility means private.
type PrivacyPrefs struct {
	ProfileVisibility string
	ShowReferralStats bool
	ShowTradingStats  bool
}

// SecurityPrefs is the security form.
type SecurityPrefs struct {
	TwoFactorEnabled   bool
	LoginNotifications bool
}

// Service reads and writes per-user settings one form group at a time.
// Every boolean of the submitted group is written, so an absent field becomes false.
type Service struct {
	store *repository.SettingsStore
}

func NewService(store *repository.SettingsStore) *Service {
	return &Service{store: store}
}

// GetSettings returns the stored settings, or the defaults without persisting them.
func (s *Service) GetSettings(ctx context.Context, userID uint) (models.UserSettings, error) {
	settings, found, err := s.store.Find(ctx, userID)
	if err != nil {
		return models.UserSettings{}, err
	}
	if !found {
		return models.DefaultUserSettings(userID), nil
	}
	return settings, nil
}

func (s *Service) UpdateNotificationPrefs(ctx context.Context, userID uint, prefs NotificationPrefs) error {
	row := models.DefaultUserSettings(userID)
	row.EmailNotifications = prefs.EmailNotifications
	row.SMSNotifications = prefs.SMSNotifications
	row.ROINotifications = prefs.ROINotifications
	row.TransactionNotifications = prefs.TransactionNotifications
	row.ReferralNotifications = prefs.ReferralNotifications
	return s.store.Upsert(ctx, row, models.NotificationSettingColumns)
}

func (s *Service) UpdatePrivacyPrefs(ctx context.Context, userID uint, prefs PrivacyPrefs) error {
	visibility := models.NormalizeEnum(prefs.ProfileVisibility)
	switch visibility {
	case "":
		visibility = models.VisibilityPrivate
	case models.VisibilityPublic, models.VisibilityPrivate:
	default:
		return apperror.Validation("profile_visibility", "Invalid profile visibility! Allowed: public, private")
	}

	row := models.DefaultUserSettings(userID)
	row.ProfileVisibility = visibility
	row.ShowReferralStats = prefs.ShowReferralStats
	row.ShowTradingStats = prefs.ShowTradingStats
	return s.store.Upsert(ctx, row, models.PrivacySettingColumns)
}

func (s *Service) UpdateSecurityPrefs(ctx context.Context, userID uint, prefs SecurityPrefs) error {
	row := models.DefaultUserSettings(userID)
	row.TwoFactorEnabled = prefs.TwoFactorEnabled
	row.LoginNotifications = prefs.LoginNotifications
	return s.store.Upsert(ctx, row, models.SecuritySettingColumns)
}
