package models

import "time"

// Profile visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// UserSettings holds one user's notification, privacy and security preferences.
// Boolean columns carry no gorm default so that an explicit false is written as false.
type UserSettings struct {
	ID     uint `gorm:"primarykey" json:"-"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	EmailNotifications       bool `gorm:"not null" json:"email_notifications"`
	SMSNotifications         bool `gorm:"column:sms_notifications;not null" json:"sms_notifications"`
	ROINotifications         bool `gorm:"column:roi_notifications;not null" json:"roi_notifications"`
	TransactionNotifications bool `gorm:"not null" json:"transaction_notifications"`
	ReferralNotifications    bool `gorm:"not null" json:"referral_notifications"`

	ProfileVisibility string `gorm:"type:varchar(20);not null" json:"profile_visibility"`
	ShowReferralStats bool   `gorm:"not null" json:"show_referral_stats"`
	ShowTradingStats  bool   `gorm:"not null" json:"show_trading_stats"`

	TwoFactorEnabled   bool `gorm:"column:two_factor_enabled;not null" json:"two_factor_enabled"`
	LoginNotifications bool `gorm:"not null" json:"login_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultUserSettings is what a user without a stored row sees.
func DefaultUserSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:                   userID,
		EmailNotifications:       true,
		SMSNotifications:         true,
		ROINotifications:         true,
		TransactionNotifications: true,
		ReferralNotifications:    true,
		ProfileVisibility:        VisibilityPrivate,
		ShowReferralStats:        false,
		ShowTradingStats:         false,
		TwoFactorEnabled:         false,
		LoginNotifications:       true,
	}
}

// Column groups written by each settings form.
var (
	NotificationSettingColumns = []string{
		"email_notifications",
		"sms_notifications",
		"roi_notifications",
		"transaction_notifications",
		"referral_notifications",
	}
	PrivacySettingColumns = []string{
		"profile_visibility",
		"show_referral_stats",
		"show_trading_stats",
	}
	SecuritySettingColumns = []string{
		"two_factor_enabled",
		"login_notifications",
	}
)
