package settingsValidators

import (
	"supportdesk/middleware"
	"supportdesk/validators"

	"github.com/gofiber/fiber/v2"
)

// Settings forms post checkboxes: a box that is not ticked is simply not sent and decodes as false.

type NotificationSettingsRequest struct {
	EmailNotifications       bool `json:"email_notifications" form:"email_notifications"`
	SMSNotifications         bool `json:"sms_notifications" form:"sms_notifications"`
	ROINotifications         bool `json:"roi_notifications" form:"roi_notifications"`
	TransactionNotifications bool `json:"transaction_notifications" form:"transaction_notifications"`
	ReferralNotifications    bool `json:"referral_notifications" form:"referral_notifications"`
}

type PrivacySettingsRequest struct {
	ProfileVisibility string `json:"profile_visibility" form:"profile_visibility" validate:"max=20"`
	ShowReferralStats bool   `json:"show_referral_stats" form:"show_referral_stats"`
	ShowTradingStats  bool   `json:"show_trading_stats" form:"show_trading_stats"`
}

type SecuritySettingsRequest struct {
	TwoFactorEnabled   bool `json:"two_factor_enabled" form:"two_factor_enabled"`
	LoginNotifications bool `json:"login_notifications" form:"login_notifications"`
}

// parse returns a handler that decodes the body into a fresh T and stores it under key.
func parse[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

func UpdateNotifications() fiber.Handler {
	return parse[NotificationSettingsRequest]("validatedNotificationSettings")
}

func UpdatePrivacy() fiber.Handler {
	return parse[PrivacySettingsRequest]("validatedPrivacySettings")
}

func UpdateSecurity() fiber.Handler {
	return parse[SecuritySettingsRequest]("validatedSecuritySettings")
}
