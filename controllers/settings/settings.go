package settingsControllers

import (
	"supportdesk/middleware"
	settingsServices "supportdesk/services/settings"
	validator "supportdesk/validators/settings"

	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Settings *settingsServices.Service
}

func NewSettingsController(settings *settingsServices.Service) *SettingsController {
	return &SettingsController{Settings: settings}
}

func (sc *SettingsController) GetSettings(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	settings, err := sc.Settings.GetSettings(c.UserContext(), userId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully!", settings)
}

func (sc *SettingsController) UpdateNotifications(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNotificationSettings").(*validator.NotificationSettingsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err := sc.Settings.UpdateNotificationPrefs(c.UserContext(), userId, settingsServices.NotificationPrefs{
		EmailNotifications:       reqData.EmailNotifications,
		SMSNotifications:         reqData.SMSNotifications,
		ROINotifications:         reqData.ROINotifications,
		TransactionNotifications: reqData.TransactionNotifications,
		ReferralNotifications:    reqData.ReferralNotifications,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification settings updated successfully.", nil)
}

func (sc *SettingsController) UpdatePrivacy(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPrivacySettings").(*validator.PrivacySettingsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err := sc.Settings.UpdatePrivacyPrefs(c.UserContext(), userId, settingsServices.PrivacyPrefs{
		ProfileVisibility: reqData.ProfileVisibility,
		ShowReferralStats: reqData.ShowReferralStats,
		ShowTradingStats:  reqData.ShowTradingStats,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Privacy settings updated successfully.", nil)
}

func (sc *SettingsController) UpdateSecurity(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSecuritySettings").(*validator.SecuritySettingsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	err := sc.Settings.UpdateSecurityPrefs(c.UserContext(), userId, settingsServices.SecurityPrefs{
		TwoFactorEnabled:   reqData.TwoFactorEnabled,
		LoginNotifications: reqData.LoginNotifications,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Security settings updated successfully.", nil)
}
