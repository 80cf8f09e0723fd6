package settingsRoutes

import (
	controller "supportdesk/controllers/settings"
	validator "supportdesk/validators/settings"

	"github.com/gofiber/fiber/v2"
)

func SetupSettingsRoutes(app *fiber.App, ctrl *controller.SettingsController, auth fiber.Handler) {
	settings := app.Group("/settings")

	settings.Get("/", auth, ctrl.GetSettings)
	settings.Post("/notifications", validator.UpdateNotifications(), auth, ctrl.UpdateNotifications)
	settings.Post("/privacy", validator.UpdatePrivacy(), auth, ctrl.UpdatePrivacy)
	settings.Post("/security", validator.UpdateSecurity(), auth, ctrl.UpdateSecurity)
}
