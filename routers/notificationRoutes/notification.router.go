package notificationRoutes

import (
	controller "supportdesk/controllers/notifications"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, ctrl *controller.NotificationController, auth fiber.Handler) {
	notifications := app.Group("/notifications")

	notifications.Get("/", auth, ctrl.UnreadNotifications)
}
