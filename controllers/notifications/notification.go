package notificationControllers

import (
	"supportdesk/middleware"
	"supportdesk/notifications"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Inbox *notifications.InApp
}

func NewNotificationController(inbox *notifications.InApp) *NotificationController {
	return &NotificationController{Inbox: inbox}
}

// UnreadNotifications lists the caller's unread in-app notifications, newest first.
func (nc *NotificationController) UnreadNotifications(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	rows, err := nc.Inbox.Unread(c.UserContext(), userId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", rows)
}
