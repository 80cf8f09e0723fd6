package supportRoutes

import (
	controller "supportdesk/controllers/support"
	validator "supportdesk/validators/support"

	"github.com/gofiber/fiber/v2"
)

// SetupSupportRoutes mounts the ticket endpoints. auth must set the caller id and
// admin must reject callers that are not administrators.
func SetupSupportRoutes(app *fiber.App, ctrl *controller.TicketController, auth, admin fiber.Handler) {
	support := app.Group("/support")

	support.Post("/create", validator.CreateSupportTicket(), auth, ctrl.CreateSupportTicket)
	support.Get("/list", validator.TicketList(), auth, ctrl.TicketList)
	support.Get("/ticket/:id", validator.TicketID(), auth, ctrl.TicketDetail)

	support.Get("/admin-list", validator.TicketList(), auth, admin, ctrl.AdminTicketList)
	support.Get("/admin-stats", auth, admin, ctrl.AdminSupportStats)
	support.Post("/admin-respond", validator.AdminRespondTicket(), auth, admin, ctrl.AdminRespondTicket)
	support.Post("/admin-status", validator.AdminUpdateStatus(), auth, admin, ctrl.AdminUpdateStatus)
	support.Post("/admin-priority", validator.AdminUpdatePriority(), auth, admin, ctrl.AdminUpdatePriority)
	support.Get("/admin-history/:id", validator.TicketID(), auth, admin, ctrl.AdminTicketHistory)
}
