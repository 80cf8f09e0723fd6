package supportControllers

import (
	"supportdesk/middleware"
	supportServices "supportdesk/services/support"
	validator "supportdesk/validators/support"

	"github.com/gofiber/fiber/v2"
)

type TicketController struct {
	Tickets *supportServices.Service
}

func NewTicketController(tickets *supportServices.Service) *TicketController {
	return &TicketController{Tickets: tickets}
}

func (tc *TicketController) CreateSupportTicket(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSupportTicket").(*validator.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticketId, err := tc.Tickets.SubmitTicket(c.UserContext(), userId, reqData.Subject, reqData.Message, reqData.Priority)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Support ticket submitted successfully. We will get back to you soon.", fiber.Map{
		"ticketId": ticketId,
	})
}

// TicketList lists the caller's own tickets.
func (tc *TicketController) TicketList(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*validator.TicketListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	page, err := tc.Tickets.ListTickets(c.UserContext(), supportServices.TicketFilter{
		Status:      reqData.Status,
		Priority:    reqData.Priority,
		OwnerUserID: &userId,
	}, reqData.Page, reqData.Limit)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", page)
}

// TicketDetail shows one of the caller's own tickets.
func (tc *TicketController) TicketDetail(c *fiber.Ctx) error {
	userId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	ticketId := c.Locals("ticketId").(uint)

	ticket, err := tc.Tickets.GetTicket(c.UserContext(), ticketId, &userId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", ticket)
}

func (tc *TicketController) AdminTicketList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*validator.TicketListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page, err := tc.Tickets.ListTickets(c.UserContext(), supportServices.TicketFilter{
		Status:   reqData.Status,
		Priority: reqData.Priority,
	}, reqData.Page, reqData.Limit)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", page)
}

func (tc *TicketController) AdminSupportStats(c *fiber.Ctx) error {
	stats, err := tc.Tickets.SummaryStats(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket stats fetched successfully!", stats)
}

func (tc *TicketController) AdminRespondTicket(c *fiber.Ctx) error {
	adminId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAdminRespond").(*validator.RespondRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := tc.Tickets.Respond(c.UserContext(), adminId, reqData.TicketID, reqData.Response, reqData.Status); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Response sent successfully.", nil)
}

func (tc *TicketController) AdminUpdateStatus(c *fiber.Ctx) error {
	adminId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedStatus").(*validator.StatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := tc.Tickets.UpdateStatus(c.UserContext(), adminId, reqData.TicketID, reqData.Status); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket status updated successfully.", nil)
}

func (tc *TicketController) AdminUpdatePriority(c *fiber.Ctx) error {
	adminId, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPriority").(*validator.PriorityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := tc.Tickets.UpdatePriority(c.UserContext(), adminId, reqData.TicketID, reqData.Priority); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket priority updated successfully.", nil)
}

func (tc *TicketController) AdminTicketHistory(c *fiber.Ctx) error {
	ticketId := c.Locals("ticketId").(uint)

	history, err := tc.Tickets.TicketHistory(c.UserContext(), ticketId)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket history fetched successfully!", history)
}
