package supportValidators

import (
	"strings"

	"supportdesk/middleware"
	"supportdesk/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateTicketRequest struct {
	Subject  string `json:"subject" form:"subject" validate:"required,max=255"`
	Message  string `json:"message" form:"message" validate:"required,max=5000"`
	Priority string `json:"priority" form:"priority" validate:"max=20"`
}

type TicketListQuery struct {
	Page     int    `query:"page" validate:"gte=0,lte=1000000"`
	Limit    int    `query:"limit" validate:"gte=0,lte=100"`
	Status   string `query:"status" validate:"max=20"`
	Priority string `query:"priority" validate:"max=20"`
}

type RespondRequest struct {
	TicketID uint   `json:"ticketId" form:"ticket_id" validate:"required"`
	Response string `json:"response" form:"response" validate:"required,max=5000"`
	Status   string `json:"status" form:"status" validate:"max=20"`
}

type StatusRequest struct {
	TicketID uint   `json:"ticketId" form:"ticket_id" validate:"required"`
	Status   string `json:"status" form:"status" validate:"required,max=20"`
}

type PriorityRequest struct {
	TicketID uint   `json:"ticketId" form:"ticket_id" validate:"required"`
	Priority string `json:"priority" form:"priority" validate:"required,max=20"`
}

func CreateSupportTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Subject = strings.TrimSpace(reqData.Subject)
		reqData.Message = strings.TrimSpace(reqData.Message)
		reqData.Priority = strings.TrimSpace(reqData.Priority)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSupportTicket", reqData)
		return c.Next()
	}
}

// TicketList validates the query of both the user and the admin listing.
func TicketList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TicketListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func AdminRespondTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RespondRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Response = strings.TrimSpace(reqData.Response)
		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminRespond", reqData)
		return c.Next()
	}
}

func AdminUpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

func AdminUpdatePriority() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PriorityRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPriority", reqData)
		return c.Next()
	}
}

// TicketID reads the :id route parameter.
func TicketID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "Ticket ID must be greater than 0!"})
		}

		c.Locals("ticketId", uint(id))
		return c.Next()
	}
}
