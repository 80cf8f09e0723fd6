package supportServices

import (
	"fmt"

	"supportdesk/models"
)

// Event is a ticket mutation that may notify the ticket owner.
type Event string

const (
	EventCreated         Event = "ticket_created"
	EventResponded       Event = "ticket_responded"
	EventStatusChanged   Event = "ticket_status_changed"
	EventPriorityChanged Event = "ticket_priority_changed"
)

// NotificationRule says whether an event notifies the owner, and with what.
type NotificationRule struct {
	Notify bool
	Title  string
	Body   func(ticketID uint) string
	Kind   string
}

// NotificationPolicy maps every ticket event to its owner notification.
// Plain status and priority changes are silent; only creation and admin responses notify.
var NotificationPolicy = map[Event]NotificationRule{
	EventCreated: {
		Notify: true,
		Title:  "Support Ticket Created",
		Body: func(id uint) string {
			return fmt.Sprintf("Your support ticket has been created. Ticket ID: %d", id)
		},
		Kind: models.NotificationInfo,
	},
	EventResponded: {
		Notify: true,
		Title:  "Support Ticket Updated",
		Body: func(id uint) string {
			return fmt.Sprintf("Your support ticket #%d has been updated with a new response.", id)
		},
		Kind: models.NotificationInfo,
	},
	EventStatusChanged:   {Notify: false},
	EventPriorityChanged: {Notify: false},
}
