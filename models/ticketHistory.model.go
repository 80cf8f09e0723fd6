package models

import "time"

// History field names
const (
	HistoryCreated       = "created"
	HistoryStatus        = "status"
	HistoryPriority      = "priority"
	HistoryAdminResponse = "admin_response"
)

// TicketHistory records one field change on a support ticket.
type TicketHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TicketID  uint      `gorm:"not null;index" json:"ticket_id"`
	Field     string    `gorm:"type:varchar(32);not null" json:"field"`
	OldValue  string    `gorm:"type:text" json:"old_value"`
	NewValue  string    `gorm:"type:text" json:"new_value"`
	ChangedBy uint      `gorm:"not null" json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (TicketHistory) TableName() string {
	return "support_ticket_histories"
}
