package models

import (
	"strings"
	"time"
)

// Ticket status values
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Ticket priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// FilterAll disables a status or priority filter.
const FilterAll = "all"

var ticketStatuses = map[string]bool{
	TicketOpen:       true,
	TicketInProgress: true,
	TicketResolved:   true,
	TicketClosed:     true,
}

// priorityRanks orders tickets urgency-first when listing.
var priorityRanks = map[string]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityMedium: 3,
	PriorityLow:    4,
}

// SupportTicket is a user-submitted support request.
type SupportTicket struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Subject       string    `gorm:"type:varchar(255);not null" json:"subject"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Status        string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority      string    `gorm:"type:varchar(20);not null;index" json:"priority"`
	AdminResponse *string   `gorm:"type:text" json:"admin_response"`
	RespondedBy   *uint     `json:"responded_by"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// IsValidStatus reports whether s is one of the ticket status values.
func IsValidStatus(s string) bool {
	return ticketStatuses[s]
}

// IsValidPriority reports whether p is one of the ticket priority values.
func IsValidPriority(p string) bool {
	_, ok := priorityRanks[p]
	return ok
}

// PriorityRank returns 1 for urgent through 4 for low, and 0 for unknown values.
func PriorityRank(p string) int {
	return priorityRanks[p]
}

// NormalizeEnum trims and lower-cases a submitted enum value.
func NormalizeEnum(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// PriorityOrderSQL sorts urgent first, low last.
const PriorityOrderSQL = "CASE support_tickets.priority " +
	"WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 WHEN 'low' THEN 4 ELSE 5 END"

// SupportTicketView is a ticket joined with owner and responder display identity.
type SupportTicketView struct {
	SupportTicket
	OwnerName     *string `json:"owner_name"`
	OwnerEmail    *string `json:"owner_email"`
	ResponderName *string `json:"responder_name"`
}

// SupportTicketStats aggregates the full ticket set.
type SupportTicketStats struct {
	Total      int64 `gorm:"column:total" json:"total"`
	Open       int64 `gorm:"column:open_count" json:"open"`
	InProgress int64 `gorm:"column:in_progress_count" json:"in_progress"`
	Resolved   int64 `gorm:"column:resolved_count" json:"resolved"`
	Closed     int64 `gorm:"column:closed_count" json:"closed"`
	Urgent     int64 `gorm:"column:urgent_count" json:"urgent"`
	Last24h    int64 `gorm:"column:last_24h_count" json:"last_24h"`
	Today      int64 `gorm:"column:today_count" json:"today"`
}
