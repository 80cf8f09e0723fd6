package supportServices

import (
	"context"
	"math"
	"time"

	"supportdesk/apperror"
	"supportdesk/models"
	"supportdesk/repository"

	jnow "github.com/jinzhu/now"
)

// TicketFilter selects tickets for a listing. "all" or blank disables a constraint;
// a nil OwnerUserID lists every user's tickets.
type TicketFilter struct {
	Status      string
	Priority    string
	OwnerUserID *uint
}

// TicketPage is one page of a ticket listing.
type TicketPage struct {
	Items      []models.SupportTicketView `json:"tickets"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
}

// ListTickets returns tickets urgency-first, newest-first within a priority.
// Pages past the end are empty, not an error.
func (s *Service) ListTickets(ctx context.Context, filter TicketFilter, page, pageSize int) (TicketPage, error) {
	status, err := enumFilter(filter.Status, "status", models.IsValidStatus)
	if err != nil {
		return TicketPage{}, err
	}
	priority, err := enumFilter(filter.Priority, "priority", models.IsValidPriority)
	if err != nil {
		return TicketPage{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	// a page too far out to address lands past the end instead of wrapping around
	offset := math.MaxInt
	if page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}

	items, total, err := s.store.List(ctx, repository.TicketFilter{
		Status:      status,
		Priority:    priority,
		OwnerUserID: filter.OwnerUserID,
	}, offset, pageSize)
	if err != nil {
		return TicketPage{}, err
	}

	return TicketPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// SummaryStats counts all tickets; last_24h trails the current time, today starts at midnight.
func (s *Service) SummaryStats(ctx context.Context) (models.SupportTicketStats, error) {
	now := s.now()
	return s.store.Stats(ctx, now.Add(-24*time.Hour), jnow.With(now).BeginningOfDay())
}

// GetTicket loads one ticket. With a non-nil owner, other users' tickets are reported as not found.
func (s *Service) GetTicket(ctx context.Context, ticketID uint, owner *uint) (models.SupportTicketView, error) {
	return s.store.View(ctx, ticketID, owner)
}

// TicketHistory returns the ticket's change log, oldest first.
func (s *Service) TicketHistory(ctx context.Context, ticketID uint) ([]models.TicketHistory, error) {
	if _, err := s.store.Get(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.store.History(ctx, ticketID)
}

func enumFilter(value, field string, valid func(string) bool) (string, error) {
	v := models.NormalizeEnum(value)
	if v == "" || v == models.FilterAll {
		return "", nil
	}
	if !valid(v) {
		return "", apperror.Validation(field, "Invalid "+field+" filter.")
	}
	return v, nil
}
