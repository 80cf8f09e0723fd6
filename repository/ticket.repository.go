// Package repository persists support tickets, their history and user settings with gorm.
package repository

import (
	"context"
	"errors"
	"time"

	"supportdesk/apperror"
	"supportdesk/models"

	"gorm.io/gorm"
)

// TicketFilter narrows a ticket listing. Empty fields impose no constraint.
type TicketFilter struct {
	Status      string
	Priority    string
	OwnerUserID *uint
}

// FieldChange is one column update together with the history row describing it.
// Changes without a Field are written but not logged.
type FieldChange struct {
	Column string
	Field  string
	Value  any
	Old    string
	New    string
}

// TicketStore is the gorm-backed ticket store.
type TicketStore struct {
	db *gorm.DB
}

func NewTicketStore(db *gorm.DB) *TicketStore {
	return &TicketStore{db: db}
}

// Create inserts the ticket and its creation history row in one transaction.
func (s *TicketStore) Create(ctx context.Context, ticket *models.SupportTicket) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		return tx.Create(&models.TicketHistory{
			TicketID:  ticket.ID,
			Field:     models.HistoryCreated,
			NewValue:  ticket.Status,
			ChangedBy: ticket.UserID,
			CreatedAt: ticket.CreatedAt,
		}).Error
	})
	if err != nil {
		return apperror.Storage("create ticket", err)
	}
	return nil
}

// Get loads a ticket by id.
func (s *TicketStore) Get(ctx context.Context, id uint) (models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := s.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket, apperror.NotFound("ticket", id)
		}
		return ticket, apperror.Storage("get ticket", err)
	}
	return ticket, nil
}

// Apply writes the given column changes plus updated_at and one history row per change,
// all in a single transaction. The change builder sees the ticket as currently stored.
// It returns the ticket as it was before the update.
func (s *TicketStore) Apply(ctx context.Context, id, actorID uint, now time.Time, build func(models.SupportTicket) []FieldChange) (models.SupportTicket, error) {
	var before models.SupportTicket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&before, id).Error; err != nil {
			return err
		}

		changes := build(before)
		updates := map[string]any{"updated_at": now}
		history := make([]models.TicketHistory, 0, len(changes))
		for _, ch := range changes {
			updates[ch.Column] = ch.Value
			if ch.Field == "" {
				continue
			}
			history = append(history, models.TicketHistory{
				TicketID:  id,
				Field:     ch.Field,
				OldValue:  ch.Old,
				NewValue:  ch.New,
				ChangedBy: actorID,
				CreatedAt: now,
			})
		}

		if err := tx.Model(&models.SupportTicket{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if len(history) > 0 {
			return tx.Create(&history).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return before, apperror.NotFound("ticket", id)
		}
		return before, apperror.Storage("update ticket", err)
	}
	return before, nil
}

func (s *TicketStore) viewQuery(ctx context.Context, filter TicketFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.SupportTicket{})
	if filter.Status != "" {
		q = q.Where("support_tickets.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("support_tickets.priority = ?", filter.Priority)
	}
	if filter.OwnerUserID != nil {
		q = q.Where("support_tickets.user_id = ?", *filter.OwnerUserID)
	}
	return q
}

func withIdentity(q *gorm.DB) *gorm.DB {
	return q.
		Select("support_tickets.*, owner.name AS owner_name, owner.email AS owner_email, responder.name AS responder_name").
		Joins("LEFT JOIN users owner ON owner.id = support_tickets.user_id").
		Joins("LEFT JOIN users responder ON responder.id = support_tickets.responded_by")
}

// List returns one page of tickets, urgency first then newest first, and the filtered total.
func (s *TicketStore) List(ctx context.Context, filter TicketFilter, offset, limit int) ([]models.SupportTicketView, int64, error) {
	var total int64
	if err := s.viewQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage("count tickets", err)
	}

	views := []models.SupportTicketView{}
	if int64(offset) >= total {
		return views, total, nil
	}

	err := withIdentity(s.viewQuery(ctx, filter)).
		Order(models.PriorityOrderSQL).
		Order("support_tickets.created_at DESC").
		Order("support_tickets.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, 0, apperror.Storage("list tickets", err)
	}
	return views, total, nil
}

// View loads one ticket with identity columns. A non-nil owner restricts the lookup to that user.
func (s *TicketStore) View(ctx context.Context, id uint, owner *uint) (models.SupportTicketView, error) {
	var views []models.SupportTicketView
	err := withIdentity(s.viewQuery(ctx, TicketFilter{OwnerUserID: owner})).
		Where("support_tickets.id = ?", id).
		Limit(1).
		Scan(&views).Error
	if err != nil {
		return models.SupportTicketView{}, apperror.Storage("get ticket", err)
	}
	if len(views) == 0 {
		return models.SupportTicketView{}, apperror.NotFound("ticket", id)
	}
	return views[0], nil
}

// History returns the ticket's change log, oldest first.
func (s *TicketStore) History(ctx context.Context, id uint) ([]models.TicketHistory, error) {
	history := []models.TicketHistory{}
	err := s.db.WithContext(ctx).
		Where("ticket_id = ?", id).
		Order("created_at ASC").
		Order("id ASC").
		Find(&history).Error
	if err != nil {
		return nil, apperror.Storage("ticket history", err)
	}
	return history, nil
}

// Stats counts tickets by status and priority, plus those created at or after each cutoff.
func (s *TicketStore) Stats(ctx context.Context, last24hSince, todaySince time.Time) (models.SupportTicketStats, error) {
	var stats models.SupportTicketStats
	err := s.db.WithContext(ctx).
		Model(&models.SupportTicket{}).
		Select(`COUNT(*) AS total,
			COUNT(CASE WHEN status = ? THEN 1 END) AS open_count,
			COUNT(CASE WHEN status = ? THEN 1 END) AS in_progress_count,
			COUNT(CASE WHEN status = ? THEN 1 END) AS resolved_count,
			COUNT(CASE WHEN status = ? THEN 1 END) AS closed_count,
			COUNT(CASE WHEN priority = ? THEN 1 END) AS urgent_count,
			COUNT(CASE WHEN created_at >= ? THEN 1 END) AS last_24h_count,
			COUNT(CASE WHEN created_at >= ? THEN 1 END) AS today_count`,
			models.TicketOpen, models.TicketInProgress, models.TicketResolved, models.TicketClosed,
			models.PriorityUrgent, last24hSince, todaySince,
		).
		Scan(&stats).Error
	if err != nil {
		return stats, apperror.Storage("ticket stats", err)
	}
	return stats, nil
}
