package supportServices

import (
	"context"
	"log"
	"strings"
	"time"

	"supportdesk/apperror"
	"supportdesk/models"
	"supportdesk/notifications"
	"supportdesk/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service runs the support ticket workflow and serves ticket listings.
type Service struct {
	store    *repository.TicketStore
	notifier notifications.Dispatcher
	now      func() time.Time
	pageSize int
}

type Option func(*Service)

// WithClock replaces the wall clock used for timestamps and stats windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPageSize sets the listing page size used when a caller passes none.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 && n <= MaxPageSize {
			s.pageSize = n
		}
	}
}

func NewService(store *repository.TicketStore, notifier notifications.Dispatcher, opts ...Option) *Service {
	if notifier == nil {
		notifier = notifications.Noop
	}
	s := &Service{
		store:    store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitTicket opens a new ticket for userID and notifies them of its id.
// A blank priority means medium; any other non-member value is rejected.
func (s *Service) SubmitTicket(ctx context.Context, userID uint, subject, message, priority string) (uint, error) {
	if userID == 0 {
		return 0, apperror.Validation("user_id", "User is required!")
	}
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" {
		return 0, apperror.Validation("subject", "Please fill in all required fields.")
	}
	if message == "" {
		return 0, apperror.Validation("message", "Please fill in all required fields.")
	}

	priority = models.NormalizeEnum(priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.IsValidPriority(priority) {
		return 0, apperror.Validation("priority", "Invalid priority! Allowed: low, medium, high, urgent")
	}

	now := s.now()
	ticket := models.SupportTicket{
		UserID:    userID,
		Subject:   subject,
		Message:   message,
		Status:    models.TicketOpen,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, &ticket); err != nil {
		return 0, err
	}
	log.Printf("[SUPPORT] ticket %d opened by user %d (%s)", ticket.ID, userID, priority)

	s.dispatch(ctx, EventCreated, userID, ticket.ID)
	return ticket.ID, nil
}

// Respond records an admin response and the new status in one write, then notifies the owner.
// A blank status means in_progress.
func (s *Service) Respond(ctx context.Context, adminID, ticketID uint, responseText, newStatus string) error {
	if adminID == 0 {
		return apperror.Validation("admin_id", "Admin is required!")
	}
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return apperror.Validation("response", "Please enter a response.")
	}
	status := models.NormalizeEnum(newStatus)
	if status == "" {
		status = models.TicketInProgress
	}
	if !models.IsValidStatus(status) {
		return apperror.Validation("status", "Invalid status selected.")
	}

	before, err := s.store.Apply(ctx, ticketID, adminID, s.now(), func(cur models.SupportTicket) []repository.FieldChange {
		changes := []repository.FieldChange{
			{Column: "admin_response", Value: responseText, Field: models.HistoryAdminResponse, Old: deref(cur.AdminResponse), New: responseText},
			{Column: "responded_by", Value: adminID},
		}
		return append(changes, statusChange(cur.Status, status))
	})
	if err != nil {
		return err
	}
	log.Printf("[SUPPORT] ticket %d answered by admin %d, status %s -> %s", ticketID, adminID, before.Status, status)

	s.dispatch(ctx, EventResponded, before.UserID, ticketID)
	return nil
}

// UpdateStatus sets any status from any other; reopening a closed ticket is allowed.
func (s *Service) UpdateStatus(ctx context.Context, actorID, ticketID uint, newStatus string) error {
	if actorID == 0 {
		return apperror.Validation("actor_id", "Actor is required!")
	}
	status := models.NormalizeEnum(newStatus)
	if !models.IsValidStatus(status) {
		return apperror.Validation("status", "Invalid status selected.")
	}

	before, err := s.store.Apply(ctx, ticketID, actorID, s.now(), func(cur models.SupportTicket) []repository.FieldChange {
		return []repository.FieldChange{statusChange(cur.Status, status)}
	})
	if err != nil {
		return err
	}

	s.dispatch(ctx, EventStatusChanged, before.UserID, ticketID)
	return nil
}

func (s *Service) UpdatePriority(ctx context.Context, actorID, ticketID uint, newPriority string) error {
	if actorID == 0 {
		return apperror.Validation("actor_id", "Actor is required!")
	}
	priority := models.NormalizeEnum(newPriority)
	if !models.IsValidPriority(priority) {
		return apperror.Validation("priority", "Invalid priority selected.")
	}

	before, err := s.store.Apply(ctx, ticketID, actorID, s.now(), func(cur models.SupportTicket) []repository.FieldChange {
		change := repository.FieldChange{Column: "priority", Value: priority}
		if cur.Priority != priority {
			change.Field, change.Old, change.New = models.HistoryPriority, cur.Priority, priority
		}
		return []repository.FieldChange{change}
	})
	if err != nil {
		return err
	}

	s.dispatch(ctx, EventPriorityChanged, before.UserID, ticketID)
	return nil
}

// dispatch applies the notification policy. Delivery failures are logged, never returned:
// the ticket change they report has already been committed.
func (s *Service) dispatch(ctx context.Context, event Event, userID, ticketID uint) {
	rule, ok := NotificationPolicy[event]
	if !ok || !rule.Notify {
		return
	}
	if err := s.notifier.Notify(ctx, userID, rule.Title, rule.Body(ticketID), rule.Kind); err != nil {
		log.Printf("[SUPPORT] %s notification for ticket %d to user %d failed: %v", event, ticketID, userID, err)
	}
}

// statusChange only logs history when the status actually moves.
func statusChange(from, to string) repository.FieldChange {
	change := repository.FieldChange{Column: "status", Value: to}
	if from != to {
		change.Field, change.Old, change.New = models.HistoryStatus, from, to
	}
	return change
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
