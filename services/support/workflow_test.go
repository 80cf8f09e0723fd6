package supportServices

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"supportdesk/apperror"
	"supportdesk/database"
	"supportdesk/models"
	"supportdesk/notifications"
	"supportdesk/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentNotification struct {
	UserID uint
	Title  string
	Body   string
	Kind   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, userID uint, title, body, kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{userID, title, body, kind})
	return r.err
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	db       *gorm.DB
	store    *repository.TicketStore
	svc      *Service
	notifier *recordingNotifier
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		store:    repository.NewTicketStore(db),
		notifier: &recordingNotifier{},
		clock:    &fakeClock{t: time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)},
	}
	f.svc = NewService(f.store, f.notifier, WithClock(f.clock.Now))
	return f
}

func (f *fixture) ticket(t *testing.T, id uint) models.SupportTicket {
	t.Helper()
	ticket, err := f.store.Get(context.Background(), id)
	require.NoError(t, err)
	return ticket
}

func TestSubmitTicket(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.SubmitTicket(context.Background(), 3, "  Can't withdraw ", "Withdrawal stuck", "HIGH")
	require.NoError(t, err)

	got := f.ticket(t, id)
	assert.Equal(t, models.TicketOpen, got.Status)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, "Can't withdraw", got.Subject)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
	assert.Nil(t, got.AdminResponse)
	assert.Nil(t, got.RespondedBy)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, sentNotification{
		UserID: 3,
		Title:  "Support Ticket Created",
		Body:   "Your support ticket has been created. Ticket ID: " + itoa(id),
		Kind:   models.NotificationInfo,
	}, f.notifier.sent[0])
}

func TestSubmitTicketPriorityDefaults(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.SubmitTicket(context.Background(), 3, "subject", "message", "   ")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, f.ticket(t, id).Priority)

	_, err = f.svc.SubmitTicket(context.Background(), 3, "subject", "message", "critical")
	assert.True(t, apperror.IsValidation(err))
}

func TestSubmitTicketRequiresSubjectAndMessage(t *testing.T) {
	f := newFixture(t)

	cases := []struct{ subject, message string }{
		{"", "message"},
		{"   ", "message"},
		{"subject", ""},
		{"subject", "\n\t"},
	}
	for _, tc := range cases {
		_, err := f.svc.SubmitTicket(context.Background(), 3, tc.subject, tc.message, "")
		assert.True(t, apperror.IsValidation(err), "subject=%q message=%q", tc.subject, tc.message)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.SupportTicket{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.notifier.sent)
}

func TestRespondSetsResponseAndStatusTogether(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	require.NoError(t, f.svc.Respond(ctx, 9, id, "Refund issued", "resolved"))

	got := f.ticket(t, id)
	require.NotNil(t, got.AdminResponse)
	require.NotNil(t, got.RespondedBy)
	assert.Equal(t, "Refund issued", *got.AdminResponse)
	assert.Equal(t, uint(9), *got.RespondedBy)
	assert.Equal(t, models.TicketResolved, got.Status)
	assert.True(t, got.UpdatedAt.Equal(f.clock.Now()))
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, sentNotification{
		UserID: 3,
		Title:  "Support Ticket Updated",
		Body:   "Your support ticket #" + itoa(id) + " has been updated with a new response.",
		Kind:   models.NotificationInfo,
	}, f.notifier.sent[1])

	history, err := f.svc.TicketHistory(ctx, id)
	require.NoError(t, err)
	fields := []string{}
	for _, h := range history {
		fields = append(fields, h.Field)
	}
	assert.Equal(t, []string{models.HistoryCreated, models.HistoryAdminResponse, models.HistoryStatus}, fields)
}

func TestRespondBlankStatusMeansInProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)

	require.NoError(t, f.svc.Respond(ctx, 9, id, "Looking into it", ""))
	assert.Equal(t, models.TicketInProgress, f.ticket(t, id).Status)
}

func TestRespondRejectsBadInputWithoutWriting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)
	before := f.ticket(t, id)

	err = f.svc.Respond(ctx, 9, id, "   ", "resolved")
	assert.True(t, apperror.IsValidation(err))

	err = f.svc.Respond(ctx, 9, id, "answer", "escalated")
	assert.True(t, apperror.IsValidation(err))

	assert.Equal(t, before, f.ticket(t, id))
	assert.Len(t, f.notifier.sent, 1)
}

func TestMutationsOnMissingTicket(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.True(t, apperror.IsNotFound(f.svc.Respond(ctx, 9, 77, "answer", "resolved")))
	assert.True(t, apperror.IsNotFound(f.svc.UpdateStatus(ctx, 9, 77, "closed")))
	assert.True(t, apperror.IsNotFound(f.svc.UpdatePriority(ctx, 9, 77, "low")))

	var count int64
	require.NoError(t, f.db.Model(&models.TicketHistory{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.notifier.sent)
}

func TestUpdateStatusAndPriorityAreSilent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "low")
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, 9, id, "closed"))
	require.NoError(t, f.svc.UpdatePriority(ctx, 9, id, "urgent"))

	got := f.ticket(t, id)
	assert.Equal(t, models.TicketClosed, got.Status)
	assert.Equal(t, models.PriorityUrgent, got.Priority)
	assert.Nil(t, got.AdminResponse)
	assert.Len(t, f.notifier.sent, 1, "only the creation notice is sent")
}

func TestClosedTicketCanBeReopened(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)

	for _, status := range []string{"closed", "open", "resolved", "in_progress", "open"} {
		require.NoError(t, f.svc.UpdateStatus(ctx, 9, id, status))
		assert.Equal(t, status, f.ticket(t, id).Status)
	}
}

func TestInvalidEnumLeavesTicketUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)
	before := f.ticket(t, id)

	f.clock.Advance(time.Minute)
	for _, bad := range []string{"", "pending", "all"} {
		assert.True(t, apperror.IsValidation(f.svc.UpdateStatus(ctx, 9, id, bad)))
		assert.True(t, apperror.IsValidation(f.svc.UpdatePriority(ctx, 9, id, bad)))
	}

	assert.Equal(t, before, f.ticket(t, id))
}

func TestNotificationFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")

	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)
	require.NoError(t, f.svc.Respond(ctx, 9, id, "answer", "resolved"))

	assert.Equal(t, models.TicketResolved, f.ticket(t, id).Status)
	assert.Len(t, f.notifier.sent, 2)
}

func TestNotificationPolicyCoversEveryEvent(t *testing.T) {
	for _, event := range []Event{EventCreated, EventResponded, EventStatusChanged, EventPriorityChanged} {
		rule, ok := NotificationPolicy[event]
		require.True(t, ok, event)
		if rule.Notify {
			assert.NotEmpty(t, rule.Title)
			assert.NotNil(t, rule.Body)
		}
	}
	assert.False(t, NotificationPolicy[EventStatusChanged].Notify)
	assert.False(t, NotificationPolicy[EventPriorityChanged].Notify)
}

func TestMutationsRequireAnActor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, err := f.svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)
	before := f.ticket(t, id)

	assert.True(t, apperror.IsValidation(f.svc.Respond(ctx, 0, id, "answer", "resolved")))
	assert.True(t, apperror.IsValidation(f.svc.UpdateStatus(ctx, 0, id, "closed")))
	assert.True(t, apperror.IsValidation(f.svc.UpdatePriority(ctx, 0, id, "urgent")))

	assert.Equal(t, before, f.ticket(t, id))
	assert.Len(t, f.notifier.sent, 1)
}

func TestSlowSMSGatewayDoesNotHoldMutations(t *testing.T) {
	ctx := context.Background()
	hits := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	lookup := func(context.Context, uint) (notifications.Recipient, error) {
		return notifications.Recipient{Mobile: "9876543210", Settings: models.DefaultUserSettings(3)}, nil
	}
	f := newFixture(t)
	svc := NewService(f.store, notifications.NewSMS(lookup, srv.URL, "key", time.Second), WithClock(f.clock.Now))

	start := time.Now()
	id, err := svc.SubmitTicket(ctx, 3, "subject", "message", "")
	require.NoError(t, err)
	require.NoError(t, svc.Respond(ctx, 9, id, "answer", "resolved"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	for i := 0; i < 2; i++ {
		select {
		case <-hits:
		case <-time.After(time.Second):
			t.Fatal("gateway was not called for every notification")
		}
	}
}
