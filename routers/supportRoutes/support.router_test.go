package supportRoutes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	controller "supportdesk/controllers/support"
	"supportdesk/database"
	"supportdesk/middleware"
	"supportdesk/models"
	"supportdesk/notifications"
	"supportdesk/repository"
	supportServices "supportdesk/services/support"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	app   *fiber.App
	db    *gorm.DB
	inApp *notifications.InApp
}

func newServer(t *testing.T) *server {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	inApp := notifications.NewInApp(db, "support")
	svc := supportServices.NewService(repository.NewTicketStore(db), inApp)

	app := fiber.New()
	SetupSupportRoutes(app, controller.NewTicketController(svc), middleware.JWTMiddleware(testSecret), middleware.AdminOnly(db))
	return &server{app: app, db: db, inApp: inApp}
}

func (s *server) user(t *testing.T, name, role string) (models.User, string) {
	t.Helper()
	u := models.User{Name: name, Email: name + "@example.com", Role: role}
	require.NoError(t, s.db.Create(&u).Error)
	token, err := middleware.GenerateJWT(testSecret, u.ID, u.Name, u.Role, u.Email)
	require.NoError(t, err)
	return u, token
}

func (s *server) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestSupportTicketFlowOverHTTP(t *testing.T) {
	s := newServer(t)
	asha, userToken := s.user(t, "asha", models.RoleUser)
	_, adminToken := s.user(t, "ravi", models.RoleAdmin)

	code, env := s.do(t, fiber.MethodPost, "/support/create", userToken, fiber.Map{
		"subject":  "Can't withdraw",
		"message":  "Withdrawal pending for 3 days",
		"priority": "high",
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var created struct {
		TicketID uint `json:"ticketId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.TicketID)
	ticketPath := strconv.FormatUint(uint64(created.TicketID), 10)

	code, _ = s.do(t, fiber.MethodGet, "/support/admin-list", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, env = s.do(t, fiber.MethodGet, "/support/admin-list?status=open&priority=all", adminToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	var page struct {
		Tickets []models.SupportTicketView `json:"tickets"`
		Total   int64                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Tickets, 1)
	assert.Equal(t, int64(1), page.Total)
	require.NotNil(t, page.Tickets[0].OwnerName)
	assert.Equal(t, "asha", *page.Tickets[0].OwnerName)

	code, env = s.do(t, fiber.MethodPost, "/support/admin-respond", adminToken, fiber.Map{
		"ticketId": created.TicketID,
		"response": "Refund issued",
		"status":   "resolved",
	})
	require.Equal(t, fiber.StatusOK, code, env.Message)

	code, env = s.do(t, fiber.MethodGet, "/support/ticket/"+ticketPath, userToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	var ticket models.SupportTicketView
	require.NoError(t, json.Unmarshal(env.Data, &ticket))
	assert.Equal(t, models.TicketResolved, ticket.Status)
	require.NotNil(t, ticket.AdminResponse)
	assert.Equal(t, "Refund issued", *ticket.AdminResponse)
	require.NotNil(t, ticket.ResponderName)
	assert.Equal(t, "ravi", *ticket.ResponderName)

	code, env = s.do(t, fiber.MethodGet, "/support/admin-history/"+ticketPath, adminToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	var history []models.TicketHistory
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 3)

	unread, err := s.inApp.Unread(context.Background(), asha.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 2)
}

func TestSupportRoutesRejectBadRequests(t *testing.T) {
	s := newServer(t)
	_, userToken := s.user(t, "asha", models.RoleUser)
	_, adminToken := s.user(t, "ravi", models.RoleAdmin)

	code, _ := s.do(t, fiber.MethodGet, "/support/list", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, env := s.do(t, fiber.MethodPost, "/support/create", userToken, fiber.Map{"subject": "  ", "message": "m"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, string(env.Data), "subject")

	code, _ = s.do(t, fiber.MethodPost, "/support/create", userToken, fiber.Map{"subject": "s", "message": "m", "priority": "critical"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, _ = s.do(t, fiber.MethodGet, "/support/list?status=pending", userToken, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, env = s.do(t, fiber.MethodGet, "/support/list?page=4611686018427387905", userToken, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, string(env.Data), "page")

	code, env = s.do(t, fiber.MethodPost, "/support/admin-status", adminToken, fiber.Map{"ticketId": 404, "status": "closed"})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Ticket not found.", env.Message)

	code, _ = s.do(t, fiber.MethodGet, "/support/ticket/abc", userToken, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestUserCannotSeeAnotherUsersTicket(t *testing.T) {
	s := newServer(t)
	_, ownerToken := s.user(t, "asha", models.RoleUser)
	_, otherToken := s.user(t, "kiran", models.RoleUser)

	code, env := s.do(t, fiber.MethodPost, "/support/create", ownerToken, fiber.Map{"subject": "s", "message": "m"})
	require.Equal(t, fiber.StatusCreated, code)
	var created struct {
		TicketID uint `json:"ticketId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, _ = s.do(t, fiber.MethodGet, "/support/ticket/"+strconv.FormatUint(uint64(created.TicketID), 10), otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, env = s.do(t, fiber.MethodGet, "/support/list", otherToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Zero(t, page.Total)
}

func TestAdminStatsAndPriority(t *testing.T) {
	s := newServer(t)
	_, userToken := s.user(t, "asha", models.RoleUser)
	_, adminToken := s.user(t, "ravi", models.RoleAdmin)

	code, env := s.do(t, fiber.MethodPost, "/support/create", userToken, fiber.Map{"subject": "s", "message": "m"})
	require.Equal(t, fiber.StatusCreated, code)
	var created struct {
		TicketID uint `json:"ticketId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, _ = s.do(t, fiber.MethodPost, "/support/admin-priority", adminToken, fiber.Map{"ticketId": created.TicketID, "priority": "URGENT"})
	require.Equal(t, fiber.StatusOK, code)

	code, env = s.do(t, fiber.MethodGet, "/support/admin-stats", adminToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	var stats models.SupportTicketStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Open)
	assert.Equal(t, int64(1), stats.Urgent)
	assert.Equal(t, int64(1), stats.Last24h)
}
