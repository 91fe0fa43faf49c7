package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-scheduler/internal/config"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/handlers"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/studio-scheduler/internal/lock"
	"github.com/BruksfildServices01/studio-scheduler/internal/logging"
	"github.com/BruksfildServices01/studio-scheduler/internal/middleware"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/reasons"
	"github.com/BruksfildServices01/studio-scheduler/internal/routes"
	ucAppointment "github.com/BruksfildServices01/studio-scheduler/internal/usecase/appointment"
)

const secret = "test-secret"

// Monday 2025-12-15 10:00 UTC.
var testNow = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	repo   *memory.Repository
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()

	repo := memory.NewRepository()
	repo.AddStudio(models.Studio{ID: 1, Name: "Tinta Viva", Slug: "tinta-viva", Timezone: "UTC", MinAdvanceMinutes: 120})
	for _, u := range []models.User{
		{ID: 10, StudioID: 1, Name: "Ana", Role: "client"},
		{ID: 11, StudioID: 1, Name: "Bia", Role: "client"},
		{ID: 20, StudioID: 1, Name: "Caio", Role: "artist"},
		{ID: 30, StudioID: 1, Name: "Edu", Role: "manager"},
	} {
		repo.AddUser(u)
	}

	catalog, err := reasons.Default()
	require.NoError(t, err)

	clock := func() time.Time { return testNow }
	tr := ucAppointment.NewTransitioner(repo, lock.NewLocalLocker(), nil, nil, logging.Discard().Logger).
		WithClock(clock)

	cfg := &config.Config{JWTSecret: secret}
	r := gin.New()
	secured := r.Group("/api")
	secured.Use(middleware.AuthMiddleware(cfg))
	routes.RegisterSecured(
		secured,
		handlers.NewAppointmentHandler(tr, repo, catalog),
		handlers.NewCalendarHandler(repo, 30).WithClock(clock),
		handlers.NewWorkingHoursHandler(repo),
		handlers.NewReasonsHandler(catalog),
	)

	return &server{repo: repo, engine: r}
}

func token(userID uint, role domain.Role) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID, "studioId": 1, "role": string(role),
	}).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return s
}

var (
	clientToken  = token(10, domain.RoleClient)
	otherToken   = token(11, domain.RoleClient)
	artistToken  = token(20, domain.RoleArtist)
	managerToken = token(30, domain.RoleManager)
)

func (s *server) do(t *testing.T, method, path, tok string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func confirmed(clientID uint, date, start, end string) *models.Appointment {
	return &models.Appointment{
		StudioID: 1, ClientID: clientID, ArtistID: 20, Service: "Fine line",
		ScheduledDate: date, StartTime: start, EndTime: end,
		Status: string(domain.StatusConfirmed), PriceCents: 80000, DepositCents: 20000,
		Notes: "alergia a látex",
	}
}

func path(id uint, suffix string) string {
	return fmt.Sprintf("/api/appointments/%d%s", id, suffix)
}

func TestClientBookingAndApproval(t *testing.T) {
	s := newServer(t)

	code, body := s.do(t, http.MethodPost, "/api/appointments", clientToken, gin.H{
		"artist_id": 20, "service": "Rosa no antebraço",
		"date": "2025-12-20", "start_time": "14:00", "end_time": "16:00",
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "afternoon", body["period"])
	assert.Contains(t, body["actions"], "cancel")
	id := uint(body["id"].(float64))

	code, body = s.do(t, http.MethodPost, path(id, "/approve"), clientToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "role_not_allowed", body["error_code"])

	code, body = s.do(t, http.MethodPost, path(id, "/approve"), artistToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "confirmed", body["status"])

	code, body = s.do(t, http.MethodPost, path(id, "/approve"), artistToken, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invalid_transition", body["error_code"])
}

func TestApproveIntoTakenSlotReportsHolder(t *testing.T) {
	s := newServer(t)
	holder := s.repo.Put(confirmed(11, "2025-12-20", "14:00", "16:00"))
	pending := confirmed(10, "2025-12-20", "15:00", "17:00")
	pending.Status = string(domain.StatusPending)
	s.repo.Put(pending)

	code, body := s.do(t, http.MethodPost, path(pending.ID, "/approve"), artistToken, nil)
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "slot_conflict", body["error_code"])
	assert.Equal(t, float64(holder.ID), body["existing_appointment_id"])
	assert.Equal(t, "pending", s.repo.Stored(pending.ID).Status)
}

func TestNegotiationOverHTTP(t *testing.T) {
	s := newServer(t)
	ap := s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))

	code, body := s.do(t, http.MethodPost, path(ap.ID, "/reschedule"), clientToken, gin.H{
		"date": "2025-12-22", "start_time": "10:00", "reason": "viagem",
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "rescheduling", body["status"])
	pc := body["pending_change"].(map[string]any)
	assert.Equal(t, "2025-12-22", pc["proposed_date"])
	assert.Equal(t, "12:00", pc["proposed_end"])

	code, body = s.do(t, http.MethodPost, path(ap.ID, "/reschedule"), artistToken, gin.H{
		"date": "2025-12-23", "start_time": "10:00", "reason": "outra",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already_negotiating", body["error_code"])

	code, body = s.do(t, http.MethodPost, path(ap.ID, "/reschedule/accept"), clientToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "self_approval", body["error_code"])

	code, body = s.do(t, http.MethodPost, path(ap.ID, "/reschedule/accept"), artistToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "2025-12-22", body["date"])
	assert.Nil(t, body["pending_change"])
}

func TestProjectionByRole(t *testing.T) {
	s := newServer(t)
	ap := s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))

	_, body := s.do(t, http.MethodGet, path(ap.ID, ""), clientToken, nil)
	assert.NotContains(t, body, "notes")
	assert.Equal(t, "R$ 600,00", body["remaining_balance"].(map[string]any)["formatted"])

	_, body = s.do(t, http.MethodGet, path(ap.ID, ""), artistToken, nil)
	assert.Equal(t, "alergia a látex", body["notes"])

	code, body := s.do(t, http.MethodGet, path(ap.ID, ""), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "appointment_not_found", body["error_code"])
}

func TestCancelReasonValidation(t *testing.T) {
	s := newServer(t)
	ap := s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))

	tests := []struct {
		name string
		body any
		code string
	}{
		{"no body", nil, "reason_required"},
		{"unknown code", gin.H{"code": "bored"}, "unknown_reason"},
		{"other without note", gin.H{"code": "other"}, "note_required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, path(ap.ID, "/cancel"), clientToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.code, body["error_code"])
		})
	}

	code, body := s.do(t, http.MethodPost, path(ap.ID, "/cancel"), clientToken, gin.H{"code": "health"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "cancelled", body["status"])
	assert.Equal(t, "health", body["terminal_reason_code"])
	assert.Equal(t, []any{}, body["actions"])
}

func TestSessionLifecycle(t *testing.T) {
	s := newServer(t)
	ap := s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))

	code, _ := s.do(t, http.MethodPost, path(ap.ID, "/begin"), artistToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, body := s.do(t, http.MethodPost, path(ap.ID, "/cancel"), managerToken, gin.H{"code": "health"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invalid_transition", body["error_code"])

	code, body = s.do(t, http.MethodPost, path(ap.ID, "/finish"), artistToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", body["status"])

	code, body = s.do(t, http.MethodGet, path(ap.ID, "/history"), clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total"])
}

func TestPaymentAndNotes(t *testing.T) {
	s := newServer(t)
	ap := s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))

	code, body := s.do(t, http.MethodPatch, path(ap.ID, "/payment"), artistToken, gin.H{
		"price_cents": 150000, "deposit_cents": 50000,
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "R$ 1.000,00", body["remaining_balance"].(map[string]any)["formatted"])

	code, _ = s.do(t, http.MethodPatch, path(ap.ID, "/payment"), artistToken, gin.H{"price_cents": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodPatch, path(ap.ID, "/notes"), clientToken, gin.H{"notes": "oi"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "role_not_allowed", body["error_code"])
}

func TestIncidentReport(t *testing.T) {
	s := newServer(t)
	ap := s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))

	code, body := s.do(t, http.MethodPost, path(ap.ID, "/incidents"), artistToken, gin.H{
		"category": "late_arrival", "note": "  40 min  ",
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "late_arrival", body["category"])
	assert.Len(t, s.repo.Incidents(), 1)

	code, body = s.do(t, http.MethodPost, path(ap.ID, "/incidents"), clientToken, gin.H{"category": "other"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "note_required", body["error_code"])
}

func TestListing(t *testing.T) {
	s := newServer(t)
	s.repo.Put(confirmed(10, "2025-12-20", "14:00", "16:00"))
	s.repo.Put(confirmed(11, "2025-12-20", "17:00", "18:00"))
	s.repo.Put(confirmed(10, "2025-12-28", "10:00", "11:00"))

	code, body := s.do(t, http.MethodGet, "/api/appointments?date=2025-12-20", clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["total"])

	code, body = s.do(t, http.MethodGet, "/api/appointments?date=2025-12-20", artistToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total"])

	code, body = s.do(t, http.MethodGet, "/api/appointments/month?year=2025&month=12", clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total"])

	code, _ = s.do(t, http.MethodGet, "/api/appointments/month?year=2025&month=dez", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, http.MethodGet, "/api/appointments?date=20/12/2025", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_format", body["error_code"])
}

func TestInvalidID(t *testing.T) {
	s := newServer(t)
	code, body := s.do(t, http.MethodGet, "/api/appointments/abc", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_id", body["error_code"])

	code, _ = s.do(t, http.MethodGet, "/api/appointments/999", clientToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMonthGrid(t *testing.T) {
	s := newServer(t)

	code, body := s.do(t, http.MethodGet, "/api/calendar/2025/12", clientToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(31), body["days_in_month"])
	assert.Equal(t, float64(1), body["first_weekday"])

	cells := body["cells"].([]any)
	require.Len(t, cells, 32)
	assert.Nil(t, cells[0])
	assert.Equal(t, true, cells[14].(map[string]any)["past"])
	assert.Equal(t, false, cells[15].(map[string]any)["past"])

	code, _ = s.do(t, http.MethodGet, "/api/calendar/2025/13", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestValidateDate(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{"valid booking", gin.H{"date": "20/12/2025"}, http.StatusOK, ""},
		{"past", gin.H{"date": "14/12/2025"}, http.StatusBadRequest, "past_date"},
		{"not a date", gin.H{"date": "31/02/2026"}, http.StatusBadRequest, "invalid_calendar_date"},
		{"bad mask", gin.H{"date": "2025-12-20"}, http.StatusBadRequest, "invalid_format"},
		{"underage", gin.H{"date": "16/12/2007", "kind": "birth"}, http.StatusBadRequest, "below_minimum_age"},
		{"adult", gin.H{"date": "15/12/2007", "kind": "birth"}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/api/calendar/validate-date", clientToken, tt.body)
			assert.Equal(t, tt.status, code)
			if tt.code != "" {
				assert.Equal(t, tt.code, body["error_code"])
			}
		})
	}
}

func TestSlots(t *testing.T) {
	s := newServer(t)
	s.repo.SetWorkingHours(20, []models.WorkingHours{{
		ArtistID: 20, Weekday: 6, Active: true, StartTime: "09:00", EndTime: "12:00",
	}})
	s.repo.Put(confirmed(10, "2025-12-20", "10:00", "11:00"))

	code, body := s.do(t, http.MethodGet, "/api/artists/20/slots?date=2025-12-20&duration=60", clientToken, nil)
	require.Equal(t, http.StatusOK, code, body)

	var starts []string
	for _, raw := range body["slots"].([]any) {
		starts = append(starts, raw.(map[string]any)["start"].(string))
	}
	assert.Equal(t, []string{"09:00", "11:00"}, starts)

	code, _ = s.do(t, http.MethodGet, "/api/artists/20/slots?date=2025-12-20&duration=0", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, "/api/artists/10/slots?date=2025-12-20", clientToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWorkingHoursEndpoints(t *testing.T) {
	s := newServer(t)

	code, _ := s.do(t, http.MethodPut, "/api/me/working-hours", artistToken, gin.H{
		"days": []gin.H{{"weekday": 1, "active": true, "start_time": "10:00", "end_time": "19:00"}},
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPut, "/api/me/working-hours", clientToken, gin.H{"days": []gin.H{}})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPut, "/api/me/working-hours", artistToken, gin.H{
		"days": []gin.H{{"weekday": 1, "active": true, "start_time": "19:00", "end_time": "10:00"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReasons(t *testing.T) {
	s := newServer(t)

	code, body := s.do(t, http.MethodGet, "/api/reasons", clientToken, nil)
	require.Equal(t, http.StatusOK, code)

	cancellation := body["cancellation"].([]any)
	last := cancellation[len(cancellation)-1].(map[string]any)
	assert.Equal(t, "other", last["code"])
}
