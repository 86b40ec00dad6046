package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberia-web/internal/config"
	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/infra/remote"
)

const testSecret = "test-secret"

// ======================================================
// API REMOTA FALSA
// ======================================================

type upstream struct {
	srv *httptest.Server

	weekly domain.WeeklyAvailability

	weeklyCalls    int
	setBodies      []map[string]any
	createBodies   []map[string]any
	lastAuthHeader string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{weekly: domain.WeeklyAvailability{}}

	mux := http.NewServeMux()

	mux.HandleFunc("/barber-availability/weekly-availability", func(w http.ResponseWriter, r *http.Request) {
		u.weeklyCalls++
		u.lastAuthHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(u.weekly)
	})

	mux.HandleFunc("/barber-availability/set-availability", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		u.setBodies = append(u.setBodies, body)
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/appointments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		u.createBodies = append(u.createBodies, body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"_id":     "ap-1",
			"date":    body["date"],
			"time":    body["time"],
			"service": body["service"],
			"status":  body["status"],
		})
	})

	u.srv = httptest.NewServer(mux)
	t.Cleanup(u.srv.Close)
	return u
}

// ======================================================
// SETUP
// ======================================================

func newRouter(t *testing.T, u *upstream) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		APIBaseURL: u.srv.URL,
		JWTSecret:  testSecret,
		Timezone:   "America/Sao_Paulo",
	}

	base := remote.NewClient(cfg.APIBaseURL, nil)

	r := gin.New()
	RegisterRoutes(r, base, cfg, zerolog.Nop())
	return r
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func do(r *gin.Engine, method, path, bearer, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ======================================================
// GRADE SEMANAL
// ======================================================

func TestWeeklyGridEndpoint(t *testing.T) {
	u := newUpstream(t)
	u.weekly = domain.WeeklyAvailability{
		"2030-01-08": {
			Date:           "2030-01-08",
			AvailableSlots: []string{"10:00", "10:30"},
			ReservedSlots:  []string{"10:30"},
		},
	}
	r := newRouter(t, u)

	tok := token(t, "u1", "client")
	w := do(r, http.MethodGet, "/api/schedule/weekly-grid?barberId=b1&date=2030-01-09", tok, "")
	require.Equal(t, http.StatusOK, w.Code)

	var grid struct {
		BarberID  string `json:"barber_id"`
		WeekStart string `json:"week_start"`
		WeekEnd   string `json:"week_end"`
		Days      []struct {
			Date  string `json:"date"`
			Slots []struct {
				Time  string `json:"time"`
				State string `json:"state"`
			} `json:"slots"`
		} `json:"days"`
		AvailableCount int `json:"available_count"`
		ReservedCount  int `json:"reserved_count"`
		TotalSlots     int `json:"total_slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))

	assert.Equal(t, "b1", grid.BarberID)
	assert.Equal(t, "2030-01-07", grid.WeekStart)
	assert.Equal(t, "2030-01-13", grid.WeekEnd)
	require.Len(t, grid.Days, 7)
	assert.Equal(t, 7*23, grid.TotalSlots)
	assert.Equal(t, 1, grid.AvailableCount)
	assert.Equal(t, 1, grid.ReservedCount)

	states := map[string]string{}
	for _, s := range grid.Days[1].Slots {
		states[s.Time] = s.State
	}
	assert.Equal(t, "available", states["10:00"])
	assert.Equal(t, "reserved", states["10:30"])
	assert.Equal(t, "unavailable", states["11:00"])

	// o bearer da sessão foi repassado para a API remota
	assert.Equal(t, "Bearer "+tok, u.lastAuthHeader)
}

func TestWeeklyGridWeekdayFilter(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/api/schedule/weekly-grid?barberId=b1&date=2030-01-09&weekday=qua", token(t, "u1", "client"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var grid struct {
		Days []struct {
			Date string `json:"date"`
		} `json:"days"`
		TotalSlots int `json:"total_slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	require.Len(t, grid.Days, 1)
	assert.Equal(t, "2030-01-09", grid.Days[0].Date)
	assert.Equal(t, 23, grid.TotalSlots)
}

func TestWeeklyGridRequiresBarberIDForClients(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/api/schedule/weekly-grid", token(t, "u1", "client"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeeklyGridDefaultsToOwnGridForBarbers(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/api/schedule/weekly-grid?date=2030-01-09", token(t, "b7", "barber"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var grid struct {
		BarberID string `json:"barber_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.Equal(t, "b7", grid.BarberID)
}

func TestWeeklyGridRequiresAuth(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/api/schedule/weekly-grid?barberId=b1", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// RESERVA
// ======================================================

func TestCreateAppointmentFlow(t *testing.T) {
	u := newUpstream(t)
	u.weekly = domain.WeeklyAvailability{
		"2030-01-08": {Date: "2030-01-08", AvailableSlots: []string{"10:00"}},
	}
	r := newRouter(t, u)

	body := `{"barberId":"b1","date":"2030-01-08","time":"10:00","service":"corte"}`
	w := do(r, http.MethodPost, "/api/appointments", token(t, "u1", "client"), body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Appointment struct {
			ID      string `json:"_id"`
			Service string `json:"service"`
			Status  string `json:"status"`
		} `json:"appointment"`
		RedirectTo      string `json:"redirect_to"`
		RedirectAfterMS int64  `json:"redirect_after_ms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "ap-1", resp.Appointment.ID)
	assert.Equal(t, "corte", resp.Appointment.Service)
	assert.Equal(t, "scheduled", resp.Appointment.Status)
	assert.Equal(t, "/profile", resp.RedirectTo)
	assert.Equal(t, int64(3000), resp.RedirectAfterMS)

	require.Len(t, u.createBodies, 1)
	assert.Equal(t, "u1", u.createBodies[0]["clientId"])
	assert.Equal(t, "b1", u.createBodies[0]["barberId"])
	assert.Equal(t, "scheduled", u.createBodies[0]["status"])
}

func TestCreateAppointmentRejectsReservedSlot(t *testing.T) {
	u := newUpstream(t)
	u.weekly = domain.WeeklyAvailability{
		"2030-01-08": {
			Date:           "2030-01-08",
			AvailableSlots: []string{"10:00"},
			ReservedSlots:  []string{"10:00"},
		},
	}
	r := newRouter(t, u)

	body := `{"barberId":"b1","date":"2030-01-08","time":"10:00","service":"corte"}`
	w := do(r, http.MethodPost, "/api/appointments", token(t, "u1", "client"), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "slot_not_available")
	assert.Empty(t, u.createBodies)
}

func TestCreateAppointmentRequiresClientRole(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	body := `{"barberId":"b1","date":"2030-01-08","time":"10:00","service":"corte"}`
	w := do(r, http.MethodPost, "/api/appointments", token(t, "b1", "barber"), body)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ======================================================
// PUBLICAÇÃO
// ======================================================

func TestPublishAvailabilityFlow(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	body := `{"slots":[
		{"date":"2030-01-08","time":"10:00"},
		{"date":"2030-01-08","time":"10:30"},
		{"date":"2030-01-09","time":"14:00"}
	]}`
	w := do(r, http.MethodPost, "/api/schedule/availability", token(t, "b1", "barber"), body)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, u.setBodies, 1)
	assert.Equal(t, "b1", u.setBodies[0]["barberId"])

	availability, ok := u.setBodies[0]["availability"].([]any)
	require.True(t, ok)
	assert.Len(t, availability, 2)

	// depois de publicar, a semana é refeita a partir do servidor
	assert.GreaterOrEqual(t, u.weeklyCalls, 1)
}

func TestPublishAvailabilityRequiresBarberRole(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	body := `{"slots":[{"date":"2030-01-08","time":"10:00"}]}`
	w := do(r, http.MethodPost, "/api/schedule/availability", token(t, "u1", "client"), body)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, u.setBodies)
}

func TestPublishAvailabilityRejectsCrossWeekBatch(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	// 2030-01-08 e 2030-01-15 caem em semanas diferentes
	body := `{"slots":[
		{"date":"2030-01-08","time":"10:00"},
		{"date":"2030-01-15","time":"10:00"}
	]}`
	w := do(r, http.MethodPost, "/api/schedule/availability", token(t, "b1", "barber"), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cross_week_selection")
	assert.Empty(t, u.setBodies)
}

func TestPublishAvailabilityRejectsInvalidSlot(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	body := `{"slots":[{"date":"2030-01-08","time":"07:00"}]}`
	w := do(r, http.MethodPost, "/api/schedule/availability", token(t, "b1", "barber"), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_time")
	assert.Empty(t, u.setBodies)
}

// ======================================================
// SESSÃO EXPIRADA E CATÁLOGO
// ======================================================

func TestUpstream401BecomesSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		APIBaseURL: srv.URL,
		JWTSecret:  testSecret,
		Timezone:   "America/Sao_Paulo",
	}
	base := remote.NewClient(cfg.APIBaseURL, nil)
	r := gin.New()
	RegisterRoutes(r, base, cfg, zerolog.Nop())

	w := do(r, http.MethodGet, "/api/schedule/weekly-grid?barberId=b1", token(t, "u1", "client"), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session_expired")
}

func TestServicesCatalog(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/api/services", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID          string `json:"id"`
			DurationMin int    `json:"duration_min"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, "corte", resp.Data[0].ID)
}

func TestShopDescribesGrid(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/api/shop", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Timezone    string   `json:"timezone"`
		SlotMinutes int      `json:"slot_minutes"`
		OpensAt     string   `json:"opens_at"`
		LastSlot    string   `json:"last_slot"`
		TimeSlots   []string `json:"time_slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "America/Sao_Paulo", resp.Timezone)
	assert.Equal(t, 30, resp.SlotMinutes)
	assert.Equal(t, "08:00", resp.OpensAt)
	assert.Equal(t, "19:00", resp.LastSlot)
	assert.Len(t, resp.TimeSlots, 23)
}

func TestHealth(t *testing.T) {
	u := newUpstream(t)
	r := newRouter(t, u)

	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
