package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/models"
)

// ======================================================
// CLIENT
// ======================================================

// Client fala com a API remota de agendamento. Implementa schedule.Remote
// e cobre também auth, perfil e gestão de usuários.
//
// A sessão é explícita: o token entra por WithToken (clone por requisição),
// nunca por estado global. O callback onUnauthorized é disparado em
// qualquer 401 — é a política global de logout, injetada na construção.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          string
	onUnauthorized func()

	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewClient(baseURL string, onUnauthorized func()) *Client {
	return &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		onUnauthorized: onUnauthorized,
	}
}

// WithToken devolve uma cópia do client presa à sessão do usuário.
// O client base segue sem token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// UseRedisCache liga o cache de respostas GET com TTL fixo. A chave é
// método+URL+params; o tamanho é limitado pelo próprio Redis, não cresce
// dentro do processo.
func (c *Client) UseRedisCache(rdb *redis.Client, ttl time.Duration) {
	c.rdb = rdb
	c.cacheTTL = ttl
}

// ======================================================
// DISPONIBILIDADE SEMANAL (schedule.Remote)
// ======================================================

func (c *Client) WeeklyAvailability(
	ctx context.Context,
	barberID string,
	start time.Time,
	end time.Time,
) (schedule.WeeklyAvailability, error) {

	endpoint := c.weeklyEndpoint(barberID, start, end)
	cacheKey := "GET:" + endpoint

	var weekly schedule.WeeklyAvailability
	if c.readCache(ctx, cacheKey, &weekly) {
		return weekly, nil
	}

	if err := c.doGet(ctx, endpoint, &weekly); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, weekly)
	return weekly, nil
}

// RefreshWeeklyAvailability derruba o cache da semana e busca de novo.
// É o refetch pós-mutação: o servidor decide, a grade obedece.
func (c *Client) RefreshWeeklyAvailability(
	ctx context.Context,
	barberID string,
	start time.Time,
	end time.Time,
) (schedule.WeeklyAvailability, error) {

	c.invalidate(ctx, "GET:"+c.weeklyEndpoint(barberID, start, end))
	return c.WeeklyAvailability(ctx, barberID, start, end)
}

func (c *Client) weeklyEndpoint(barberID string, start, end time.Time) string {
	params := url.Values{}
	params.Set("barberId", barberID)
	params.Set("startDate", schedule.DateOf(start))
	params.Set("endDate", schedule.DateOf(end))
	return fmt.Sprintf("%s/barber-availability/weekly-availability?%s", c.baseURL, params.Encode())
}

func (c *Client) SetAvailability(
	ctx context.Context,
	barberID string,
	days []schedule.DayTimeSlots,
) error {

	endpoint := fmt.Sprintf("%s/barber-availability/set-availability", c.baseURL)
	body := struct {
		BarberID     string                  `json:"barberId"`
		Availability []schedule.DayTimeSlots `json:"availability"`
	}{BarberID: barberID, Availability: days}

	return c.doPost(ctx, endpoint, body, nil)
}

// ======================================================
// AGENDAMENTOS
// ======================================================

func (c *Client) CreateAppointment(
	ctx context.Context,
	in schedule.CreateAppointmentInput,
) (*models.Appointment, error) {

	endpoint := fmt.Sprintf("%s/appointments", c.baseURL)
	var ap models.Appointment
	if err := c.doPost(ctx, endpoint, in, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

// MyAppointments é por usuário: nunca passa pelo cache compartilhado.
func (c *Client) MyAppointments(ctx context.Context) ([]models.Appointment, error) {
	endpoint := fmt.Sprintf("%s/appointments/my-appointments", c.baseURL)
	var aps []models.Appointment
	if err := c.doGet(ctx, endpoint, &aps); err != nil {
		return nil, err
	}
	return aps, nil
}

func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) error {
	endpoint := fmt.Sprintf("%s/appointments/%s", c.baseURL, url.PathEscape(appointmentID))
	return c.doDelete(ctx, endpoint)
}

// ======================================================
// USUÁRIOS
// ======================================================

func (c *Client) ListBarbers(ctx context.Context) ([]models.User, error) {
	endpoint := fmt.Sprintf("%s/users/barbers", c.baseURL)
	cacheKey := "GET:" + endpoint

	var wrap struct {
		Barbers []models.User `json:"barbers"`
	}

	if c.readCache(ctx, cacheKey, &wrap) {
		return wrap.Barbers, nil
	}

	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, wrap)
	return wrap.Barbers, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	endpoint := fmt.Sprintf("%s/users", c.baseURL)
	var users []models.User
	if err := c.doGet(ctx, endpoint, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	endpoint := fmt.Sprintf("%s/users/create", c.baseURL)
	var user models.User
	if err := c.doPost(ctx, endpoint, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, userID string, in UpdateUserInput) error {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	return c.doJSON(ctx, http.MethodPatch, endpoint, in, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))
	return c.doDelete(ctx, endpoint)
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	endpoint := fmt.Sprintf("%s/users/profile", c.baseURL)
	var profile models.Profile
	if err := c.doGet(ctx, endpoint, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateProfileInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	endpoint := fmt.Sprintf("%s/users/profile", c.baseURL)
	var profile models.Profile
	if err := c.doJSON(ctx, http.MethodPut, endpoint, in, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ======================================================
// AUTH
// ======================================================

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*models.AuthSession, error) {
	endpoint := fmt.Sprintf("%s/auth/login", c.baseURL)
	var session models.AuthSession
	if err := c.doPost(ctx, endpoint, in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*models.AuthSession, error) {
	endpoint := fmt.Sprintf("%s/auth/register", c.baseURL)
	var session models.AuthSession
	if err := c.doPost(ctx, endpoint, in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ======================================================
// CACHE
// ======================================================

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.rdb == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.rdb == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) invalidate(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key).Err()
}

// ======================================================
// HTTP
// ======================================================

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) doDelete(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	c.addHeaders(req)
	return c.do(req, nil)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.addHeaders(req)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("booking api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrSessionExpired
	}

	if resp.StatusCode >= 300 {
		// a API remota devolve {"message": "..."} em erros de validação
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		msg := payload.Message
		if msg == "" {
			msg = payload.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) addHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
