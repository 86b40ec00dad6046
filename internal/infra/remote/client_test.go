package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
)

func weekWindow(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	anchor := time.Date(2030, 1, 9, 12, 0, 0, 0, time.UTC)
	return domain.WeekStart(anchor), domain.WeekEnd(anchor)
}

func TestWeeklyAvailabilityRequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"barberId":  r.URL.Query().Get("barberId"),
			"startDate": r.URL.Query().Get("startDate"),
			"endDate":   r.URL.Query().Get("endDate"),
		}
		gotAuth = r.Header.Get("Authorization")

		json.NewEncoder(w).Encode(domain.WeeklyAvailability{
			"2030-01-07": {Date: "2030-01-07", AvailableSlots: []string{"09:00"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil).WithToken("tok-123")
	start, end := weekWindow(t)

	weekly, err := c.WeeklyAvailability(context.Background(), "b1", start, end)
	require.NoError(t, err)

	assert.Equal(t, "/barber-availability/weekly-availability", gotPath)
	assert.Equal(t, "b1", gotQuery["barberId"])
	assert.Equal(t, "2030-01-07", gotQuery["startDate"])
	assert.Equal(t, "2030-01-13", gotQuery["endDate"])
	assert.Equal(t, "Bearer tok-123", gotAuth)

	day, ok := weekly.Day("2030-01-07")
	require.True(t, ok)
	assert.True(t, day.IsAvailable("09:00"))
}

func TestUnauthorizedFiresCallbackAndReturnsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var fired atomic.Int32
	c := NewClient(srv.URL, func() { fired.Add(1) }).WithToken("expired")

	start, end := weekWindow(t)
	_, err := c.WeeklyAvailability(context.Background(), "b1", start, end)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), fired.Load())
}

func TestAPIErrorCarriesUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Horário indisponível"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.CreateAppointment(context.Background(), domain.CreateAppointmentInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Horário indisponível", apiErr.Message)

	assert.True(t, IsValidation(err))
	assert.Equal(t, "Horário indisponível", UserMessage(err, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("other"), "fallback"))
}

func TestWeeklyAvailabilityUsesCacheWithinTTL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(domain.WeeklyAvailability{
			"2030-01-07": {Date: "2030-01-07", AvailableSlots: []string{"09:00"}},
		})
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c := NewClient(srv.URL, nil)
	c.UseRedisCache(rdb, 5*time.Minute)

	start, end := weekWindow(t)
	ctx := context.Background()

	_, err := c.WeeklyAvailability(ctx, "b1", start, end)
	require.NoError(t, err)
	_, err = c.WeeklyAvailability(ctx, "b1", start, end)
	require.NoError(t, err)

	// segunda leitura veio do cache
	assert.Equal(t, int32(1), hits.Load())

	// TTL vencido volta a bater na API
	mr.FastForward(6 * time.Minute)
	_, err = c.WeeklyAvailability(ctx, "b1", start, end)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCacheKeyVariesByBarberAndWeek(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(domain.WeeklyAvailability{})
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c := NewClient(srv.URL, nil)
	c.UseRedisCache(rdb, 5*time.Minute)

	start, end := weekWindow(t)
	ctx := context.Background()

	_, _ = c.WeeklyAvailability(ctx, "b1", start, end)
	_, _ = c.WeeklyAvailability(ctx, "b2", start, end)
	_, _ = c.WeeklyAvailability(ctx, "b1", start.AddDate(0, 0, 7), end.AddDate(0, 0, 7))

	assert.Equal(t, int32(3), hits.Load())
}

func TestRefreshWeeklyAvailabilityInvalidatesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(domain.WeeklyAvailability{})
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	c := NewClient(srv.URL, nil)
	c.UseRedisCache(rdb, 5*time.Minute)

	start, end := weekWindow(t)
	ctx := context.Background()

	_, err := c.WeeklyAvailability(ctx, "b1", start, end)
	require.NoError(t, err)

	// refetch pós-mutação ignora o cache e grava a resposta nova
	_, err = c.RefreshWeeklyAvailability(ctx, "b1", start, end)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSetAvailabilityPostsBatch(t *testing.T) {
	var gotBody struct {
		BarberID     string                `json:"barberId"`
		Availability []domain.DayTimeSlots `json:"availability"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/barber-availability/set-availability", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.SetAvailability(context.Background(), "b1", []domain.DayTimeSlots{
		{Date: "2030-01-07", TimeSlots: []string{"09:00", "09:30"}},
		{Date: "2030-01-08", TimeSlots: []string{"14:00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "b1", gotBody.BarberID)
	require.Len(t, gotBody.Availability, 2)
	assert.Equal(t, []string{"09:00", "09:30"}, gotBody.Availability[0].TimeSlots)
}

func TestListBarbersUnwrapsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"barbers": []map[string]string{
				{"_id": "b1", "name": "João", "role": "barber"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	barbers, err := c.ListBarbers(context.Background())
	require.NoError(t, err)

	require.Len(t, barbers, 1)
	assert.Equal(t, "b1", barbers[0].ID)
	assert.Equal(t, "João", barbers[0].Name)
}

func TestWithTokenDoesNotMutateBaseClient(t *testing.T) {
	var auths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	base := NewClient(srv.URL, nil)
	bound := base.WithToken("tok-1")

	_, _ = bound.MyAppointments(context.Background())
	_, _ = base.ListUsers(context.Background())

	require.Len(t, auths, 2)
	assert.Equal(t, "Bearer tok-1", auths[0])
	assert.Equal(t, "", auths[1])
}

func TestTransportErrorIsNotValidation(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", nil)
	c.httpClient.Timeout = 200 * time.Millisecond

	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	assert.False(t, errors.Is(err, ErrSessionExpired))
}
