package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultorio/apitest"
	"consultorio/models"
	"consultorio/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedFetchWithoutToken(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hit = true }))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	_, err := c.Profile(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, hit, "no request without a token")
}

func TestBearerHeaderAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/profile", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","username":"ana","role":"patient"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", StaticToken("abc"))
	u, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, models.RolePatient, u.Role)
}

func TestParseError(t *testing.T) {
	cases := []struct {
		body    string
		status  int
		message string
		details string
	}{
		{`{"error":"enter valid hours","details":"9-9"}`, 400, "enter valid hours", "9-9"},
		{`{"message":"gone"}`, 404, "gone", ""},
		{`{"msg":"slow down"}`, 429, "slow down", ""},
		{`<html>oops</html>`, 502, "Bad Gateway", ""},
		{``, 500, "Internal Server Error", ""},
	}
	for _, tc := range cases {
		err := parseError(tc.status, []byte(tc.body))
		assert.Equal(t, tc.status, err.Status)
		assert.Equal(t, tc.message, err.Message)
		assert.Equal(t, tc.details, err.Details)
	}
}

func TestIsStatus(t *testing.T) {
	var err error = &APIError{Status: 409, Message: "taken"}
	assert.True(t, IsStatus(err, 409))
	assert.False(t, IsStatus(err, 400))
	assert.False(t, IsStatus(errors.New("plain"), 409))
}

func TestAgainstServer(t *testing.T) {
	srv := apitest.New(t)
	ctx := context.Background()
	c := New(srv.APIURL(), nil)

	_, err := c.Login(ctx, apitest.AdminUsername, "wrong")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	auth, err := c.Login(ctx, apitest.AdminUsername, apitest.AdminPassword)
	require.NoError(t, err)
	c.Tokens = StaticToken(auth.Token)

	entries, err := c.GetGlobalEnabledByDay(ctx, "lunes")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	saved, err := c.ReplaceDay(ctx, "monday", []scheduling.HourRange{{Start: 8, End: 10}})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	_, err = c.AddGlobalEnabled(ctx, []models.GlobalEnabledInput{{Day: "monday", StartHour: 9, EndHour: 11}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	_, err = c.BlockHours(ctx, []models.BlockHourInput{{Date: "2026-03-02", Hour: 9}})
	require.NoError(t, err)
	day, err := c.DaySlots(ctx, "2026-03-02")
	require.NoError(t, err)
	for _, s := range day.Slots {
		if s.Hour == 9 {
			assert.True(t, s.Blocked)
		}
	}

	res, err := c.CreateGuestReservation(ctx, models.GuestReservationRequest{Date: "2026-03-03T10:00:00", GuestName: "Luis", GuestPhone: "1144440000"})
	require.NoError(t, err)
	ics, err := c.ExportICS(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR")

	cancelled, err := c.CancelReservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)

	grid, err := c.MonthCalendar(ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 2026, grid.Year)

	pref, err := c.CreatePreference(ctx, models.PreferenceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "fake", pref.Provider)
	assert.NotEmpty(t, pref.InitPoint)

	require.NoError(t, c.Logout(ctx))
	_, err = c.Profile(ctx)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}
