package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"consultorio/apitest"
	"consultorio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, method, url, token string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, srv *apitest.Server, username, password string) string {
	t.Helper()
	var auth models.AuthResponse
	status := call(t, http.MethodPost, srv.APIURL()+"/login", "", models.LoginRequest{Username: username, Password: password}, &auth)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestHealthAndMetrics(t *testing.T) {
	srv := apitest.New(t)

	var health map[string]interface{}
	assert.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.URL+"/health", "", nil, &health))
	assert.Equal(t, "ok", health["status"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	srv := apitest.New(t)
	admin := login(t, srv, apitest.AdminUsername, apitest.AdminPassword)

	assert.Equal(t, http.StatusUnauthorized, call(t, http.MethodGet, srv.APIURL()+"/users", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, http.MethodGet, srv.APIURL()+"/users", "not-a-jwt", nil, nil))

	var patient models.User
	status := call(t, http.MethodPost, srv.APIURL()+"/signup", admin, models.SignupRequest{
		Username: "ana", Name: "Ana", Lastname: "Gómez", DNI: "30111222",
		Email: "ana@example.com", Phone: "1155550000", Password: "patient-pass",
	}, &patient)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.RolePatient, patient.Role)

	token := login(t, srv, "ana", "patient-pass")
	assert.Equal(t, http.StatusForbidden, call(t, http.MethodGet, srv.APIURL()+"/users", token, nil, nil))
	assert.Equal(t, http.StatusForbidden, call(t, http.MethodGet, srv.APIURL()+"/consultations", token, nil, nil))

	var profile models.User
	assert.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.APIURL()+"/profile", token, nil, &profile))
	assert.Equal(t, "ana", profile.Username)

	var users []models.User
	assert.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.APIURL()+"/users", admin, nil, &users))
	assert.Len(t, users, 2)
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := apitest.New(t)
	token := login(t, srv, apitest.AdminUsername, apitest.AdminPassword)

	assert.Equal(t, http.StatusOK, call(t, http.MethodPost, srv.APIURL()+"/logout", token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, http.MethodGet, srv.APIURL()+"/profile", token, nil, nil))
}

func TestGuestBookingFlow(t *testing.T) {
	srv := apitest.New(t)

	var day models.DayAvailability
	require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.APIURL()+"/availability/2026-03-02", "", nil, &day))
	var open []int
	for _, s := range day.Slots {
		if s.Available {
			open = append(open, int(s.Hour))
		}
	}
	assert.Equal(t, []int{9, 10, 11, 14, 15, 16, 17}, open)

	req := models.GuestReservationRequest{Date: "2026-03-02T10:00:00", GuestName: "Luis", GuestPhone: "1144440000"}
	var res models.Reservation
	require.Equal(t, http.StatusCreated, call(t, http.MethodPost, srv.APIURL()+"/reservations/guest", "", req, &res))
	assert.Equal(t, models.ReservationActive, res.Status)

	var conflict map[string]string
	assert.Equal(t, http.StatusConflict, call(t, http.MethodPost, srv.APIURL()+"/reservations/guest", "", req, &conflict))
	assert.NotEmpty(t, conflict["error"])

	require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.APIURL()+"/availability/2026-03-02", "", nil, &day))
	for _, s := range day.Slots {
		if s.Hour == 10 {
			assert.True(t, s.Reserved)
			assert.False(t, s.Available)
		}
	}

	// Saturdays are closed.
	closed := models.GuestReservationRequest{Date: "2026-03-07T10:00:00", GuestName: "Luis", GuestPhone: "1144440000"}
	assert.Equal(t, http.StatusConflict, call(t, http.MethodPost, srv.APIURL()+"/reservations/guest", "", closed, nil))

	past := models.GuestReservationRequest{Date: "2026-03-02T08:00:00", GuestName: "Luis", GuestPhone: "1144440000"}
	assert.Equal(t, http.StatusBadRequest, call(t, http.MethodPost, srv.APIURL()+"/reservations/guest", "", past, nil))
}

func TestConsultationInbox(t *testing.T) {
	srv := apitest.New(t)
	admin := login(t, srv, apitest.AdminUsername, apitest.AdminPassword)

	msg := models.MessageRequest{Name: "Eva", Lastname: "Paz", Age: 31, Phone: "1133330000", Consultation: "Horarios?"}
	var created models.Consultation
	require.Equal(t, http.StatusCreated, call(t, http.MethodPost, srv.APIURL()+"/message", "", msg, &created))

	var marked models.Consultation
	require.Equal(t, http.StatusOK, call(t, http.MethodPut, srv.APIURL()+"/consultations/"+created.ID+"/mark_as_read", admin, nil, &marked))
	assert.True(t, marked.IsRead)

	require.Equal(t, http.StatusOK, call(t, http.MethodPut, srv.APIURL()+"/deleted_consultations/"+created.ID, admin, nil, nil))
	var inbox, trash []models.Consultation
	require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.APIURL()+"/consultations", admin, nil, &inbox))
	require.Equal(t, http.StatusOK, call(t, http.MethodGet, srv.APIURL()+"/deleted_consultations", admin, nil, &trash))
	assert.Empty(t, inbox)
	require.Len(t, trash, 1)

	require.Equal(t, http.StatusOK, call(t, http.MethodDelete, srv.APIURL()+"/deleted_consultations/"+created.ID, admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, http.MethodGet, srv.APIURL()+"/consultation/"+created.ID, admin, nil, nil))
}

func TestEmptyBulkBodiesAreClientErrors(t *testing.T) {
	srv := apitest.New(t)
	admin := login(t, srv, apitest.AdminUsername, apitest.AdminPassword)

	var errBody map[string]string
	status := call(t, http.MethodPost, srv.APIURL()+"/global_enabled", admin, []models.GlobalEnabledInput{}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no ranges to add", errBody["error"])

	errBody = nil
	status = call(t, http.MethodPost, srv.APIURL()+"/block_multiple_hours", admin, models.BlockHoursRequest{Dates: []models.BlockHourInput{}}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no hours to block", errBody["error"])
}
