package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"consultorio/models"
	"consultorio/services/scheduling"
)

// Auth

func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.Fetch(ctx, http.MethodPost, "/login", models.LoginRequest{Username: username, Password: password}, &out)
	return &out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.ProtectedFetch(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.Fetch(ctx, http.MethodPost, "/reset_password", models.ResetPasswordRequest{Email: email}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.Fetch(ctx, http.MethodPost, "/change_password", req, nil)
}

// Users

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var out models.User
	err := c.ProtectedFetch(ctx, http.MethodPost, "/signup", req, &out)
	return &out, err
}

func (c *Client) GetUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.ProtectedFetch(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	err := c.ProtectedFetch(ctx, http.MethodGet, "/get_user/"+url.PathEscape(id), nil, &out)
	return &out, err
}

func (c *Client) EditUser(ctx context.Context, id string, req models.UserUpdateRequest) (*models.User, error) {
	var out models.User
	err := c.ProtectedFetch(ctx, http.MethodPut, "/edit_user/"+url.PathEscape(id), req, &out)
	return &out, err
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	err := c.ProtectedFetch(ctx, http.MethodGet, "/profile", nil, &out)
	return &out, err
}

func (c *Client) EditProfile(ctx context.Context, req models.UserUpdateRequest) (*models.User, error) {
	var out models.User
	err := c.ProtectedFetch(ctx, http.MethodPut, "/profile_edit", req, &out)
	return &out, err
}

// Consultations

func (c *Client) SendMessage(ctx context.Context, req models.MessageRequest) (*models.Consultation, error) {
	var out models.Consultation
	err := c.Fetch(ctx, http.MethodPost, "/message", req, &out)
	return &out, err
}

func (c *Client) GetConsultations(ctx context.Context) ([]models.Consultation, error) {
	var out []models.Consultation
	err := c.ProtectedFetch(ctx, http.MethodGet, "/consultations", nil, &out)
	return out, err
}

func (c *Client) MarkConsultation(ctx context.Context, id string, read bool) (*models.Consultation, error) {
	action := "mark_as_unread"
	if read {
		action = "mark_as_read"
	}
	var out models.Consultation
	err := c.ProtectedFetch(ctx, http.MethodPut, fmt.Sprintf("/consultations/%s/%s", url.PathEscape(id), action), nil, &out)
	return &out, err
}

// DeleteConsultation moves a consultation to the trash, or removes it for good when hard is set.
func (c *Client) DeleteConsultation(ctx context.Context, id string, hard bool) error {
	method := http.MethodPut
	if hard {
		method = http.MethodDelete
	}
	return c.ProtectedFetch(ctx, method, "/deleted_consultations/"+url.PathEscape(id), nil, nil)
}

// Weekly availability

func (c *Client) GetGlobalEnabled(ctx context.Context) ([]models.GlobalEnabled, error) {
	var out []models.GlobalEnabled
	err := c.Fetch(ctx, http.MethodGet, "/get_global_enabled", nil, &out)
	return out, err
}

func (c *Client) GetGlobalEnabledByDay(ctx context.Context, day string) ([]models.GlobalEnabled, error) {
	var out []models.GlobalEnabled
	err := c.Fetch(ctx, http.MethodGet, "/get_global_enabled_by_day/"+url.PathEscape(day), nil, &out)
	return out, err
}

func (c *Client) AddGlobalEnabled(ctx context.Context, inputs []models.GlobalEnabledInput) ([]models.GlobalEnabled, error) {
	var out []models.GlobalEnabled
	err := c.ProtectedFetch(ctx, http.MethodPost, "/global_enabled", inputs, &out)
	return out, err
}

func (c *Client) ReplaceDay(ctx context.Context, day string, ranges []scheduling.HourRange) ([]models.GlobalEnabled, error) {
	if ranges == nil {
		ranges = []scheduling.HourRange{}
	}
	var out []models.GlobalEnabled
	err := c.ProtectedFetch(ctx, http.MethodPut, "/global_enabled/"+url.PathEscape(day), models.ReplaceDayRequest{Ranges: ranges}, &out)
	return out, err
}

func (c *Client) DeleteGlobalEnabled(ctx context.Context, id string) error {
	return c.ProtectedFetch(ctx, http.MethodDelete, "/delete_global_enabled/"+url.PathEscape(id), nil, nil)
}

func (c *Client) WeeklyGrid(ctx context.Context) (*scheduling.WeeklyGrid, error) {
	var out scheduling.WeeklyGrid
	err := c.Fetch(ctx, http.MethodGet, "/weekly_grid", nil, &out)
	return &out, err
}

// Blocked hours

func (c *Client) BlockHours(ctx context.Context, inputs []models.BlockHourInput) ([]models.BlockedHour, error) {
	var out []models.BlockedHour
	err := c.ProtectedFetch(ctx, http.MethodPost, "/block_multiple_hours", models.BlockHoursRequest{Dates: inputs}, &out)
	return out, err
}

func (c *Client) GetBlockedDates(ctx context.Context, from string) ([]models.BlockedHour, error) {
	endpoint := "/bloquear"
	if from != "" {
		endpoint += "?from=" + url.QueryEscape(from)
	}
	var out []models.BlockedHour
	err := c.ProtectedFetch(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

// Calendar and reservations

func (c *Client) DaySlots(ctx context.Context, date string) (*models.DayAvailability, error) {
	var out models.DayAvailability
	err := c.Fetch(ctx, http.MethodGet, "/availability/"+url.PathEscape(date), nil, &out)
	return &out, err
}

func (c *Client) MonthCalendar(ctx context.Context, year, month int) (*scheduling.MonthGrid, error) {
	var out scheduling.MonthGrid
	err := c.Fetch(ctx, http.MethodGet, fmt.Sprintf("/calendar/%d/%d", year, month), nil, &out)
	return &out, err
}

func (c *Client) CreateGuestReservation(ctx context.Context, req models.GuestReservationRequest) (*models.Reservation, error) {
	var out models.Reservation
	err := c.Fetch(ctx, http.MethodPost, "/reservations/guest", req, &out)
	return &out, err
}

func (c *Client) CreateReservation(ctx context.Context, slot string) (*models.Reservation, error) {
	var out models.Reservation
	err := c.ProtectedFetch(ctx, http.MethodPost, "/reservations", models.ReservationRequest{Date: slot}, &out)
	return &out, err
}

func (c *Client) MyReservations(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	err := c.ProtectedFetch(ctx, http.MethodGet, "/reservations/mine", nil, &out)
	return out, err
}

func (c *Client) CancelReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var out models.Reservation
	err := c.ProtectedFetch(ctx, http.MethodDelete, "/reservations/"+url.PathEscape(id), nil, &out)
	return &out, err
}

// ExportICS downloads the reservations feed as raw iCalendar bytes.
func (c *Client) ExportICS(ctx context.Context, from, to string) ([]byte, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	endpoint := "/reservations.ics"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	var out []byte
	err := c.ProtectedFetch(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

// Payments

func (c *Client) CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error) {
	var out models.Preference
	err := c.Fetch(ctx, http.MethodPost, "/create_preference", req, &out)
	return &out, err
}
