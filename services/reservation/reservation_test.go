package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	reservationRepo "consultorio/database/repository/reservation"
	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/services/tasks"
	"consultorio/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Monday 2 March 2026, 08:30.
var testNow = time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)

type fakeRepo struct {
	mu   sync.Mutex
	list []models.Reservation
}

func (f *fakeRepo) Create(ctx context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.list {
		if e.Status == models.ReservationActive && e.Date == r.Date && e.Hour == r.Hour {
			return reservationRepo.ErrSlotTaken
		}
	}
	r.ID = fmt.Sprintf("res-%d", len(f.list)+1)
	r.Status = models.ReservationActive
	r.CreatedAt = testNow
	f.list = append(f.list, *r)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.list {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRepo) filter(keep func(models.Reservation) bool) []models.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.list {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeRepo) GetActiveByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	return f.filter(func(r models.Reservation) bool { return r.Status == models.ReservationActive && r.Date == date }), nil
}

func (f *fakeRepo) GetActiveBetween(ctx context.Context, from, to string) ([]models.Reservation, error) {
	return f.filter(func(r models.Reservation) bool {
		return r.Status == models.ReservationActive && r.Date >= from && r.Date <= to
	}), nil
}

func (f *fakeRepo) GetByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return f.filter(func(r models.Reservation) bool { return r.UserID == userID }), nil
}

func (f *fakeRepo) GetAll(ctx context.Context, from string) ([]models.Reservation, error) {
	return f.filter(func(r models.Reservation) bool { return r.Date >= from }), nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID == id {
			at := testNow
			f.list[i].Status = models.ReservationCancelled
			f.list[i].CancelledAt = &at
			r := f.list[i]
			return &r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRepo) IsReserved(ctx context.Context, date string, hour scheduling.Hour) (bool, error) {
	list, _ := f.GetActiveByDate(ctx, date)
	for _, r := range list {
		if r.Hour == hour {
			return true, nil
		}
	}
	return false, nil
}

// fakeSlots enables 08-20 on weekdays and reads reservations from repo unless stale.
type fakeSlots struct {
	repo    *fakeRepo
	blocked []scheduling.Hour
	stale   bool
}

func (f *fakeSlots) DayState(ctx context.Context, date time.Time) (scheduling.DayState, error) {
	state := scheduling.DayState{
		Date:    date,
		Ranges:  []scheduling.HourRange{{Start: 8, End: 20}},
		Blocked: f.blocked,
	}
	if !f.stale {
		list, _ := f.repo.GetActiveByDate(ctx, date.Format(scheduling.DateLayout))
		for _, r := range list {
			state.Reserved = append(state.Reserved, r.Hour)
		}
	}
	return state, nil
}

func (f *fakeSlots) Location() *time.Location { return time.UTC }

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*asynq.Task
}

func (q *fakeQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprint(len(q.tasks)), Type: task.Type()}, nil
}

type fixture struct {
	svc   *DefaultReservationService
	repo  *fakeRepo
	slots *fakeSlots
	queue *fakeQueue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	utils.SetLogger(zap.NewNop())
	repo := &fakeRepo{}
	f := &fixture{repo: repo, slots: &fakeSlots{repo: repo}, queue: &fakeQueue{}}
	f.svc = &DefaultReservationService{
		Repo:  repo,
		Slots: f.slots,
		Queue: f.queue,
		Clock: func() time.Time { return testNow },
	}
	return f
}

func guest(slot string) models.GuestReservationRequest {
	return models.GuestReservationRequest{Date: slot, GuestName: "Ana", GuestPhone: "1155550000"}
}

func TestCreateGuestReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateGuestReservation(ctx, guest("2026-03-04T10:00:00"))
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", res.Date)
	assert.Equal(t, scheduling.Hour(10), res.Hour)
	assert.Equal(t, models.ReservationActive, res.Status)

	require.Len(t, f.queue.tasks, 1)
	task := f.queue.tasks[0]
	assert.Equal(t, tasks.TypeSendReminder, task.Type())
	var payload models.ReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, res.ID, payload.ReservationID)
	assert.Equal(t, "Ana", payload.GuestName)

	_, err = f.svc.CreateGuestReservation(ctx, guest("2026-03-04T10:00:00"))
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)

	_, err = f.svc.CreateGuestReservation(ctx, models.GuestReservationRequest{Date: "2026-03-04T11:00:00", GuestName: " "})
	assert.Error(t, err)
}

func TestCreateReservationRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, "u1", "2026-03-02T08:00:00")
	assert.ErrorIs(t, err, scheduling.ErrPastSlot)

	_, err = f.svc.CreateReservation(ctx, "u1", "2026-03-07T10:00:00")
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable, "saturday")

	_, err = f.svc.CreateReservation(ctx, "u1", "2026-03-04T20:00:00")
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable, "closing hour")

	_, err = f.svc.CreateReservation(ctx, "u1", "2026-03-04T10:30:00")
	assert.ErrorIs(t, err, scheduling.ErrInvalidDate)

	f.slots.blocked = []scheduling.Hour{15}
	_, err = f.svc.CreateReservation(ctx, "u1", "2026-03-04T15:00:00")
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)

	_, err = f.svc.CreateReservation(ctx, "", "2026-03-04T16:00:00")
	assert.Error(t, err)

	blank := guest("2026-03-04T16:00:00")
	blank.GuestName = "  "
	_, err = f.svc.CreateGuestReservation(ctx, blank)
	assert.ErrorIs(t, err, ErrMissingGuest)
}

func TestCreateReservationLosesRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, "u1", "2026-03-04T09:00:00")
	require.NoError(t, err)

	f.slots.stale = true
	_, err = f.svc.CreateReservation(ctx, "u2", "2026-03-04T09:00:00")
	assert.ErrorIs(t, err, scheduling.ErrSlotUnavailable)
	assert.Len(t, f.repo.list, 1)
}

func TestReminderSkippedWhenTooClose(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReservation(context.Background(), "u1", "2026-03-02T15:00:00")
	require.NoError(t, err)
	assert.Empty(t, f.queue.tasks)
}

func TestCancelReservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateReservation(ctx, "u1", "2026-03-04T09:00:00")
	require.NoError(t, err)

	_, err = f.svc.CancelReservation(ctx, res.ID, Actor{UserID: "u2"})
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.svc.CancelReservation(ctx, res.ID, Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	again, err := f.svc.CancelReservation(ctx, res.ID, Actor{Admin: true})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, again.Status)

	_, err = f.svc.CancelReservation(ctx, "missing", Actor{Admin: true})
	assert.ErrorIs(t, err, ErrNotFound)

	// The slot is free again.
	_, err = f.svc.CreateReservation(ctx, "u2", "2026-03-04T09:00:00")
	assert.NoError(t, err)
}

func TestListReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.list = []models.Reservation{
		{ID: "old", Date: "2026-02-20", Hour: 9, Status: models.ReservationActive},
		{ID: "a", Date: "2026-03-03", Hour: 9, Status: models.ReservationActive},
		{ID: "b", Date: "2026-03-20", Hour: 9, Status: models.ReservationActive},
	}

	list, err := f.svc.ListReservations(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.svc.ListReservations(ctx, "2026-02-01", "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.svc.ListReservations(ctx, "yesterday", "")
	assert.ErrorIs(t, err, scheduling.ErrInvalidDate)
}

func TestExportICS(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.list = []models.Reservation{
		{ID: "a", Date: "2026-03-03", Hour: 9, GuestName: "Ana", GuestPhone: "11", Status: models.ReservationActive},
		{ID: "b", Date: "2026-03-04", Hour: 10, UserID: "u1", Status: models.ReservationCancelled},
	}

	data, err := f.svc.ExportICS(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	ics := string(data)
	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "UID:a@consultorio")
	assert.Contains(t, ics, "Consulta: Ana")
	assert.NotContains(t, ics, "UID:b@consultorio")
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
}
