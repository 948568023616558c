// Package memory holds in-process implementations of the repository interfaces.
// They mirror the Mongo repositories' uniqueness rules and sort orders and back
// the end-to-end API tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	availabilityRepo "consultorio/database/repository/availability"
	reservationRepo "consultorio/database/repository/reservation"
	"consultorio/models"
	"consultorio/services/scheduling"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// duplicateKey looks like the server's E11000 error to mongo.IsDuplicateKeyError.
var duplicateKey = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}

// GlobalEnabledRepo implements availabilityRepo.GlobalEnabledRepository.
type GlobalEnabledRepo struct {
	mu      sync.Mutex
	entries []models.GlobalEnabled
}

func (r *GlobalEnabledRepo) sorted(keep func(models.GlobalEnabled) bool) []models.GlobalEnabled {
	out := []models.GlobalEnabled{}
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day.Index() < out[j].Day.Index()
		}
		return out[i].StartHour < out[j].StartHour
	})
	return out
}

func (r *GlobalEnabledRepo) GetAll(ctx context.Context) ([]models.GlobalEnabled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(models.GlobalEnabled) bool { return true }), nil
}

func (r *GlobalEnabledRepo) GetByDay(ctx context.Context, day scheduling.Weekday) ([]models.GlobalEnabled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e models.GlobalEnabled) bool { return e.Day == day }), nil
}

func (r *GlobalEnabledRepo) GetByID(ctx context.Context, id string) (*models.GlobalEnabled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *GlobalEnabledRepo) CreateChecked(ctx context.Context, entries []models.GlobalEnabled, check availabilityRepo.CheckFunc) ([]models.GlobalEnabled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if check != nil {
		days := make(map[scheduling.Weekday]bool)
		for _, e := range entries {
			days[e.Day] = true
		}
		if err := check(r.sorted(func(e models.GlobalEnabled) bool { return days[e.Day] })); err != nil {
			return nil, err
		}
	}
	return r.insert(entries)
}

func (r *GlobalEnabledRepo) insert(entries []models.GlobalEnabled) ([]models.GlobalEnabled, error) {
	for _, e := range entries {
		for _, existing := range r.entries {
			if existing.Day == e.Day && existing.StartHour == e.StartHour {
				return nil, duplicateKey
			}
		}
	}
	now := time.Now()
	out := make([]models.GlobalEnabled, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.CreatedAt = now
		r.entries = append(r.entries, e)
		out = append(out, e)
	}
	return out, nil
}

func (r *GlobalEnabledRepo) ReplaceDay(ctx context.Context, day scheduling.Weekday, entries []models.GlobalEnabled) ([]models.GlobalEnabled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.entries
	kept := make([]models.GlobalEnabled, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Day != day {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	out, err := r.insert(entries)
	if err != nil {
		r.entries = previous
		return nil, err
	}
	return out, nil
}

func (r *GlobalEnabledRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// BlockedHourRepo implements blockedRepo.BlockedHourRepository.
type BlockedHourRepo struct {
	mu    sync.Mutex
	hours []models.BlockedHour
}

func (r *BlockedHourRepo) CreateMany(ctx context.Context, hours []models.BlockedHour) ([]models.BlockedHour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.BlockedHour, 0, len(hours))
	for _, h := range hours {
		if existing := r.find(h.Date, h.Hour); existing != nil {
			out = append(out, *existing)
			continue
		}
		h.ID = uuid.New().String()
		h.CreatedAt = time.Now()
		r.hours = append(r.hours, h)
		out = append(out, h)
	}
	return out, nil
}

func (r *BlockedHourRepo) find(date string, hour scheduling.Hour) *models.BlockedHour {
	for i := range r.hours {
		if r.hours[i].Date == date && r.hours[i].Hour == hour {
			return &r.hours[i]
		}
	}
	return nil
}

func (r *BlockedHourRepo) filter(keep func(models.BlockedHour) bool) []models.BlockedHour {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.BlockedHour{}
	for _, h := range r.hours {
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

func (r *BlockedHourRepo) GetByDate(ctx context.Context, date string) ([]models.BlockedHour, error) {
	return r.filter(func(h models.BlockedHour) bool { return h.Date == date }), nil
}

func (r *BlockedHourRepo) GetFrom(ctx context.Context, date string) ([]models.BlockedHour, error) {
	return r.filter(func(h models.BlockedHour) bool { return h.Date >= date }), nil
}

func (r *BlockedHourRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.hours {
		if h.ID == id {
			r.hours = append(r.hours[:i:i], r.hours[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *BlockedHourRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.hours[:0]
	var n int64
	for _, h := range r.hours {
		if h.Date < date {
			n++
			continue
		}
		kept = append(kept, h)
	}
	r.hours = kept
	return n, nil
}

// ReservationRepo implements reservationRepo.ReservationRepository.
type ReservationRepo struct {
	mu   sync.Mutex
	list []models.Reservation
}

func (r *ReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.list {
		if e.Status == models.ReservationActive && e.Date == res.Date && e.Hour == res.Hour {
			return reservationRepo.ErrSlotTaken
		}
	}
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	res.Status = models.ReservationActive
	res.CreatedAt = time.Now()
	r.list = append(r.list, *res)
	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.list {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *ReservationRepo) filter(keep func(models.Reservation) bool) []models.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Reservation{}
	for _, e := range r.list {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

func (r *ReservationRepo) GetActiveByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	return r.filter(func(e models.Reservation) bool { return e.Status == models.ReservationActive && e.Date == date }), nil
}

func (r *ReservationRepo) GetActiveBetween(ctx context.Context, from, to string) ([]models.Reservation, error) {
	return r.filter(func(e models.Reservation) bool {
		return e.Status == models.ReservationActive && e.Date >= from && e.Date <= to
	}), nil
}

func (r *ReservationRepo) GetByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return r.filter(func(e models.Reservation) bool { return e.UserID == userID }), nil
}

func (r *ReservationRepo) GetAll(ctx context.Context, from string) ([]models.Reservation, error) {
	return r.filter(func(e models.Reservation) bool { return from == "" || e.Date >= from }), nil
}

func (r *ReservationRepo) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.list {
		if r.list[i].ID == id {
			now := time.Now()
			r.list[i].Status = models.ReservationCancelled
			r.list[i].CancelledAt = &now
			e := r.list[i]
			return &e, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *ReservationRepo) IsReserved(ctx context.Context, date string, hour scheduling.Hour) (bool, error) {
	for _, e := range r.filter(func(e models.Reservation) bool { return e.Status == models.ReservationActive && e.Date == date }) {
		if e.Hour == hour {
			return true, nil
		}
	}
	return false, nil
}
