package availability

import (
	"context"
	"fmt"
	"sort"
	"sync"

	availabilityRepo "consultorio/database/repository/availability"
	"consultorio/models"
	"consultorio/services/scheduling"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeWeekly struct {
	mu      sync.Mutex
	entries []models.GlobalEnabled
	reads   int
	seq     int
}

func (f *fakeWeekly) GetAll(ctx context.Context) ([]models.GlobalEnabled, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return append([]models.GlobalEnabled(nil), f.entries...), nil
}

func (f *fakeWeekly) GetByDay(ctx context.Context, day scheduling.Weekday) ([]models.GlobalEnabled, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.GlobalEnabled
	for _, e := range f.entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWeekly) GetByID(ctx context.Context, id string) (*models.GlobalEnabled, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeWeekly) CreateChecked(ctx context.Context, entries []models.GlobalEnabled, check availabilityRepo.CheckFunc) ([]models.GlobalEnabled, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if check != nil {
		if err := check(append([]models.GlobalEnabled(nil), f.entries...)); err != nil {
			return nil, err
		}
	}
	return f.insert(entries), nil
}

func (f *fakeWeekly) insert(entries []models.GlobalEnabled) []models.GlobalEnabled {
	out := make([]models.GlobalEnabled, 0, len(entries))
	for _, e := range entries {
		f.seq++
		e.ID = fmt.Sprintf("ge-%d", f.seq)
		f.entries = append(f.entries, e)
		out = append(out, e)
	}
	return out
}

func (f *fakeWeekly) ReplaceDay(ctx context.Context, day scheduling.Weekday, entries []models.GlobalEnabled) ([]models.GlobalEnabled, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.Day != day {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return f.insert(entries), nil
}

func (f *fakeWeekly) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeBlocked struct {
	mu    sync.Mutex
	hours []models.BlockedHour
}

func (f *fakeBlocked) CreateMany(ctx context.Context, hours []models.BlockedHour) ([]models.BlockedHour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range hours {
		hours[i].ID = fmt.Sprintf("bh-%d", len(f.hours)+1)
		f.hours = append(f.hours, hours[i])
	}
	return hours, nil
}

func (f *fakeBlocked) GetByDate(ctx context.Context, date string) ([]models.BlockedHour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BlockedHour
	for _, h := range f.hours {
		if h.Date == date {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeBlocked) GetFrom(ctx context.Context, date string) ([]models.BlockedHour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BlockedHour
	for _, h := range f.hours {
		if h.Date >= date {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeBlocked) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, h := range f.hours {
		if h.ID == id {
			f.hours = append(f.hours[:i], f.hours[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBlocked) DeleteBefore(ctx context.Context, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.hours[:0]
	var n int64
	for _, h := range f.hours {
		if h.Date < date {
			n++
			continue
		}
		kept = append(kept, h)
	}
	f.hours = kept
	return n, nil
}

type fakeReservations struct {
	mu   sync.Mutex
	list []models.Reservation
}

func (f *fakeReservations) GetActiveByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	return f.GetActiveBetween(ctx, date, date)
}

func (f *fakeReservations) GetActiveBetween(ctx context.Context, from, to string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.list {
		if r.Status == models.ReservationActive && r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}
