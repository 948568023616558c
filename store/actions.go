package store

import (
	"context"
	"errors"

	"consultorio/client"
	"consultorio/models"
	"consultorio/services/scheduling"
)

// Session

func (s *Store) Login(ctx context.Context, username, password string) error {
	auth, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	profile, err := s.api.WithToken(auth.Token).Profile(ctx)
	if err != nil {
		return err
	}
	s.set(func(st *State) {
		st.Token = auth.Token
		st.Role = auth.Role
		st.User = profile
	})
	return nil
}

// Logout revokes the token server-side and always clears the local session.
func (s *Store) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.set(func(st *State) { *st = State{} })
	if errors.Is(err, client.ErrNoToken) || client.IsStatus(err, 401) {
		return nil
	}
	return err
}

func (s *Store) ResetPassword(ctx context.Context, email string) error {
	return s.api.ResetPassword(ctx, email)
}

func (s *Store) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return s.api.ChangePassword(ctx, req)
}

// Users

func (s *Store) GetUsers(ctx context.Context) error {
	users, err := s.api.GetUsers(ctx)
	if err != nil {
		return err
	}
	s.set(func(st *State) { st.Users = users })
	return nil
}

func (s *Store) CreateUser(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	user, err := s.api.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	s.set(func(st *State) { st.Users = append(st.Users, *user) })
	return user, nil
}

func (s *Store) EditUser(ctx context.Context, id string, req models.UserUpdateRequest) (*models.User, error) {
	user, err := s.api.EditUser(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.set(func(st *State) {
		for i := range st.Users {
			if st.Users[i].ID == id {
				st.Users[i] = *user
			}
		}
		if st.User != nil && st.User.ID == id {
			u := *user
			st.User = &u
		}
	})
	return user, nil
}

// Consultations

func (s *Store) GetConsultations(ctx context.Context) error {
	list, err := s.api.GetConsultations(ctx)
	if err != nil {
		return err
	}
	s.set(func(st *State) { st.Consultations = list })
	return nil
}

func (s *Store) MarkConsultationRead(ctx context.Context, id string) error {
	return s.markConsultation(ctx, id, true)
}

func (s *Store) MarkConsultationUnread(ctx context.Context, id string) error {
	return s.markConsultation(ctx, id, false)
}

func (s *Store) markConsultation(ctx context.Context, id string, read bool) error {
	updated, err := s.api.MarkConsultation(ctx, id, read)
	if err != nil {
		return err
	}
	s.set(func(st *State) {
		for i := range st.Consultations {
			if st.Consultations[i].ID == id {
				st.Consultations[i] = *updated
			}
		}
	})
	return nil
}

// DeleteConsultation trashes (hard=false) or permanently removes a consultation.
// Either way it leaves the inbox list.
func (s *Store) DeleteConsultation(ctx context.Context, id string, hard bool) error {
	if err := s.api.DeleteConsultation(ctx, id, hard); err != nil {
		return err
	}
	s.set(func(st *State) {
		kept := st.Consultations[:0]
		for _, c := range st.Consultations {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		st.Consultations = kept
	})
	return nil
}

func (s *Store) SendMessage(ctx context.Context, req models.MessageRequest) (*models.Consultation, error) {
	return s.api.SendMessage(ctx, req)
}

// Weekly availability

func (s *Store) GetGlobalEnabled(ctx context.Context) error {
	list, err := s.api.GetGlobalEnabled(ctx)
	if err != nil {
		return err
	}
	s.set(func(st *State) { st.GlobalEnabled = list })
	return nil
}

func (s *Store) GetGlobalEnabledByDay(ctx context.Context, day string) error {
	list, err := s.api.GetGlobalEnabledByDay(ctx, day)
	if err != nil {
		return err
	}
	s.set(func(st *State) { st.GlobalEnabledByDay = list })
	return nil
}

func (s *Store) AddGlobalEnabled(ctx context.Context, inputs []models.GlobalEnabledInput) error {
	if _, err := s.api.AddGlobalEnabled(ctx, inputs); err != nil {
		return err
	}
	return s.GetGlobalEnabled(ctx)
}

// ReplaceDay overwrites one weekday's ranges and refreshes the weekly list.
func (s *Store) ReplaceDay(ctx context.Context, day string, ranges []scheduling.HourRange) error {
	saved, err := s.api.ReplaceDay(ctx, day, ranges)
	if err != nil {
		return err
	}
	s.set(func(st *State) { st.GlobalEnabledByDay = saved })
	return s.GetGlobalEnabled(ctx)
}

func (s *Store) DeleteGlobalEnabled(ctx context.Context, id string) error {
	if err := s.api.DeleteGlobalEnabled(ctx, id); err != nil {
		return err
	}
	s.set(func(st *State) {
		st.GlobalEnabled = withoutEntry(st.GlobalEnabled, id)
		st.GlobalEnabledByDay = withoutEntry(st.GlobalEnabledByDay, id)
	})
	return nil
}

func withoutEntry(list []models.GlobalEnabled, id string) []models.GlobalEnabled {
	out := make([]models.GlobalEnabled, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// Blocked hours

func (s *Store) BlockHours(ctx context.Context, inputs []models.BlockHourInput) error {
	if _, err := s.api.BlockHours(ctx, inputs); err != nil {
		return err
	}
	return s.GetBlockedDates(ctx, "")
}

func (s *Store) GetBlockedDates(ctx context.Context, from string) error {
	list, err := s.api.GetBlockedDates(ctx, from)
	if err != nil {
		return err
	}
	s.set(func(st *State) { st.BlockedHours = list })
	return nil
}

// Guest calendar and payments

func (s *Store) DaySlots(ctx context.Context, date string) (*models.DayAvailability, error) {
	return s.api.DaySlots(ctx, date)
}

func (s *Store) MonthCalendar(ctx context.Context, year, month int) (*scheduling.MonthGrid, error) {
	return s.api.MonthCalendar(ctx, year, month)
}

func (s *Store) CreateGuestReservation(ctx context.Context, req models.GuestReservationRequest) (*models.Reservation, error) {
	return s.api.CreateGuestReservation(ctx, req)
}

func (s *Store) CreatePreference(ctx context.Context, req models.PreferenceRequest) (*models.Preference, error) {
	pref, err := s.api.CreatePreference(ctx, req)
	if err != nil {
		return nil, err
	}
	s.set(func(st *State) {
		st.PreferenceID = pref.ID
		st.PreferenceURL = pref.InitPoint
	})
	return pref, nil
}
