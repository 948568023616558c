// Package store is the client-side state container shared by the views.
// State is read through Snapshot and changed only by the named actions.
package store

import (
	"sync"

	"consultorio/client"
	"consultorio/models"
)

// State is a point-in-time copy of everything the views render.
type State struct {
	Token              string
	Role               models.Role
	User               *models.User
	Users              []models.User
	Consultations      []models.Consultation
	GlobalEnabled      []models.GlobalEnabled
	GlobalEnabledByDay []models.GlobalEnabled
	BlockedHours       []models.BlockedHour
	PreferenceID       string
	PreferenceURL      string
}

// LoggedIn reports whether a session token is held.
func (s State) LoggedIn() bool { return s.Token != "" }

// IsAdmin reports whether the session belongs to the psychologist.
func (s State) IsAdmin() bool { return s.Role == models.RoleAdmin }

type Store struct {
	api *client.Client

	mu    sync.RWMutex
	state State

	subsMu sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New wires a store to api. The store becomes api's token source.
func New(api *client.Client) *Store {
	s := &Store{api: api, subs: make(map[int]chan struct{})}
	api.Tokens = s
	return s
}

// Token implements client.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Snapshot returns a copy of the current state; callers may keep or modify it freely.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if s.state.User != nil {
		u := *s.state.User
		out.User = &u
	}
	out.Users = append([]models.User(nil), s.state.Users...)
	out.Consultations = append([]models.Consultation(nil), s.state.Consultations...)
	out.GlobalEnabled = append([]models.GlobalEnabled(nil), s.state.GlobalEnabled...)
	out.GlobalEnabledByDay = append([]models.GlobalEnabled(nil), s.state.GlobalEnabledByDay...)
	out.BlockedHours = append([]models.BlockedHour(nil), s.state.BlockedHours...)
	return out
}

// Subscribe returns a channel that receives a value after state changes, plus a func
// that stops delivery and closes the channel. Bursts of changes coalesce into one value.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

// set applies fn under the write lock and notifies subscribers.
func (s *Store) set(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// RestoreSession installs a token obtained earlier, e.g. by a previous CLI login.
func (s *Store) RestoreSession(token string, role models.Role) {
	s.set(func(st *State) {
		st.Token = token
		st.Role = role
	})
}
