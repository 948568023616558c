package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"consultorio/apitest"
	"consultorio/client"
	"consultorio/models"
	"consultorio/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestStore(t *testing.T) (*Store, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	return New(client.New(srv.APIURL(), nil)), srv
}

func TestSubscribeCoalescesAndUnsubscribeCloses(t *testing.T) {
	s := New(client.New("http://unused", nil))
	ch, unsubscribe := s.Subscribe()

	s.RestoreSession("t1", models.RolePatient)
	s.RestoreSession("t2", models.RoleAdmin)

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending notification")
	}
	select {
	case <-ch:
		t.Fatal("bursts should coalesce into one notification")
	default:
	}

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)

	s.RestoreSession("t3", models.RoleAdmin)
	assert.Equal(t, "t3", s.Token())
}

func TestSubscribersAcrossGoroutines(t *testing.T) {
	s := New(client.New("http://unused", nil))
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		ch, unsubscribe := s.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range ch {
				if s.Snapshot().Token == "done" {
					unsubscribe()
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		s.RestoreSession("tick", models.RolePatient)
	}
	s.RestoreSession("done", models.RolePatient)
	wg.Wait()
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(client.New("http://unused", nil))
	s.set(func(st *State) {
		st.User = &models.User{Username: "ana"}
		st.Users = []models.User{{Username: "ana"}}
	})

	snap := s.Snapshot()
	snap.User.Username = "changed"
	snap.Users[0].Username = "changed"

	again := s.Snapshot()
	assert.Equal(t, "ana", again.User.Username)
	assert.Equal(t, "ana", again.Users[0].Username)
}

func TestLoginLoadsProfileAndLogoutClears(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.Error(t, s.Login(ctx, apitest.AdminUsername, "nope"))
	assert.False(t, s.Snapshot().LoggedIn())

	require.NoError(t, s.Login(ctx, apitest.AdminUsername, apitest.AdminPassword))
	st := s.Snapshot()
	assert.True(t, st.LoggedIn())
	assert.True(t, st.IsAdmin())
	require.NotNil(t, st.User)
	assert.Equal(t, apitest.AdminEmail, st.User.Email)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.Snapshot().LoggedIn())

	// A second logout has no token to revoke.
	require.NoError(t, s.Logout(ctx))
}

func TestLoginKeepsStateWhenProfileFails(t *testing.T) {
	auths := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{Token: "fresh-token", Role: models.RolePatient, UserID: "u1"})
	})
	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		auths <- r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := New(client.New(srv.URL+"/api", nil))
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	err := s.Login(context.Background(), "ana", "patient-pass")
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusInternalServerError))
	assert.Equal(t, "Bearer fresh-token", <-auths)

	snap := s.Snapshot()
	assert.False(t, snap.LoggedIn())
	assert.Empty(t, snap.Role)
	assert.Nil(t, snap.User)
	select {
	case <-ch:
		t.Fatal("a failed login must not change state")
	default:
	}
}

func TestLogoutWithStaleTokenStillClears(t *testing.T) {
	s, _ := newTestStore(t)
	s.RestoreSession("stale", models.RoleAdmin)

	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, State{}, s.Snapshot())
}

func TestAvailabilityActions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Login(ctx, apitest.AdminUsername, apitest.AdminPassword))

	require.NoError(t, s.GetGlobalEnabled(ctx))
	assert.Len(t, s.Snapshot().GlobalEnabled, 10)

	require.NoError(t, s.ReplaceDay(ctx, "viernes", []scheduling.HourRange{{Start: 10, End: 13}}))
	st := s.Snapshot()
	require.Len(t, st.GlobalEnabledByDay, 1)
	assert.Equal(t, scheduling.Friday, st.GlobalEnabledByDay[0].Day)
	assert.Len(t, st.GlobalEnabled, 9)

	id := st.GlobalEnabledByDay[0].ID
	require.NoError(t, s.DeleteGlobalEnabled(ctx, id))
	st = s.Snapshot()
	assert.Empty(t, st.GlobalEnabledByDay)
	assert.Len(t, st.GlobalEnabled, 8)

	err := s.AddGlobalEnabled(ctx, []models.GlobalEnabledInput{{Day: "monday", StartHour: 10, EndHour: 11}})
	assert.True(t, client.IsStatus(err, 409))

	require.NoError(t, s.BlockHours(ctx, []models.BlockHourInput{{Date: "2026-03-04", Hour: 10}, {Date: "2026-03-04", Hour: 11}}))
	assert.Len(t, s.Snapshot().BlockedHours, 2)
}

func TestConsultationActions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.SendMessage(ctx, models.MessageRequest{Name: "Eva", Lastname: "Paz", Phone: "1133330000", Consultation: "Hola"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.GetConsultations(ctx), client.ErrNoToken)

	require.NoError(t, s.Login(ctx, apitest.AdminUsername, apitest.AdminPassword))
	require.NoError(t, s.GetConsultations(ctx))
	list := s.Snapshot().Consultations
	require.Len(t, list, 1)

	require.NoError(t, s.MarkConsultationRead(ctx, list[0].ID))
	assert.True(t, s.Snapshot().Consultations[0].IsRead)

	require.NoError(t, s.DeleteConsultation(ctx, list[0].ID, false))
	assert.Empty(t, s.Snapshot().Consultations)
}

func TestCreatePreferenceStoresCheckout(t *testing.T) {
	s, srv := newTestStore(t)
	pref, err := s.CreatePreference(context.Background(), models.PreferenceRequest{Price: 100})
	require.NoError(t, err)

	st := s.Snapshot()
	assert.Equal(t, pref.ID, st.PreferenceID)
	assert.Equal(t, pref.InitPoint, st.PreferenceURL)
	require.Len(t, srv.Gateway.Requests, 1)
	assert.Equal(t, "ARS", srv.Gateway.Requests[0].CurrencyID)
}
