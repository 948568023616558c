package user

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"consultorio/models"
	"consultorio/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var duplicateKey = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: map[string]models.User{}} }

func (f *fakeUsers) conflicts(u *models.User) bool {
	for id, e := range f.users {
		if id != u.ID && (e.Username == u.Username || e.Email == u.Email) {
			return true
		}
	}
	return false
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflicts(u) {
		return duplicateKey
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) Update(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	if f.conflicts(u) {
		return duplicateKey
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) find(match func(models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Username == username })
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Email == email })
}

func (f *fakeUsers) GetAll(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeTokens struct {
	mu      sync.Mutex
	blocked map[string]time.Time
}

func (f *fakeTokens) Block(ctx context.Context, jti string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[jti] = expiresAt
	return nil
}

func (f *fakeTokens) IsBlocked(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blocked[jti]
	return ok, nil
}

func (f *fakeTokens) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type fakeQueue struct {
	mu     sync.Mutex
	emails []models.EmailPayload
}

func (q *fakeQueue) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	var p models.EmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return nil, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.emails = append(q.emails, p)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (q *fakeQueue) last(t *testing.T) models.EmailPayload {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	require.NotEmpty(t, q.emails)
	return q.emails[len(q.emails)-1]
}

type fixture struct {
	svc    *DefaultUserService
	users  *fakeUsers
	tokens *fakeTokens
	queue  *fakeQueue
	redis  *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	utils.SetLogger(zap.NewNop())
	mr := miniredis.RunT(t)
	f := &fixture{
		users:  newFakeUsers(),
		tokens: &fakeTokens{blocked: map[string]time.Time{}},
		queue:  &fakeQueue{},
		redis:  mr,
	}
	f.svc = &DefaultUserService{
		Repo:        f.users,
		Tokens:      f.tokens,
		AuthCache:   redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Queue:       f.queue,
		TokenTTL:    time.Hour,
		FrontendURL: "https://consultorio.test/",
	}
	return f
}

func signup(username, email, password string) models.SignupRequest {
	return models.SignupRequest{
		Username: username, Name: "Ana", Lastname: "Pérez", DNI: "30111222",
		Email: email, Phone: "1155550000", Password: password,
	}
}

// resetToken pulls the token out of the link in a reset email.
func resetToken(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	require.GreaterOrEqual(t, i, 0, body)
	raw := body[i+len("token="):]
	if j := strings.IndexAny(raw, "\n& "); j >= 0 {
		raw = raw[:j]
	}
	tok, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	return tok
}

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Signup(ctx, signup("ana", "Ana@Mail.com ", "secret1"))
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, u.Role)
	assert.Equal(t, "ana@mail.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = f.svc.Signup(ctx, signup("ana", "otra@mail.com", "secret1"))
	assert.ErrorIs(t, err, ErrDuplicateUser)
	_, err = f.svc.Signup(ctx, signup("beto", "beto@mail.com", "123"))
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = f.svc.Signup(ctx, models.SignupRequest{Username: "x"})
	assert.ErrorIs(t, err, ErrMissingFields)

	auth, err := f.svc.Login(ctx, "ana", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, auth.UserID)
	claims, err := utils.ValidateToken(auth.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, string(models.RolePatient), claims.Role)

	_, err = f.svc.Login(ctx, "ana", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, "nadie", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	inactive := false
	_, err = f.svc.EditUser(ctx, u.ID, models.UserUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "ana", "secret1")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestSignupWithoutPasswordSendsReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Signup(ctx, signup("carla", "carla@mail.com", ""))
	require.NoError(t, err)

	mail := f.queue.last(t)
	assert.Equal(t, "carla@mail.com", mail.To)
	assert.Contains(t, mail.Body, "https://consultorio.test/change_password?username=carla&token=")
	assert.True(t, f.redis.Exists(utils.ResetTokenPrefix+u.Username))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, signup("ana", "ana@mail.com", "secret1"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, "nadie@mail.com"), ErrUserNotFound)
	require.NoError(t, f.svc.ResetPassword(ctx, "ANA@mail.com"))
	token := resetToken(t, f.queue.last(t).Body)

	err = f.svc.ChangePassword(ctx, models.ChangePasswordRequest{Username: "ana", Token: "bogus", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)

	require.NoError(t, f.svc.ChangePassword(ctx, models.ChangePasswordRequest{Username: "ana", Token: token, NewPassword: "nueva123"}))
	_, err = f.svc.Login(ctx, "ana", "nueva123")
	assert.NoError(t, err)

	// Single use.
	err = f.svc.ChangePassword(ctx, models.ChangePasswordRequest{Username: "ana", Token: token, NewPassword: "otra1234"})
	assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)

	require.NoError(t, f.svc.ResetPassword(ctx, "ana@mail.com"))
	f.redis.FastForward(utils.ResetTokenTTL + time.Second)
	err = f.svc.ChangePassword(ctx, models.ChangePasswordRequest{Username: "ana", Token: resetToken(t, f.queue.last(t).Body), NewPassword: "otra1234"})
	assert.ErrorIs(t, err, utils.ErrResetTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, signup("ana", "ana@mail.com", "secret1"))
	require.NoError(t, err)
	auth, err := f.svc.Login(ctx, "ana", "secret1")
	require.NoError(t, err)
	claims, err := utils.ValidateToken(auth.Token)
	require.NoError(t, err)

	revoked, err := f.svc.IsTokenRevoked(ctx, claims.Id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, f.svc.Logout(ctx, claims))
	assert.True(t, f.redis.Exists(utils.AuthCachePrefix+claims.Id))

	revoked, err = f.svc.IsTokenRevoked(ctx, claims.Id)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Still revoked once the cache entry is gone.
	f.redis.FlushAll()
	revoked, err = f.svc.IsTokenRevoked(ctx, claims.Id)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, f.svc.Logout(ctx, &utils.Claims{}), utils.ErrInvalidToken)
}

func TestEditAndDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Signup(ctx, signup("ana", "ana@mail.com", "secret1"))
	require.NoError(t, err)
	_, err = f.svc.Signup(ctx, signup("beto", "beto@mail.com", "secret1"))
	require.NoError(t, err)

	name := "Ana María"
	blank := "  "
	link := "https://meet.test/ana"
	edited, err := f.svc.EditUser(ctx, a.ID, models.UserUpdateRequest{Name: &name, Lastname: &blank, VirtualLink: &link})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", edited.Name)
	assert.Equal(t, "Pérez", edited.Lastname)
	assert.Equal(t, link, edited.VirtualLink)

	taken := "beto"
	_, err = f.svc.EditUser(ctx, a.ID, models.UserUpdateRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	_, err = f.svc.EditUser(ctx, "missing", models.UserUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, f.svc.DeleteUser(ctx, a.ID))
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, a.ID), ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.EnsureAdmin(ctx, "", "", ""))
	require.NoError(t, f.svc.EnsureAdmin(ctx, "admin", "admin123", ""))
	require.NoError(t, f.svc.EnsureAdmin(ctx, "admin2", "admin123", ""))

	n, err := f.users.CountByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	auth, err := f.svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, auth.Role)
}
