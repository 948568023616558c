package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"consultorio/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepo implements userRepo.UserRepository with unique id, username and email.
type UserRepo struct {
	mu    sync.Mutex
	users []models.User
}

func (r *UserRepo) clashes(u *models.User) bool {
	for _, e := range r.users {
		if e.ID != u.ID && (e.Username == u.Username || e.Email == u.Email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if r.clashes(u) {
		return duplicateKey
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, *u)
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID != u.ID {
			continue
		}
		if r.clashes(u) {
			return duplicateKey
		}
		u.UpdatedAt = time.Now()
		r.users[i] = *u
		return nil
	}
	return mongo.ErrNoDocuments
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i:i], r.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *UserRepo) find(match func(models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]models.User{}, r.users...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Lastname != out[j].Lastname {
			return out[i].Lastname < out[j].Lastname
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ConsultationRepo implements consultationRepo.ConsultationRepository, newest first.
type ConsultationRepo struct {
	mu   sync.Mutex
	list []models.Consultation
}

func (r *ConsultationRepo) Create(ctx context.Context, c *models.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	r.list = append(r.list, *c)
	return nil
}

func (r *ConsultationRepo) GetByID(ctx context.Context, id string) (*models.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.list {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *ConsultationRepo) List(ctx context.Context, deleted bool) ([]models.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Consultation{}
	for i := len(r.list) - 1; i >= 0; i-- {
		if r.list[i].IsDeleted == deleted {
			out = append(out, r.list[i])
		}
	}
	return out, nil
}

func (r *ConsultationRepo) SetFlag(ctx context.Context, id, field string, value bool) (*models.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.list {
		if r.list[i].ID != id {
			continue
		}
		switch field {
		case "is_read":
			r.list[i].IsRead = value
		case "is_deleted":
			r.list[i].IsDeleted = value
		}
		c := r.list[i]
		return &c, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *ConsultationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.list {
		if c.ID == id {
			r.list = append(r.list[:i:i], r.list[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// BlockedTokenRepo implements tokenRepo.BlockedTokenRepository.
type BlockedTokenRepo struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func (r *BlockedTokenRepo) Block(ctx context.Context, jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.expires == nil {
		r.expires = make(map[string]time.Time)
	}
	if _, ok := r.expires[jti]; !ok {
		r.expires[jti] = expiresAt
	}
	return nil
}

func (r *BlockedTokenRepo) IsBlocked(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.expires[jti]
	return ok, nil
}

func (r *BlockedTokenRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for jti, exp := range r.expires {
		if exp.Before(now) {
			delete(r.expires, jti)
			n++
		}
	}
	return n, nil
}
