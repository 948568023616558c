package user

import (
	"context"
	"time"

	tokenRepo "consultorio/database/repository/token"
	userRepo "consultorio/database/repository/user"
	"consultorio/models"
	"consultorio/services/tasks"
	"consultorio/utils"

	"github.com/go-redis/redis/v8"
)

type UserService interface {
	// Authentication
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, claims *utils.Claims) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// User management
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	EditUser(ctx context.Context, id string, req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Passwords
	ResetPassword(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// Bootstrap
	EnsureAdmin(ctx context.Context, username, password, email string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo        userRepo.UserRepository
	Tokens      tokenRepo.BlockedTokenRepository
	AuthCache   *redis.Client
	Queue       tasks.Enqueuer
	TokenTTL    time.Duration
	FrontendURL string
}
