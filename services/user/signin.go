package user

import (
	"context"
	"fmt"
	"time"

	"consultorio/models"
	"consultorio/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) ttl() time.Duration {
	if s.TokenTTL <= 0 {
		return 12 * time.Hour
	}
	return s.TokenTTL
}

// Login checks the password and issues an access token carrying the role.
func (s *DefaultUserService) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	token, _, err := utils.GenerateToken(u.ID, string(u.Role), s.ttl())
	if err != nil {
		utils.GetLogger().Error("Login: failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	utils.GetLogger().Info("user logged in", zap.String("userId", u.ID), zap.String("role", string(u.Role)))
	return &models.AuthResponse{
		Token:   token,
		Role:    u.Role,
		UserID:  u.ID,
		Message: "login successful",
	}, nil
}

// Logout revokes the token until its natural expiry.
func (s *DefaultUserService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.Id == "" {
		return utils.ErrInvalidToken
	}
	exp := claims.Expiry()
	if err := s.Tokens.Block(ctx, claims.Id, exp); err != nil {
		return err
	}
	if s.AuthCache != nil {
		if err := utils.CacheRevokedToken(ctx, s.AuthCache, claims.Id, exp); err != nil {
			utils.GetLogger().Warn("Logout: failed to cache revoked token", zap.Error(err))
		}
	}
	return nil
}

// IsTokenRevoked consults the Redis blocklist first and falls back to Mongo.
func (s *DefaultUserService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if s.AuthCache != nil {
		revoked, err := utils.IsRevokedCached(ctx, s.AuthCache, jti)
		if err == nil && revoked {
			return true, nil
		}
		if err != nil {
			utils.GetLogger().Warn("revocation cache lookup failed", zap.Error(err))
		}
	}
	return s.Tokens.IsBlocked(ctx, jti)
}
