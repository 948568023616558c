package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"consultorio/models"
	"consultorio/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Signup registers an account. Without a password the patient gets a random
// one and a reset email so they pick their own.
func (s *DefaultUserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Name == "" || req.Lastname == "" || req.DNI == "" || req.Phone == "" || req.Email == "" {
		return nil, ErrMissingFields
	}

	password := req.Password
	generated := password == ""
	if generated {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		password = hex.EncodeToString(buf)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role != models.RoleAdmin {
		role = models.RolePatient
	}
	u := &models.User{
		ID:           uuid.New().String(),
		Role:         role,
		Username:     req.Username,
		Name:         req.Name,
		Lastname:     req.Lastname,
		DNI:          req.DNI,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		VirtualLink:  req.VirtualLink,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	utils.GetLogger().Info("user registered", zap.String("userId", u.ID), zap.String("role", string(u.Role)))

	if generated {
		if err := s.ResetPassword(ctx, u.Email); err != nil {
			utils.GetLogger().Warn("Signup: failed to send welcome reset email", zap.Error(err))
		}
	}
	return u, nil
}
