package user

import (
	"context"

	"consultorio/models"
	"consultorio/utils"

	"go.uber.org/zap"
)

// EnsureAdmin creates the bootstrap admin when no admin exists yet.
func (s *DefaultUserService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	n, err := s.Repo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if email == "" {
		email = username + "@consultorio.local"
	}
	_, err = s.Signup(ctx, models.SignupRequest{
		Username: username,
		Name:     "Admin",
		Lastname: "Consultorio",
		DNI:      "0",
		Email:    email,
		Phone:    "-",
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	utils.GetLogger().Info("bootstrap admin created", zap.String("username", username))
	return nil
}
