package user

import (
	"context"
	"strings"

	"consultorio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

func (s *DefaultUserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// EditUser applies the non-nil fields of req.
func (s *DefaultUserService) EditUser(ctx context.Context, id string, req models.UserUpdateRequest) (*models.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.Username, req.Username)
	set(&u.Name, req.Name)
	set(&u.Lastname, req.Lastname)
	set(&u.DNI, req.DNI)
	set(&u.Phone, req.Phone)
	if req.Email != nil && *req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.VirtualLink != nil {
		u.VirtualLink = *req.VirtualLink
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, notFound(err)
	}
	return u, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	return notFound(s.Repo.Delete(ctx, id))
}
