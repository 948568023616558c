package user

import (
	"context"
	"errors"
	"fmt"

	"consultorio/models"
	"consultorio/services/tasks"
	"consultorio/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUserNotFound
	}
	return err
}

// sendEmail queues an outbound email, or logs it when no queue is configured.
func (s *DefaultUserService) sendEmail(ctx context.Context, payload models.EmailPayload) error {
	if s.Queue == nil {
		utils.GetLogger().Info("email queue disabled, dropping email", zap.String("to", payload.To), zap.String("subject", payload.Subject))
		return nil
	}
	task, opts, err := tasks.NewEmailTask(payload)
	if err != nil {
		return err
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}
