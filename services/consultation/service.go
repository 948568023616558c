package consultation

import (
	"context"
	"errors"
	"strings"

	consultationRepo "consultorio/database/repository/consultation"
	"consultorio/models"
	"consultorio/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("consultation not found")
	ErrMissingFields = errors.New("name, lastname, phone and consultation are required")
)

type ConsultationService interface {
	SendMessage(ctx context.Context, req models.MessageRequest) (*models.Consultation, error)
	List(ctx context.Context) ([]models.Consultation, error)
	ListDeleted(ctx context.Context) ([]models.Consultation, error)
	Get(ctx context.Context, id string) (*models.Consultation, error)
	MarkRead(ctx context.Context, id string) (*models.Consultation, error)
	MarkUnread(ctx context.Context, id string) (*models.Consultation, error)
	SoftDelete(ctx context.Context, id string) (*models.Consultation, error)
	Restore(ctx context.Context, id string) (*models.Consultation, error)
	HardDelete(ctx context.Context, id string) error
}

type DefaultConsultationService struct {
	Repo consultationRepo.ConsultationRepository
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultConsultationService) SendMessage(ctx context.Context, req models.MessageRequest) (*models.Consultation, error) {
	c := &models.Consultation{
		Name:         strings.TrimSpace(req.Name),
		Lastname:     strings.TrimSpace(req.Lastname),
		Age:          req.Age,
		Phone:        strings.TrimSpace(req.Phone),
		Consultation: strings.TrimSpace(req.Consultation),
		ArrivalDate:  req.ArrivalDate,
	}
	if c.Name == "" || c.Lastname == "" || c.Phone == "" || c.Consultation == "" {
		return nil, ErrMissingFields
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("consultation received", zap.String("id", c.ID))
	return c, nil
}

func (s *DefaultConsultationService) List(ctx context.Context) ([]models.Consultation, error) {
	return s.Repo.List(ctx, false)
}

func (s *DefaultConsultationService) ListDeleted(ctx context.Context) ([]models.Consultation, error) {
	return s.Repo.List(ctx, true)
}

func (s *DefaultConsultationService) Get(ctx context.Context, id string) (*models.Consultation, error) {
	c, err := s.Repo.GetByID(ctx, id)
	return c, mapErr(err)
}

func (s *DefaultConsultationService) setFlag(ctx context.Context, id, field string, v bool) (*models.Consultation, error) {
	c, err := s.Repo.SetFlag(ctx, id, field, v)
	return c, mapErr(err)
}

func (s *DefaultConsultationService) MarkRead(ctx context.Context, id string) (*models.Consultation, error) {
	return s.setFlag(ctx, id, "is_read", true)
}

func (s *DefaultConsultationService) MarkUnread(ctx context.Context, id string) (*models.Consultation, error) {
	return s.setFlag(ctx, id, "is_read", false)
}

func (s *DefaultConsultationService) SoftDelete(ctx context.Context, id string) (*models.Consultation, error) {
	return s.setFlag(ctx, id, "is_deleted", true)
}

func (s *DefaultConsultationService) Restore(ctx context.Context, id string) (*models.Consultation, error) {
	return s.setFlag(ctx, id, "is_deleted", false)
}

func (s *DefaultConsultationService) HardDelete(ctx context.Context, id string) error {
	return mapErr(s.Repo.Delete(ctx, id))
}
