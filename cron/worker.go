package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"consultorio/config"
	"consultorio/models"
	"consultorio/services/notification"
	"consultorio/services/reservation"
	"consultorio/services/tasks"
	"consultorio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReservationGetter and UserGetter are the lookups reminders need.
type ReservationGetter interface {
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
}

type UserGetter interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// WorkerDeps wires the task handlers.
type WorkerDeps struct {
	Reservations ReservationGetter
	Users        UserGetter
	Mailer       notification.Mailer
}

// RedisOpt points asynq at the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the client services enqueue tasks with.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(RedisOpt())
}

// NewMux registers every task handler.
func NewMux(deps WorkerDeps) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(deps))
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask(deps.Mailer))
	return mux
}

// InitWorker runs the async worker in background and returns the server for shutdown.
func InitWorker(deps WorkerDeps) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewMux(deps)

	go func() {
		log.Println("[Worker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
			if attempts == maxAttempts {
				log.Fatal("[Worker] max retry attempts reached, exiting")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleReminderTask(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}
		logger := utils.GetLogger().With(zap.String("reservationId", p.ReservationID), zap.String("slot", p.Slot))

		res, err := deps.Reservations.GetReservation(ctx, p.ReservationID)
		if errors.Is(err, reservation.ErrNotFound) {
			logger.Info("reminder skipped, reservation gone")
			return nil
		}
		if err != nil {
			return err
		}
		if res.Status != models.ReservationActive {
			logger.Info("reminder skipped, reservation cancelled")
			return nil
		}

		if res.UserID == "" {
			// Guests leave only a phone number; there is no SMS channel.
			logger.Info("guest reminder due", zap.String("guest", res.GuestName), zap.String("phone", res.GuestPhone))
			return nil
		}

		u, err := deps.Users.GetUser(ctx, res.UserID)
		if err != nil {
			return err
		}
		body := fmt.Sprintf("Hola %s,\n\nTe recordamos tu turno del %s a las %s.", u.Name, res.Date, res.Hour)
		if u.VirtualLink != "" {
			body += "\nEnlace de la sesión: " + u.VirtualLink
		}
		return deps.Mailer.Send(ctx, models.EmailPayload{
			To:      u.Email,
			ToName:  u.Name + " " + u.Lastname,
			Subject: "Recordatorio de turno",
			Body:    body,
		})
	}
}

func handleEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid email payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.To == "" {
			return fmt.Errorf("email without recipient: %w", asynq.SkipRetry)
		}
		return mailer.Send(ctx, p)
	}
}
