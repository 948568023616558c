package tasks

import (
	"context"
	"encoding/json"
	"time"

	"consultorio/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	TypeSendEmail    = "email:send"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewReminderTask schedules a reservation reminder at fireAt. The task id is
// derived from the reservation so a retried booking never enqueues twice.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.ReservationID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

func NewEmailTask(payload models.EmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeSendEmail, b), []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}, nil
}
