package cron

import (
	"context"
	"time"

	"consultorio/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger is implemented by the availability service.
type Purger interface {
	PurgePastBlocks(ctx context.Context) (int64, error)
}

// TokenPurger is implemented by the blocked token repository.
type TokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// StartMaintenance schedules the nightly cleanup jobs in loc. Stop the returned
// scheduler on shutdown.
func StartMaintenance(loc *time.Location, blocks Purger, tokens TokenPurger) (*robfig.Cron, error) {
	c := robfig.New(robfig.WithLocation(loc))
	_, err := c.AddFunc("15 3 * * *", func() { runPurge(blocks, tokens) })
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func runPurge(blocks Purger, tokens TokenPurger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	logger := utils.GetLogger()

	if n, err := blocks.PurgePastBlocks(ctx); err != nil {
		logger.Error("purge of past blocked hours failed", zap.Error(err))
	} else {
		logger.Info("past blocked hours purged", zap.Int64("deleted", n))
	}

	if n, err := tokens.PurgeExpired(ctx, time.Now()); err != nil {
		logger.Error("purge of expired tokens failed", zap.Error(err))
	} else {
		logger.Info("expired tokens purged", zap.Int64("deleted", n))
	}
}
