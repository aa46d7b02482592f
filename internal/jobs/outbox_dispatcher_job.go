package jobs

import (
	"context"

	"sales/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OutboxDispatcherJob manages the scheduled delivery of pending announcements.
// Runs every second so messages whose immediate publish failed reach the
// broker shortly after the broker comes back.
type OutboxDispatcherJob struct {
	handler   commands.DispatchOutboxCommandHandler
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewOutboxDispatcherJob creates a new job for dispatching outbox messages.
// Uses DispatchOutboxCommandHandler to sweep the outbox every second.
func NewOutboxDispatcherJob(
	handler commands.DispatchOutboxCommandHandler,
	batchSize int,
	logger *zap.Logger,
) *OutboxDispatcherJob {
	return &OutboxDispatcherJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", "outbox_dispatcher_job")),
	}
}

// Start begins the outbox dispatcher job to run every second.
func (j *OutboxDispatcherJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchOutboxCommand(j.batchSize)
		if err != nil {
			j.logger.Error("outbox dispatch sweep misconfigured", zap.Error(err))
			return
		}

		delivered, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("outbox dispatch sweep failed", zap.Error(err))
			return
		}

		if delivered > 0 {
			j.logger.Info("dispatched pending announcements", zap.Int("delivered", delivered))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox dispatcher job started (running every second)")
	return nil
}

// Stop stops the outbox dispatcher job.
func (j *OutboxDispatcherJob) Stop() {
	j.cron.Stop()
	j.logger.Info("outbox dispatcher job stopped")
}
