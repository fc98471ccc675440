package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"friendshavestuff-backend/internal/config"
	"friendshavestuff-backend/internal/shared"
	"friendshavestuff-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerPendingReminderJob()
}

// Daily at 9 AM UTC, when owners are most likely to act on the nudge.
func (s *Scheduler) registerPendingReminderJob() error {
	payload, err := json.Marshal(shared.PendingReminderSweepPayload{
		OlderThanHours: s.jobConfig.PendingReminderAfterHours,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePendingReminderSweep, payload)

	_, err = s.scheduler.Register(
		"0 9 * * *",
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PendingReminderSweep job", err)
		return err
	}

	logger.Info("Registered PendingReminderSweep: daily at 9 AM UTC", map[string]interface{}{
		"olderThanHours": s.jobConfig.PendingReminderAfterHours,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
