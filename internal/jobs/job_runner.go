package jobs

import (
	"database/sql"

	"agrirent-backend/internal/config"
	"agrirent-backend/internal/logger"
)

// JobRunner coordinates the scheduled audit jobs. Bookings only move
// through owner and renter actions, so every job here is read-only: drift
// is reported, never repaired automatically.
type JobRunner struct {
	db     *sql.DB
	config *config.Config
}

func NewJobRunner(db *sql.DB, cfg *config.Config) *JobRunner {
	return &JobRunner{db: db, config: cfg}
}

// Config returns the loaded application configuration.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
