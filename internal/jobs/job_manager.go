package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reportJob *ProcessedOrdersReportJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	lister ProcessedOrdersLister,
	reportSchedule string,
	reportWindow int,
	logger *slog.Logger,
) (*JobManager, error) {
	reportJob, err := NewProcessedOrdersReportJob(lister, reportSchedule, reportWindow, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create processed orders report job: %w", err)
	}
	return &JobManager{reportJob: reportJob}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reportJob.Start(); err != nil {
		return fmt.Errorf("failed to start processed orders report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reportJob.Stop()
}

func (jm *JobManager) ReportJob() *ProcessedOrdersReportJob {
	return jm.reportJob
}
