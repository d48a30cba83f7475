package scheduler

import (
	"context"
	"time"

	"cablecrm_backend/platform/logger"
)

const defaultReportInterval = 24 * time.Hour

// ReportDispatcher periodically enqueues the consistency comparison report.
type ReportDispatcher struct {
	client   *Client
	log      *logger.Logger
	interval time.Duration
}

func NewReportDispatcher(client *Client, log *logger.Logger, interval time.Duration) *ReportDispatcher {
	if interval <= 0 {
		interval = defaultReportInterval
	}
	return &ReportDispatcher{
		client:   client,
		log:      log,
		interval: interval,
	}
}

func (d *ReportDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.client.EnqueueConsistencyReport(ctx); err != nil {
				d.log.JobEvent(TaskConsistencyReport, "enqueue_failed", err)
				continue
			}
			d.log.JobEvent(TaskConsistencyReport, "enqueued", nil)
		}
	}
}
