package scheduler

import (
	"context"
	"fmt"

	"cablecrm_backend/platform/config"
	"cablecrm_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// AnalysisProcessor parses and persists a raw completion for a quote.
// Implemented by the quotes service.
type AnalysisProcessor interface {
	ProcessAnalysis(ctx context.Context, quoteID int64, rawResponse string) error
}

// ReportRunner produces the periodic consistency comparison report.
// Implemented by the consistency service.
type ReportRunner interface {
	RunComparisonReport(ctx context.Context) error
}

// Worker consumes background tasks from the asynq queue.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	analysis AnalysisProcessor
	reports  ReportRunner
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		log:    log,
	}

	mux.HandleFunc(TaskQuoteAnalysis, w.handleQuoteAnalysis)
	mux.HandleFunc(TaskConsistencyReport, w.handleConsistencyReport)

	return w, nil
}

// SetAnalysisProcessor injects the quote analysis processor.
func (w *Worker) SetAnalysisProcessor(processor AnalysisProcessor) {
	w.analysis = processor
}

// SetReportRunner injects the comparison report runner.
func (w *Worker) SetReportRunner(runner ReportRunner) {
	w.reports = runner
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleQuoteAnalysis(ctx context.Context, task *asynq.Task) error {
	if w.analysis == nil {
		return nil
	}

	payload, err := ParseQuoteAnalysisPayload(task)
	if err != nil {
		return err
	}

	if err := w.analysis.ProcessAnalysis(ctx, payload.QuoteID, payload.RawResponse); err != nil {
		w.log.JobEvent(TaskQuoteAnalysis, "failed", err)
		return err
	}
	w.log.JobEvent(TaskQuoteAnalysis, "completed", nil)
	return nil
}

func (w *Worker) handleConsistencyReport(ctx context.Context, task *asynq.Task) error {
	if w.reports == nil {
		return nil
	}

	if _, err := ParseConsistencyReportPayload(task); err != nil {
		return err
	}

	if err := w.reports.RunComparisonReport(ctx); err != nil {
		w.log.JobEvent(TaskConsistencyReport, "failed", err)
		return err
	}
	w.log.JobEvent(TaskConsistencyReport, "completed", nil)
	return nil
}
