package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskQuoteAnalysis = "quotes.analysis"

const TaskConsistencyReport = "consistency.comparison_report"

// QuoteAnalysisPayload carries a raw model completion queued for background
// parsing.
type QuoteAnalysisPayload struct {
	QuoteID     int64  `json:"quoteId"`
	RawResponse string `json:"rawResponse"`
}

// ConsistencyReportPayload marks when a periodic comparison report run was
// requested.
type ConsistencyReportPayload struct {
	RequestedAt time.Time `json:"requestedAt"`
}

func NewQuoteAnalysisTask(payload QuoteAnalysisPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteAnalysis, data), nil
}

func ParseQuoteAnalysisPayload(task *asynq.Task) (QuoteAnalysisPayload, error) {
	var payload QuoteAnalysisPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteAnalysisPayload{}, err
	}
	return payload, nil
}

func NewConsistencyReportTask(payload ConsistencyReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskConsistencyReport, data), nil
}

func ParseConsistencyReportPayload(task *asynq.Task) (ConsistencyReportPayload, error) {
	var payload ConsistencyReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ConsistencyReportPayload{}, err
	}
	return payload, nil
}
