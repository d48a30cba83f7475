package events

// Quote lifecycle event names.
const (
	EventQuoteCreated           = "quote.created"
	EventQuoteStatusChanged     = "quote.status_changed"
	EventQuoteAnalysisStored    = "quote.analysis_stored"
	EventQuoteAnalysisRequested = "quote.analysis_requested"
)

// QuoteCreated is published when a new quote row is inserted.
type QuoteCreated struct {
	BaseEvent
	QuoteID     int64  `json:"quoteId"`
	QuoteNumber string `json:"quoteNumber"`
}

// EventName returns the event identifier.
func (QuoteCreated) EventName() string { return EventQuoteCreated }

// QuoteStatusChanged is published when a quote transitions between statuses.
type QuoteStatusChanged struct {
	BaseEvent
	QuoteID   int64  `json:"quoteId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// EventName returns the event identifier.
func (QuoteStatusChanged) EventName() string { return EventQuoteStatusChanged }

// QuoteAnalysisStored is published after a parsed AI analysis has been
// persisted onto a quote.
type QuoteAnalysisStored struct {
	BaseEvent
	QuoteID       int64   `json:"quoteId"`
	EstimatedTime float64 `json:"estimatedTime"`
	ProductCount  int     `json:"productCount"`
}

// EventName returns the event identifier.
func (QuoteAnalysisStored) EventName() string { return EventQuoteAnalysisStored }

// QuoteAnalysisRequested is published when a caller asks for an asynchronous
// parse-and-persist of a raw completion. The scheduler client subscribes and
// enqueues the background task.
type QuoteAnalysisRequested struct {
	BaseEvent
	QuoteID     int64  `json:"quoteId"`
	RawResponse string `json:"rawResponse"`
}

// EventName returns the event identifier.
func (QuoteAnalysisRequested) EventName() string { return EventQuoteAnalysisRequested }
