package transport

import "time"

// QuoteStatus defines the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateQuoteRequest is the request body for creating a new quote
type CreateQuoteRequest struct {
	ClientName            string   `json:"clientName" validate:"required,min=1,max=100"`
	ClientEmail           *string  `json:"clientEmail" validate:"omitempty,email,max=120"`
	ClientPhone           *string  `json:"clientPhone" validate:"omitempty,max=20"`
	ProjectTitle          string   `json:"projectTitle" validate:"required,min=1,max=200"`
	ProjectDescription    *string  `json:"projectDescription"`
	SiteAddress           string   `json:"siteAddress" validate:"required"`
	BuildingType          *string  `json:"buildingType" validate:"omitempty,max=100"`
	BuildingSize          *float64 `json:"buildingSize" validate:"omitempty,gt=0"`
	NumberOfFloors        int      `json:"numberOfFloors" validate:"omitempty,min=1"`
	NumberOfRooms         int      `json:"numberOfRooms" validate:"omitempty,min=1"`
	CablingType           *string  `json:"cablingType" validate:"omitempty,oneof=cat5e cat6 cat6a fiber"`
	WifiRequirements      bool     `json:"wifiRequirements"`
	CCTVRequirements      bool     `json:"cctvRequirements"`
	DoorEntryRequirements bool     `json:"doorEntryRequirements"`
	SpecialRequirements   *string  `json:"specialRequirements"`
	CustomerID            *int64   `json:"customerId"`
}

// UpdateQuoteRequest is the request body for updating a quote
type UpdateQuoteRequest struct {
	ClientName            *string  `json:"clientName" validate:"omitempty,min=1,max=100"`
	ClientEmail           *string  `json:"clientEmail" validate:"omitempty,email,max=120"`
	ClientPhone           *string  `json:"clientPhone" validate:"omitempty,max=20"`
	ProjectTitle          *string  `json:"projectTitle" validate:"omitempty,min=1,max=200"`
	ProjectDescription    *string  `json:"projectDescription"`
	SiteAddress           *string  `json:"siteAddress" validate:"omitempty,min=1"`
	BuildingType          *string  `json:"buildingType" validate:"omitempty,max=100"`
	BuildingSize          *float64 `json:"buildingSize" validate:"omitempty,gt=0"`
	NumberOfFloors        *int     `json:"numberOfFloors" validate:"omitempty,min=1"`
	NumberOfRooms         *int     `json:"numberOfRooms" validate:"omitempty,min=1"`
	CablingType           *string  `json:"cablingType" validate:"omitempty,oneof=cat5e cat6 cat6a fiber"`
	WifiRequirements      *bool    `json:"wifiRequirements"`
	CCTVRequirements      *bool    `json:"cctvRequirements"`
	DoorEntryRequirements *bool    `json:"doorEntryRequirements"`
	SpecialRequirements   *string  `json:"specialRequirements"`
	CustomerID            *int64   `json:"customerId"`
}

// UpdateQuoteStatusRequest is the request body for updating a quote's status
type UpdateQuoteStatusRequest struct {
	Status QuoteStatus `json:"status" validate:"required,oneof=draft sent accepted declined"`
}

// IngestAnalysisRequest carries a raw model completion for a quote. The
// completion text is parsed and normalized server-side; it is never rejected
// for being malformed.
type IngestAnalysisRequest struct {
	RawResponse string `json:"rawResponse" validate:"required"`
	// Async routes the parse through the background worker instead of the
	// request path.
	Async bool `json:"async"`
}

// ClarificationAnswerPayload pairs a previously asked question with the
// client's answer.
type ClarificationAnswerPayload struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

// BuildPromptRequest configures prompt generation for a quote. The completion
// call runs outside this system; its raw response comes back through the
// analysis ingestion endpoint.
type BuildPromptRequest struct {
	// QuestionsOnly restricts the model to returning clarification questions.
	QuestionsOnly        bool                         `json:"questionsOnly"`
	ClarificationAnswers []ClarificationAnswerPayload `json:"clarificationAnswers" validate:"omitempty,dive"`
}

// ListQuotesRequest defines the query parameters for listing quotes
type ListQuotesRequest struct {
	Status     string `form:"status" validate:"omitempty,oneof=draft sent accepted declined"`
	CustomerID string `form:"customerId"`
	Search     string `form:"search"`
	SortBy     string `form:"sortBy" validate:"omitempty,oneof=quoteNumber status clientName createdAt updatedAt"`
	SortOrder  string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// QuoteResponse is the full representation of a quote
type QuoteResponse struct {
	ID                    int64    `json:"id"`
	QuoteNumber           string   `json:"quoteNumber"`
	ClientName            string   `json:"clientName"`
	ClientEmail           *string  `json:"clientEmail"`
	ClientPhone           *string  `json:"clientPhone"`
	ProjectTitle          string   `json:"projectTitle"`
	ProjectDescription    *string  `json:"projectDescription"`
	SiteAddress           string   `json:"siteAddress"`
	BuildingType          *string  `json:"buildingType"`
	BuildingSize          *float64 `json:"buildingSize"`
	NumberOfFloors        int      `json:"numberOfFloors"`
	NumberOfRooms         int      `json:"numberOfRooms"`
	CablingType           *string  `json:"cablingType"`
	WifiRequirements      bool     `json:"wifiRequirements"`
	CCTVRequirements      bool     `json:"cctvRequirements"`
	DoorEntryRequirements bool     `json:"doorEntryRequirements"`
	SpecialRequirements   *string  `json:"specialRequirements"`

	// AI write-back columns: JSON payloads stored as text, returned verbatim.
	AIAnalysis           *string  `json:"aiAnalysis"`
	RecommendedProducts  *string  `json:"recommendedProducts"`
	EstimatedTime        *int     `json:"estimatedTime"`
	EstimatedCost        *float64 `json:"estimatedCost"`
	AlternativeSolutions *string  `json:"alternativeSolutions"`
	ClarificationsLog    *string  `json:"clarificationsLog"`
	QuoteData            *string  `json:"quoteData"`
	LabourBreakdown      *string  `json:"labourBreakdown"`
	QuotationDetails     *string  `json:"quotationDetails"`

	Status     string    `json:"status"`
	CustomerID *int64    `json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// QuoteListResponse is the paginated list response
type QuoteListResponse struct {
	Items      []QuoteResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// PromptResponse carries the rendered prompts for an analysis call.
type PromptResponse struct {
	QuoteID      int64  `json:"quoteId"`
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
}

// AnalysisIngestedResponse reports the outcome of an analysis ingestion.
type AnalysisIngestedResponse struct {
	QuoteID       int64   `json:"quoteId"`
	EstimatedTime float64 `json:"estimatedTime"`
	ProductCount  int     `json:"productCount"`
	// Queued is true when the parse was handed to the background worker.
	Queued bool `json:"queued"`
}
