// Package agent contains the AI quote-analysis pipeline: the prompt builder,
// the response parser that turns free-form LLM completions into a fully
// populated AnalysisResult, and the deterministic fallback estimator.
package agent

// QuoteContext carries the quote fields the agent needs for prompt building
// and for the deterministic time estimate fallback.
type QuoteContext struct {
	ProjectTitle          string
	ProjectDescription    string
	SiteAddress           string
	BuildingType          string
	BuildingSize          *float64
	NumberOfFloors        int
	NumberOfRooms         int
	WifiRequirements      bool
	CCTVRequirements      bool
	DoorEntryRequirements bool
	SpecialRequirements   string
}

// Product is a recommended product line in an analysis result.
type Product struct {
	Item       string  `json:"item"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	PartNumber string  `json:"part_number"`
	Notes      string  `json:"notes"`
}

// LabourLine is a single task in a labour breakdown.
type LabourLine struct {
	Task          string  `json:"task"`
	Hours         float64 `json:"hours"`
	Days          float64 `json:"days"`
	EngineerCount float64 `json:"engineer_count"`
	DayRate       float64 `json:"day_rate"`
	Cost          float64 `json:"cost"`
	Notes         string  `json:"notes"`
}

// LabourSummary is the aggregate labour section of a structured quotation.
type LabourSummary struct {
	Engineers float64 `json:"engineers"`
	Hours     float64 `json:"hours"`
	DayRate   float64 `json:"day_rate"`
	TotalCost float64 `json:"total_cost"`
	Notes     string  `json:"notes"`
}

// Quotation is the structured quotation section of an analysis result.
// All five sub-keys are always present after parsing.
type Quotation struct {
	ClientRequirement     string        `json:"client_requirement"`
	ScopeOfWorks          []string      `json:"scope_of_works"`
	Materials             []Product     `json:"materials"`
	Labour                LabourSummary `json:"labour"`
	AssumptionsExclusions []string      `json:"assumptions_exclusions"`
}

// AnalysisResult is the normalized output of an AI quote analysis. Every
// documented key is present after parsing; consumers never branch on key
// absence. Collections default to empty, never nil, so the JSON encoding
// always carries the full shape.
type AnalysisResult struct {
	Analysis            string           `json:"analysis"`
	Products            []Product        `json:"products"`
	Alternatives        []map[string]any `json:"alternatives"`
	EstimatedTime       float64          `json:"estimated_time"`
	LabourBreakdown     []LabourLine     `json:"labour_breakdown"`
	Clarifications      []string         `json:"clarifications"`
	Quotation           Quotation        `json:"quotation"`
	TravelDistanceMiles float64          `json:"travel_distance_miles"`
	TravelTimeMinutes   float64          `json:"travel_time_minutes"`
}
