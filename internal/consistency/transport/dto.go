package transport

// CategoryComparison compares one pricing category against its historical
// distribution.
type CategoryComparison struct {
	Current          float64 `json:"current"`
	HistoricalAvg    float64 `json:"historical_avg"`
	HistoricalMedian float64 `json:"historical_median"`
	VariancePercent  float64 `json:"variance_percent"`
}

// PricingComparison holds the per-category pricing comparisons.
type PricingComparison struct {
	Materials CategoryComparison `json:"materials"`
	Labor     CategoryComparison `json:"labor"`
	Total     CategoryComparison `json:"total"`
}

// LaborComparison compares the hourly labor rate against historical rates.
type LaborComparison struct {
	CurrentRate         float64 `json:"current_rate"`
	HistoricalAvg       float64 `json:"historical_avg"`
	HistoricalMedian    float64 `json:"historical_median"`
	RateVariancePercent float64 `json:"rate_variance_percent"`
}

// MaterialComparison compares material spend per square meter.
type MaterialComparison struct {
	CurrentPerSqm          float64 `json:"current_per_sqm"`
	HistoricalAvgPerSqm    float64 `json:"historical_avg_per_sqm"`
	HistoricalMedianPerSqm float64 `json:"historical_median_per_sqm"`
	VariancePercent        float64 `json:"variance_percent"`
}

// AnalysisResponse is the full consistency analysis for one quote. It is
// always well-formed: a quote with no comparable history gets zero counts,
// empty collections, and no flags rather than an error.
type AnalysisResponse struct {
	QuoteID            int64               `json:"quote_id"`
	SimilarQuotesCount int                 `json:"similar_quotes_count"`
	ConsistencyScore   float64             `json:"consistency_score"`
	Recommendations    []string            `json:"recommendations"`
	PricingComparison  *PricingComparison  `json:"pricing_comparison"`
	LaborComparison    *LaborComparison    `json:"labor_comparison"`
	MaterialComparison *MaterialComparison `json:"material_comparison"`
	Flags              []string            `json:"flags"`
	SkippedComparables int                 `json:"skipped_comparables"`
}

// PricingTemplate is a standard per-building-type pricing reference.
type PricingTemplate struct {
	MaterialsPerSqm  float64 `json:"materials_per_sqm"`
	LaborPerOutlet   float64 `json:"labor_per_outlet"`
	TestingPerOutlet float64 `json:"testing_per_outlet"`
	WifiPerAP        float64 `json:"wifi_per_ap"`
	Description      string  `json:"description"`
}

// ApplyTemplateRequest selects the template to apply to a quote.
type ApplyTemplateRequest struct {
	TemplateName string `json:"templateName" validate:"required"`
}

// TemplateResult is the reference costing produced by applying a standard
// template. It is never written back to the quote.
type TemplateResult struct {
	TemplateName        string  `json:"template_name"`
	TemplateDescription string  `json:"template_description"`
	MaterialsCost       float64 `json:"materials_cost"`
	LaborHours          float64 `json:"labor_hours"`
	LaborCost           float64 `json:"labor_cost"`
	TotalCost           float64 `json:"total_cost"`
	AppliedAt           string  `json:"applied_at"`
	Note                string  `json:"note"`
}

// ReportEntry summarizes one quote's consistency standing in the comparison
// report.
type ReportEntry struct {
	QuoteID            int64    `json:"quote_id"`
	QuoteNumber        string   `json:"quote_number"`
	ClientName         string   `json:"client_name"`
	ProjectTitle       string   `json:"project_title"`
	BuildingSize       *float64 `json:"building_size"`
	TotalCost          *float64 `json:"total_cost"`
	ConsistencyScore   float64  `json:"consistency_score"`
	SimilarQuotesCount int      `json:"similar_quotes_count"`
	Flags              []string `json:"flags"`
}

// ReportSummary aggregates the comparison report.
type ReportSummary struct {
	TotalQuotes         int     `json:"total_quotes"`
	AvgConsistencyScore float64 `json:"avg_consistency_score"`
	QuotesWithFlags     int     `json:"quotes_with_flags"`
}

// ComparisonReport is the recent-quotes consistency report.
type ComparisonReport struct {
	ReportData []ReportEntry `json:"report_data"`
	Summary    ReportSummary `json:"summary"`
}
