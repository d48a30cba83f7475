package service

import "encoding/json"

// QuotePricing is the normalized view of a quote's quote_data blob.
type QuotePricing struct {
	TotalMaterials float64          `json:"total_materials"`
	TotalLabor     float64          `json:"total_labor"`
	TotalCost      float64          `json:"total_cost"`
	Materials      []map[string]any `json:"materials"`
	Labor          []map[string]any `json:"labor"`
}

// ExtractQuotePricing normalizes the stored quote_data text. Absent or
// malformed blobs yield nil — the caller counts these as skipped comparables
// rather than failing the analysis.
func ExtractQuotePricing(quoteData *string) *QuotePricing {
	if quoteData == nil || *quoteData == "" {
		return nil
	}

	var pricing QuotePricing
	if err := json.Unmarshal([]byte(*quoteData), &pricing); err != nil {
		return nil
	}

	if pricing.Materials == nil {
		pricing.Materials = []map[string]any{}
	}
	if pricing.Labor == nil {
		pricing.Labor = []map[string]any{}
	}
	return &pricing
}

// extractLabourDayRate returns the first positive day_rate in a
// labour_breakdown blob, or 0 when none is present or the blob is malformed.
// Entries are decoded loosely so one mistyped field does not void the blob.
func extractLabourDayRate(labourBreakdown *string) float64 {
	if labourBreakdown == nil || *labourBreakdown == "" {
		return 0
	}

	var lines []map[string]any
	if err := json.Unmarshal([]byte(*labourBreakdown), &lines); err != nil {
		return 0
	}

	for _, line := range lines {
		if rate, ok := line["day_rate"].(float64); ok && rate > 0 {
			return rate
		}
	}
	return 0
}
