package agent

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// jsonSpanRegex greedily captures the outermost {...} span in a completion
// that mixes prose with a JSON payload.
var jsonSpanRegex = regexp.MustCompile(`(?s)\{.*\}`)

// ParseAnalysisResponse turns a raw LLM completion into a fully populated
// AnalysisResult. It is total: any string input, including prose with no
// recoverable JSON, yields a well-formed result. In the degenerate case the
// original text is preserved verbatim in the Analysis field.
func ParseAnalysisResponse(raw string, quote QuoteContext) AnalysisResult {
	data := extractCandidate(raw)
	if data == nil {
		return fallbackResult(raw, quote)
	}
	return resultFromMap(applyDefaults(data, quote))
}

// ParseAnalysisObject normalizes an already-decoded completion payload.
func ParseAnalysisObject(data map[string]any, quote QuoteContext) AnalysisResult {
	if data == nil {
		return fallbackResult("", quote)
	}
	return resultFromMap(applyDefaults(data, quote))
}

// extractCandidate attempts to recover a JSON object from the completion.
// A balanced single object is parsed directly; otherwise the first {...}
// span is tried. Returns nil when nothing parseable is found.
func extractCandidate(raw string) map[string]any {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return nil
	}

	if strings.HasPrefix(stripped, "{") && strings.Count(stripped, "{") == strings.Count(stripped, "}") {
		var data map[string]any
		if err := json.Unmarshal([]byte(stripped), &data); err == nil {
			return data
		}
		return nil
	}

	span := jsonSpanRegex.FindString(stripped)
	if span == "" {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(span), &data); err != nil {
		return nil
	}
	return data
}

// applyDefaults repairs a candidate payload in place: key aliases are
// normalized, every documented top-level key is defaulted, and the quotation
// sub-keys are defaulted individually. Running it twice is a no-op.
func applyDefaults(data map[string]any, quote QuoteContext) map[string]any {
	if _, ok := data["estimated_time"]; !ok {
		if hours, ok := data["estimated_hours"]; ok {
			data["estimated_time"] = hours
		}
	}
	delete(data, "estimated_hours")

	setDefault(data, "analysis", "")
	setDefault(data, "products", []any{})
	setDefault(data, "alternatives", []any{})
	setDefault(data, "clarifications", []any{})
	setDefault(data, "labour_breakdown", []any{})
	setDefault(data, "quotation", map[string]any{})
	setDefault(data, "travel_distance_miles", float64(0))
	setDefault(data, "travel_time_minutes", float64(0))

	if asFloat(data["estimated_time"]) == 0 {
		data["estimated_time"] = float64(EstimateBasicHours(quote))
	}

	if quotation, ok := data["quotation"].(map[string]any); ok {
		setDefault(quotation, "client_requirement", "")
		setDefault(quotation, "scope_of_works", []any{})
		setDefault(quotation, "materials", []any{})
		setDefault(quotation, "labour", map[string]any{})
		setDefault(quotation, "assumptions_exclusions", []any{})
	}

	return data
}

func setDefault(data map[string]any, key string, value any) {
	if _, ok := data[key]; !ok {
		data[key] = value
	}
}

// fallbackResult is the degenerate result used when no JSON can be recovered:
// the raw text survives in Analysis and every structured field is empty.
func fallbackResult(raw string, quote QuoteContext) AnalysisResult {
	return AnalysisResult{
		Analysis:        raw,
		Products:        []Product{},
		Alternatives:    []map[string]any{},
		EstimatedTime:   float64(EstimateBasicHours(quote)),
		LabourBreakdown: []LabourLine{},
		Clarifications:  []string{},
		Quotation:       emptyQuotation(),
	}
}

func emptyQuotation() Quotation {
	return Quotation{
		ScopeOfWorks:          []string{},
		Materials:             []Product{},
		AssumptionsExclusions: []string{},
	}
}

// resultFromMap decodes a defaulted candidate into the typed result. Every
// coercion is defensive: mistyped values degrade to zero values rather than
// failing the parse.
func resultFromMap(data map[string]any) AnalysisResult {
	result := AnalysisResult{
		Analysis:            asString(data["analysis"]),
		Products:            productsFromValue(data["products"]),
		Alternatives:        mapSliceFromValue(data["alternatives"]),
		EstimatedTime:       asFloat(data["estimated_time"]),
		LabourBreakdown:     labourLinesFromValue(data["labour_breakdown"]),
		Clarifications:      stringSliceFromValue(data["clarifications"]),
		Quotation:           quotationFromValue(data["quotation"]),
		TravelDistanceMiles: asFloat(data["travel_distance_miles"]),
		TravelTimeMinutes:   asFloat(data["travel_time_minutes"]),
	}
	return result
}

func quotationFromValue(value any) Quotation {
	quotation := emptyQuotation()
	data, ok := value.(map[string]any)
	if !ok {
		return quotation
	}

	quotation.ClientRequirement = asString(data["client_requirement"])
	quotation.ScopeOfWorks = stringSliceFromValue(data["scope_of_works"])
	quotation.Materials = productsFromValue(data["materials"])
	quotation.AssumptionsExclusions = stringSliceFromValue(data["assumptions_exclusions"])

	if labour, ok := data["labour"].(map[string]any); ok {
		quotation.Labour = LabourSummary{
			Engineers: asFloat(labour["engineers"]),
			Hours:     asFloat(labour["hours"]),
			DayRate:   asFloat(labour["day_rate"]),
			TotalCost: asFloat(labour["total_cost"]),
			Notes:     asString(labour["notes"]),
		}
	}

	return quotation
}

func productsFromValue(value any) []Product {
	items, ok := value.([]any)
	if !ok {
		return []Product{}
	}

	products := make([]Product, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		products = append(products, Product{
			Item:       asString(entry["item"]),
			Quantity:   asFloat(entry["quantity"]),
			Unit:       asString(entry["unit"]),
			UnitPrice:  asFloat(entry["unit_price"]),
			TotalPrice: asFloat(entry["total_price"]),
			PartNumber: asString(entry["part_number"]),
			Notes:      asString(entry["notes"]),
		})
	}
	return products
}

func labourLinesFromValue(value any) []LabourLine {
	items, ok := value.([]any)
	if !ok {
		return []LabourLine{}
	}

	lines := make([]LabourLine, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, LabourLine{
			Task:          asString(entry["task"]),
			Hours:         asFloat(entry["hours"]),
			Days:          asFloat(entry["days"]),
			EngineerCount: asFloat(entry["engineer_count"]),
			DayRate:       asFloat(entry["day_rate"]),
			Cost:          asFloat(entry["cost"]),
			Notes:         asString(entry["notes"]),
		})
	}
	return lines
}

func stringSliceFromValue(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}

	results := make([]string, 0, len(items))
	for _, item := range items {
		if text := asString(item); text != "" {
			results = append(results, text)
		}
	}
	return results
}

func mapSliceFromValue(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return []map[string]any{}
	}

	results := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if entry, ok := item.(map[string]any); ok {
			results = append(results, entry)
		}
	}
	return results
}

func asString(value any) string {
	text, _ := value.(string)
	return text
}

// asFloat coerces JSON numbers and numeric strings; anything else is 0.
func asFloat(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
