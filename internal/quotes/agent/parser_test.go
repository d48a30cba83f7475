package agent

import "testing"

func TestParseAnalysisResponsePreservesProseAsAnalysisFallback(t *testing.T) {
	quote := QuoteContext{WifiRequirements: true}
	raw := "I recommend Cat6 throughout with a 24-port patch panel per floor."

	result := ParseAnalysisResponse(raw, quote)

	if result.Analysis != raw {
		t.Fatalf("expected raw text preserved in analysis, got %q", result.Analysis)
	}
	if result.EstimatedTime != 12 {
		t.Fatalf("expected fallback estimate 12 hours, got %v", result.EstimatedTime)
	}
	if result.Products == nil || result.Clarifications == nil || result.LabourBreakdown == nil {
		t.Fatal("expected empty collections, not nil")
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected no products, got %d", len(result.Products))
	}
}

func TestParseAnalysisResponseAliasesEstimatedHours(t *testing.T) {
	result := ParseAnalysisResponse(`{"analysis": "ok", "estimated_hours": 12}`, QuoteContext{})

	if result.Analysis != "ok" {
		t.Fatalf("expected analysis 'ok', got %q", result.Analysis)
	}
	if result.EstimatedTime != 12 {
		t.Fatalf("expected estimated_hours aliased to 12, got %v", result.EstimatedTime)
	}
	if len(result.Products) != 0 || len(result.Alternatives) != 0 || len(result.Clarifications) != 0 {
		t.Fatal("expected defaulted keys to be empty")
	}
	if result.Quotation.ScopeOfWorks == nil || result.Quotation.Materials == nil {
		t.Fatal("expected quotation sub-keys defaulted, not nil")
	}
}

func TestParseAnalysisResponseExtractsEmbeddedJSONSpan(t *testing.T) {
	raw := "Here is my assessment:\n```json\n{\"analysis\": \"Cat6 run\", \"estimated_time\": 16, \"products\": [{\"item\": \"Cat6 cable\", \"quantity\": 305, \"unit\": \"meters\", \"unit_price\": 0.35, \"total_price\": 106.75}]}\n```\nLet me know if you need more."

	result := ParseAnalysisResponse(raw, QuoteContext{})

	if result.Analysis != "Cat6 run" {
		t.Fatalf("expected embedded JSON parsed, got analysis %q", result.Analysis)
	}
	if result.EstimatedTime != 16 {
		t.Fatalf("expected estimated_time 16, got %v", result.EstimatedTime)
	}
	if len(result.Products) != 1 || result.Products[0].Quantity != 305 {
		t.Fatalf("unexpected products: %+v", result.Products)
	}
}

func TestParseAnalysisResponseFallsBackOnMalformedBalancedObject(t *testing.T) {
	raw := `{"analysis": broken}`

	result := ParseAnalysisResponse(raw, QuoteContext{})

	if result.Analysis != raw {
		t.Fatalf("expected malformed payload preserved verbatim, got %q", result.Analysis)
	}
	if result.EstimatedTime != 8 {
		t.Fatalf("expected base fallback estimate 8, got %v", result.EstimatedTime)
	}
}

func TestParseAnalysisResponseReplacesZeroEstimateWithFallback(t *testing.T) {
	quote := QuoteContext{CCTVRequirements: true, DoorEntryRequirements: true}

	result := ParseAnalysisResponse(`{"analysis": "ok", "estimated_time": 0}`, quote)

	if result.EstimatedTime != 17 {
		t.Fatalf("expected fallback estimate 17 for CCTV+door entry, got %v", result.EstimatedTime)
	}
}

func TestParseAnalysisResponseDecodesFullPayload(t *testing.T) {
	raw := `{
		"analysis": "Full fit-out",
		"products": [{"item": "U6-Pro", "quantity": 4, "unit": "each", "unit_price": 125, "total_price": 500, "part_number": "U6-PRO", "notes": "ceiling mount"}],
		"alternatives": [{"option": "fibre backbone", "pros": "future proof"}],
		"estimated_time": 24,
		"labour_breakdown": [{"task": "First fix", "hours": 16, "days": 2, "engineer_count": 2, "day_rate": 300, "cost": 600, "notes": ""}],
		"clarifications": ["Ceiling type?"],
		"quotation": {
			"client_requirement": "New office cabling",
			"scope_of_works": ["Install 48 outlets"],
			"materials": [{"item": "Cat6 cable", "quantity": 2, "unit": "box", "unit_price": 85, "total_price": 170}],
			"labour": {"engineers": 2, "hours": 24, "day_rate": 300, "total_cost": 900, "notes": "pair working"},
			"assumptions_exclusions": ["Out of hours work excluded"]
		},
		"travel_distance_miles": 14.5,
		"travel_time_minutes": 32
	}`

	result := ParseAnalysisResponse(raw, QuoteContext{})

	if result.Products[0].Item != "U6-Pro" || result.Products[0].UnitPrice != 125 {
		t.Fatalf("unexpected product: %+v", result.Products[0])
	}
	if len(result.Alternatives) != 1 || result.Alternatives[0]["option"] != "fibre backbone" {
		t.Fatalf("unexpected alternatives: %+v", result.Alternatives)
	}
	if result.LabourBreakdown[0].EngineerCount != 2 || result.LabourBreakdown[0].Cost != 600 {
		t.Fatalf("unexpected labour line: %+v", result.LabourBreakdown[0])
	}
	if result.Quotation.Labour.TotalCost != 900 {
		t.Fatalf("unexpected quotation labour: %+v", result.Quotation.Labour)
	}
	if result.Quotation.Materials[0].TotalPrice != 170 {
		t.Fatalf("unexpected quotation materials: %+v", result.Quotation.Materials)
	}
	if result.TravelDistanceMiles != 14.5 || result.TravelTimeMinutes != 32 {
		t.Fatalf("unexpected travel fields: %v / %v", result.TravelDistanceMiles, result.TravelTimeMinutes)
	}
}

func TestParseAnalysisResponseToleratesMistypedFields(t *testing.T) {
	raw := `{"analysis": 42, "products": "none", "estimated_time": "18", "clarifications": [1, "Ceiling type?"], "quotation": "tbc"}`

	result := ParseAnalysisResponse(raw, QuoteContext{})

	if result.Analysis != "" {
		t.Fatalf("expected non-string analysis dropped, got %q", result.Analysis)
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected mistyped products to decode empty, got %+v", result.Products)
	}
	if result.EstimatedTime != 18 {
		t.Fatalf("expected numeric string coerced to 18, got %v", result.EstimatedTime)
	}
	if len(result.Clarifications) != 1 || result.Clarifications[0] != "Ceiling type?" {
		t.Fatalf("unexpected clarifications: %+v", result.Clarifications)
	}
	if result.Quotation.ScopeOfWorks == nil {
		t.Fatal("expected mistyped quotation replaced with empty structure")
	}
}

func TestApplyDefaultsIsIdempotent(t *testing.T) {
	data := map[string]any{"estimated_hours": float64(10)}

	once := applyDefaults(data, QuoteContext{})
	first := resultFromMap(once)
	second := resultFromMap(applyDefaults(once, QuoteContext{}))

	if first.EstimatedTime != 10 || second.EstimatedTime != 10 {
		t.Fatalf("expected stable estimate 10, got %v then %v", first.EstimatedTime, second.EstimatedTime)
	}
	if _, ok := once["estimated_hours"]; ok {
		t.Fatal("expected alias key removed after normalization")
	}
	if len(once) != 9 {
		t.Fatalf("expected nine top-level keys after defaulting, got %d", len(once))
	}
}

func TestParseAnalysisObjectNormalizesDecodedPayload(t *testing.T) {
	result := ParseAnalysisObject(map[string]any{"analysis": "ok"}, QuoteContext{WifiRequirements: true})

	if result.Analysis != "ok" {
		t.Fatalf("expected analysis preserved, got %q", result.Analysis)
	}
	if result.EstimatedTime != 12 {
		t.Fatalf("expected fallback estimate 12, got %v", result.EstimatedTime)
	}
}
