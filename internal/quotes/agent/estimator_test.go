package agent

import "testing"

func TestEstimateBasicHoursBaseCase(t *testing.T) {
	if got := EstimateBasicHours(QuoteContext{}); got != 8 {
		t.Fatalf("expected 8 base hours, got %d", got)
	}
}

func TestEstimateBasicHoursAddsPerSystem(t *testing.T) {
	quote := QuoteContext{
		WifiRequirements:      true,
		CCTVRequirements:      true,
		DoorEntryRequirements: true,
	}
	if got := EstimateBasicHours(quote); got != 21 {
		t.Fatalf("expected 8+4+6+3=21 hours, got %d", got)
	}
}

func TestEstimateBasicHoursScalesWithBuildingSize(t *testing.T) {
	size := 200.0
	quote := QuoteContext{WifiRequirements: true, BuildingSize: &size}
	// (8+4) * (1 + 200/100) = 36
	if got := EstimateBasicHours(quote); got != 36 {
		t.Fatalf("expected 36 hours for 200 sqm, got %d", got)
	}
}

func TestEstimateBasicHoursCapsSizeFactor(t *testing.T) {
	size := 5000.0
	quote := QuoteContext{BuildingSize: &size}
	// factor capped at 3: 8 * 4 = 32
	if got := EstimateBasicHours(quote); got != 32 {
		t.Fatalf("expected cap at 32 hours, got %d", got)
	}
}

func TestEstimateBasicHoursTruncatesFraction(t *testing.T) {
	size := 50.0
	quote := QuoteContext{DoorEntryRequirements: true, BuildingSize: &size}
	// (8+3) * 1.5 = 16.5 -> 16
	if got := EstimateBasicHours(quote); got != 16 {
		t.Fatalf("expected truncation to 16 hours, got %d", got)
	}
}
