package service

import (
	"context"
	"testing"

	"cablecrm_backend/internal/quotes/agent"
	"cablecrm_backend/platform/logger"
)

func newPricingService() *Service {
	return &Service{log: logger.New("development")}
}

func TestBuildQuotePricingRollsLabourIntoHalfDays(t *testing.T) {
	s := newPricingService()
	result := agent.AnalysisResult{
		LabourBreakdown: []agent.LabourLine{
			{Task: "First fix", Hours: 10, DayRate: 300},
			{Task: "Second fix", Hours: 9, DayRate: 300},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	// 19 hours = 2.375 days, rounded to 2.5 half-day increments
	if len(pricing.Labor) != 1 {
		t.Fatalf("expected single rolled-up labour line, got %d", len(pricing.Labor))
	}
	if pricing.Labor[0].Quantity != 2.5 {
		t.Fatalf("expected 2.5 billed days, got %v", pricing.Labor[0].Quantity)
	}
	if pricing.TotalLabor != 750 {
		t.Fatalf("expected labour total 750, got %v", pricing.TotalLabor)
	}
}

func TestBuildQuotePricingConvertsDaysToHours(t *testing.T) {
	s := newPricingService()
	result := agent.AnalysisResult{
		LabourBreakdown: []agent.LabourLine{
			{Task: "Install", Days: 2, DayRate: 300},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	if pricing.Labor[0].Quantity != 2 || pricing.TotalLabor != 600 {
		t.Fatalf("expected 2 days at 600 total, got %v days / %v", pricing.Labor[0].Quantity, pricing.TotalLabor)
	}
}

func TestBuildQuotePricingEnforcesHalfDayMinimum(t *testing.T) {
	s := newPricingService()
	result := agent.AnalysisResult{
		LabourBreakdown: []agent.LabourLine{
			{Task: "Patch in", Hours: 1, DayRate: 300},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	if pricing.Labor[0].Quantity != 0.5 || pricing.TotalLabor != 150 {
		t.Fatalf("expected half-day minimum at 150, got %v days / %v", pricing.Labor[0].Quantity, pricing.TotalLabor)
	}
}

func TestBuildQuotePricingFallsBackToPerTaskCosts(t *testing.T) {
	s := newPricingService()
	// No day rate anywhere: the rollup cannot price, so per-task costs apply.
	result := agent.AnalysisResult{
		LabourBreakdown: []agent.LabourLine{
			{Task: "First fix", Hours: 8, Cost: 320},
			{Task: "Testing", Hours: 4, Cost: 160},
			{Task: "Unpriced", Hours: 2},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	if len(pricing.Labor) != 2 {
		t.Fatalf("expected two priced tasks, got %d", len(pricing.Labor))
	}
	if pricing.TotalLabor != 480 {
		t.Fatalf("expected labour total 480, got %v", pricing.TotalLabor)
	}
}

func TestBuildQuotePricingUsesModelPricingWhenComplete(t *testing.T) {
	s := newPricingService()
	result := agent.AnalysisResult{
		Products: []agent.Product{
			{Item: "U6-Pro", Quantity: 4, Unit: "each", UnitPrice: 125, TotalPrice: 500, PartNumber: "U6-PRO"},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	line := pricing.Materials[0]
	if line.PricingSource != "ai_estimated" || !line.IsEstimated {
		t.Fatalf("expected model pricing marked ai_estimated, got %+v", line)
	}
	if pricing.TotalMaterials != 500 {
		t.Fatalf("expected materials total 500, got %v", pricing.TotalMaterials)
	}
}

func TestBuildQuotePricingEstimatesUnpricedProducts(t *testing.T) {
	s := newPricingService()
	result := agent.AnalysisResult{
		Products: []agent.Product{
			{Item: "24 Port PoE Switch", Quantity: 2},
			{Item: "Keystone jacks", Quantity: 50},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	if pricing.Materials[0].UnitPrice != 399 || pricing.Materials[0].PricingSource != "estimated" {
		t.Fatalf("unexpected switch pricing: %+v", pricing.Materials[0])
	}
	if pricing.Materials[1].Total != 150 {
		t.Fatalf("expected keystone total 150, got %v", pricing.Materials[1].Total)
	}
	if pricing.TotalMaterials != 948 {
		t.Fatalf("expected materials total 948, got %v", pricing.TotalMaterials)
	}
}

type stubPriceLookup struct {
	prices map[string]float64
}

func (s stubPriceLookup) FindUnitPrice(_ context.Context, productName string) (float64, bool, error) {
	price, ok := s.prices[productName]
	return price, ok, nil
}

func TestBuildQuotePricingPrefersCatalogOverEstimates(t *testing.T) {
	s := newPricingService()
	s.SetPriceLookup(stubPriceLookup{prices: map[string]float64{"Faceplate double gang": 2.4}})

	result := agent.AnalysisResult{
		Products: []agent.Product{{Item: "Faceplate double gang", Quantity: 10}},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	line := pricing.Materials[0]
	if line.UnitPrice != 2.4 || line.PricingSource != "database" || line.IsEstimated {
		t.Fatalf("expected catalog price used, got %+v", line)
	}
}

func TestBuildQuotePricingTotalsBothSections(t *testing.T) {
	s := newPricingService()
	result := agent.AnalysisResult{
		Products: []agent.Product{
			{Item: "Cat6 cable box", Quantity: 2, UnitPrice: 45, TotalPrice: 90},
		},
		LabourBreakdown: []agent.LabourLine{
			{Task: "Install", Days: 1, DayRate: 300},
		},
	}

	pricing := s.buildQuotePricing(context.Background(), result)

	if pricing.TotalCost != 390 {
		t.Fatalf("expected combined total 390, got %v", pricing.TotalCost)
	}
}
