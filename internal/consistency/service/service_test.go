package service

import (
	"math"
	"strings"
	"testing"
	"time"

	"cablecrm_backend/internal/consistency/transport"
	"cablecrm_backend/platform/config"
	"cablecrm_backend/platform/logger"
)

type testConfig struct{}

func (testConfig) GetSizeTolerance() float64       { return 0.2 }
func (testConfig) GetRoomsTolerance() float64      { return 0.5 }
func (testConfig) GetRecencyWindow() time.Duration { return 365 * 24 * time.Hour }
func (testConfig) GetSimilarQuotesLimit() int      { return 10 }
func (testConfig) GetLimitedDataThreshold() int    { return 3 }
func (testConfig) GetDefaultDayRate() float64      { return 300 }
func (testConfig) GetReportWindow() time.Duration  { return 30 * 24 * time.Hour }
func (testConfig) GetReportLimit() int             { return 20 }
func (testConfig) GetPenaltyTiers() []config.PenaltyTier {
	return []config.PenaltyTier{
		{ThresholdPct: 50, Penalty: 20},
		{ThresholdPct: 30, Penalty: 10},
		{ThresholdPct: 15, Penalty: 5},
	}
}

func newAnalyzer() *Service {
	return &Service{cfg: testConfig{}, log: logger.New("development")}
}

func pricingWithVariances(materials, labor, total float64) *transport.PricingComparison {
	return &transport.PricingComparison{
		Materials: transport.CategoryComparison{VariancePercent: materials},
		Labor:     transport.CategoryComparison{VariancePercent: labor},
		Total:     transport.CategoryComparison{VariancePercent: total},
	}
}

func TestScoreConsistencyPerfectMatch(t *testing.T) {
	s := newAnalyzer()
	if score := s.scoreConsistency(pricingWithVariances(0, 0, 0)); score != 100 {
		t.Fatalf("expected score 100 for zero variance, got %v", score)
	}
}

func TestScoreConsistencySingleTierPerCategory(t *testing.T) {
	s := newAnalyzer()

	// +60% on one category: only the 20-point tier applies, once.
	if score := s.scoreConsistency(pricingWithVariances(60, 0, 0)); score != 80 {
		t.Fatalf("expected score 80 for one high-variance category, got %v", score)
	}

	// Negative variance penalizes the same as positive.
	if score := s.scoreConsistency(pricingWithVariances(-60, 0, 0)); score != 80 {
		t.Fatalf("expected score 80 for negative variance, got %v", score)
	}

	// 35% hits the middle tier only.
	if score := s.scoreConsistency(pricingWithVariances(0, 35, 0)); score != 90 {
		t.Fatalf("expected score 90 for medium variance, got %v", score)
	}

	// 20% hits the smallest tier.
	if score := s.scoreConsistency(pricingWithVariances(0, 0, 20)); score != 95 {
		t.Fatalf("expected score 95 for small variance, got %v", score)
	}
}

func TestScoreConsistencyClampedAtZero(t *testing.T) {
	s := newAnalyzer()
	// Maximum penalty is 60 across three categories; score floors at 40 here,
	// never below zero even with boundary-pushing inputs.
	if score := s.scoreConsistency(pricingWithVariances(999, 999, 999)); score != 40 {
		t.Fatalf("expected score 40 at maximum penalties, got %v", score)
	}
	if score := s.scoreConsistency(pricingWithVariances(0, 0, 0)); score < 0 || score > 100 {
		t.Fatalf("score out of bounds: %v", score)
	}
}

func TestGenerateRecommendationsWording(t *testing.T) {
	recs := generateRecommendations(pricingWithVariances(60, 0, 0))

	if len(recs) != 1 {
		t.Fatalf("expected one recommendation, got %d: %v", len(recs), recs)
	}
	if recs[0] != "Materials pricing is +60.0% different from historical average. Consider reviewing materials estimates." {
		t.Fatalf("unexpected wording: %q", recs[0])
	}

	recs = generateRecommendations(pricingWithVariances(0, -22.5, 0))
	if recs[0] != "Labor pricing is -22.5% different from historical average. Verify labor calculations." {
		t.Fatalf("unexpected verify wording: %q", recs[0])
	}
}

func TestGenerateRecommendationsEmptyWithinTolerance(t *testing.T) {
	recs := generateRecommendations(pricingWithVariances(10, -14, 15))
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations within tolerance, got %v", recs)
	}
}

func TestIdentifyFlagsVarianceTiers(t *testing.T) {
	s := newAnalyzer()
	analysis := &transport.AnalysisResponse{
		SimilarQuotesCount: 5,
		PricingComparison:  pricingWithVariances(60, -35, 10),
	}

	flags := s.identifyFlags(analysis)

	if len(flags) != 2 {
		t.Fatalf("expected two flags, got %v", flags)
	}
	if flags[0] != "HIGH VARIANCE: Materials pricing differs by 60.0% from historical average" {
		t.Fatalf("unexpected high flag: %q", flags[0])
	}
	if flags[1] != "MEDIUM VARIANCE: Labor pricing differs by 35.0% from historical average" {
		t.Fatalf("unexpected medium flag: %q", flags[1])
	}
}

func TestIdentifyFlagsLimitedData(t *testing.T) {
	s := newAnalyzer()
	analysis := &transport.AnalysisResponse{
		SimilarQuotesCount: 2,
		PricingComparison:  pricingWithVariances(0, 0, 0),
	}

	flags := s.identifyFlags(analysis)

	if len(flags) != 1 || !strings.HasPrefix(flags[0], "LIMITED DATA:") {
		t.Fatalf("expected limited data flag, got %v", flags)
	}
}

func TestComparePricingAveragesAndVariance(t *testing.T) {
	current := &QuotePricing{TotalMaterials: 1600, TotalLabor: 900, TotalCost: 2500}
	historical := []historicalEntry{
		{pricing: &QuotePricing{TotalMaterials: 1000, TotalLabor: 800, TotalCost: 1800}},
		{pricing: &QuotePricing{TotalMaterials: 1000, TotalLabor: 1000, TotalCost: 2000}},
	}

	comparison := comparePricing(current, historical)

	if comparison.Materials.HistoricalAvg != 1000 || comparison.Materials.VariancePercent != 60 {
		t.Fatalf("unexpected materials comparison: %+v", comparison.Materials)
	}
	if comparison.Labor.HistoricalMedian != 900 || comparison.Labor.VariancePercent != 0 {
		t.Fatalf("unexpected labor comparison: %+v", comparison.Labor)
	}
	if math.Abs(comparison.Total.VariancePercent-31.6) > 1e-9 {
		t.Fatalf("expected total variance 31.6, got %v", comparison.Total.VariancePercent)
	}
}

func TestComparePricingIgnoresZeroHistoricalTotals(t *testing.T) {
	current := &QuotePricing{TotalMaterials: 500}
	historical := []historicalEntry{
		{pricing: &QuotePricing{TotalMaterials: 500}},
		{pricing: &QuotePricing{}},
	}

	comparison := comparePricing(current, historical)

	if comparison.Materials.HistoricalAvg != 500 {
		t.Fatalf("expected zero totals excluded from average, got %v", comparison.Materials.HistoricalAvg)
	}
	// No labor history at all: averages and variance stay zero.
	if comparison.Labor.HistoricalAvg != 0 || comparison.Labor.VariancePercent != 0 {
		t.Fatalf("expected empty labor comparison, got %+v", comparison.Labor)
	}
}

func TestCompareMaterialCostsPerSqm(t *testing.T) {
	targetSize := 100.0
	histSize := 200.0
	current := &QuotePricing{TotalMaterials: 3000}
	historical := []historicalEntry{
		{pricing: &QuotePricing{TotalMaterials: 4000}, buildingSize: &histSize},
		{pricing: &QuotePricing{TotalMaterials: 1000}}, // no size: excluded
	}

	comparison := compareMaterialCosts(current, &targetSize, historical)

	if comparison == nil {
		t.Fatal("expected material comparison")
	}
	if comparison.CurrentPerSqm != 30 || comparison.HistoricalAvgPerSqm != 20 {
		t.Fatalf("unexpected per-sqm figures: %+v", comparison)
	}
	if comparison.VariancePercent != 50 {
		t.Fatalf("expected 50%% variance, got %v", comparison.VariancePercent)
	}
}

func TestCompareMaterialCostsNilWithoutHistory(t *testing.T) {
	current := &QuotePricing{TotalMaterials: 3000}
	if comparison := compareMaterialCosts(current, nil, nil); comparison != nil {
		t.Fatalf("expected nil comparison without history, got %+v", comparison)
	}
}

func TestExtractQuotePricingMalformedIsNil(t *testing.T) {
	malformed := "{not json"
	if pricing := ExtractQuotePricing(&malformed); pricing != nil {
		t.Fatalf("expected nil for malformed blob, got %+v", pricing)
	}
	if pricing := ExtractQuotePricing(nil); pricing != nil {
		t.Fatal("expected nil for absent blob")
	}
}

func TestExtractQuotePricingRoundTrip(t *testing.T) {
	blob := `{"materials": [{"item": "Cat6"}], "labor": [], "total_materials": 1200.5, "total_labor": 600, "total_cost": 1800.5}`
	pricing := ExtractQuotePricing(&blob)

	if pricing == nil {
		t.Fatal("expected pricing")
	}
	if pricing.TotalCost != 1800.5 || len(pricing.Materials) != 1 {
		t.Fatalf("unexpected pricing: %+v", pricing)
	}
}

func TestExtractLabourDayRate(t *testing.T) {
	blob := `[{"task": "First fix", "hours": 8}, {"task": "Testing", "day_rate": 320}]`
	if rate := extractLabourDayRate(&blob); rate != 320 {
		t.Fatalf("expected day rate 320, got %v", rate)
	}

	empty := `[]`
	if rate := extractLabourDayRate(&empty); rate != 0 {
		t.Fatalf("expected 0 for empty breakdown, got %v", rate)
	}

	malformed := `{"task": "not a list"}`
	if rate := extractLabourDayRate(&malformed); rate != 0 {
		t.Fatalf("expected 0 for malformed breakdown, got %v", rate)
	}
}

func TestVariancePercentRounding(t *testing.T) {
	if v := variancePercent(115.5, 100); v != 15.5 {
		t.Fatalf("expected 15.5, got %v", v)
	}
	if v := variancePercent(116.67, 100); v != 16.7 {
		t.Fatalf("expected 16.7, got %v", v)
	}
	if v := variancePercent(80, 100); v != -20 {
		t.Fatalf("expected -20, got %v", v)
	}
	if v := variancePercent(100, 0); v != 0 {
		t.Fatalf("expected 0 when average is 0, got %v", v)
	}
}

func TestTemplateCostingOfficeRefurbishment(t *testing.T) {
	template := pricingTemplates["office_refurbishment"]

	// 200 sqm, 10 rooms (20 outlets), wifi on: 2 APs.
	materials, hours, labor := templateCosting(template, 200, 10, true, 300)

	if materials != 5000 {
		t.Fatalf("expected materials 5000, got %v", materials)
	}
	// 20*0.4 + 20*0.1 + 2*2.0 = 14 hours
	if hours != 14 {
		t.Fatalf("expected 14 labor hours, got %v", hours)
	}
	// 14/8 * 300 = 525
	if labor != 525 {
		t.Fatalf("expected labor cost 525, got %v", labor)
	}
}

func TestTemplateCostingMinimumOneAP(t *testing.T) {
	template := pricingTemplates["retail_space"]

	_, hours, _ := templateCosting(template, 60, 2, true, 300)

	// 4 outlets: 4*0.5 + 4*0.1 = 2.4, plus one AP minimum at 2.5.
	if math.Abs(hours-4.9) > 1e-9 {
		t.Fatalf("expected 4.9 hours with single-AP floor, got %v", hours)
	}
}

func TestTemplateCatalogComplete(t *testing.T) {
	names := []string{"office_refurbishment", "new_build", "retail_space", "industrial"}
	for _, name := range names {
		template, ok := pricingTemplates[name]
		if !ok {
			t.Fatalf("missing template %q", name)
		}
		if template.MaterialsPerSqm <= 0 || template.Description == "" {
			t.Fatalf("incomplete template %q: %+v", name, template)
		}
	}
}
