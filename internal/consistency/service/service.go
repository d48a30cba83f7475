// Package service implements the quote consistency engine: similarity
// matching, historical pricing comparison, scoring, and the standard pricing
// templates.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"cablecrm_backend/internal/consistency/repository"
	"cablecrm_backend/internal/consistency/transport"
	"cablecrm_backend/platform/config"
	"cablecrm_backend/platform/logger"
)

// Recommendation and flag thresholds, in percent variance.
const (
	reviewThresholdPct = 30
	verifyThresholdPct = 15
)

// DayRateProvider resolves the configured engineer day rate. Implemented by
// the settings service; ok is false when the setting is absent or unusable.
type DayRateProvider interface {
	GetDayRate(ctx context.Context) (rate float64, ok bool)
}

// Service runs consistency analyses over the quote history.
type Service struct {
	repo     *repository.Repository
	cfg      config.ConsistencyConfig
	dayRates DayRateProvider // optional: nil disables the settings fallback
	log      *logger.Logger
}

// New creates a new consistency service
func New(repo *repository.Repository, cfg config.ConsistencyConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// SetDayRateProvider injects the settings-backed day rate source.
func (s *Service) SetDayRateProvider(p DayRateProvider) {
	s.dayRates = p
}

// Analyze compares a quote against its similar historical quotes. The result
// is always well-formed: a quote with no comparable history yields zero
// counts and empty collections. Only an unresolvable quote id is an error.
func (s *Service) Analyze(ctx context.Context, quoteID int64) (*transport.AnalysisResponse, error) {
	target, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	similar, err := s.repo.FindSimilar(ctx, target, s.similarityBounds())
	if err != nil {
		return nil, err
	}

	analysis := &transport.AnalysisResponse{
		QuoteID:            quoteID,
		SimilarQuotesCount: len(similar),
		Recommendations:    []string{},
		Flags:              []string{},
	}

	if len(similar) > 0 {
		s.compareWithHistorical(ctx, analysis, target, similar)
	}

	s.log.AnalysisEvent(quoteID, analysis.SimilarQuotesCount, analysis.ConsistencyScore, analysis.SkippedComparables)
	return analysis, nil
}

func (s *Service) similarityBounds() repository.SimilarityBounds {
	return repository.SimilarityBounds{
		SizeTolerance:  s.cfg.GetSizeTolerance(),
		RoomsTolerance: s.cfg.GetRoomsTolerance(),
		RecencyWindow:  s.cfg.GetRecencyWindow(),
		Limit:          s.cfg.GetSimilarQuotesLimit(),
	}
}

// historicalEntry pairs a comparable's normalized pricing with the quote
// fields the per-sqm comparison needs.
type historicalEntry struct {
	pricing      *QuotePricing
	buildingSize *float64
}

func (s *Service) compareWithHistorical(ctx context.Context, analysis *transport.AnalysisResponse, target *repository.ComparableQuote, similar []repository.ComparableQuote) {
	currentPricing := ExtractQuotePricing(target.QuoteData)

	var historical []historicalEntry
	for i := range similar {
		pricing := ExtractQuotePricing(similar[i].QuoteData)
		if pricing == nil {
			analysis.SkippedComparables++
			continue
		}
		historical = append(historical, historicalEntry{pricing: pricing, buildingSize: similar[i].BuildingSize})
	}

	if currentPricing == nil || len(historical) == 0 {
		return
	}

	analysis.PricingComparison = comparePricing(currentPricing, historical)
	analysis.LaborComparison = s.compareLaborRates(ctx, target, similar)
	analysis.MaterialComparison = compareMaterialCosts(currentPricing, target.BuildingSize, historical)
	analysis.ConsistencyScore = s.scoreConsistency(analysis.PricingComparison)
	analysis.Recommendations = generateRecommendations(analysis.PricingComparison)
	analysis.Flags = s.identifyFlags(analysis)
}

func comparePricing(current *QuotePricing, historical []historicalEntry) *transport.PricingComparison {
	var histMaterials, histLabor, histTotal []float64
	for _, h := range historical {
		if h.pricing.TotalMaterials > 0 {
			histMaterials = append(histMaterials, h.pricing.TotalMaterials)
		}
		if h.pricing.TotalLabor > 0 {
			histLabor = append(histLabor, h.pricing.TotalLabor)
		}
		if h.pricing.TotalCost > 0 {
			histTotal = append(histTotal, h.pricing.TotalCost)
		}
	}

	return &transport.PricingComparison{
		Materials: compareCategory(current.TotalMaterials, histMaterials),
		Labor:     compareCategory(current.TotalLabor, histLabor),
		Total:     compareCategory(current.TotalCost, histTotal),
	}
}

func compareCategory(current float64, historical []float64) transport.CategoryComparison {
	avg := mean(historical)
	return transport.CategoryComparison{
		Current:          current,
		HistoricalAvg:    avg,
		HistoricalMedian: median(historical),
		VariancePercent:  variancePercent(current, avg),
	}
}

// compareLaborRates compares hourly rates derived from labour breakdowns
// (day rate / 8). Quotes without a breakdown fall back to the admin day-rate
// setting; when that is also absent they are excluded.
func (s *Service) compareLaborRates(ctx context.Context, target *repository.ComparableQuote, similar []repository.ComparableQuote) *transport.LaborComparison {
	currentRate := s.hourlyLaborRate(ctx, target)

	var historicalRates []float64
	for i := range similar {
		if rate := s.hourlyLaborRate(ctx, &similar[i]); rate > 0 {
			historicalRates = append(historicalRates, rate)
		}
	}

	if len(historicalRates) == 0 {
		return nil
	}

	avg := mean(historicalRates)
	return &transport.LaborComparison{
		CurrentRate:         currentRate,
		HistoricalAvg:       avg,
		HistoricalMedian:    median(historicalRates),
		RateVariancePercent: variancePercent(currentRate, avg),
	}
}

func (s *Service) hourlyLaborRate(ctx context.Context, quote *repository.ComparableQuote) float64 {
	if dayRate := extractLabourDayRate(quote.LabourBreakdown); dayRate > 0 {
		return dayRate / 8
	}
	if s.dayRates != nil {
		if dayRate, ok := s.dayRates.GetDayRate(ctx); ok && dayRate > 0 {
			return dayRate / 8
		}
	}
	return 0
}

// compareMaterialCosts compares material spend per square meter. Quotes
// without a building size or material total contribute nothing.
func compareMaterialCosts(current *QuotePricing, targetSize *float64, historical []historicalEntry) *transport.MaterialComparison {
	var currentPerSqm float64
	if current.TotalMaterials > 0 && targetSize != nil && *targetSize > 0 {
		currentPerSqm = current.TotalMaterials / *targetSize
	}

	var historicalPerSqm []float64
	for _, h := range historical {
		if h.pricing.TotalMaterials > 0 && h.buildingSize != nil && *h.buildingSize > 0 {
			historicalPerSqm = append(historicalPerSqm, h.pricing.TotalMaterials / *h.buildingSize)
		}
	}

	if len(historicalPerSqm) == 0 {
		return nil
	}

	avg := mean(historicalPerSqm)
	return &transport.MaterialComparison{
		CurrentPerSqm:          currentPerSqm,
		HistoricalAvgPerSqm:    avg,
		HistoricalMedianPerSqm: median(historicalPerSqm),
		VariancePercent:        variancePercent(currentPerSqm, avg),
	}
}

// scoreConsistency starts at 100 and subtracts the single highest matching
// penalty tier per category, clamped to [0, 100].
func (s *Service) scoreConsistency(pricing *transport.PricingComparison) float64 {
	score := 100.0
	tiers := s.cfg.GetPenaltyTiers()

	for _, variance := range categoryVariances(pricing) {
		abs := math.Abs(variance)
		for _, tier := range tiers {
			if abs > tier.ThresholdPct {
				score -= tier.Penalty
				break
			}
		}
	}

	return math.Max(0, math.Min(100, score))
}

func generateRecommendations(pricing *transport.PricingComparison) []string {
	recommendations := []string{}

	for i, variance := range categoryVariances(pricing) {
		category := categoryNames[i]
		abs := math.Abs(variance)
		switch {
		case abs > reviewThresholdPct:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s pricing is %+.1f%% different from historical average. Consider reviewing %s estimates.",
				titleCase(category), variance, category))
		case abs > verifyThresholdPct:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s pricing is %+.1f%% different from historical average. Verify %s calculations.",
				titleCase(category), variance, category))
		}
	}

	return recommendations
}

func (s *Service) identifyFlags(analysis *transport.AnalysisResponse) []string {
	flags := []string{}

	highThreshold, mediumThreshold := 50.0, 30.0
	if tiers := s.cfg.GetPenaltyTiers(); len(tiers) >= 2 {
		highThreshold, mediumThreshold = tiers[0].ThresholdPct, tiers[1].ThresholdPct
	}

	for i, variance := range categoryVariances(analysis.PricingComparison) {
		category := titleCase(categoryNames[i])
		abs := math.Abs(variance)
		switch {
		case abs > highThreshold:
			flags = append(flags, fmt.Sprintf(
				"HIGH VARIANCE: %s pricing differs by %.1f%% from historical average", category, abs))
		case abs > mediumThreshold:
			flags = append(flags, fmt.Sprintf(
				"MEDIUM VARIANCE: %s pricing differs by %.1f%% from historical average", category, abs))
		}
	}

	if analysis.SimilarQuotesCount < s.cfg.GetLimitedDataThreshold() {
		flags = append(flags, "LIMITED DATA: Few similar historical quotes available for comparison")
	}

	return flags
}

var categoryNames = [3]string{"materials", "labor", "total"}

func categoryVariances(pricing *transport.PricingComparison) [3]float64 {
	if pricing == nil {
		return [3]float64{}
	}
	return [3]float64{
		pricing.Materials.VariancePercent,
		pricing.Labor.VariancePercent,
		pricing.Total.VariancePercent,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
