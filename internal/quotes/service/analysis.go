package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cablecrm_backend/internal/events"
	"cablecrm_backend/internal/quotes/agent"
	"cablecrm_backend/internal/quotes/repository"
	"cablecrm_backend/internal/quotes/transport"
	"cablecrm_backend/platform/apperr"
)

// IngestAnalysis accepts a raw model completion for a quote. Synchronous
// ingestion parses and persists in the request path; async ingestion publishes
// an event consumed by the background worker.
func (s *Service) IngestAnalysis(ctx context.Context, id int64, req transport.IngestAnalysisRequest) (*transport.AnalysisIngestedResponse, error) {
	if req.Async {
		// Existence check up front so a bad id fails the request, not the job.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		s.bus.Publish(ctx, events.QuoteAnalysisRequested{
			BaseEvent:   events.NewBaseEvent(),
			QuoteID:     id,
			RawResponse: req.RawResponse,
		})
		return &transport.AnalysisIngestedResponse{QuoteID: id, Queued: true}, nil
	}

	return s.ApplyAnalysis(ctx, id, req.RawResponse)
}

// ApplyAnalysis parses a raw completion, writes the normalized result onto
// the quote's AI columns, and recomputes the consolidated pricing blob. The
// parse itself never fails; only storage errors surface.
func (s *Service) ApplyAnalysis(ctx context.Context, id int64, rawResponse string) (*transport.AnalysisIngestedResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := agent.ParseAnalysisResponse(rawResponse, quoteContext(quote))

	cols, err := analysisColumns(result, rawResponse)
	if err != nil {
		return nil, err
	}

	pricing := s.buildQuotePricing(ctx, result)
	if pricing.TotalCost > 0 {
		cols.EstimatedCost = &pricing.TotalCost
	}

	if err := s.repo.StoreAnalysis(ctx, id, cols); err != nil {
		return nil, err
	}

	if len(pricing.Materials) > 0 || len(pricing.Labor) > 0 {
		quoteData, err := json.Marshal(pricing)
		if err != nil {
			return nil, fmt.Errorf("marshal quote pricing: %w", err)
		}
		blob := string(quoteData)
		if err := s.repo.UpdateQuoteData(ctx, id, &blob); err != nil {
			return nil, err
		}
	}

	s.log.Info("quote analysis stored",
		"quote_id", id,
		"estimated_time", result.EstimatedTime,
		"products", len(result.Products),
	)
	s.bus.Publish(ctx, events.QuoteAnalysisStored{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       id,
		EstimatedTime: result.EstimatedTime,
		ProductCount:  len(result.Products),
	})

	return &transport.AnalysisIngestedResponse{
		QuoteID:       id,
		EstimatedTime: result.EstimatedTime,
		ProductCount:  len(result.Products),
	}, nil
}

// ProcessAnalysis is the background-worker entry point for analysis
// ingestion.
func (s *Service) ProcessAnalysis(ctx context.Context, quoteID int64, rawResponse string) error {
	_, err := s.ApplyAnalysis(ctx, quoteID, rawResponse)
	return err
}

// quoteContext maps the stored quote onto the agent's input shape.
func quoteContext(q *repository.Quote) agent.QuoteContext {
	return agent.QuoteContext{
		ProjectTitle:          q.ProjectTitle,
		ProjectDescription:    deref(q.ProjectDescription),
		SiteAddress:           q.SiteAddress,
		BuildingType:          deref(q.BuildingType),
		BuildingSize:          q.BuildingSize,
		NumberOfFloors:        q.NumberOfFloors,
		NumberOfRooms:         q.NumberOfRooms,
		WifiRequirements:      q.WifiRequirements,
		CCTVRequirements:      q.CCTVRequirements,
		DoorEntryRequirements: q.DoorEntryRequirements,
		SpecialRequirements:   deref(q.SpecialRequirements),
	}
}

// analysisColumns serializes the normalized result into the text columns the
// legacy store uses. Collections marshal as JSON arrays/objects even when
// empty, so downstream readers never see null.
func analysisColumns(result agent.AnalysisResult, rawResponse string) (repository.AnalysisColumns, error) {
	products, err := json.Marshal(result.Products)
	if err != nil {
		return repository.AnalysisColumns{}, fmt.Errorf("marshal products: %w", err)
	}
	alternatives, err := json.Marshal(result.Alternatives)
	if err != nil {
		return repository.AnalysisColumns{}, fmt.Errorf("marshal alternatives: %w", err)
	}
	labour, err := json.Marshal(result.LabourBreakdown)
	if err != nil {
		return repository.AnalysisColumns{}, fmt.Errorf("marshal labour breakdown: %w", err)
	}
	quotation, err := json.Marshal(result.Quotation)
	if err != nil {
		return repository.AnalysisColumns{}, fmt.Errorf("marshal quotation: %w", err)
	}

	estimatedTime := int(result.EstimatedTime)

	cols := repository.AnalysisColumns{
		AIAnalysis:           &result.Analysis,
		RecommendedProducts:  strPtr(string(products)),
		EstimatedTime:        &estimatedTime,
		AlternativeSolutions: strPtr(string(alternatives)),
		LabourBreakdown:      strPtr(string(labour)),
		QuotationDetails:     strPtr(string(quotation)),
		AIRawResponse:        &rawResponse,
	}

	if len(result.Clarifications) > 0 {
		clarifications, err := json.Marshal(result.Clarifications)
		if err != nil {
			return repository.AnalysisColumns{}, fmt.Errorf("marshal clarifications: %w", err)
		}
		cols.ClarificationsLog = strPtr(string(clarifications))
	}

	return cols, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid id")
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
