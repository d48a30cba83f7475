// Package service implements quote lifecycle management and AI analysis
// ingestion.
package service

import (
	"context"
	"fmt"
	"time"

	"cablecrm_backend/internal/events"
	"cablecrm_backend/internal/quotes/repository"
	"cablecrm_backend/internal/quotes/transport"
	"cablecrm_backend/platform/logger"
	"cablecrm_backend/platform/phone"
)

// PriceLookup resolves a unit price for a product name from the pricing
// catalog. Implemented by an adapter over the pricing repository.
type PriceLookup interface {
	FindUnitPrice(ctx context.Context, productName string) (float64, bool, error)
}

// Service provides business logic for quotes
type Service struct {
	repo     *repository.Repository
	bus      events.Bus
	log      *logger.Logger
	prices   PriceLookup     // optional: nil disables catalog price resolution
	contexts ContextProvider // optional: nil omits historical context from prompts
	dayRates DayRateProvider // optional: nil falls back to the default day rate
}

// New creates a new quotes service
func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// SetPriceLookup injects the pricing catalog adapter (set after construction
// to keep module wiring one-directional).
func (s *Service) SetPriceLookup(lookup PriceLookup) {
	s.prices = lookup
}

// Create creates a new quote with a generated quote number
func (s *Service) Create(ctx context.Context, req transport.CreateQuoteRequest) (*transport.QuoteResponse, error) {
	quoteNumber, err := s.repo.NextQuoteNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate quote number: %w", err)
	}

	now := time.Now()
	quote := repository.Quote{
		QuoteNumber:           quoteNumber,
		ClientName:            req.ClientName,
		ClientEmail:           req.ClientEmail,
		ClientPhone:           normalizePhone(req.ClientPhone),
		ProjectTitle:          req.ProjectTitle,
		ProjectDescription:    req.ProjectDescription,
		SiteAddress:           req.SiteAddress,
		BuildingType:          req.BuildingType,
		BuildingSize:          req.BuildingSize,
		NumberOfFloors:        orDefault(req.NumberOfFloors, 1),
		NumberOfRooms:         orDefault(req.NumberOfRooms, 1),
		CablingType:           req.CablingType,
		WifiRequirements:      req.WifiRequirements,
		CCTVRequirements:      req.CCTVRequirements,
		DoorEntryRequirements: req.DoorEntryRequirements,
		SpecialRequirements:   req.SpecialRequirements,
		Status:                string(transport.QuoteStatusDraft),
		CustomerID:            req.CustomerID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, &quote); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.QuoteCreated{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     quote.ID,
		QuoteNumber: quote.QuoteNumber,
	})

	return toQuoteResponse(&quote), nil
}

// Get retrieves a quote by id
func (s *Service) Get(ctx context.Context, id int64) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// List retrieves quotes with filtering and pagination
func (s *Service) List(ctx context.Context, req transport.ListQuotesRequest) (*transport.QuoteListResponse, error) {
	params := repository.ListParams{
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      orDefault(req.Page, 1),
		PageSize:  orDefault(req.PageSize, 20),
	}
	if req.Status != "" {
		params.Status = &req.Status
	}
	if req.CustomerID != "" {
		customerID, err := parseID(req.CustomerID)
		if err != nil {
			return nil, err
		}
		params.CustomerID = &customerID
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.QuoteResponse, len(result.Items))
	for i := range result.Items {
		items[i] = *toQuoteResponse(&result.Items[i])
	}

	return &transport.QuoteListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update applies partial changes to a quote's client-editable fields
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateQuoteRequest) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&quote.ClientName, req.ClientName)
	applyOptional(&quote.ClientEmail, req.ClientEmail)
	if req.ClientPhone != nil {
		quote.ClientPhone = normalizePhone(req.ClientPhone)
	}
	applyString(&quote.ProjectTitle, req.ProjectTitle)
	applyOptional(&quote.ProjectDescription, req.ProjectDescription)
	applyString(&quote.SiteAddress, req.SiteAddress)
	applyOptional(&quote.BuildingType, req.BuildingType)
	if req.BuildingSize != nil {
		quote.BuildingSize = req.BuildingSize
	}
	if req.NumberOfFloors != nil {
		quote.NumberOfFloors = orDefault(*req.NumberOfFloors, 1)
	}
	if req.NumberOfRooms != nil {
		quote.NumberOfRooms = orDefault(*req.NumberOfRooms, 1)
	}
	applyOptional(&quote.CablingType, req.CablingType)
	if req.WifiRequirements != nil {
		quote.WifiRequirements = *req.WifiRequirements
	}
	if req.CCTVRequirements != nil {
		quote.CCTVRequirements = *req.CCTVRequirements
	}
	if req.DoorEntryRequirements != nil {
		quote.DoorEntryRequirements = *req.DoorEntryRequirements
	}
	applyOptional(&quote.SpecialRequirements, req.SpecialRequirements)
	if req.CustomerID != nil {
		quote.CustomerID = req.CustomerID
	}
	quote.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// UpdateStatus transitions a quote between lifecycle statuses
func (s *Service) UpdateStatus(ctx context.Context, id int64, req transport.UpdateQuoteStatusRequest) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := quote.Status
	if err := s.repo.UpdateStatus(ctx, id, string(req.Status)); err != nil {
		return nil, err
	}
	quote.Status = string(req.Status)

	if oldStatus != quote.Status {
		s.bus.Publish(ctx, events.QuoteStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   quote.ID,
			OldStatus: oldStatus,
			NewStatus: quote.Status,
		})
	}

	return toQuoteResponse(quote), nil
}

// Delete removes a quote
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func toQuoteResponse(q *repository.Quote) *transport.QuoteResponse {
	return &transport.QuoteResponse{
		ID:                    q.ID,
		QuoteNumber:           q.QuoteNumber,
		ClientName:            q.ClientName,
		ClientEmail:           q.ClientEmail,
		ClientPhone:           q.ClientPhone,
		ProjectTitle:          q.ProjectTitle,
		ProjectDescription:    q.ProjectDescription,
		SiteAddress:           q.SiteAddress,
		BuildingType:          q.BuildingType,
		BuildingSize:          q.BuildingSize,
		NumberOfFloors:        q.NumberOfFloors,
		NumberOfRooms:         q.NumberOfRooms,
		CablingType:           q.CablingType,
		WifiRequirements:      q.WifiRequirements,
		CCTVRequirements:      q.CCTVRequirements,
		DoorEntryRequirements: q.DoorEntryRequirements,
		SpecialRequirements:   q.SpecialRequirements,
		AIAnalysis:            q.AIAnalysis,
		RecommendedProducts:   q.RecommendedProducts,
		EstimatedTime:         q.EstimatedTime,
		EstimatedCost:         q.EstimatedCost,
		AlternativeSolutions:  q.AlternativeSolutions,
		ClarificationsLog:     q.ClarificationsLog,
		QuoteData:             q.QuoteData,
		LabourBreakdown:       q.LabourBreakdown,
		QuotationDetails:      q.QuotationDetails,
		Status:                q.Status,
		CustomerID:            q.CustomerID,
		CreatedAt:             q.CreatedAt,
		UpdatedAt:             q.UpdatedAt,
	}
}

// normalizePhone stores numbers in E.164 where possible; unparseable input is
// kept verbatim.
func normalizePhone(raw *string) *string {
	if raw == nil || *raw == "" {
		return raw
	}
	normalized := phone.NormalizeE164(*raw)
	return &normalized
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyOptional(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
