// Package service implements the material pricing catalog.
package service

import (
	"context"
	"time"

	"cablecrm_backend/internal/pricing/repository"
	"cablecrm_backend/internal/pricing/transport"
	"cablecrm_backend/platform/apperr"
)

const defaultSource = "manual"

// Service provides business logic for the pricing catalog
type Service struct {
	repo *repository.Repository
}

// New creates a new pricing service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a catalog entry
func (s *Service) Create(ctx context.Context, req transport.CreatePricingItemRequest) (*transport.PricingItemResponse, error) {
	item := repository.PricingItem{
		Category:    req.Category,
		Subcategory: req.Subcategory,
		ProductName: req.ProductName,
		Description: req.Description,
		Unit:        req.Unit,
		CostPerUnit: req.CostPerUnit,
		Supplier:    req.Supplier,
		PartNumber:  req.PartNumber,
		Source:      orDefault(req.Source, defaultSource),
		LastUpdated: time.Now(),
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return toItemResponse(&item), nil
}

// Get retrieves a catalog entry by id
func (s *Service) Get(ctx context.Context, id int64) (*transport.PricingItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List retrieves catalog entries with filtering and pagination
func (s *Service) List(ctx context.Context, req transport.ListPricingItemsRequest) (*transport.PricingItemListResponse, error) {
	params := repository.ListParams{
		Search:   req.Search,
		Page:     orDefaultInt(req.Page, 1),
		PageSize: orDefaultInt(req.PageSize, 20),
	}
	if req.Category != "" {
		params.Category = &req.Category
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.PricingItemResponse, len(result.Items))
	for i := range result.Items {
		items[i] = *toItemResponse(&result.Items[i])
	}

	return &transport.PricingItemListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update applies partial changes to a catalog entry
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdatePricingItemRequest) (*transport.PricingItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Subcategory != nil {
		item.Subcategory = req.Subcategory
	}
	if req.ProductName != nil {
		item.ProductName = *req.ProductName
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.CostPerUnit != nil {
		item.CostPerUnit = *req.CostPerUnit
	}
	if req.Supplier != nil {
		item.Supplier = req.Supplier
	}
	if req.PartNumber != nil {
		item.PartNumber = req.PartNumber
	}
	if req.Source != nil {
		item.Source = *req.Source
	}
	item.LastUpdated = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete removes a catalog entry
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// FindUnitPrice looks up a unit price by product name. A missing entry is not
// an error: the second return reports whether the catalog had a match.
func (s *Service) FindUnitPrice(ctx context.Context, productName string) (float64, bool, error) {
	item, err := s.repo.FindByName(ctx, productName)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return item.CostPerUnit, true, nil
}

func toItemResponse(item *repository.PricingItem) *transport.PricingItemResponse {
	return &transport.PricingItemResponse{
		ID:          item.ID,
		Category:    item.Category,
		Subcategory: item.Subcategory,
		ProductName: item.ProductName,
		Description: item.Description,
		Unit:        item.Unit,
		CostPerUnit: item.CostPerUnit,
		Supplier:    item.Supplier,
		PartNumber:  item.PartNumber,
		Source:      item.Source,
		LastUpdated: item.LastUpdated,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
