// Package service implements customer book management.
package service

import (
	"context"
	"time"

	"cablecrm_backend/internal/customers/repository"
	"cablecrm_backend/internal/customers/transport"
	"cablecrm_backend/platform/phone"
)

// Service provides business logic for customers
type Service struct {
	repo *repository.Repository
}

// New creates a new customers service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new customer, normalizing the phone number to E.164.
func (s *Service) Create(ctx context.Context, req transport.CreateCustomerRequest) (*transport.CustomerResponse, error) {
	now := time.Now()
	customer := repository.Customer{
		CompanyName:     req.CompanyName,
		ContactName:     req.ContactName,
		MainEmail:       req.MainEmail,
		MainPhone:       normalizePhone(req.MainPhone),
		Website:         req.Website,
		BillingAddress:  req.BillingAddress,
		BillingPostcode: req.BillingPostcode,
		Status:          string(transport.CustomerStatusProspect),
		Source:          req.Source,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, &customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(&customer), nil
}

// Get retrieves a customer by id
func (s *Service) Get(ctx context.Context, id int64) (*transport.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List retrieves customers with filtering and pagination
func (s *Service) List(ctx context.Context, req transport.ListCustomersRequest) (*transport.CustomerListResponse, error) {
	params := repository.ListParams{
		Search:   req.Search,
		Page:     orDefault(req.Page, 1),
		PageSize: orDefault(req.PageSize, 20),
	}
	if req.Status != "" {
		params.Status = &req.Status
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.CustomerResponse, len(result.Items))
	for i := range result.Items {
		items[i] = *toCustomerResponse(&result.Items[i])
	}

	return &transport.CustomerListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Update applies partial changes to a customer
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateCustomerRequest) (*transport.CustomerResponse, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	applyOptional(&customer.ContactName, req.ContactName)
	applyOptional(&customer.MainEmail, req.MainEmail)
	if req.MainPhone != nil {
		customer.MainPhone = normalizePhone(req.MainPhone)
	}
	applyOptional(&customer.Website, req.Website)
	applyOptional(&customer.BillingAddress, req.BillingAddress)
	applyOptional(&customer.BillingPostcode, req.BillingPostcode)
	if req.Status != nil {
		customer.Status = string(*req.Status)
	}
	applyOptional(&customer.Source, req.Source)
	applyOptional(&customer.Notes, req.Notes)
	customer.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete removes a customer
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func toCustomerResponse(c *repository.Customer) *transport.CustomerResponse {
	return &transport.CustomerResponse{
		ID:              c.ID,
		CompanyName:     c.CompanyName,
		ContactName:     c.ContactName,
		MainEmail:       c.MainEmail,
		MainPhone:       c.MainPhone,
		Website:         c.Website,
		BillingAddress:  c.BillingAddress,
		BillingPostcode: c.BillingPostcode,
		Status:          c.Status,
		Source:          c.Source,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
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
