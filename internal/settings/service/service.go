// Package service implements admin settings management.
package service

import (
	"context"
	"strconv"
	"time"

	"cablecrm_backend/internal/settings/repository"
	"cablecrm_backend/internal/settings/transport"
	"cablecrm_backend/platform/apperr"
)

// DayRateKey is the setting that holds the labour day rate in pounds per pair
// of engineers.
const DayRateKey = "day_rate"

// Service provides business logic for admin settings
type Service struct {
	repo *repository.Repository
}

// New creates a new settings service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a setting by key
func (s *Service) Get(ctx context.Context, key string) (*transport.SettingResponse, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// Set upserts a setting value. Numeric settings are validated before writing.
func (s *Service) Set(ctx context.Context, key string, req transport.UpdateSettingRequest) (*transport.SettingResponse, error) {
	if key == DayRateKey {
		rate, err := strconv.ParseFloat(req.Value, 64)
		if err != nil || rate <= 0 {
			return nil, apperr.Validation("day_rate must be a positive number")
		}
	}

	setting := repository.Setting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Set(ctx, &setting); err != nil {
		return nil, err
	}
	return toSettingResponse(&setting), nil
}

// List retrieves all settings
func (s *Service) List(ctx context.Context) (*transport.SettingListResponse, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]transport.SettingResponse, len(settings))
	for i := range settings {
		items[i] = *toSettingResponse(&settings[i])
	}
	return &transport.SettingListResponse{Items: items}, nil
}

// GetDayRate returns the configured labour day rate. The second return is
// false when the setting is absent or unparseable, letting callers fall back
// to their configured default.
func (s *Service) GetDayRate(ctx context.Context) (float64, bool) {
	setting, err := s.repo.Get(ctx, DayRateKey)
	if err != nil {
		return 0, false
	}
	rate, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil || rate <= 0 {
		return 0, false
	}
	return rate, true
}

func toSettingResponse(s *repository.Setting) *transport.SettingResponse {
	return &transport.SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt,
	}
}
