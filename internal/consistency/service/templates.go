package service

import (
	"context"
	"time"

	"cablecrm_backend/internal/consistency/transport"
	"cablecrm_backend/platform/apperr"
)

const (
	outletsPerRoom = 2
	sqmPerAP       = 100
	hoursPerDay    = 8
)

// pricingTemplates are the standard per-building-type references. They are
// advisory figures: applying one never writes anything back to the quote.
var pricingTemplates = map[string]transport.PricingTemplate{
	"office_refurbishment": {
		MaterialsPerSqm:  25.0,
		LaborPerOutlet:   0.4,
		TestingPerOutlet: 0.1,
		WifiPerAP:        2.0,
		Description:      "Standard office refurbishment pricing",
	},
	"new_build": {
		MaterialsPerSqm:  30.0,
		LaborPerOutlet:   0.3,
		TestingPerOutlet: 0.1,
		WifiPerAP:        1.5,
		Description:      "New build construction pricing",
	},
	"retail_space": {
		MaterialsPerSqm:  20.0,
		LaborPerOutlet:   0.5,
		TestingPerOutlet: 0.1,
		WifiPerAP:        2.5,
		Description:      "Retail space pricing (higher labor due to access challenges)",
	},
	"industrial": {
		MaterialsPerSqm:  35.0,
		LaborPerOutlet:   0.6,
		TestingPerOutlet: 0.15,
		WifiPerAP:        3.0,
		Description:      "Industrial environment pricing (higher materials and labor)",
	},
}

// Templates returns the standard pricing templates.
func (s *Service) Templates() map[string]transport.PricingTemplate {
	return pricingTemplates
}

// ApplyTemplate produces a reference costing for a quote from a standard
// template. Labor is derived from outlet counts (two per room) plus one
// access point per 100 sqm when wifi is requested.
func (s *Service) ApplyTemplate(ctx context.Context, quoteID int64, templateName string) (*transport.TemplateResult, error) {
	quote, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	template, ok := pricingTemplates[templateName]
	if !ok {
		return nil, apperr.BadRequest("unknown pricing template")
	}
	if quote.BuildingSize == nil || *quote.BuildingSize <= 0 {
		return nil, apperr.BadRequest("quote has no building size")
	}

	dayRate := s.cfg.GetDefaultDayRate()
	if s.dayRates != nil {
		if rate, ok := s.dayRates.GetDayRate(ctx); ok && rate > 0 {
			dayRate = rate
		}
	}

	materialsCost, laborHours, laborCost := templateCosting(
		template, *quote.BuildingSize, quote.NumberOfRooms, quote.WifiRequirements, dayRate)

	return &transport.TemplateResult{
		TemplateName:        templateName,
		TemplateDescription: template.Description,
		MaterialsCost:       materialsCost,
		LaborHours:          laborHours,
		LaborCost:           laborCost,
		TotalCost:           materialsCost + laborCost,
		AppliedAt:           time.Now().UTC().Format(time.RFC3339),
		Note:                "This is a reference template - use AI analysis and real-time pricing for final quote",
	}, nil
}

func templateCosting(template transport.PricingTemplate, size float64, rooms int, wifi bool, dayRate float64) (materialsCost, laborHours, laborCost float64) {
	materialsCost = size * template.MaterialsPerSqm

	outletCount := float64(rooms * outletsPerRoom)
	laborHours = outletCount*template.LaborPerOutlet + outletCount*template.TestingPerOutlet

	if wifi {
		apCount := int(size / sqmPerAP)
		if apCount < 1 {
			apCount = 1
		}
		laborHours += float64(apCount) * template.WifiPerAP
	}

	laborCost = laborHours / hoursPerDay * dayRate
	return materialsCost, laborHours, laborCost
}
