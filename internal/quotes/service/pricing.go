package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"cablecrm_backend/internal/quotes/agent"
)

// QuotePricing is the consolidated pricing blob stored in the quote_data
// column. The shape matches the legacy store byte for byte.
type QuotePricing struct {
	Materials      []PricingLine `json:"materials"`
	Labor          []PricingLine `json:"labor"`
	TotalMaterials float64       `json:"total_materials"`
	TotalLabor     float64       `json:"total_labor"`
	TotalCost      float64       `json:"total_cost"`
}

// PricingLine is one priced row in the materials or labor section.
type PricingLine struct {
	Item          string  `json:"item"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	UnitPrice     float64 `json:"unit_price"`
	Total         float64 `json:"total"`
	PartNumber    string  `json:"part_number,omitempty"`
	PricingSource string  `json:"pricing_source,omitempty"`
	IsEstimated   bool    `json:"is_estimated,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// buildQuotePricing rolls a parsed analysis into a priced breakdown: labour
// tasks collapse to a single project-labour line billed in half-day
// increments, and each recommended product gets a unit price from the model,
// the pricing catalog, or the built-in estimate table, in that order.
func (s *Service) buildQuotePricing(ctx context.Context, result agent.AnalysisResult) QuotePricing {
	pricing := QuotePricing{
		Materials: []PricingLine{},
		Labor:     []PricingLine{},
	}

	s.rollUpLabour(&pricing, result.LabourBreakdown)
	s.priceMaterials(ctx, &pricing, result.Products)

	pricing.TotalCost = pricing.TotalLabor + pricing.TotalMaterials
	return pricing
}

func (s *Service) rollUpLabour(pricing *QuotePricing, lines []agent.LabourLine) {
	var totalHours, dayRate float64
	for _, line := range lines {
		if line.DayRate > 0 && dayRate == 0 {
			dayRate = line.DayRate
		}
		if line.Days > 0 {
			totalHours += line.Days * 8
		} else if line.Hours > 0 {
			totalHours += line.Hours
		}
	}

	if totalHours > 0 && dayRate > 0 {
		// Bill in half-day increments, minimum half a day.
		days := math.Max(0.5, math.Round(totalHours/8*2)/2)
		cost := days * dayRate
		pricing.Labor = append(pricing.Labor, PricingLine{
			Item:      "Project Labour (All Tasks)",
			Quantity:  days,
			Unit:      "days",
			UnitPrice: dayRate,
			Total:     cost,
			Notes:     fmt.Sprintf("Total project time: %.1f hours rounded to %g days", totalHours, days),
		})
		pricing.TotalLabor = cost
		return
	}

	// No usable rollup: fall back to per-task costs.
	for _, line := range lines {
		var cost float64
		switch {
		case line.Cost > 0:
			cost = line.Cost
		case line.Days > 0 && line.DayRate > 0:
			cost = line.Days * line.DayRate
		default:
			continue
		}

		quantity := line.Days
		if quantity == 0 {
			quantity = 1
		}
		unitPrice := line.DayRate
		if unitPrice == 0 {
			unitPrice = cost
		}

		task := line.Task
		if task == "" {
			task = "Labour"
		}
		pricing.Labor = append(pricing.Labor, PricingLine{
			Item:      task,
			Quantity:  quantity,
			Unit:      "days",
			UnitPrice: unitPrice,
			Total:     cost,
		})
		pricing.TotalLabor += cost
	}
}

func (s *Service) priceMaterials(ctx context.Context, pricing *QuotePricing, products []agent.Product) {
	for _, product := range products {
		quantity := product.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		unit := product.Unit
		if unit == "" {
			unit = "each"
		}

		if product.UnitPrice > 0 && product.TotalPrice > 0 {
			pricing.Materials = append(pricing.Materials, PricingLine{
				Item:          product.Item,
				Quantity:      quantity,
				Unit:          unit,
				UnitPrice:     product.UnitPrice,
				Total:         product.TotalPrice,
				PartNumber:    product.PartNumber,
				PricingSource: "ai_estimated",
				IsEstimated:   true,
			})
			pricing.TotalMaterials += product.TotalPrice
			continue
		}

		unitPrice, source := s.resolveUnitPrice(ctx, product.Item)
		total := quantity * unitPrice
		pricing.Materials = append(pricing.Materials, PricingLine{
			Item:          product.Item,
			Quantity:      quantity,
			Unit:          unit,
			UnitPrice:     unitPrice,
			Total:         total,
			PartNumber:    product.PartNumber,
			PricingSource: source,
			IsEstimated:   source == "estimated",
		})
		pricing.TotalMaterials += total
	}
}

func (s *Service) resolveUnitPrice(ctx context.Context, productName string) (float64, string) {
	if s.prices != nil {
		price, found, err := s.prices.FindUnitPrice(ctx, productName)
		if err != nil {
			s.log.Warn("pricing catalog lookup failed", "product", productName, "error", err)
		} else if found && price > 0 {
			return price, "database"
		}
	}
	return fallbackUnitPrice(productName), "estimated"
}

// fallbackUnitPrice carries realistic GBP ballpark prices for the common
// product families so an unpriced line never zeroes out a quote.
func fallbackUnitPrice(productName string) float64 {
	name := strings.ToLower(productName)

	switch {
	case strings.Contains(name, "dream machine"):
		if strings.Contains(name, "pro") {
			return 279
		}
		return 199
	case strings.Contains(name, "u7-pro"):
		return 167
	case strings.Contains(name, "u6-pro"):
		return 125
	case strings.Contains(name, "u6-lite"):
		return 89
	case strings.Contains(name, "g5-bullet"):
		return 179
	case strings.Contains(name, "g5-dome"):
		return 199
	case strings.Contains(name, "g6"):
		return 149
	case strings.Contains(name, "nvr"):
		return 399
	case strings.Contains(name, "switch") && strings.Contains(name, "poe"):
		switch {
		case strings.Contains(name, "48"):
			return 899
		case strings.Contains(name, "24"):
			return 399
		default:
			return 299
		}
	case strings.Contains(name, "switch"):
		switch {
		case strings.Contains(name, "48"):
			return 299
		case strings.Contains(name, "24"):
			return 199
		default:
			return 149
		}
	case strings.Contains(name, "cat6") && strings.Contains(name, "cable"):
		return 45 // per 305m reel
	case strings.Contains(name, "patch panel"):
		switch {
		case strings.Contains(name, "48"):
			return 35
		case strings.Contains(name, "24"):
			return 25
		default:
			return 20
		}
	case strings.Contains(name, "keystone"):
		return 3
	case strings.Contains(name, "faceplate"):
		return 2
	case strings.Contains(name, "patch lead"), strings.Contains(name, "patch cable"):
		return 5
	case strings.Contains(name, "om4") && strings.Contains(name, "cable"):
		return 8 // per meter
	case strings.Contains(name, "sfp"):
		return 25
	case strings.Contains(name, "pdu"):
		return 89
	case strings.Contains(name, "rack"):
		return 199
	case strings.Contains(name, "consumables"):
		return 50
	default:
		return 25
	}
}
