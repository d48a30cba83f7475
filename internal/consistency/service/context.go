package service

import (
	"context"
	"fmt"
	"strings"
)

// BuildAIContext renders the historical-pricing context block appended to
// quote-analysis prompts. Returns an empty string when the quote has no
// comparable history; failures degrade to an empty context rather than
// blocking prompt assembly.
func (s *Service) BuildAIContext(ctx context.Context, quoteID int64) string {
	target, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		s.log.Warn("consistency context unavailable", "quote_id", quoteID, "error", err)
		return ""
	}

	similar, err := s.repo.FindSimilar(ctx, target, s.similarityBounds())
	if err != nil {
		s.log.Warn("consistency context unavailable", "quote_id", quoteID, "error", err)
		return ""
	}
	if len(similar) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("**HISTORICAL CONTEXT:**\n")
	fmt.Fprintf(&b, "Found %d similar projects in the last 12 months:\n", len(similar))

	var totalCosts, buildingSizes []float64
	for i := range similar {
		if similar[i].EstimatedCost != nil && *similar[i].EstimatedCost > 0 {
			totalCosts = append(totalCosts, *similar[i].EstimatedCost)
		}
		if similar[i].BuildingSize != nil && *similar[i].BuildingSize > 0 {
			buildingSizes = append(buildingSizes, *similar[i].BuildingSize)
		}
	}

	if len(totalCosts) > 0 {
		fmt.Fprintf(&b, "- Average project cost: £%.0f\n", mean(totalCosts))
	}
	if len(buildingSizes) > 0 {
		fmt.Fprintf(&b, "- Average building size: %.0f sqm\n", mean(buildingSizes))
	}

	// FindSimilar returns newest first, so the head is the most recent.
	for i := 0; i < len(similar) && i < 2; i++ {
		recent := similar[i]
		if recent.EstimatedCost != nil {
			fmt.Fprintf(&b, "- Recent: %s (%s) - £%.0f\n", recent.ProjectTitle, recent.ClientName, *recent.EstimatedCost)
		} else {
			fmt.Fprintf(&b, "- Recent: %s (%s)\n", recent.ProjectTitle, recent.ClientName)
		}
	}

	b.WriteString("\n**CONSISTENCY GUIDELINES:**\n")
	b.WriteString("- Ensure pricing aligns with historical averages (±20% is acceptable)\n")
	b.WriteString("- Use similar material specifications for comparable projects\n")
	b.WriteString("- Maintain consistent labor hour estimates for similar work types\n")
	b.WriteString("- Flag any significant deviations from historical patterns")

	return b.String()
}
