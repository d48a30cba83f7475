package agent

// EstimateBasicHours is the deterministic fallback when the AI completion
// carries no usable time estimate. Hours are additive per requested system
// and scale with building size, capped at 4x the base figure.
func EstimateBasicHours(quote QuoteContext) int {
	hours := 8.0

	if quote.WifiRequirements {
		hours += 4
	}
	if quote.CCTVRequirements {
		hours += 6
	}
	if quote.DoorEntryRequirements {
		hours += 3
	}

	if quote.BuildingSize != nil && *quote.BuildingSize > 0 {
		sizeFactor := *quote.BuildingSize / 100
		if sizeFactor > 3 {
			sizeFactor = 3
		}
		hours *= 1 + sizeFactor
	}

	return int(hours)
}
