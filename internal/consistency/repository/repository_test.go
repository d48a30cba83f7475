package repository

import (
	"strings"
	"testing"
	"time"
)

func defaultBounds() SimilarityBounds {
	return SimilarityBounds{
		SizeTolerance:  0.2,
		RoomsTolerance: 0.5,
		RecencyWindow:  365 * 24 * time.Hour,
		Limit:          10,
	}
}

func TestSizeBoundsTwentyPercent(t *testing.T) {
	minSize, maxSize := SizeBounds(500, 0.2)
	if minSize != 400 || maxSize != 600 {
		t.Fatalf("expected 400..600, got %v..%v", minSize, maxSize)
	}
}

func TestRoomBoundsTruncatesAndClampsToOne(t *testing.T) {
	minRooms, maxRooms := RoomBounds(5, 0.5)
	if minRooms != 2 || maxRooms != 7 {
		t.Fatalf("expected 2..7 for 5 rooms, got %d..%d", minRooms, maxRooms)
	}

	minRooms, maxRooms = RoomBounds(1, 0.5)
	if minRooms != 1 || maxRooms != 1 {
		t.Fatalf("expected 1..1 for 1 room, got %d..%d", minRooms, maxRooms)
	}
}

func TestBuildSimilarityFilterCombinesCriteriaWithOr(t *testing.T) {
	size := 500.0
	buildingType := "office"
	target := &ComparableQuote{
		ID:            7,
		BuildingSize:  &size,
		NumberOfRooms: 10,
		BuildingType:  &buildingType,
	}

	clause, args := buildSimilarityFilter(target, defaultBounds(), time.Now())

	if !strings.Contains(clause, "id <> $1") {
		t.Fatalf("expected target exclusion, got %q", clause)
	}
	if !strings.Contains(clause, "status IN ('sent', 'accepted')") {
		t.Fatalf("expected status filter, got %q", clause)
	}
	if !strings.Contains(clause, " OR building_type ILIKE ") {
		t.Fatalf("expected OR-combined criteria, got %q", clause)
	}
	// id, recency cutoff, size min/max, rooms min/max, building type pattern
	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d: %v", len(args), args)
	}
	if args[6] != "%office%" {
		t.Fatalf("expected substring pattern, got %v", args[6])
	}
}

func TestBuildSimilarityFilterServiceFlagsOnlyWhenRequested(t *testing.T) {
	target := &ComparableQuote{ID: 1, NumberOfRooms: 4, WifiRequirements: true, CCTVRequirements: true}

	clause, _ := buildSimilarityFilter(target, defaultBounds(), time.Now())

	if !strings.Contains(clause, "wifi_requirements = TRUE OR cctv_requirements = TRUE") {
		t.Fatalf("expected OR-combined service filter, got %q", clause)
	}
	if strings.Contains(clause, "door_entry_requirements") {
		t.Fatalf("expected no door entry filter for target without it, got %q", clause)
	}
}

func TestBuildSimilarityFilterNoServiceFilterWithoutFlags(t *testing.T) {
	target := &ComparableQuote{ID: 1, NumberOfRooms: 4}

	clause, _ := buildSimilarityFilter(target, defaultBounds(), time.Now())

	if strings.Contains(clause, "requirements") {
		t.Fatalf("expected no service filter, got %q", clause)
	}
}

func TestBuildSimilarityFilterServiceFlagsAloneStillQuery(t *testing.T) {
	target := &ComparableQuote{ID: 3, CCTVRequirements: true}

	clause, args := buildSimilarityFilter(target, defaultBounds(), time.Now())

	if !strings.Contains(clause, "cctv_requirements = TRUE") {
		t.Fatalf("expected flag filter for flags-only target, got %q", clause)
	}
	if !strings.Contains(clause, "status IN ('sent', 'accepted')") {
		t.Fatalf("expected status filter retained, got %q", clause)
	}
	// id + recency cutoff only; the flag predicate carries no placeholder
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
}

func TestBuildSimilarityFilterEmptyForBareTarget(t *testing.T) {
	target := &ComparableQuote{ID: 1}

	clause, args := buildSimilarityFilter(target, defaultBounds(), time.Now())

	if clause != "" || args != nil {
		t.Fatalf("expected empty filter for target with no characteristics, got %q", clause)
	}
}
