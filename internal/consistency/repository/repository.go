// Package repository provides the read-only quote queries backing the
// consistency engine.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cablecrm_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComparableQuote is the slice of a quote the consistency engine reads.
type ComparableQuote struct {
	ID                    int64
	QuoteNumber           string
	ClientName            string
	ProjectTitle          string
	BuildingType          *string
	BuildingSize          *float64
	NumberOfRooms         int
	WifiRequirements      bool
	CCTVRequirements      bool
	DoorEntryRequirements bool
	EstimatedCost         *float64
	QuoteData             *string
	LabourBreakdown       *string
	Status                string
	CreatedAt             time.Time
}

// SimilarityBounds are the tolerance windows applied when matching a target
// quote against history.
type SimilarityBounds struct {
	SizeTolerance  float64
	RoomsTolerance float64
	RecencyWindow  time.Duration
	Limit          int
}

const comparableColumns = `id, quote_number, client_name, project_title,
		building_type, building_size, number_of_rooms,
		wifi_requirements, cctv_requirements, door_entry_requirements,
		estimated_cost, quote_data, labour_breakdown, status, created_at`

// Repository provides read-only access to quotes for consistency analysis.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new consistency repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetQuote loads the target quote of an analysis.
func (r *Repository) GetQuote(ctx context.Context, id int64) (*ComparableQuote, error) {
	var q ComparableQuote
	query := `SELECT ` + comparableColumns + ` FROM quotes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&q)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &q, nil
}

// FindSimilar returns historical quotes comparable to the target, newest
// first. Similarity criteria are OR-combined so a quote matching on any
// dimension qualifies; service-requirement filters apply only when the target
// requests that service. A target with no usable criteria matches nothing.
func (r *Repository) FindSimilar(ctx context.Context, target *ComparableQuote, bounds SimilarityBounds) ([]ComparableQuote, error) {
	clause, args := buildSimilarityFilter(target, bounds, time.Now())
	if clause == "" {
		return nil, nil
	}

	query := `SELECT ` + comparableColumns + ` FROM quotes ` + clause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", bounds.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find similar quotes: %w", err)
	}
	defer rows.Close()

	return collectComparables(rows)
}

// ListRecent returns sent/accepted quotes created within the window, newest
// first, for the comparison report.
func (r *Repository) ListRecent(ctx context.Context, window time.Duration, limit int) ([]ComparableQuote, error) {
	query := `SELECT ` + comparableColumns + ` FROM quotes
		WHERE created_at >= $1 AND status IN ('sent', 'accepted')
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, time.Now().Add(-window), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent quotes: %w", err)
	}
	defer rows.Close()

	return collectComparables(rows)
}

// buildSimilarityFilter renders the WHERE clause of the similarity query.
// Returns an empty clause when the target carries no matchable
// characteristics.
func buildSimilarityFilter(target *ComparableQuote, bounds SimilarityBounds, now time.Time) (string, []interface{}) {
	args := []interface{}{target.ID, now.Add(-bounds.RecencyWindow)}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var criteria []string

	if target.BuildingSize != nil && *target.BuildingSize > 0 {
		minSize, maxSize := SizeBounds(*target.BuildingSize, bounds.SizeTolerance)
		criteria = append(criteria, fmt.Sprintf(
			"(building_size >= %s AND building_size <= %s)", next(minSize), next(maxSize)))
	}

	if target.NumberOfRooms > 0 {
		minRooms, maxRooms := RoomBounds(target.NumberOfRooms, bounds.RoomsTolerance)
		criteria = append(criteria, fmt.Sprintf(
			"(number_of_rooms >= %s AND number_of_rooms <= %s)", next(minRooms), next(maxRooms)))
	}

	if target.BuildingType != nil && *target.BuildingType != "" {
		criteria = append(criteria, fmt.Sprintf("building_type ILIKE %s", next("%"+*target.BuildingType+"%")))
	}

	var services []string
	if target.WifiRequirements {
		services = append(services, "wifi_requirements = TRUE")
	}
	if target.CCTVRequirements {
		services = append(services, "cctv_requirements = TRUE")
	}
	if target.DoorEntryRequirements {
		services = append(services, "door_entry_requirements = TRUE")
	}

	if len(criteria) == 0 && len(services) == 0 {
		return "", nil
	}

	clause := "WHERE id <> $1 AND created_at >= $2 AND status IN ('sent', 'accepted')"
	if len(criteria) > 0 {
		clause += " AND (" + strings.Join(criteria, " OR ") + ")"
	}
	if len(services) > 0 {
		clause += " AND (" + strings.Join(services, " OR ") + ")"
	}
	return clause, args
}

// SizeBounds is the ± tolerance window around a building size.
func SizeBounds(size, tolerance float64) (float64, float64) {
	return size * (1 - tolerance), size * (1 + tolerance)
}

// RoomBounds is the tolerance window around a room count. The lower bound is
// truncated and clamped to at least one room.
func RoomBounds(rooms int, tolerance float64) (int, int) {
	minRooms := int(float64(rooms) * (1 - tolerance))
	if minRooms < 1 {
		minRooms = 1
	}
	maxRooms := int(float64(rooms) * (1 + tolerance))
	return minRooms, maxRooms
}

func collectComparables(rows pgx.Rows) ([]ComparableQuote, error) {
	var items []ComparableQuote
	for rows.Next() {
		var q ComparableQuote
		if err := rows.Scan(scanTargets(&q)...); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return items, nil
}

func scanTargets(q *ComparableQuote) []interface{} {
	return []interface{}{
		&q.ID, &q.QuoteNumber, &q.ClientName, &q.ProjectTitle,
		&q.BuildingType, &q.BuildingSize, &q.NumberOfRooms,
		&q.WifiRequirements, &q.CCTVRequirements, &q.DoorEntryRequirements,
		&q.EstimatedCost, &q.QuoteData, &q.LabourBreakdown, &q.Status, &q.CreatedAt,
	}
}
