package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cablecrm_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// Quote is the database model for a cabling quote. The AI columns hold JSON
// text blobs written back by the analysis pipeline; they stay text so the
// stored payloads round-trip unmodified.
type Quote struct {
	ID                    int64      `db:"id"`
	QuoteNumber           string     `db:"quote_number"`
	ClientName            string     `db:"client_name"`
	ClientEmail           *string    `db:"client_email"`
	ClientPhone           *string    `db:"client_phone"`
	ProjectTitle          string     `db:"project_title"`
	ProjectDescription    *string    `db:"project_description"`
	SiteAddress           string     `db:"site_address"`
	BuildingType          *string    `db:"building_type"`
	BuildingSize          *float64   `db:"building_size"`
	NumberOfFloors        int        `db:"number_of_floors"`
	NumberOfRooms         int        `db:"number_of_rooms"`
	CablingType           *string    `db:"cabling_type"`
	WifiRequirements      bool       `db:"wifi_requirements"`
	CCTVRequirements      bool       `db:"cctv_requirements"`
	DoorEntryRequirements bool       `db:"door_entry_requirements"`
	SpecialRequirements   *string    `db:"special_requirements"`
	AIAnalysis            *string    `db:"ai_analysis"`
	RecommendedProducts   *string    `db:"recommended_products"`
	EstimatedTime         *int       `db:"estimated_time"`
	EstimatedCost         *float64   `db:"estimated_cost"`
	AlternativeSolutions  *string    `db:"alternative_solutions"`
	ClarificationsLog     *string    `db:"clarifications_log"`
	AIRawResponse         *string    `db:"ai_raw_response"`
	QuoteData             *string    `db:"quote_data"`
	LabourBreakdown       *string    `db:"labour_breakdown"`
	QuotationDetails      *string    `db:"quotation_details"`
	Status                string     `db:"status"`
	CustomerID            *int64     `db:"customer_id"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

// AnalysisColumns carries the AI write-back columns stored after a completed
// quote analysis.
type AnalysisColumns struct {
	AIAnalysis           *string
	RecommendedProducts  *string
	EstimatedTime        *int
	EstimatedCost        *float64
	AlternativeSolutions *string
	LabourBreakdown      *string
	QuotationDetails     *string
	ClarificationsLog    *string
	AIRawResponse        *string
}

// ListParams contains parameters for listing quotes
type ListParams struct {
	Status     *string
	CustomerID *int64
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// ListResult contains the paginated result of listing quotes
type ListResult struct {
	Items      []Quote
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ── Repository ────────────────────────────────────────────────────────────────

const quoteNotFoundMsg = "quote not found"

const quoteColumns = `id, quote_number, client_name, client_email, client_phone,
		project_title, project_description, site_address, building_type, building_size,
		number_of_floors, number_of_rooms, cabling_type,
		wifi_requirements, cctv_requirements, door_entry_requirements, special_requirements,
		ai_analysis, recommended_products, estimated_time, estimated_cost,
		alternative_solutions, clarifications_log, ai_raw_response,
		quote_data, labour_breakdown, quotation_details,
		status, customer_id, created_at, updated_at`

// Repository provides database operations for quotes
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NextQuoteNumber atomically generates the next quote number within the
// current year.
func (r *Repository) NextQuoteNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()

	var nextNum int
	query := `
		INSERT INTO quote_counters (year, last_number)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_number = quote_counters.last_number + 1
		RETURNING last_number`

	if err := r.pool.QueryRow(ctx, query, year).Scan(&nextNum); err != nil {
		return "", fmt.Errorf("failed to generate quote number: %w", err)
	}

	return fmt.Sprintf("CQ-%d-%04d", year, nextNum), nil
}

// Create inserts a quote and returns it with its generated id.
func (r *Repository) Create(ctx context.Context, q *Quote) error {
	query := `
		INSERT INTO quotes (
			quote_number, client_name, client_email, client_phone,
			project_title, project_description, site_address, building_type, building_size,
			number_of_floors, number_of_rooms, cabling_type,
			wifi_requirements, cctv_requirements, door_entry_requirements, special_requirements,
			status, customer_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		q.QuoteNumber, q.ClientName, q.ClientEmail, q.ClientPhone,
		q.ProjectTitle, q.ProjectDescription, q.SiteAddress, q.BuildingType, q.BuildingSize,
		q.NumberOfFloors, q.NumberOfRooms, q.CablingType,
		q.WifiRequirements, q.CCTVRequirements, q.DoorEntryRequirements, q.SpecialRequirements,
		q.Status, q.CustomerID, q.CreatedAt, q.UpdatedAt,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// GetByID retrieves a quote by its id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Quote, error) {
	var q Quote
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&q)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &q, nil
}

// Update rewrites the client-editable quote fields.
func (r *Repository) Update(ctx context.Context, q *Quote) error {
	query := `
		UPDATE quotes SET
			client_name = $2, client_email = $3, client_phone = $4,
			project_title = $5, project_description = $6, site_address = $7,
			building_type = $8, building_size = $9,
			number_of_floors = $10, number_of_rooms = $11, cabling_type = $12,
			wifi_requirements = $13, cctv_requirements = $14, door_entry_requirements = $15,
			special_requirements = $16, customer_id = $17, updated_at = $18
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		q.ID, q.ClientName, q.ClientEmail, q.ClientPhone,
		q.ProjectTitle, q.ProjectDescription, q.SiteAddress,
		q.BuildingType, q.BuildingSize,
		q.NumberOfFloors, q.NumberOfRooms, q.CablingType,
		q.WifiRequirements, q.CCTVRequirements, q.DoorEntryRequirements,
		q.SpecialRequirements, q.CustomerID, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// UpdateStatus updates the status of a quote
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// StoreAnalysis writes the AI analysis columns back onto the quote.
func (r *Repository) StoreAnalysis(ctx context.Context, id int64, cols AnalysisColumns) error {
	query := `
		UPDATE quotes SET
			ai_analysis = $2, recommended_products = $3, estimated_time = $4,
			estimated_cost = $5, alternative_solutions = $6,
			labour_breakdown = $7, quotation_details = $8,
			clarifications_log = $9, ai_raw_response = $10, updated_at = $11
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		id, cols.AIAnalysis, cols.RecommendedProducts, cols.EstimatedTime,
		cols.EstimatedCost, cols.AlternativeSolutions,
		cols.LabourBreakdown, cols.QuotationDetails,
		cols.ClarificationsLog, cols.AIRawResponse, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to store quote analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// UpdateQuoteData rewrites the consolidated pricing blob.
func (r *Repository) UpdateQuoteData(ctx context.Context, id int64, quoteData *string) error {
	query := `UPDATE quotes SET quote_data = $2, updated_at = $3 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, quoteData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update quote data: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// Delete removes a quote
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// List retrieves quotes with filtering and pagination
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	sortBy, err := resolveSortBy(params.SortBy)
	if err != nil {
		return nil, err
	}
	sortOrder, err := resolveSortOrder(params.SortOrder)
	if err != nil {
		return nil, err
	}

	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	var customerParam interface{}
	if params.CustomerID != nil {
		customerParam = *params.CustomerID
	}

	baseQuery := `
		FROM quotes
		WHERE ($1::bigint IS NULL OR customer_id = $1)
			AND ($2::text IS NULL OR status = $2)
			AND ($3::text IS NULL OR quote_number ILIKE $3 OR client_name ILIKE $3 OR project_title ILIKE $3)
	`
	args := []interface{}{customerParam, statusParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `SELECT ` + quoteColumns + baseQuery + `
		ORDER BY
			CASE WHEN $4 = 'quoteNumber' AND $5 = 'asc' THEN quote_number END ASC,
			CASE WHEN $4 = 'quoteNumber' AND $5 = 'desc' THEN quote_number END DESC,
			CASE WHEN $4 = 'status' AND $5 = 'asc' THEN status END ASC,
			CASE WHEN $4 = 'status' AND $5 = 'desc' THEN status END DESC,
			CASE WHEN $4 = 'clientName' AND $5 = 'asc' THEN client_name END ASC,
			CASE WHEN $4 = 'clientName' AND $5 = 'desc' THEN client_name END DESC,
			CASE WHEN $4 = 'createdAt' AND $5 = 'asc' THEN created_at END ASC,
			CASE WHEN $4 = 'createdAt' AND $5 = 'desc' THEN created_at END DESC,
			CASE WHEN $4 = 'updatedAt' AND $5 = 'asc' THEN updated_at END ASC,
			CASE WHEN $4 = 'updatedAt' AND $5 = 'desc' THEN updated_at END DESC,
			created_at DESC
		LIMIT $6 OFFSET $7`

	args = append(args, sortBy, sortOrder, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var items []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(scanTargets(&q)...); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func scanTargets(q *Quote) []interface{} {
	return []interface{}{
		&q.ID, &q.QuoteNumber, &q.ClientName, &q.ClientEmail, &q.ClientPhone,
		&q.ProjectTitle, &q.ProjectDescription, &q.SiteAddress, &q.BuildingType, &q.BuildingSize,
		&q.NumberOfFloors, &q.NumberOfRooms, &q.CablingType,
		&q.WifiRequirements, &q.CCTVRequirements, &q.DoorEntryRequirements, &q.SpecialRequirements,
		&q.AIAnalysis, &q.RecommendedProducts, &q.EstimatedTime, &q.EstimatedCost,
		&q.AlternativeSolutions, &q.ClarificationsLog, &q.AIRawResponse,
		&q.QuoteData, &q.LabourBreakdown, &q.QuotationDetails,
		&q.Status, &q.CustomerID, &q.CreatedAt, &q.UpdatedAt,
	}
}

func resolveSortBy(sortBy string) (string, error) {
	if sortBy == "" {
		return "createdAt", nil
	}
	switch sortBy {
	case "quoteNumber", "status", "clientName", "createdAt", "updatedAt":
		return sortBy, nil
	default:
		return "", apperr.BadRequest("invalid sort field")
	}
}

func resolveSortOrder(sortOrder string) (string, error) {
	if sortOrder == "" {
		return "desc", nil
	}
	switch sortOrder {
	case "asc", "desc":
		return sortOrder, nil
	default:
		return "", apperr.BadRequest("invalid sort order")
	}
}
