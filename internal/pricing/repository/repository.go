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

// PricingItem is the database model for a catalog entry.
type PricingItem struct {
	ID          int64     `db:"id"`
	Category    string    `db:"category"`
	Subcategory *string   `db:"subcategory"`
	ProductName string    `db:"product_name"`
	Description *string   `db:"description"`
	Unit        string    `db:"unit"`
	CostPerUnit float64   `db:"cost_per_unit"`
	Supplier    *string   `db:"supplier"`
	PartNumber  *string   `db:"part_number"`
	Source      string    `db:"source"`
	LastUpdated time.Time `db:"last_updated"`
}

// ListParams contains parameters for listing pricing items
type ListParams struct {
	Category *string
	Search   string
	Page     int
	PageSize int
}

// ListResult contains the paginated result of listing pricing items
type ListResult struct {
	Items      []PricingItem
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

const itemNotFoundMsg = "pricing item not found"

const itemColumns = `id, category, subcategory, product_name, description, unit,
		cost_per_unit, supplier, part_number, source, last_updated`

// Repository provides database operations for the pricing catalog
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new pricing repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a catalog entry and returns it with its generated id.
func (r *Repository) Create(ctx context.Context, item *PricingItem) error {
	query := `
		INSERT INTO pricing_items (
			category, subcategory, product_name, description, unit,
			cost_per_unit, supplier, part_number, source, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		item.Category, item.Subcategory, item.ProductName, item.Description, item.Unit,
		item.CostPerUnit, item.Supplier, item.PartNumber, item.Source, item.LastUpdated,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert pricing item: %w", err)
	}
	return nil
}

// GetByID retrieves a catalog entry by its id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*PricingItem, error) {
	var item PricingItem
	query := `SELECT ` + itemColumns + ` FROM pricing_items WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&item)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(itemNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get pricing item: %w", err)
	}
	return &item, nil
}

// Update rewrites a catalog entry's fields.
func (r *Repository) Update(ctx context.Context, item *PricingItem) error {
	query := `
		UPDATE pricing_items SET
			category = $2, subcategory = $3, product_name = $4, description = $5,
			unit = $6, cost_per_unit = $7, supplier = $8, part_number = $9,
			source = $10, last_updated = $11
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		item.ID, item.Category, item.Subcategory, item.ProductName, item.Description,
		item.Unit, item.CostPerUnit, item.Supplier, item.PartNumber,
		item.Source, item.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update pricing item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMsg)
	}
	return nil
}

// Delete removes a catalog entry.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM pricing_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pricing item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMsg)
	}
	return nil
}

// List retrieves catalog entries with filtering and pagination
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var categoryParam interface{}
	if params.Category != nil {
		categoryParam = *params.Category
	}

	baseQuery := `
		FROM pricing_items
		WHERE ($1::text IS NULL OR category = $1)
			AND ($2::text IS NULL OR product_name ILIKE $2 OR description ILIKE $2 OR part_number ILIKE $2)
	`
	args := []interface{}{categoryParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count pricing items: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `SELECT ` + itemColumns + baseQuery + `
		ORDER BY category ASC, product_name ASC
		LIMIT $3 OFFSET $4`
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing items: %w", err)
	}
	defer rows.Close()

	var items []PricingItem
	for rows.Next() {
		var item PricingItem
		if err := rows.Scan(scanTargets(&item)...); err != nil {
			return nil, fmt.Errorf("failed to scan pricing item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pricing items: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// FindByName retrieves the freshest catalog entry whose product name matches
// the given name, case-insensitively, as a substring in either direction.
func (r *Repository) FindByName(ctx context.Context, name string) (*PricingItem, error) {
	var item PricingItem
	query := `SELECT ` + itemColumns + `
		FROM pricing_items
		WHERE product_name ILIKE '%' || $1 || '%' OR $1 ILIKE '%' || product_name || '%'
		ORDER BY last_updated DESC
		LIMIT 1`

	err := r.pool.QueryRow(ctx, query, name).Scan(scanTargets(&item)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(itemNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to find pricing item by name: %w", err)
	}
	return &item, nil
}

func scanTargets(item *PricingItem) []interface{} {
	return []interface{}{
		&item.ID, &item.Category, &item.Subcategory, &item.ProductName, &item.Description,
		&item.Unit, &item.CostPerUnit, &item.Supplier, &item.PartNumber,
		&item.Source, &item.LastUpdated,
	}
}
