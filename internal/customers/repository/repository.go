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

// Customer is the database model for a customer company.
type Customer struct {
	ID              int64     `db:"id"`
	CompanyName     string    `db:"company_name"`
	ContactName     *string   `db:"contact_name"`
	MainEmail       *string   `db:"main_email"`
	MainPhone       *string   `db:"main_phone"`
	Website         *string   `db:"website"`
	BillingAddress  *string   `db:"billing_address"`
	BillingPostcode *string   `db:"billing_postcode"`
	Status          string    `db:"status"`
	Source          *string   `db:"source"`
	Notes           *string   `db:"notes"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// ListParams contains parameters for listing customers
type ListParams struct {
	Status   *string
	Search   string
	Page     int
	PageSize int
}

// ListResult contains the paginated result of listing customers
type ListResult struct {
	Items      []Customer
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

const customerNotFoundMsg = "customer not found"

const customerColumns = `id, company_name, contact_name, main_email, main_phone,
		website, billing_address, billing_postcode, status, source, notes,
		created_at, updated_at`

// Repository provides database operations for customers
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new customers repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a customer and returns it with its generated id.
func (r *Repository) Create(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (
			company_name, contact_name, main_email, main_phone,
			website, billing_address, billing_postcode, status, source, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		c.CompanyName, c.ContactName, c.MainEmail, c.MainPhone,
		c.Website, c.BillingAddress, c.BillingPostcode, c.Status, c.Source, c.Notes,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by its id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(customerNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// Update rewrites a customer's fields.
func (r *Repository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers SET
			company_name = $2, contact_name = $3, main_email = $4, main_phone = $5,
			website = $6, billing_address = $7, billing_postcode = $8,
			status = $9, source = $10, notes = $11, updated_at = $12
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.CompanyName, c.ContactName, c.MainEmail, c.MainPhone,
		c.Website, c.BillingAddress, c.BillingPostcode,
		c.Status, c.Source, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(customerNotFoundMsg)
	}
	return nil
}

// Delete removes a customer. Quotes keep their customer_id via ON DELETE SET
// NULL.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(customerNotFoundMsg)
	}
	return nil
}

// List retrieves customers with filtering and pagination
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	baseQuery := `
		FROM customers
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR company_name ILIKE $2 OR contact_name ILIKE $2 OR main_email ILIKE $2)
	`
	args := []interface{}{statusParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `SELECT ` + customerColumns + baseQuery + `
		ORDER BY company_name ASC
		LIMIT $3 OFFSET $4`
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var items []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(scanTargets(&c)...); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func scanTargets(c *Customer) []interface{} {
	return []interface{}{
		&c.ID, &c.CompanyName, &c.ContactName, &c.MainEmail, &c.MainPhone,
		&c.Website, &c.BillingAddress, &c.BillingPostcode, &c.Status, &c.Source, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	}
}
