package transport

import "time"

// CreatePricingItemRequest is the request body for creating a catalog entry
type CreatePricingItemRequest struct {
	Category    string  `json:"category" validate:"required,min=1,max=100"`
	Subcategory *string `json:"subcategory" validate:"omitempty,max=100"`
	ProductName string  `json:"productName" validate:"required,min=1,max=200"`
	Description *string `json:"description"`
	Unit        string  `json:"unit" validate:"required,min=1,max=50"`
	CostPerUnit float64 `json:"costPerUnit" validate:"required,gt=0"`
	Supplier    *string `json:"supplier" validate:"omitempty,max=100"`
	PartNumber  *string `json:"partNumber" validate:"omitempty,max=100"`
	Source      string  `json:"source" validate:"omitempty,oneof=manual supplier imported"`
}

// UpdatePricingItemRequest is the request body for updating a catalog entry
type UpdatePricingItemRequest struct {
	Category    *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Subcategory *string  `json:"subcategory" validate:"omitempty,max=100"`
	ProductName *string  `json:"productName" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit" validate:"omitempty,min=1,max=50"`
	CostPerUnit *float64 `json:"costPerUnit" validate:"omitempty,gt=0"`
	Supplier    *string  `json:"supplier" validate:"omitempty,max=100"`
	PartNumber  *string  `json:"partNumber" validate:"omitempty,max=100"`
	Source      *string  `json:"source" validate:"omitempty,oneof=manual supplier imported"`
}

// ListPricingItemsRequest defines the query parameters for listing the catalog
type ListPricingItemsRequest struct {
	Category string `form:"category" validate:"omitempty,max=100"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// PricingItemResponse is the full representation of a catalog entry
type PricingItemResponse struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory"`
	ProductName string    `json:"productName"`
	Description *string   `json:"description"`
	Unit        string    `json:"unit"`
	CostPerUnit float64   `json:"costPerUnit"`
	Supplier    *string   `json:"supplier"`
	PartNumber  *string   `json:"partNumber"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// PricingItemListResponse is the paginated list response
type PricingItemListResponse struct {
	Items      []PricingItemResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}
