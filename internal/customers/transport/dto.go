package transport

import "time"

// CustomerStatus defines the CRM lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusProspect CustomerStatus = "prospect"
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// CreateCustomerRequest is the request body for creating a customer
type CreateCustomerRequest struct {
	CompanyName     string  `json:"companyName" validate:"required,min=1,max=200"`
	ContactName     *string `json:"contactName" validate:"omitempty,max=100"`
	MainEmail       *string `json:"mainEmail" validate:"omitempty,email,max=120"`
	MainPhone       *string `json:"mainPhone" validate:"omitempty,max=50"`
	Website         *string `json:"website" validate:"omitempty,url,max=255"`
	BillingAddress  *string `json:"billingAddress"`
	BillingPostcode *string `json:"billingPostcode" validate:"omitempty,max=20"`
	Source          *string `json:"source" validate:"omitempty,max=100"`
	Notes           *string `json:"notes"`
}

// UpdateCustomerRequest is the request body for updating a customer
type UpdateCustomerRequest struct {
	CompanyName     *string         `json:"companyName" validate:"omitempty,min=1,max=200"`
	ContactName     *string         `json:"contactName" validate:"omitempty,max=100"`
	MainEmail       *string         `json:"mainEmail" validate:"omitempty,email,max=120"`
	MainPhone       *string         `json:"mainPhone" validate:"omitempty,max=50"`
	Website         *string         `json:"website" validate:"omitempty,url,max=255"`
	BillingAddress  *string         `json:"billingAddress"`
	BillingPostcode *string         `json:"billingPostcode" validate:"omitempty,max=20"`
	Status          *CustomerStatus `json:"status" validate:"omitempty,oneof=prospect active inactive"`
	Source          *string         `json:"source" validate:"omitempty,max=100"`
	Notes           *string         `json:"notes"`
}

// ListCustomersRequest defines the query parameters for listing customers
type ListCustomersRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=prospect active inactive"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// CustomerResponse is the full representation of a customer
type CustomerResponse struct {
	ID              int64     `json:"id"`
	CompanyName     string    `json:"companyName"`
	ContactName     *string   `json:"contactName"`
	MainEmail       *string   `json:"mainEmail"`
	MainPhone       *string   `json:"mainPhone"`
	Website         *string   `json:"website"`
	BillingAddress  *string   `json:"billingAddress"`
	BillingPostcode *string   `json:"billingPostcode"`
	Status          string    `json:"status"`
	Source          *string   `json:"source"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CustomerListResponse is the paginated list response
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
