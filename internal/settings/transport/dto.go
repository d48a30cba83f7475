package transport

import "time"

// UpdateSettingRequest is the request body for setting a value
type UpdateSettingRequest struct {
	Value       string  `json:"value" validate:"required,max=1000"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// SettingResponse is the full representation of a setting
type SettingResponse struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SettingListResponse wraps the full settings list
type SettingListResponse struct {
	Items []SettingResponse `json:"items"`
}
