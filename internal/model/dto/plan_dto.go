package dto

type PlanRequest struct {
	Name                string   `json:"name" binding:"required,max=100"`
	Description         string   `json:"description"`
	AllowedProperties   *int     `json:"allowed_properties" binding:"omitempty,min=0"`
	AllowedUnits        *int     `json:"allowed_units" binding:"omitempty,min=0"`
	EnableNotifications []string `json:"enable_notifications"`
	Price               *float64 `json:"price" binding:"required,min=0"`
	DurationDays        *int     `json:"duration_days" binding:"omitempty,min=1"`
	IsDefault           bool     `json:"is_default"`
	IsActive            *bool    `json:"is_active"`
}
