package dto

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name        string `json:"name,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateUnitRequest represents a request to create a unit.
// OCCUPIED cannot be requested; it is driven by lease operations.
type CreateUnitRequest struct {
	PropertyID  uint   `json:"property_id" binding:"required"`
	Reference   string `json:"reference" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE MAINTENANCE"`
}

// UpdateUnitRequest represents a request to update a unit
type UpdateUnitRequest struct {
	Reference   string `json:"reference,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE MAINTENANCE"`
}

// CreateTenantRequest represents a request to create a tenant
type CreateTenantRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=INDIVIDUAL COMPANY"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty" binding:"omitempty,oneof=INDIVIDUAL COMPANY"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}
