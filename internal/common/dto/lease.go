package dto

import "github.com/shopspring/decimal"

// CreateLeaseRequest represents a request to create a lease
type CreateLeaseRequest struct {
	TenantID       uint            `json:"tenant_id" binding:"required"`
	LocalID        uint            `json:"local_id" binding:"required"`
	LeaseReference string          `json:"lease_reference" binding:"required"`
	StartDate      string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate        string          `json:"end_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	RentAmount     decimal.Decimal `json:"rent_amount"`
	BillingCycle   string          `json:"billing_cycle" binding:"required,oneof=MONTHLY QUARTERLY"`
}

// UpdateLeaseRequest represents a generic lease update. Setting status to
// TERMINATED through this path carries the same unit-release side effect
// as the dedicated terminate operation.
type UpdateLeaseRequest struct {
	LeaseReference string           `json:"lease_reference,omitempty"`
	StartDate      string           `json:"start_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate        string           `json:"end_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	RentAmount     *decimal.Decimal `json:"rent_amount,omitempty"`
	BillingCycle   string           `json:"billing_cycle,omitempty" binding:"omitempty,oneof=MONTHLY QUARTERLY"`
	Status         string           `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE TERMINATED"`
}

// TerminateLeaseRequest represents a lease termination request
type TerminateLeaseRequest struct {
	TerminationDate string `json:"termination_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
}
