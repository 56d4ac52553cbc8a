package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest represents a request to record a payment
type CreatePaymentRequest struct {
	LeaseID       uint            `json:"lease_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	PaymentModeID uint            `json:"payment_mode_id" binding:"required"`
	Reference     string          `json:"reference,omitempty"`
	Status        string          `json:"status,omitempty" binding:"omitempty,oneof=PENDING COMPLETED"`
}

// UpdatePaymentRequest represents a request to update a recorded payment
type UpdatePaymentRequest struct {
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	PaidAt    *time.Time       `json:"paid_at,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Status    string           `json:"status,omitempty" binding:"omitempty,oneof=PENDING COMPLETED"`
}

// CreatePaymentModeRequest represents a request to create a payment mode
type CreatePaymentModeRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	RequiresProof bool   `json:"requires_proof"`
}

// UpdatePaymentModeRequest represents a request to update a payment mode
type UpdatePaymentModeRequest struct {
	Name          string `json:"name,omitempty"`
	Code          string `json:"code,omitempty"`
	RequiresProof *bool  `json:"requires_proof,omitempty"`
}
