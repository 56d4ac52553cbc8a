package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
)

// UnitStatus represents the lifecycle status of a unit
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "AVAILABLE"
	UnitOccupied    UnitStatus = "OCCUPIED"
	UnitMaintenance UnitStatus = "MAINTENANCE"
)

// TenantType distinguishes individuals from companies
type TenantType string

const (
	TenantIndividual TenantType = "INDIVIDUAL"
	TenantCompany    TenantType = "COMPANY"
)

// LeaseStatus represents the lifecycle status of a lease.
// ACTIVE is the only initial state; TERMINATED is terminal.
type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "ACTIVE"
	LeaseTerminated LeaseStatus = "TERMINATED"
)

// BillingCycle is the cadence at which rent is nominally due
type BillingCycle string

const (
	BillingMonthly   BillingCycle = "MONTHLY"
	BillingQuarterly BillingCycle = "QUARTERLY"
)

// PaymentStatus represents the status of a recorded payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
)

// User represents an API user
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed in JSON
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'manager'"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Property represents a building or site owning zero or more units
type Property struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Location    string    `json:"location" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:text"`
	Units       []*Unit   `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Unit represents a leasable sub-space within a property.
// Invariant: Status is OCCUPIED iff exactly one ACTIVE lease references it.
type Unit struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	PropertyID  uint       `json:"propertyId" gorm:"index;not null"`
	Property    *Property  `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Reference   string     `json:"reference" gorm:"type:varchar(50);uniqueIndex;not null"`
	Status      UnitStatus `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	Description string     `json:"description" gorm:"type:text"`
	Leases      []*Lease   `json:"leases,omitempty" gorm:"foreignKey:UnitID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Tenant represents a person or company bound to units by leases
type Tenant struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string     `json:"name" gorm:"type:varchar(200);not null"`
	Type      TenantType `json:"type" gorm:"type:varchar(20);not null;default:'INDIVIDUAL'"`
	Email     string     `json:"email" gorm:"type:varchar(255)"`
	Phone     string     `json:"phone" gorm:"type:varchar(50)"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Lease is a time-bounded contract binding one tenant to one unit
type Lease struct {
	ID           uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID     uint            `json:"tenantId" gorm:"index;not null"`
	Tenant       *Tenant         `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	UnitID       uint            `json:"unitId" gorm:"index;not null"`
	Unit         *Unit           `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Reference    string          `json:"reference" gorm:"type:varchar(50);uniqueIndex;not null"`
	StartDate    time.Time       `json:"startDate" gorm:"not null"`
	EndDate      *time.Time      `json:"endDate,omitempty"`
	RentAmount   decimal.Decimal `json:"rentAmount" gorm:"type:decimal(14,2);not null"`
	BillingCycle BillingCycle    `json:"billingCycle" gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	Status       LeaseStatus     `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Payments     []*Payment      `json:"payments,omitempty" gorm:"foreignKey:LeaseID"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// PaymentMode is a named method of payment
type PaymentMode struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	Code          string    `json:"code" gorm:"type:varchar(30);uniqueIndex;not null"`
	RequiresProof bool      `json:"requiresProof" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Payment is a raw transaction log entry tied to a lease.
// No invariant ties payment totals to a lease balance.
type Payment struct {
	ID            uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	LeaseID       uint            `json:"leaseId" gorm:"index;not null"`
	Lease         *Lease          `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	PaidAt        time.Time       `json:"paidAt" gorm:"index;not null"`
	PaymentModeID uint            `json:"paymentModeId" gorm:"index;not null"`
	PaymentMode   *PaymentMode    `json:"paymentMode,omitempty" gorm:"foreignKey:PaymentModeID"`
	Reference     string          `json:"reference" gorm:"type:varchar(100)"`
	Status        PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Document is an uploaded file attached to a lease or a payment
type Document struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerType  string    `json:"ownerType" gorm:"type:varchar(20);index:idx_documents_owner;not null"` // LEASES or PAYMENTS
	OwnerID    uint      `json:"ownerId" gorm:"index:idx_documents_owner;not null"`
	FileKey    string    `json:"fileKey" gorm:"type:varchar(100);uniqueIndex;not null"`
	FileName   string    `json:"fileName" gorm:"type:varchar(255);not null"`
	DocType    string    `json:"docType" gorm:"type:varchar(50)"`
	UploadedBy uint      `json:"uploadedBy" gorm:"index"`
	Uploader   *User     `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AuditLog is an append-only record of who did what to which entity
type AuditLog struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     uint      `json:"userId" gorm:"index"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Action     string    `json:"action" gorm:"type:varchar(20);not null"`
	EntityType string    `json:"entityType" gorm:"type:varchar(30);index;not null"`
	EntityID   uint      `json:"entityId" gorm:"index"`
	OldValue   string    `json:"oldValue,omitempty" gorm:"type:text"`
	NewValue   string    `json:"newValue,omitempty" gorm:"type:text"`
	IP         string    `json:"ip" gorm:"type:varchar(45)"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}
