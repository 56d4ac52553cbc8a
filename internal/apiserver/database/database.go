package database

import (
	"context"
	"time"
)

// Database defines the methods for store operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]*User, error)

	// Properties
	CreateProperty(ctx context.Context, property *Property) error
	GetPropertyByID(ctx context.Context, id uint) (*Property, error)
	UpdateProperty(ctx context.Context, property *Property) error
	// DeleteProperty removes a property; it fails with ErrPropertyHasUnits
	// while any unit still references it.
	DeleteProperty(ctx context.Context, id uint) error
	ListProperties(ctx context.Context) ([]*Property, error)
	// ListPropertiesWithUnits returns all properties with their units preloaded.
	ListPropertiesWithUnits(ctx context.Context) ([]*Property, error)
	// ListPropertiesWithPayments returns properties with the full
	// units -> leases -> payments graph preloaded for in-memory rollups.
	ListPropertiesWithPayments(ctx context.Context) ([]*Property, error)

	// Units
	CreateUnit(ctx context.Context, unit *Unit) error
	GetUnitByID(ctx context.Context, id uint) (*Unit, error)
	GetUnitByReference(ctx context.Context, reference string) (*Unit, error)
	// UpdateUnit persists unit changes. Manual status changes are rejected
	// while the unit carries an ACTIVE lease, and OCCUPIED can never be set
	// manually; it is driven solely by lease create/terminate.
	UpdateUnit(ctx context.Context, unit *Unit) error
	DeleteUnit(ctx context.Context, id uint) error
	ListUnits(ctx context.Context, propertyID uint) ([]*Unit, error)

	// Tenants
	CreateTenant(ctx context.Context, tenant *Tenant) error
	GetTenantByID(ctx context.Context, id uint) (*Tenant, error)
	UpdateTenant(ctx context.Context, tenant *Tenant) error
	// DeleteTenant fails with ErrTenantHasLeases while the tenant owns any lease.
	DeleteTenant(ctx context.Context, id uint) error
	ListTenants(ctx context.Context) ([]*Tenant, error)

	// Leases. Create, terminate and update each run inside a single
	// transaction so the lease row and the unit status change together
	// or not at all, even under concurrent requests.
	CreateLease(ctx context.Context, lease *Lease) error
	GetLeaseByID(ctx context.Context, id uint) (*Lease, error)
	UpdateLease(ctx context.Context, lease *Lease) error
	TerminateLease(ctx context.Context, id uint, endDate time.Time) (*Lease, error)
	ListLeases(ctx context.Context, status LeaseStatus) ([]*Lease, error)
	CountActiveLeasesByUnit(ctx context.Context, unitID uint) (int64, error)
	// ActiveLeaseCountByProperty maps property id -> number of ACTIVE leases.
	ActiveLeaseCountByProperty(ctx context.Context) (map[uint]int64, error)

	// Payment modes
	CreatePaymentMode(ctx context.Context, mode *PaymentMode) error
	GetPaymentModeByID(ctx context.Context, id uint) (*PaymentMode, error)
	UpdatePaymentMode(ctx context.Context, mode *PaymentMode) error
	DeletePaymentMode(ctx context.Context, id uint) error
	ListPaymentModes(ctx context.Context) ([]*PaymentMode, error)

	// Payments
	CreatePayment(ctx context.Context, payment *Payment) error
	GetPaymentByID(ctx context.Context, id uint) (*Payment, error)
	UpdatePayment(ctx context.Context, payment *Payment) error
	DeletePayment(ctx context.Context, id uint) error
	ListPayments(ctx context.Context, leaseID uint) ([]*Payment, error)
	// ListPaymentsBetween returns payments with the given status whose paid_at
	// falls in [start, end), payment mode preloaded, ordered by paid_at.
	ListPaymentsBetween(ctx context.Context, start, end time.Time, status PaymentStatus) ([]*Payment, error)
	CountOverduePayments(ctx context.Context, now time.Time) (int64, error)

	// Documents
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocumentByID(ctx context.Context, id uint) (*Document, error)
	DeleteDocument(ctx context.Context, id uint) error
	ListDocumentsByOwner(ctx context.Context, ownerType string, ownerID uint) ([]*Document, error)

	// Audit log
	CreateAuditLog(ctx context.Context, entry *AuditLog) error
	ListAuditLogs(ctx context.Context, limit, offset int) ([]*AuditLog, error)

	// Dashboard counters
	CountProperties(ctx context.Context) (int64, error)
	CountUnits(ctx context.Context) (int64, error)
	CountUnitsByStatus(ctx context.Context, status UnitStatus) (int64, error)
	CountTenants(ctx context.Context) (int64, error)
	CountLeasesByStatus(ctx context.Context, status LeaseStatus) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
}
