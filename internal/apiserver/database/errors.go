package database

import "errors"

// Sentinel errors returned by the store. Handlers map these onto the API
// error taxonomy (not-found vs conflict) without inspecting SQL errors.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrLeaseNotFound       = errors.New("lease not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentModeNotFound = errors.New("payment mode not found")
	ErrDocumentNotFound    = errors.New("document not found")

	ErrDuplicateEmail           = errors.New("email already exists")
	ErrDuplicateUnitReference   = errors.New("unit reference already exists")
	ErrDuplicateLeaseReference  = errors.New("lease reference already exists")
	ErrDuplicatePaymentModeCode = errors.New("payment mode code already exists")

	ErrUnitNotAvailable       = errors.New("unit is not available")
	ErrUnitAlreadyLeased      = errors.New("unit already has an active lease")
	ErrUnitUnderActiveLease   = errors.New("unit has an active lease")
	ErrLeaseAlreadyTerminated = errors.New("lease is already terminated")
	ErrLeaseTerminated        = errors.New("terminated lease cannot be reactivated")

	ErrPropertyHasUnits  = errors.New("property still has units")
	ErrUnitHasLeases     = errors.New("unit still has leases")
	ErrTenantHasLeases   = errors.New("tenant still has leases")
	ErrPaymentModeInUse  = errors.New("payment mode is referenced by payments")
	ErrUnitStatusManaged = errors.New("occupied status is driven by lease operations")
)
