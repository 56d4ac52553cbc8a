package cnst

// ActionType represents the type of action recorded in the audit log
type ActionType string

const (
	// ActionCreate represents a create action
	ActionCreate ActionType = "CREATE"
	// ActionUpdate represents an update action
	ActionUpdate ActionType = "UPDATE"
	// ActionDelete represents a delete action
	ActionDelete ActionType = "DELETE"
	// ActionTerminate represents a lease termination
	ActionTerminate ActionType = "TERMINATE"
	// ActionUpload represents a document upload
	ActionUpload ActionType = "UPLOAD"
)

// Entity table tags used by the audit log and document ownership
const (
	EntityProperties   = "PROPERTIES"
	EntityUnits        = "UNITS"
	EntityTenants      = "TENANTS"
	EntityLeases       = "LEASES"
	EntityPayments     = "PAYMENTS"
	EntityPaymentModes = "PAYMENT_MODES"
	EntityDocuments    = "DOCUMENTS"
	EntityUsers        = "USERS"
)

// DateFormat is the wire format for bare dates (start/end dates)
const DateFormat = "2006-01-02"
