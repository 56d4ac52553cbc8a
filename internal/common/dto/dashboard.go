package dto

import "github.com/shopspring/decimal"

// RevenueQuery represents the revenue aggregation query parameters
type RevenueQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	GroupBy   string `form:"group_by" binding:"omitempty,oneof=day month"`
}

// RevenuePeriod is one calendar bucket of completed payments
type RevenuePeriod struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// RevenueByMode is the completed-payment rollup for one payment mode
type RevenueByMode struct {
	Mode   string          `json:"mode"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// RevenueResponse is the full revenue aggregation result. Periods with zero
// payments are omitted, matching the reference behavior.
type RevenueResponse struct {
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	GroupBy     string          `json:"group_by"`
	Periods     []RevenuePeriod `json:"periods"`
	ByMode      []RevenueByMode `json:"by_mode"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCount  int             `json:"total_count"`
}

// PropertyOccupancy is the per-property occupancy breakdown
type PropertyOccupancy struct {
	PropertyID    uint    `json:"property_id"`
	Name          string  `json:"name"`
	TotalUnits    int     `json:"total_units"`
	Available     int     `json:"available"`
	Occupied      int     `json:"occupied"`
	Maintenance   int     `json:"maintenance"`
	ActiveLeases  int64   `json:"active_leases"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// OccupancyResponse aggregates occupancy across all properties
type OccupancyResponse struct {
	Properties    []PropertyOccupancy `json:"properties"`
	TotalUnits    int                 `json:"total_units"`
	OccupiedUnits int                 `json:"occupied_units"`
	OverallRate   float64             `json:"overall_rate"`
}

// AuditEntry is an audit-log line enriched with the actor's identity
type AuditEntry struct {
	ID         uint   `json:"id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   uint   `json:"entity_id"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	IP         string `json:"ip,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// TrendPoint is one month of the trailing revenue trend
type TrendPoint struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}

// TopProperty is one entry of the current-month revenue top list
type TopProperty struct {
	PropertyID uint            `json:"property_id"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DashboardStats is the dashboard summary snapshot
type DashboardStats struct {
	TotalProperties int64           `json:"total_properties"`
	TotalUnits      int64           `json:"total_units"`
	AvailableUnits  int64           `json:"available_units"`
	OccupiedUnits   int64           `json:"occupied_units"`
	TotalTenants    int64           `json:"total_tenants"`
	ActiveLeases    int64           `json:"active_leases"`
	TotalPayments   int64           `json:"total_payments"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	OverduePayments int64           `json:"overdue_payments"`
	OccupancyRate   float64         `json:"occupancy_rate"`
	RecentActivity  []AuditEntry    `json:"recent_activity"`
	RevenueTrend    []TrendPoint    `json:"revenue_trend"`
	TopProperties   []TopProperty   `json:"top_properties"`
}
