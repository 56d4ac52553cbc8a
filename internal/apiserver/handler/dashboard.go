package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const recentActivityLimit = 10

// roundRate converts occupied/total into a percentage rounded to two decimals.
// Zero units means a rate of zero, not a division error.
func roundRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(occupied)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
	f, _ := rate.Round(2).Float64()
	return f
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

func auditEntries(entries []*database.AuditLog) []dto.AuditEntry {
	out := make([]dto.AuditEntry, 0, len(entries))
	for _, e := range entries {
		entry := dto.AuditEntry{
			ID:         e.ID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			IP:         e.IP,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
		if e.User != nil {
			entry.UserName = e.User.Name
			entry.UserEmail = e.User.Email
		}
		out = append(out, entry)
	}
	return out
}

// GetDashboardStats handles the dashboard summary snapshot
func (h *Handler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	stats := dto.DashboardStats{
		MonthlyRevenue: decimal.Zero,
		RecentActivity: []dto.AuditEntry{},
		RevenueTrend:   []dto.TrendPoint{},
		TopProperties:  []dto.TopProperty{},
	}

	var err error
	if stats.TotalProperties, err = h.db.CountProperties(ctx); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.TotalUnits, err = h.db.CountUnits(ctx); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.AvailableUnits, err = h.db.CountUnitsByStatus(ctx, database.UnitAvailable); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.OccupiedUnits, err = h.db.CountUnitsByStatus(ctx, database.UnitOccupied); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.TotalTenants, err = h.db.CountTenants(ctx); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.ActiveLeases, err = h.db.CountLeasesByStatus(ctx, database.LeaseActive); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.TotalPayments, err = h.db.CountPayments(ctx); err != nil {
		h.errs.Handle(c, err)
		return
	}
	if stats.OverduePayments, err = h.db.CountOverduePayments(ctx, now); err != nil {
		h.errs.Handle(c, err)
		return
	}
	stats.OccupancyRate = roundRate(int(stats.OccupiedUnits), int(stats.TotalUnits))

	// trailing six calendar months of completed revenue, current month included
	trendStart := monthStart(now).AddDate(0, -5, 0)
	payments, err := h.db.ListPaymentsBetween(ctx, trendStart, now, database.PaymentCompleted)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	byMonth := make(map[string]decimal.Decimal, 6)
	thisMonth := monthStart(now).Format("2006-01")
	for _, p := range payments {
		key := p.PaidAt.Format("2006-01")
		byMonth[key] = byMonth[key].Add(p.Amount)
		if key == thisMonth {
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(p.Amount)
		}
	}
	for i := 0; i < 6; i++ {
		key := trendStart.AddDate(0, i, 0).Format("2006-01")
		amount, ok := byMonth[key]
		if !ok {
			amount = decimal.Zero
		}
		stats.RevenueTrend = append(stats.RevenueTrend, dto.TrendPoint{Period: key, Amount: amount})
	}

	entries, err := h.db.ListAuditLogs(ctx, recentActivityLimit, 0)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	stats.RecentActivity = auditEntries(entries)

	top, err := h.topProperties(c, monthStart(now), now)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	stats.TopProperties = top

	c.JSON(http.StatusOK, stats)
}

// topProperties rolls completed payments in [start, end) up to their property
// over the preloaded units -> leases -> payments graph and returns the top five
func (h *Handler) topProperties(c *gin.Context, start, end time.Time) ([]dto.TopProperty, error) {
	properties, err := h.db.ListPropertiesWithPayments(c.Request.Context())
	if err != nil {
		return nil, err
	}

	top := make([]dto.TopProperty, 0, len(properties))
	for _, property := range properties {
		revenue := decimal.Zero
		for _, unit := range property.Units {
			for _, lease := range unit.Leases {
				for _, payment := range lease.Payments {
					if payment.Status != database.PaymentCompleted {
						continue
					}
					if payment.PaidAt.Before(start) || !payment.PaidAt.Before(end) {
						continue
					}
					revenue = revenue.Add(payment.Amount)
				}
			}
		}
		if revenue.IsZero() {
			continue
		}
		top = append(top, dto.TopProperty{
			PropertyID: property.ID,
			Name:       property.Name,
			Revenue:    revenue,
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Revenue.GreaterThan(top[j].Revenue)
	})
	if len(top) > 5 {
		top = top[:5]
	}
	return top, nil
}

// GetRevenue handles the revenue aggregation report. Only COMPLETED payments
// count; buckets are calendar periods in server-local time and empty buckets
// are omitted.
func (h *Handler) GetRevenue(c *gin.Context) {
	var query dto.RevenueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	end := now
	if query.StartDate != "" {
		parsed, err := parseDate(query.StartDate)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid start_date"))
			return
		}
		start = parsed
	}
	if query.EndDate != "" {
		parsed, err := parseDate(query.EndDate)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid end_date"))
			return
		}
		// the end date is inclusive on the wire
		end = parsed.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		h.errs.Handle(c, errorx.NewValidation("end_date cannot precede start_date"))
		return
	}
	groupBy := query.GroupBy
	if groupBy == "" {
		groupBy = "month"
	}
	periodFormat := "2006-01"
	if groupBy == "day" {
		periodFormat = cnst.DateFormat
	}

	payments, err := h.db.ListPaymentsBetween(c.Request.Context(), start, end, database.PaymentCompleted)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}

	resp := dto.RevenueResponse{
		StartDate:   start.Format(cnst.DateFormat),
		EndDate:     end.AddDate(0, 0, -1).Format(cnst.DateFormat),
		GroupBy:     groupBy,
		Periods:     []dto.RevenuePeriod{},
		ByMode:      []dto.RevenueByMode{},
		TotalAmount: decimal.Zero,
	}

	periodIdx := make(map[string]int)
	modeIdx := make(map[string]int)
	for _, p := range payments {
		period := p.PaidAt.Format(periodFormat)
		i, ok := periodIdx[period]
		if !ok {
			i = len(resp.Periods)
			periodIdx[period] = i
			resp.Periods = append(resp.Periods, dto.RevenuePeriod{Period: period, Amount: decimal.Zero})
		}
		resp.Periods[i].Amount = resp.Periods[i].Amount.Add(p.Amount)
		resp.Periods[i].Count++

		mode := "UNKNOWN"
		if p.PaymentMode != nil {
			mode = p.PaymentMode.Name
		}
		j, ok := modeIdx[mode]
		if !ok {
			j = len(resp.ByMode)
			modeIdx[mode] = j
			resp.ByMode = append(resp.ByMode, dto.RevenueByMode{Mode: mode, Amount: decimal.Zero})
		}
		resp.ByMode[j].Amount = resp.ByMode[j].Amount.Add(p.Amount)
		resp.ByMode[j].Count++

		resp.TotalAmount = resp.TotalAmount.Add(p.Amount)
		resp.TotalCount++
	}
	// payments arrive ordered by paid_at, so periods are already chronological
	sort.SliceStable(resp.ByMode, func(i, j int) bool {
		return resp.ByMode[i].Amount.GreaterThan(resp.ByMode[j].Amount)
	})

	c.JSON(http.StatusOK, resp)
}

// GetOccupancy handles the per-property occupancy report
func (h *Handler) GetOccupancy(c *gin.Context) {
	ctx := c.Request.Context()
	properties, err := h.db.ListPropertiesWithUnits(ctx)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	activeLeases, err := h.db.ActiveLeaseCountByProperty(ctx)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}

	resp := dto.OccupancyResponse{Properties: []dto.PropertyOccupancy{}}
	for _, property := range properties {
		occ := dto.PropertyOccupancy{
			PropertyID:   property.ID,
			Name:         property.Name,
			TotalUnits:   len(property.Units),
			ActiveLeases: activeLeases[property.ID],
		}
		for _, unit := range property.Units {
			switch unit.Status {
			case database.UnitAvailable:
				occ.Available++
			case database.UnitOccupied:
				occ.Occupied++
			case database.UnitMaintenance:
				occ.Maintenance++
			}
		}
		occ.OccupancyRate = roundRate(occ.Occupied, occ.TotalUnits)
		resp.Properties = append(resp.Properties, occ)

		resp.TotalUnits += occ.TotalUnits
		resp.OccupiedUnits += occ.Occupied
	}
	resp.OverallRate = roundRate(resp.OccupiedUnits, resp.TotalUnits)

	c.JSON(http.StatusOK, resp)
}
