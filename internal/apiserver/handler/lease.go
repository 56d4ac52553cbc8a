package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(cnst.DateFormat, value, time.Local)
}

// ListLeases handles listing leases, optionally filtered by status
func (h *Handler) ListLeases(c *gin.Context) {
	status := database.LeaseStatus(c.Query("status"))
	if status != "" && status != database.LeaseActive && status != database.LeaseTerminated {
		h.errs.Handle(c, errorx.NewValidation("invalid status"))
		return
	}
	leases, err := h.db.ListLeases(c.Request.Context(), status)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, leases)
}

// GetLease handles fetching a single lease
func (h *Handler) GetLease(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	lease, err := h.db.GetLeaseByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	c.JSON(http.StatusOK, lease)
}

// CreateLease handles lease creation. The store inserts the lease and flips
// the unit to OCCUPIED in one transaction; any precondition failure leaves
// both untouched.
func (h *Handler) CreateLease(c *gin.Context) {
	var req dto.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}
	if !req.RentAmount.IsPositive() {
		h.errs.Handle(c, errorx.NewValidation("rent_amount must be greater than zero"))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.errs.Handle(c, errorx.NewValidation("invalid start_date"))
		return
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := parseDate(req.EndDate)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid end_date"))
			return
		}
		if parsed.Before(startDate) {
			h.errs.Handle(c, errorx.NewValidation("end_date cannot precede start_date"))
			return
		}
		endDate = &parsed
	}

	lease := &database.Lease{
		TenantID:     req.TenantID,
		UnitID:       req.LocalID,
		Reference:    req.LeaseReference,
		StartDate:    startDate,
		EndDate:      endDate,
		RentAmount:   req.RentAmount,
		BillingCycle: database.BillingCycle(req.BillingCycle),
	}
	if err := h.db.CreateLease(c.Request.Context(), lease); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	created, err := h.db.GetLeaseByID(c.Request.Context(), lease.ID)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityLeases, lease.ID, nil, lease)
	c.JSON(http.StatusCreated, created)
}

// UpdateLease handles generic lease updates. Moving status to TERMINATED
// through this path releases the unit exactly like the terminate operation.
func (h *Handler) UpdateLease(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	lease, err := h.db.GetLeaseByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := *lease
	old.Tenant = nil
	old.Unit = nil

	if req.LeaseReference != "" {
		lease.Reference = req.LeaseReference
	}
	if req.StartDate != "" {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid start_date"))
			return
		}
		lease.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid end_date"))
			return
		}
		lease.EndDate = &endDate
	}
	if req.RentAmount != nil {
		if !req.RentAmount.IsPositive() {
			h.errs.Handle(c, errorx.NewValidation("rent_amount must be greater than zero"))
			return
		}
		lease.RentAmount = *req.RentAmount
	}
	if req.BillingCycle != "" {
		lease.BillingCycle = database.BillingCycle(req.BillingCycle)
	}
	if req.Status != "" {
		lease.Status = database.LeaseStatus(req.Status)
	}

	if err := h.db.UpdateLease(c.Request.Context(), lease); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	updated, err := h.db.GetLeaseByID(c.Request.Context(), lease.ID)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityLeases, lease.ID, old, updated)
	c.JSON(http.StatusOK, updated)
}

// TerminateLease handles lease termination
func (h *Handler) TerminateLease(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	// the body is optional; an absent one means "terminate now"
	var req dto.TerminateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.errs.Handle(c, bindingError(err))
		return
	}

	endDate := time.Now()
	if req.TerminationDate != "" {
		parsed, err := parseDate(req.TerminationDate)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid termination_date"))
			return
		}
		endDate = parsed
	}

	lease, err := h.db.TerminateLease(c.Request.Context(), id, endDate)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionTerminate, cnst.EntityLeases, lease.ID, nil, lease)
	c.JSON(http.StatusOK, lease)
}
