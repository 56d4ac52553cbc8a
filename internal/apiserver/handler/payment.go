package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

// ListPayments handles listing payments, optionally filtered by lease
func (h *Handler) ListPayments(c *gin.Context) {
	var leaseID uint
	if raw := c.Query("lease_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid lease_id"))
			return
		}
		leaseID = uint(parsed)
	}

	payments, err := h.db.ListPayments(c.Request.Context(), leaseID)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPayment handles fetching a single payment
func (h *Handler) GetPayment(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	payment, err := h.db.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	c.JSON(http.StatusOK, payment)
}

// CreatePayment handles recording a payment against a lease
func (h *Handler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}
	if !req.Amount.IsPositive() {
		h.errs.Handle(c, errorx.NewValidation("amount must be greater than zero"))
		return
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	status := database.PaymentPending
	if req.Status != "" {
		status = database.PaymentStatus(req.Status)
	}

	payment := &database.Payment{
		LeaseID:       req.LeaseID,
		Amount:        req.Amount,
		PaidAt:        paidAt,
		PaymentModeID: req.PaymentModeID,
		Reference:     req.Reference,
		Status:        status,
	}
	if err := h.db.CreatePayment(c.Request.Context(), payment); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityPayments, payment.ID, nil, payment)
	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment handles updating a recorded payment
func (h *Handler) UpdatePayment(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	payment, err := h.db.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := *payment
	old.Lease = nil
	old.PaymentMode = nil

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			h.errs.Handle(c, errorx.NewValidation("amount must be greater than zero"))
			return
		}
		payment.Amount = *req.Amount
	}
	if req.PaidAt != nil {
		payment.PaidAt = *req.PaidAt
	}
	if req.Reference != "" {
		payment.Reference = req.Reference
	}
	if req.Status != "" {
		payment.Status = database.PaymentStatus(req.Status)
	}

	if err := h.db.UpdatePayment(c.Request.Context(), payment); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityPayments, payment.ID, old, payment)
	c.JSON(http.StatusOK, payment)
}

// DeletePayment handles payment deletion
func (h *Handler) DeletePayment(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	if err := h.db.DeletePayment(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	h.audit(c, cnst.ActionDelete, cnst.EntityPayments, id, nil, nil)
	c.Status(http.StatusNoContent)
}

// ListPaymentModes handles listing payment modes
func (h *Handler) ListPaymentModes(c *gin.Context) {
	modes, err := h.db.ListPaymentModes(c.Request.Context())
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, modes)
}

// CreatePaymentMode handles payment mode creation
func (h *Handler) CreatePaymentMode(c *gin.Context) {
	var req dto.CreatePaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	mode := &database.PaymentMode{
		Name:          req.Name,
		Code:          req.Code,
		RequiresProof: req.RequiresProof,
	}
	if err := h.db.CreatePaymentMode(c.Request.Context(), mode); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityPaymentModes, mode.ID, nil, mode)
	c.JSON(http.StatusCreated, mode)
}

// UpdatePaymentMode handles payment mode updates
func (h *Handler) UpdatePaymentMode(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdatePaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	mode, err := h.db.GetPaymentModeByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := *mode

	if req.Name != "" {
		mode.Name = req.Name
	}
	if req.Code != "" {
		mode.Code = req.Code
	}
	if req.RequiresProof != nil {
		mode.RequiresProof = *req.RequiresProof
	}

	if err := h.db.UpdatePaymentMode(c.Request.Context(), mode); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityPaymentModes, mode.ID, old, mode)
	c.JSON(http.StatusOK, mode)
}

// DeletePaymentMode handles payment mode deletion; it conflicts while
// payments reference the mode
func (h *Handler) DeletePaymentMode(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	if err := h.db.DeletePaymentMode(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	h.audit(c, cnst.ActionDelete, cnst.EntityPaymentModes, id, nil, nil)
	c.Status(http.StatusNoContent)
}
