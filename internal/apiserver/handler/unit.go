package handler

import (
	"net/http"
	"strconv"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

// ListUnits handles listing units, optionally filtered by property
func (h *Handler) ListUnits(c *gin.Context) {
	var propertyID uint
	if raw := c.Query("property_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.errs.Handle(c, errorx.NewValidation("invalid property_id"))
			return
		}
		propertyID = uint(parsed)
	}

	units, err := h.db.ListUnits(c.Request.Context(), propertyID)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

// GetUnit handles fetching a single unit
func (h *Handler) GetUnit(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	unit, err := h.db.GetUnitByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	c.JSON(http.StatusOK, unit)
}

// CreateUnit handles unit creation
func (h *Handler) CreateUnit(c *gin.Context) {
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	unit := &database.Unit{
		PropertyID:  req.PropertyID,
		Reference:   req.Reference,
		Description: req.Description,
		Status:      database.UnitStatus(req.Status),
	}
	if err := h.db.CreateUnit(c.Request.Context(), unit); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityUnits, unit.ID, nil, unit)
	c.JSON(http.StatusCreated, unit)
}

// UpdateUnit handles unit updates. Status can only move between AVAILABLE
// and MAINTENANCE, and never while the unit carries an active lease.
func (h *Handler) UpdateUnit(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	unit, err := h.db.GetUnitByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := *unit
	old.Property = nil

	if req.Reference != "" {
		unit.Reference = req.Reference
	}
	if req.Description != "" {
		unit.Description = req.Description
	}
	if req.Status != "" {
		unit.Status = database.UnitStatus(req.Status)
	}

	if err := h.db.UpdateUnit(c.Request.Context(), unit); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityUnits, unit.ID, old, unit)
	c.JSON(http.StatusOK, unit)
}

// DeleteUnit handles unit deletion; it conflicts while leases reference it
func (h *Handler) DeleteUnit(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	if err := h.db.DeleteUnit(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	h.audit(c, cnst.ActionDelete, cnst.EntityUnits, id, nil, nil)
	c.Status(http.StatusNoContent)
}
