package handler

import (
	"net/http"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gin-gonic/gin"
)

// ListProperties handles listing all properties
func (h *Handler) ListProperties(c *gin.Context) {
	properties, err := h.db.ListPropertiesWithUnits(c.Request.Context())
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty handles fetching a single property with its units
func (h *Handler) GetProperty(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	property, err := h.db.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty handles property creation
func (h *Handler) CreateProperty(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	property := &database.Property{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := h.db.CreateProperty(c.Request.Context(), property); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityProperties, property.ID, nil, property)
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles property updates
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	property, err := h.db.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := *property
	old.Units = nil

	if req.Name != "" {
		property.Name = req.Name
	}
	if req.Location != "" {
		property.Location = req.Location
	}
	if req.Description != "" {
		property.Description = req.Description
	}

	if err := h.db.UpdateProperty(c.Request.Context(), property); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityProperties, property.ID, old, property)
	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles property deletion; it conflicts while units exist
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	if err := h.db.DeleteProperty(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	h.audit(c, cnst.ActionDelete, cnst.EntityProperties, id, nil, nil)
	c.Status(http.StatusNoContent)
}
