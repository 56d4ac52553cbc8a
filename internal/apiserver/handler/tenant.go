package handler

import (
	"net/http"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gin-gonic/gin"
)

// ListTenants handles listing all tenants
func (h *Handler) ListTenants(c *gin.Context) {
	tenants, err := h.db.ListTenants(c.Request.Context())
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// GetTenant handles fetching a single tenant
func (h *Handler) GetTenant(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	tenant, err := h.db.GetTenantByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// CreateTenant handles tenant creation
func (h *Handler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	tenant := &database.Tenant{
		Name:  req.Name,
		Type:  database.TenantType(req.Type),
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := h.db.CreateTenant(c.Request.Context(), tenant); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityTenants, tenant.ID, nil, tenant)
	c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant handles tenant updates
func (h *Handler) UpdateTenant(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	tenant, err := h.db.GetTenantByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := *tenant

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.Type != "" {
		tenant.Type = database.TenantType(req.Type)
	}
	if req.Email != "" {
		tenant.Email = req.Email
	}
	if req.Phone != "" {
		tenant.Phone = req.Phone
	}

	if err := h.db.UpdateTenant(c.Request.Context(), tenant); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityTenants, tenant.ID, old, tenant)
	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles tenant deletion; it conflicts while the tenant owns leases
func (h *Handler) DeleteTenant(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	if err := h.db.DeleteTenant(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	h.audit(c, cnst.ActionDelete, cnst.EntityTenants, id, nil, nil)
	c.Status(http.StatusNoContent)
}
