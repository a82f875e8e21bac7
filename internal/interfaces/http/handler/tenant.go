package handler

import (
	"github.com/gin-gonic/gin"

	propertyapp "github.com/hostelops/backend/internal/application/property"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant profile endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *propertyapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *propertyapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create registers a tenant profile
func (h *TenantHandler) Create(c *gin.Context) {
	var req propertyapp.CreateTenantRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// Update changes a tenant's contact details
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req propertyapp.UpdateTenantRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Deactivate retires a tenant profile. Tenants with an active tenancy
// cannot be deactivated.
func (h *TenantHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.tenantService.DeactivateTenant(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get returns one tenant profile by ID
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List returns tenant profiles, all or active only
func (h *TenantHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	tenants, err := h.tenantService.ListTenants(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenants)
}
