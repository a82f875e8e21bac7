package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	billingapp "github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
)

// TenancyHandler handles tenancy lifecycle endpoints
type TenancyHandler struct {
	BaseHandler
	tenancyService *billingapp.TenancyService
}

// NewTenancyHandler creates a new TenancyHandler
func NewTenancyHandler(tenancyService *billingapp.TenancyService) *TenancyHandler {
	return &TenancyHandler{tenancyService: tenancyService}
}

// Create starts a tenancy for a tenant in a room
func (h *TenancyHandler) Create(c *gin.Context) {
	var req billingapp.CreateTenancyRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	tenancy, err := h.tenancyService.CreateTenancy(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenancy)
}

// End closes a tenancy. The tenancy ID comes from the path; the body carries
// the end date.
func (h *TenancyHandler) End(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req billingapp.EndTenancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.TenancyID = id
	if err := validate.Struct(req); err != nil {
		h.BadRequest(c, formatValidationError(err))
		return
	}

	tenancy, err := h.tenancyService.EndTenancy(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenancy)
}

// CorrectBalance replaces a tenancy's carry-forward balance with an audited
// correction
func (h *TenancyHandler) CorrectBalance(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req billingapp.CorrectBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	req.TenancyID = id
	if err := validate.Struct(req); err != nil {
		h.BadRequest(c, formatValidationError(err))
		return
	}

	tenancy, err := h.tenancyService.CorrectPreviousBalance(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenancy)
}

// UtilityOverrideRequest sets or clears a tenancy's fixed utility amount.
// A null amount reverts the tenancy to equal-split shares.
type UtilityOverrideRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// SetUtilityOverride sets or clears the tenancy's utility override
func (h *TenancyHandler) SetUtilityOverride(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UtilityOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tenancy, err := h.tenancyService.SetUtilityOverride(c.Request.Context(), middleware.GetActor(c), id, req.Amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenancy)
}

// Get returns one tenancy by ID
func (h *TenancyHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tenancy, err := h.tenancyService.GetTenancy(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenancy)
}

// ListByTenant returns a tenant's tenancy history, newest first
func (h *TenancyHandler) ListByTenant(c *gin.Context) {
	tenantID, ok := h.parseID(c)
	if !ok {
		return
	}

	tenancies, err := h.tenancyService.ListTenanciesByTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenancies)
}
