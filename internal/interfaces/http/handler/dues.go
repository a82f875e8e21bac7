package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
)

// DuesHandler handles outstanding dues read endpoints
type DuesHandler struct {
	BaseHandler
	duesService *billingapp.DuesService
}

// NewDuesHandler creates a new DuesHandler
func NewDuesHandler(duesService *billingapp.DuesService) *DuesHandler {
	return &DuesHandler{duesService: duesService}
}

// GetOutstanding returns the open dues of a tenant's active tenancy. The
// optional period query restricts rent charges to one billing period.
func (h *DuesHandler) GetOutstanding(c *gin.Context) {
	tenantID, ok := h.parseID(c)
	if !ok {
		return
	}

	var period *valueobject.Period
	if raw := c.Query("period"); raw != "" {
		p, err := valueobject.ParsePeriod(raw)
		if err != nil {
			h.BadRequest(c, "Invalid period format, expected YYYY-MM")
			return
		}
		period = &p
	}

	dues, err := h.duesService.GetOutstanding(c.Request.Context(), tenantID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dues)
}

// BalanceResponse is a tenant's single outstanding balance figure
type BalanceResponse struct {
	TenantID string `json:"tenant_id"`
	Balance  string `json:"balance"`
}

// GetBalance returns the tenant's total outstanding balance including any
// carry-forward from earlier tenancies
func (h *DuesHandler) GetBalance(c *gin.Context) {
	tenantID, ok := h.parseID(c)
	if !ok {
		return
	}

	balance, err := h.duesService.CalculateOutstandingBalance(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, BalanceResponse{
		TenantID: tenantID.String(),
		Balance:  balance.String(),
	})
}
