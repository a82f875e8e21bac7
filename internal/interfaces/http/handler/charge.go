package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
)

// ChargeHandler handles ad-hoc bill and shared utility charge endpoints
type ChargeHandler struct {
	BaseHandler
	chargeService *billingapp.ChargeService
}

// NewChargeHandler creates a new ChargeHandler
func NewChargeHandler(chargeService *billingapp.ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeService: chargeService}
}

// CreateBill raises an ad-hoc bill against a tenancy
func (h *ChargeHandler) CreateBill(c *gin.Context) {
	var req billingapp.RecordBillRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	bill, err := h.chargeService.RecordBill(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, billingapp.ToBillDTO(bill))
}

// CreateUtilityCharge records or replaces a room's shared utility total for
// a period
func (h *ChargeHandler) CreateUtilityCharge(c *gin.Context) {
	var req billingapp.RecordUtilityChargeRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	charge, err := h.chargeService.RecordUtilityCharge(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, billingapp.ToUtilityChargeDTO(charge))
}
