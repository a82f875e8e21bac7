package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment recording and allocation endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService    *billingapp.PaymentService
	allocationService *billingapp.AllocationService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(
	paymentService *billingapp.PaymentService,
	allocationService *billingapp.AllocationService,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService:    paymentService,
		allocationService: allocationService,
	}
}

// Create records a payment, optionally allocating it across open dues
func (h *PaymentHandler) Create(c *gin.Context) {
	var req billingapp.RecordPaymentRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// Get returns one payment with its allocations
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// ListByTenant returns a tenant's payment history, newest first
func (h *PaymentHandler) ListByTenant(c *gin.Context) {
	tenantID, ok := h.parseID(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// SuggestAllocation previews an oldest-first split of an amount across the
// tenant's open dues without recording anything
func (h *PaymentHandler) SuggestAllocation(c *gin.Context) {
	var req billingapp.SuggestAllocationRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	plan, err := h.allocationService.SuggestAllocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}
