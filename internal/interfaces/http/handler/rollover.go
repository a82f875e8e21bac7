package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	billingapp "github.com/hostelops/backend/internal/application/billing"
	"github.com/hostelops/backend/internal/domain/shared/valueobject"
	"github.com/hostelops/backend/internal/infrastructure/scheduler"
	"github.com/hostelops/backend/internal/interfaces/http/middleware"
)

// RolloverHandler handles manual period rollover endpoints
type RolloverHandler struct {
	BaseHandler
	rolloverService   *billingapp.RolloverService
	rolloverScheduler *scheduler.RolloverScheduler
}

// NewRolloverHandler creates a new RolloverHandler
func NewRolloverHandler(
	rolloverService *billingapp.RolloverService,
	rolloverScheduler *scheduler.RolloverScheduler,
) *RolloverHandler {
	return &RolloverHandler{
		rolloverService:   rolloverService,
		rolloverScheduler: rolloverScheduler,
	}
}

// RunRolloverRequest selects the billing period to roll over. An empty
// period means the current calendar month.
type RunRolloverRequest struct {
	Period string `json:"period"`
}

// Run executes a period rollover synchronously. Rollover is idempotent per
// tenancy and period, so repeated runs only skip.
func (h *RolloverHandler) Run(c *gin.Context) {
	var req RunRolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	period := valueobject.CurrentPeriod()
	if req.Period != "" {
		parsed, err := valueobject.ParsePeriod(req.Period)
		if err != nil {
			h.BadRequest(c, "Invalid period format, expected YYYY-MM")
			return
		}
		period = parsed
	}

	result, err := h.rolloverService.RunPeriodRollover(c.Request.Context(), middleware.GetActor(c), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SchedulerStatusResponse reports whether the rollover scheduler is running
type SchedulerStatusResponse struct {
	Running bool `json:"running"`
}

// SchedulerStatus reports the rollover scheduler state
func (h *RolloverHandler) SchedulerStatus(c *gin.Context) {
	h.Success(c, SchedulerStatusResponse{Running: h.rolloverScheduler.IsRunning()})
}

// TriggerScheduler asks the running scheduler to re-run the current period
// on its next cycle
func (h *RolloverHandler) TriggerScheduler(c *gin.Context) {
	// The run outlives the request, so it is not bound to the request context.
	if err := h.rolloverScheduler.TriggerImmediate(context.Background()); err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.Error(c, http.StatusConflict, "SCHEDULER_NOT_RUNNING", "Rollover scheduler is not running")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
