package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// RecurringHandler handles the recurring invoicing cron endpoint
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new recurring handler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// Run handles the scheduled recurring invoicing pass
// @Summary Run Recurring Invoicing
// @Description Evaluate all active recurring schedules, generating due invoices and notifications
// @Tags cron
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cron/recurring-invoices [post]
func (h *RecurringHandler) Run(c *gin.Context) {
	result, err := h.recurringService.Run(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recurring invoicing run completed", result)
}
