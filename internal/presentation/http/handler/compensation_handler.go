package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// CompensationHandler handles compensation-related HTTP requests
type CompensationHandler struct {
	compensationService *service.CompensationService
}

// NewCompensationHandler creates a new compensation handler
func NewCompensationHandler(compensationService *service.CompensationService) *CompensationHandler {
	return &CompensationHandler{compensationService: compensationService}
}

// SchemeRequest represents the create/update scheme request body
type SchemeRequest struct {
	UserID            string  `json:"user_id"`
	Type              int     `json:"type"`
	BaseSalary        float64 `json:"base_salary"`
	PercentageType    int     `json:"percentage_type"`
	ProjectPercent    float64 `json:"project_percent"`
	DirectWorkPercent float64 `json:"direct_work_percent"`
	EffectiveFrom     string  `json:"effective_from" binding:"required"`
	EffectiveTo       *string `json:"effective_to"`
}

// EligibilityRequest represents the eligibility override request body
type EligibilityRequest struct {
	ProjectID  *string `json:"project_id"`
	ClientID   *string `json:"client_id"`
	InvoiceID  *string `json:"invoice_id"`
	IsEligible bool    `json:"is_eligible"`

	ProjectPercent    *float64 `json:"project_percent"`
	DirectWorkPercent *float64 `json:"direct_work_percent"`
	FixedAmount       *float64 `json:"fixed_amount"`
}

// CalculateRequest represents the compensation calculation request body
type CalculateRequest struct {
	UserID          string   `json:"user_id" binding:"required"`
	Year            int      `json:"year" binding:"required"`
	Month           int      `json:"month" binding:"required"`
	BonusMultiplier *float64 `json:"bonus_multiplier"`
}

// PaymentRequest represents the payout request body
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	PaidAt *string `json:"paid_at"`
	Note   *string `json:"note"`
}

// CreateScheme handles creating a compensation scheme
// @Summary Create Compensation Scheme
// @Description Create a compensation scheme for a user
// @Tags compensation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SchemeRequest true "Scheme data"
// @Success 201 {object} response.APIResponse
// @Router /compensation/schemes [post]
func (h *CompensationHandler) CreateScheme(c *gin.Context) {
	var req SchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		response.BadRequest(c, "Invalid effective from date format. Use YYYY-MM-DD")
		return
	}

	effectiveTo, ok := parseOptionalDate(c, req.EffectiveTo, "effective to date")
	if !ok {
		return
	}

	scheme, err := h.compensationService.CreateScheme(c.Request.Context(), &service.CreateSchemeInput{
		UserID:            userID,
		Type:              enum.CompensationType(req.Type),
		BaseSalary:        req.BaseSalary,
		PercentageType:    enum.PercentageType(req.PercentageType),
		ProjectPercent:    req.ProjectPercent,
		DirectWorkPercent: req.DirectWorkPercent,
		EffectiveFrom:     effectiveFrom,
		EffectiveTo:       effectiveTo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Compensation scheme created successfully", scheme)
}

// GetScheme handles getting a scheme with its overrides
// @Summary Get Compensation Scheme
// @Description Get a compensation scheme by ID
// @Tags compensation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Scheme ID"
// @Success 200 {object} response.APIResponse
// @Router /compensation/schemes/{id} [get]
func (h *CompensationHandler) GetScheme(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	scheme, err := h.compensationService.GetScheme(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compensation scheme retrieved successfully", scheme)
}

// ListSchemes handles listing a user's schemes
// @Summary List Compensation Schemes
// @Description Get all compensation schemes for a user
// @Tags compensation
// @Security BearerAuth
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} response.APIResponse
// @Router /compensation/schemes [get]
func (h *CompensationHandler) ListSchemes(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	schemes, err := h.compensationService.ListSchemes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compensation schemes retrieved successfully", schemes)
}

// UpdateScheme handles updating a scheme
// @Summary Update Compensation Scheme
// @Description Update a compensation scheme
// @Tags compensation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Scheme ID"
// @Param request body SchemeRequest true "Scheme data"
// @Success 200 {object} response.APIResponse
// @Router /compensation/schemes/{id} [put]
func (h *CompensationHandler) UpdateScheme(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	var req SchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		response.BadRequest(c, "Invalid effective from date format. Use YYYY-MM-DD")
		return
	}

	effectiveTo, ok := parseOptionalDate(c, req.EffectiveTo, "effective to date")
	if !ok {
		return
	}

	scheme, err := h.compensationService.UpdateScheme(c.Request.Context(), &service.UpdateSchemeInput{
		ID:                id,
		Type:              enum.CompensationType(req.Type),
		BaseSalary:        req.BaseSalary,
		PercentageType:    enum.PercentageType(req.PercentageType),
		ProjectPercent:    req.ProjectPercent,
		DirectWorkPercent: req.DirectWorkPercent,
		EffectiveFrom:     effectiveFrom,
		EffectiveTo:       effectiveTo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compensation scheme updated successfully", scheme)
}

// DeleteScheme handles deleting a scheme
// @Summary Delete Compensation Scheme
// @Description Delete a compensation scheme by ID
// @Tags compensation
// @Security BearerAuth
// @Param id path string true "Scheme ID"
// @Success 204
// @Router /compensation/schemes/{id} [delete]
func (h *CompensationHandler) DeleteScheme(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	if err := h.compensationService.DeleteScheme(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpsertEligibility handles creating or replacing an eligibility override
// @Summary Upsert Eligibility Override
// @Description Create or replace the eligibility override for a scope
// @Tags compensation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Scheme ID"
// @Param request body EligibilityRequest true "Override data"
// @Success 200 {object} response.APIResponse
// @Router /compensation/schemes/{id}/eligibility [put]
func (h *CompensationHandler) UpsertEligibility(c *gin.Context) {
	schemeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	var req EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	projectID, ok := parseOptionalUUID(c, req.ProjectID, "project ID")
	if !ok {
		return
	}
	clientID, ok := parseOptionalUUID(c, req.ClientID, "client ID")
	if !ok {
		return
	}
	invoiceID, ok := parseOptionalUUID(c, req.InvoiceID, "invoice ID")
	if !ok {
		return
	}

	override, err := h.compensationService.UpsertEligibility(c.Request.Context(), &service.UpsertEligibilityInput{
		SchemeID:          schemeID,
		ProjectID:         projectID,
		ClientID:          clientID,
		InvoiceID:         invoiceID,
		IsEligible:        req.IsEligible,
		ProjectPercent:    req.ProjectPercent,
		DirectWorkPercent: req.DirectWorkPercent,
		FixedAmount:       req.FixedAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Eligibility override saved successfully", override)
}

// ListEligibility handles listing a scheme's overrides
// @Summary List Eligibility Overrides
// @Description Get all eligibility overrides for a scheme
// @Tags compensation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Scheme ID"
// @Success 200 {object} response.APIResponse
// @Router /compensation/schemes/{id}/eligibility [get]
func (h *CompensationHandler) ListEligibility(c *gin.Context) {
	schemeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid scheme ID")
		return
	}

	overrides, err := h.compensationService.ListEligibility(c.Request.Context(), schemeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Eligibility overrides retrieved successfully", overrides)
}

// DeleteEligibility handles deleting an override
// @Summary Delete Eligibility Override
// @Description Delete an eligibility override by ID
// @Tags compensation
// @Security BearerAuth
// @Param id path string true "Override ID"
// @Success 204
// @Router /compensation/eligibility/{id} [delete]
func (h *CompensationHandler) DeleteEligibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid override ID")
		return
	}

	if err := h.compensationService.DeleteEligibility(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Calculate handles computing a compensation entry for a period
// @Summary Calculate Compensation
// @Description Compute and store the compensation entry for a user and month
// @Tags compensation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Calculation data"
// @Success 201 {object} response.APIResponse
// @Router /compensation/calculate [post]
func (h *CompensationHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	entry, err := h.compensationService.Calculate(c.Request.Context(), &service.CalculateInput{
		UserID:          userID,
		Year:            req.Year,
		Month:           req.Month,
		BonusMultiplier: req.BonusMultiplier,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Compensation calculated successfully", entry)
}

// GetEntry handles getting a computed entry
// @Summary Get Compensation Entry
// @Description Get a compensation entry by ID
// @Tags compensation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.APIResponse
// @Router /compensation/entries/{id} [get]
func (h *CompensationHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.compensationService.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Compensation entry retrieved successfully", entry)
}

// ListEntries handles listing computed entries
// @Summary List Compensation Entries
// @Description Get computed compensation entries with filtering
// @Tags compensation
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param user_id query string false "User filter"
// @Param year query int false "Year filter"
// @Param month query int false "Month filter"
// @Success 200 {object} response.APIResponse
// @Router /compensation/entries [get]
func (h *CompensationHandler) ListEntries(c *gin.Context) {
	var userID *uuid.UUID
	if v := c.Query("user_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		userID = &parsed
	}

	var year, month *int
	if v := c.Query("year"); v != "" {
		if parsed, err := parsePositiveInt(v); err == nil {
			year = &parsed
		}
	}
	if v := c.Query("month"); v != "" {
		if parsed, err := parsePositiveInt(v); err == nil {
			month = &parsed
		}
	}

	result, err := h.compensationService.ListEntries(c.Request.Context(), &service.ListEntriesInput{
		Pagination: getPagination(c),
		UserID:     userID,
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Compensation entries retrieved successfully", result)
}

// RecordPayment handles recording a payout against an entry
// @Summary Record Compensation Payment
// @Description Record a payout against a compensation entry
// @Tags compensation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body PaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Router /compensation/entries/{id}/payments [post]
func (h *CompensationHandler) RecordPayment(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	paidAt := time.Now()
	if req.PaidAt != nil && *req.PaidAt != "" {
		parsed, err := time.Parse("2006-01-02", *req.PaidAt)
		if err != nil {
			response.BadRequest(c, "Invalid paid date format. Use YYYY-MM-DD")
			return
		}
		paidAt = parsed
	}

	entry, err := h.compensationService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		EntryID: entryID,
		Amount:  req.Amount,
		PaidAt:  paidAt,
		Note:    req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", entry)
}
