package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// ProposalHandler handles proposal-related HTTP requests
type ProposalHandler struct {
	proposalService *service.ProposalService
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalService *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// ProposalItemRequest represents a line item in the request
type ProposalItemRequest struct {
	ProjectID    *string `json:"project_id"`
	Description  string  `json:"description" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required"`
	UnitPrice    float64 `json:"unit_price" binding:"required"`
	Recurring    bool    `json:"recurring"`
	Frequency    int     `json:"frequency"`
	CustomMonths *int    `json:"custom_months"`
}

// ProposalRequest represents the create/update proposal request body
type ProposalRequest struct {
	ClientID        string                `json:"client_id"`
	Date            string                `json:"date" binding:"required"`
	DiscountPercent float64               `json:"discount_percent"`
	DiscountAmount  float64               `json:"discount_amount"`
	TaxRate         float64               `json:"tax_rate"`
	TaxType         int                   `json:"tax_type"`
	Note            *string               `json:"note"`
	Recurring       bool                  `json:"recurring"`
	Frequency       int                   `json:"frequency"`
	CustomMonths    *int                  `json:"custom_months"`
	Items           []ProposalItemRequest `json:"items" binding:"required,min=1"`
}

func (r *ProposalRequest) toItems(c *gin.Context) ([]service.ProposalItemInput, bool) {
	items := make([]service.ProposalItemInput, len(r.Items))
	for i, item := range r.Items {
		projectID, ok := parseOptionalUUID(c, item.ProjectID, "project ID")
		if !ok {
			return nil, false
		}
		items[i] = service.ProposalItemInput{
			ProjectID:    projectID,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Recurring:    item.Recurring,
			Frequency:    enum.Frequency(item.Frequency),
			CustomMonths: item.CustomMonths,
		}
	}
	return items, true
}

// List handles listing proposals
// @Summary List Proposals
// @Description Get all proposals with pagination and filtering
// @Tags proposals
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	var status *enum.ProposalStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.ProposalStatus(parsed)
			status = &st
		}
	}

	var clientID *uuid.UUID
	if v := c.Query("client_id"); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			clientID = &parsed
		}
	}

	result, err := h.proposalService.ListProposals(c.Request.Context(), &service.ListProposalsInput{
		Pagination: getPagination(c),
		Search:     c.Query("search"),
		Status:     status,
		ClientID:   clientID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Proposals retrieved successfully", result)
}

// Get handles getting a single proposal
// @Summary Get Proposal
// @Description Get a proposal by ID with its items
// @Tags proposals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.APIResponse
// @Router /proposals/{id} [get]
func (h *ProposalHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal retrieved successfully", proposal)
}

// Create handles creating a proposal
// @Summary Create Proposal
// @Description Create a new proposal with derived totals
// @Tags proposals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProposalRequest true "Proposal data"
// @Success 201 {object} response.APIResponse
// @Router /proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	items, ok := req.toItems(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), &service.CreateProposalInput{
		UserID:          *userID,
		ClientID:        clientID,
		Date:            date,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		TaxRate:         req.TaxRate,
		TaxType:         enum.TaxType(req.TaxType),
		Note:            req.Note,
		Recurring:       req.Recurring,
		Frequency:       enum.Frequency(req.Frequency),
		CustomMonths:    req.CustomMonths,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proposal created successfully", proposal)
}

// Update handles updating a proposal
// @Summary Update Proposal
// @Description Update a draft proposal and recompute totals
// @Tags proposals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param request body ProposalRequest true "Proposal data"
// @Success 200 {object} response.APIResponse
// @Router /proposals/{id} [put]
func (h *ProposalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	var req ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	items, ok := req.toItems(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.UpdateProposal(c.Request.Context(), &service.UpdateProposalInput{
		ID:              id,
		Date:            date,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		TaxRate:         req.TaxRate,
		TaxType:         enum.TaxType(req.TaxType),
		Note:            req.Note,
		Recurring:       req.Recurring,
		Frequency:       enum.Frequency(req.Frequency),
		CustomMonths:    req.CustomMonths,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal updated successfully", proposal)
}

// Send handles marking a proposal as sent
// @Summary Send Proposal
// @Description Mark a draft proposal as sent
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.APIResponse
// @Router /proposals/{id}/send [post]
func (h *ProposalHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	if err := h.proposalService.SendProposal(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal sent successfully", nil)
}

// Approve handles approving a proposal
// @Summary Approve Proposal
// @Description Approve a proposal, converting the lead and creating recurring schedules
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.APIResponse
// @Router /proposals/{id}/approve [post]
func (h *ProposalHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.ApproveProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal approved successfully", proposal)
}

// Reject handles rejecting a proposal
// @Summary Reject Proposal
// @Description Mark a sent proposal as rejected
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.APIResponse
// @Router /proposals/{id}/reject [post]
func (h *ProposalHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	if err := h.proposalService.RejectProposal(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proposal rejected successfully", nil)
}

// Delete handles deleting a proposal
// @Summary Delete Proposal
// @Description Delete a proposal by ID
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 204
// @Router /proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	if err := h.proposalService.DeleteProposal(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
