package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// InvoiceItemRequest represents a line item in the request
type InvoiceItemRequest struct {
	Type        int     `json:"type"`
	PersonID    *string `json:"person_id"`
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price" binding:"required"`
}

// InvoiceRequest represents the create/update invoice request body
type InvoiceRequest struct {
	ClientID        string               `json:"client_id"`
	ProjectID       *string              `json:"project_id"`
	ProposalID      *string              `json:"proposal_id"`
	IssueDate       string               `json:"issue_date" binding:"required"`
	DueDate         *string              `json:"due_date"`
	DiscountPercent float64              `json:"discount_percent"`
	DiscountAmount  float64              `json:"discount_amount"`
	TaxRate         float64              `json:"tax_rate"`
	TaxType         int                  `json:"tax_type"`
	Note            *string              `json:"note"`
	Items           []InvoiceItemRequest `json:"items" binding:"required,min=1"`
}

// BulkDeleteRequest represents the bulk-delete request body
type BulkDeleteRequest struct {
	InvoiceIDs []string `json:"invoice_ids" binding:"required,min=1"`
	Action     string   `json:"action" binding:"required,oneof=validate delete"`
}

func (r *InvoiceRequest) toItems(c *gin.Context) ([]service.InvoiceItemInput, bool) {
	items := make([]service.InvoiceItemInput, len(r.Items))
	for i, item := range r.Items {
		personID, ok := parseOptionalUUID(c, item.PersonID, "person ID")
		if !ok {
			return nil, false
		}
		items[i] = service.InvoiceItemInput{
			Type:        enum.ItemType(item.Type),
			PersonID:    personID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return items, true
}

// List handles listing invoices
// @Summary List Invoices
// @Description Get all invoices with pagination and filtering
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var status *enum.InvoiceStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.InvoiceStatus(parsed)
			status = &st
		}
	}

	var clientID, projectID *uuid.UUID
	if v := c.Query("client_id"); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			clientID = &parsed
		}
	}
	if v := c.Query("project_id"); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			projectID = &parsed
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &service.ListInvoicesInput{
		Pagination: getPagination(c),
		Search:     c.Query("search"),
		Status:     status,
		ClientID:   clientID,
		ProjectID:  projectID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Description Get an invoice by ID with its items
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating an invoice
// @Summary Create Invoice
// @Description Create a new draft invoice with derived totals
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body InvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	projectID, ok := parseOptionalUUID(c, req.ProjectID, "project ID")
	if !ok {
		return
	}
	proposalID, ok := parseOptionalUUID(c, req.ProposalID, "proposal ID")
	if !ok {
		return
	}

	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		response.BadRequest(c, "Invalid issue date format. Use YYYY-MM-DD")
		return
	}

	dueDate, ok := parseOptionalDate(c, req.DueDate, "due date")
	if !ok {
		return
	}

	items, ok := req.toItems(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		UserID:          *userID,
		ClientID:        clientID,
		ProjectID:       projectID,
		ProposalID:      proposalID,
		IssueDate:       issueDate,
		DueDate:         dueDate,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		TaxRate:         req.TaxRate,
		TaxType:         enum.TaxType(req.TaxType),
		Note:            req.Note,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Update handles updating an invoice
// @Summary Update Invoice
// @Description Update a draft invoice and recompute totals
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body InvoiceRequest true "Invoice data"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		response.BadRequest(c, "Invalid issue date format. Use YYYY-MM-DD")
		return
	}

	dueDate, ok := parseOptionalDate(c, req.DueDate, "due date")
	if !ok {
		return
	}

	items, ok := req.toItems(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), &service.UpdateInvoiceInput{
		ID:              id,
		IssueDate:       issueDate,
		DueDate:         dueDate,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		TaxRate:         req.TaxRate,
		TaxType:         enum.TaxType(req.TaxType),
		Note:            req.Note,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Send handles marking an invoice as sent
// @Summary Send Invoice
// @Description Mark a draft invoice as sent
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.SendInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", nil)
}

// MarkPaid handles settling an invoice
// @Summary Mark Invoice Paid
// @Description Mark a sent invoice as paid
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		PaidAt *string `json:"paid_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
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

	if err := h.invoiceService.MarkInvoicePaid(c.Request.Context(), id, paidAt); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as paid", nil)
}

// Void handles voiding an invoice
// @Summary Void Invoice
// @Description Void an unpaid invoice
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.VoidInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice voided successfully", nil)
}

// BulkDelete handles bulk validation and deletion of invoices
// @Summary Bulk Delete Invoices
// @Description Validate a batch of invoice IDs or delete the deletable subset
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Batch data"
// @Success 200 {object} response.APIResponse
// @Router /invoices/bulk-delete [post]
func (h *InvoiceHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ids := make([]uuid.UUID, len(req.InvoiceIDs))
	for i, raw := range req.InvoiceIDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid invoice ID: "+raw)
			return
		}
		ids[i] = parsed
	}

	if req.Action == "validate" {
		result, err := h.invoiceService.ValidateBulkDelete(c.Request.Context(), ids)
		if err != nil {
			response.Error(c, err)
			return
		}
		if result.AllConnectivity {
			// Every check failed because the store was unreachable;
			// report unavailability rather than "nothing is deletable".
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":         "service_unavailable",
				"message":       "Service temporarily unavailable, please retry later",
				"deletable":     []service.BulkInvoiceRef{},
				"non_deletable": result.NonDeletable,
			})
			return
		}
		response.OK(c, "Validation completed", gin.H{
			"deletable":     orEmptyRefs(result.Deletable),
			"non_deletable": orEmptyIssues(result.NonDeletable),
		})
		return
	}

	result, err := h.invoiceService.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices deleted successfully", result)
}

func orEmptyRefs(refs []service.BulkInvoiceRef) []service.BulkInvoiceRef {
	if refs == nil {
		return []service.BulkInvoiceRef{}
	}
	return refs
}

func orEmptyIssues(issues []service.BulkInvoiceIssue) []service.BulkInvoiceIssue {
	if issues == nil {
		return []service.BulkInvoiceIssue{}
	}
	return issues
}

// Delete handles deleting a single invoice
// @Summary Delete Invoice
// @Description Delete an invoice by ID
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
