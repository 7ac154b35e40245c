package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ClientRequest represents the create/update client request body
type ClientRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Status    int     `json:"status"`
	ManagerID *string `json:"manager_id"`
	Note      *string `json:"note"`
}

// List handles listing clients
// @Summary List Clients
// @Description Get all clients with pagination and filtering
// @Tags clients
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var status *enum.ClientStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.ClientStatus(parsed)
			status = &st
		}
	}

	var managerID *uuid.UUID
	if m := c.Query("manager_id"); m != "" {
		if parsed, err := uuid.Parse(m); err == nil {
			managerID = &parsed
		}
	}

	result, err := h.clientService.ListClients(c.Request.Context(), &service.ListClientsInput{
		Pagination: getPagination(c),
		Search:     c.Query("search"),
		Status:     status,
		ManagerID:  managerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Get handles getting a single client
// @Summary Get Client
// @Description Get a client by ID
// @Tags clients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} response.APIResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Create handles creating a client
// @Summary Create Client
// @Description Create a new client or lead
// @Tags clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ClientRequest true "Client data"
// @Success 201 {object} response.APIResponse
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	managerID, ok := parseOptionalUUID(c, req.ManagerID, "manager ID")
	if !ok {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    enum.ClientStatus(req.Status),
		ManagerID: managerID,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Update handles updating a client
// @Summary Update Client
// @Description Update an existing client
// @Tags clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body ClientRequest true "Client data"
// @Success 200 {object} response.APIResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	managerID, ok := parseOptionalUUID(c, req.ManagerID, "manager ID")
	if !ok {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		ManagerID: managerID,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Convert handles converting a lead to an active client
// @Summary Convert Lead
// @Description Promote a lead to an active client
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.APIResponse
// @Router /clients/{id}/convert [post]
func (h *ClientHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.ConvertLead(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lead converted successfully", client)
}

// Archive handles archiving a client
// @Summary Archive Client
// @Description Mark a client as archived
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.APIResponse
// @Router /clients/{id}/archive [post]
func (h *ClientHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.ArchiveClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client archived successfully", nil)
}

// Delete handles deleting a client
// @Summary Delete Client
// @Description Delete a client by ID
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseOptionalUUID parses an optional UUID string, writing a 400 response
// and returning ok=false on a malformed value.
func parseOptionalUUID(c *gin.Context, raw *string, label string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+label)
		return nil, false
	}
	return &parsed, true
}
