package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents the create project request body
type CreateProjectRequest struct {
	ClientID  string  `json:"client_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	ManagerID *string `json:"manager_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Note      *string `json:"note"`
}

// UpdateProjectRequest represents the update project request body
type UpdateProjectRequest struct {
	Name      string  `json:"name" binding:"required"`
	ManagerID *string `json:"manager_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Note      *string `json:"note"`
	Archived  *bool   `json:"archived"`
}

// List handles listing projects
// @Summary List Projects
// @Description Get all projects with pagination and filtering
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var clientID, managerID *uuid.UUID
	if v := c.Query("client_id"); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			clientID = &parsed
		}
	}
	if v := c.Query("manager_id"); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			managerID = &parsed
		}
	}

	var archived *bool
	if v := c.Query("archived"); v != "" {
		b := v == "true" || v == "1"
		archived = &b
	}

	result, err := h.projectService.ListProjects(c.Request.Context(), &service.ListProjectsInput{
		Pagination: getPagination(c),
		Search:     c.Query("search"),
		ClientID:   clientID,
		ManagerID:  managerID,
		Archived:   archived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Projects retrieved successfully", result)
}

// Get handles getting a single project
// @Summary Get Project
// @Description Get a project by ID
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.APIResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project retrieved successfully", project)
}

// Create handles creating a project
// @Summary Create Project
// @Description Create a new project for a client
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} response.APIResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	managerID, ok := parseOptionalUUID(c, req.ManagerID, "manager ID")
	if !ok {
		return
	}

	startDate, ok := parseOptionalDate(c, req.StartDate, "start date")
	if !ok {
		return
	}
	endDate, ok := parseOptionalDate(c, req.EndDate, "end date")
	if !ok {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), &service.CreateProjectInput{
		ClientID:  clientID,
		Name:      req.Name,
		ManagerID: managerID,
		StartDate: startDate,
		EndDate:   endDate,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Project created successfully", project)
}

// Update handles updating a project
// @Summary Update Project
// @Description Update an existing project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body UpdateProjectRequest true "Project data"
// @Success 200 {object} response.APIResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	managerID, ok := parseOptionalUUID(c, req.ManagerID, "manager ID")
	if !ok {
		return
	}

	startDate, ok := parseOptionalDate(c, req.StartDate, "start date")
	if !ok {
		return
	}
	endDate, ok := parseOptionalDate(c, req.EndDate, "end date")
	if !ok {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), &service.UpdateProjectInput{
		ID:        id,
		Name:      req.Name,
		ManagerID: managerID,
		StartDate: startDate,
		EndDate:   endDate,
		Note:      req.Note,
		Archived:  req.Archived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project updated successfully", project)
}

// Delete handles deleting a project
// @Summary Delete Project
// @Description Delete a project by ID
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseOptionalDate parses an optional YYYY-MM-DD string, writing a 400
// response and returning ok=false on a malformed value.
func parseOptionalDate(c *gin.Context, raw *string, label string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		response.BadRequest(c, "Invalid "+label+". Use YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
