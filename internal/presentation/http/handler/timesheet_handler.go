package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/application/service"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// TimesheetHandler handles timesheet-related HTTP requests
type TimesheetHandler struct {
	timesheetService *service.TimesheetService
}

// NewTimesheetHandler creates a new timesheet handler
func NewTimesheetHandler(timesheetService *service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheetService: timesheetService}
}

// LogTimesheetRequest represents the log hours request body
type LogTimesheetRequest struct {
	ProjectID   string   `json:"project_id" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Hours       float64  `json:"hours" binding:"required"`
	HourlyRate  *float64 `json:"hourly_rate"`
	Description *string  `json:"description"`
}

// UpdateTimesheetRequest represents the update request body
type UpdateTimesheetRequest struct {
	Date        string   `json:"date" binding:"required"`
	Hours       float64  `json:"hours" binding:"required"`
	HourlyRate  *float64 `json:"hourly_rate"`
	Description *string  `json:"description"`
}

// List handles listing the user's timesheets
// @Summary List Timesheets
// @Description Get timesheet entries with pagination and filtering
// @Tags timesheets
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /timesheets [get]
func (h *TimesheetHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var projectID *uuid.UUID
	if v := c.Query("project_id"); v != "" {
		if parsed, err := uuid.Parse(v); err == nil {
			projectID = &parsed
		}
	}

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			from = &parsed
		}
	}
	if v := c.Query("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			to = &parsed
		}
	}

	result, err := h.timesheetService.ListTimesheets(c.Request.Context(), &service.ListTimesheetsInput{
		Pagination: getPagination(c),
		UserID:     userID,
		ProjectID:  projectID,
		From:       from,
		To:         to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Timesheets retrieved successfully", result)
}

// Get handles getting a single timesheet entry
// @Summary Get Timesheet
// @Description Get a timesheet entry by ID
// @Tags timesheets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Timesheet ID"
// @Success 200 {object} response.APIResponse
// @Router /timesheets/{id} [get]
func (h *TimesheetHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid timesheet ID")
		return
	}

	timesheet, err := h.timesheetService.GetTimesheet(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Timesheet retrieved successfully", timesheet)
}

// Create handles logging hours
// @Summary Log Hours
// @Description Log hours on a project
// @Tags timesheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LogTimesheetRequest true "Timesheet data"
// @Success 201 {object} response.APIResponse
// @Router /timesheets [post]
func (h *TimesheetHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req LogTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	timesheet, err := h.timesheetService.LogTimesheet(c.Request.Context(), &service.LogTimesheetInput{
		UserID:      *userID,
		ProjectID:   projectID,
		Date:        date,
		Hours:       req.Hours,
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Hours logged successfully", timesheet)
}

// Update handles updating a timesheet entry
// @Summary Update Timesheet
// @Description Update an existing timesheet entry
// @Tags timesheets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Timesheet ID"
// @Param request body UpdateTimesheetRequest true "Timesheet data"
// @Success 200 {object} response.APIResponse
// @Router /timesheets/{id} [put]
func (h *TimesheetHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid timesheet ID")
		return
	}

	var req UpdateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	timesheet, err := h.timesheetService.UpdateTimesheet(c.Request.Context(), &service.UpdateTimesheetInput{
		UserID:      *userID,
		ID:          id,
		Date:        date,
		Hours:       req.Hours,
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Timesheet updated successfully", timesheet)
}

// Delete handles deleting a timesheet entry
// @Summary Delete Timesheet
// @Description Delete a timesheet entry by ID
// @Tags timesheets
// @Security BearerAuth
// @Param id path string true "Timesheet ID"
// @Success 204
// @Router /timesheets/{id} [delete]
func (h *TimesheetHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid timesheet ID")
		return
	}

	if err := h.timesheetService.DeleteTimesheet(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
