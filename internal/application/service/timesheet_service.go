package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// TimesheetService handles timesheet-related operations
type TimesheetService struct {
	timesheetRepo repository.TimesheetRepository
	projectRepo   repository.ProjectRepository
	userRepo      repository.UserRepository
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(
	timesheetRepo repository.TimesheetRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
) *TimesheetService {
	return &TimesheetService{
		timesheetRepo: timesheetRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
	}
}

// LogTimesheetInput represents the input for logging hours
type LogTimesheetInput struct {
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	Date        time.Time
	Hours       float64
	HourlyRate  *float64
	Description *string
}

// LogTimesheet records hours on a project. When no rate is given the user's
// default hourly rate is captured.
func (s *TimesheetService) LogTimesheet(ctx context.Context, input *LogTimesheetInput) (*entity.Timesheet, error) {
	if input.Hours <= 0 {
		return nil, apperror.NewBadRequestError("Hours must be positive")
	}

	project, err := s.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	if project.Archived {
		return nil, apperror.NewBadRequestError("Cannot log hours on an archived project")
	}

	rate := 0.0
	if input.HourlyRate != nil {
		rate = *input.HourlyRate
	} else {
		user, err := s.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.NewNotFoundError("User")
		}
		rate = user.HourlyRate
	}

	timesheet := &entity.Timesheet{
		UserID:      input.UserID,
		ProjectID:   input.ProjectID,
		Date:        input.Date,
		Hours:       input.Hours,
		HourlyRate:  rate,
		Description: input.Description,
	}

	if err := s.timesheetRepo.Create(ctx, timesheet); err != nil {
		return nil, err
	}

	return s.timesheetRepo.GetByID(ctx, timesheet.ID)
}

// GetTimesheet retrieves a timesheet entry, restricted to its owner
func (s *TimesheetService) GetTimesheet(ctx context.Context, userID, id uuid.UUID) (*entity.Timesheet, error) {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if timesheet == nil {
		return nil, apperror.NewNotFoundError("Timesheet")
	}
	if timesheet.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return timesheet, nil
}

// ListTimesheetsInput represents the input for listing timesheets
type ListTimesheetsInput struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	ProjectID  *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// ListTimesheets lists timesheet entries with filtering
func (s *TimesheetService) ListTimesheets(ctx context.Context, input *ListTimesheetsInput) (*pagination.PaginatedResult[entity.Timesheet], error) {
	params := &repository.TimesheetFilterParams{
		Pagination: input.Pagination,
		UserID:     input.UserID,
		ProjectID:  input.ProjectID,
		From:       input.From,
		To:         input.To,
	}

	timesheets, total, err := s.timesheetRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(timesheets, pag), nil
}

// UpdateTimesheetInput represents the input for updating a timesheet entry
type UpdateTimesheetInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	Date        time.Time
	Hours       float64
	HourlyRate  *float64
	Description *string
}

// UpdateTimesheet updates an entry owned by the user
func (s *TimesheetService) UpdateTimesheet(ctx context.Context, input *UpdateTimesheetInput) (*entity.Timesheet, error) {
	if input.Hours <= 0 {
		return nil, apperror.NewBadRequestError("Hours must be positive")
	}

	timesheet, err := s.timesheetRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if timesheet == nil {
		return nil, apperror.NewNotFoundError("Timesheet")
	}
	if timesheet.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	timesheet.Date = input.Date
	timesheet.Hours = input.Hours
	if input.HourlyRate != nil {
		timesheet.HourlyRate = *input.HourlyRate
	}
	timesheet.Description = input.Description

	if err := s.timesheetRepo.Update(ctx, timesheet); err != nil {
		return nil, err
	}

	return s.timesheetRepo.GetByID(ctx, timesheet.ID)
}

// DeleteTimesheet deletes an entry owned by the user
func (s *TimesheetService) DeleteTimesheet(ctx context.Context, userID, id uuid.UUID) error {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if timesheet == nil {
		return apperror.NewNotFoundError("Timesheet")
	}
	if timesheet.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.timesheetRepo.Delete(ctx, id)
}
