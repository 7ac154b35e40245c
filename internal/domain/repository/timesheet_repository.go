package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// TimesheetRepository defines the interface for timesheet data operations
type TimesheetRepository interface {
	Create(ctx context.Context, timesheet *entity.Timesheet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Timesheet, error)
	Update(ctx context.Context, timesheet *entity.Timesheet) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TimesheetFilterParams) ([]entity.Timesheet, int64, error)
	// ListForPeriod returns a user's timesheets between from (inclusive) and
	// to (exclusive), used by compensation calculation.
	ListForPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Timesheet, error)
}

// TimesheetFilterParams contains filtering parameters for timesheet queries
type TimesheetFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	ProjectID  *uuid.UUID
	From       *time.Time
	To         *time.Time
}
