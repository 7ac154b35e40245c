package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	domainRepo "github.com/praxishq/praxis-api/internal/domain/repository"
	"gorm.io/gorm"
)

type timesheetRepository struct {
	db *gorm.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *gorm.DB) domainRepo.TimesheetRepository {
	return &timesheetRepository{db: db}
}

func (r *timesheetRepository) Create(ctx context.Context, timesheet *entity.Timesheet) error {
	return classify(r.db.WithContext(ctx).Create(timesheet).Error)
}

func (r *timesheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Timesheet, error) {
	var timesheet entity.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Project").
		First(&timesheet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &timesheet, classify(err)
}

func (r *timesheetRepository) Update(ctx context.Context, timesheet *entity.Timesheet) error {
	return classify(r.db.WithContext(ctx).Save(timesheet).Error)
}

func (r *timesheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Delete(&entity.Timesheet{}, "id = ?", id).Error)
}

func (r *timesheetRepository) List(ctx context.Context, params *domainRepo.TimesheetFilterParams) ([]entity.Timesheet, int64, error) {
	var timesheets []entity.Timesheet
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Timesheet{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.ProjectID != nil {
		query = query.Where("project_id = ?", *params.ProjectID)
	}

	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}

	if params.To != nil {
		query = query.Where("date < ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Project").
		Order("date DESC").
		Find(&timesheets).Error

	return timesheets, total, classify(err)
}

func (r *timesheetRepository) ListForPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Timesheet, error) {
	var timesheets []entity.Timesheet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Find(&timesheets).Error
	return timesheets, classify(err)
}
