package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	domainRepo "github.com/praxishq/praxis-api/internal/domain/repository"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainRepo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return classify(r.db.WithContext(ctx).Create(project).Error)
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Manager").
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, classify(err)
}

func (r *projectRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&projects).Error
	return projects, classify(err)
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return classify(r.db.WithContext(ctx).Save(project).Error)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Delete(&entity.Project{}, "id = ?", id).Error)
}

func (r *projectRepository) List(ctx context.Context, params *domainRepo.ProjectFilterParams) ([]entity.Project, int64, error) {
	var projects []entity.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Project{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.ManagerID != nil {
		query = query.Where("manager_id = ?", *params.ManagerID)
	}

	if params.Archived != nil {
		query = query.Where("archived = ?", *params.Archived)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Manager").
		Order("created_at DESC").
		Find(&projects).Error

	return projects, total, classify(err)
}

func (r *projectRepository) GetNextCodeNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Project{}).Count(&count).Error
	return int(count) + 1, classify(err)
}
