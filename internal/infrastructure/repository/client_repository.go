package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	domainRepo "github.com/praxishq/praxis-api/internal/domain/repository"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return classify(r.db.WithContext(ctx).Create(client).Error)
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, classify(err)
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return classify(r.db.WithContext(ctx).Save(client).Error)
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error)
}

func (r *clientRepository) List(ctx context.Context, params *domainRepo.ClientFilterParams) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ManagerID != nil {
		query = query.Where("manager_id = ?", *params.ManagerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Manager").
		Order("created_at DESC").
		Find(&clients).Error

	return clients, total, classify(err)
}

func (r *clientRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ClientStatus) error {
	return classify(r.db.WithContext(ctx).Model(&entity.Client{}).
		Where("id = ?", id).
		Update("status", status).Error)
}
