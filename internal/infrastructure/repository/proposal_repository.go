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

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *gorm.DB) domainRepo.ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	return classify(r.db.WithContext(ctx).Create(proposal).Error)
}

func (r *proposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&proposal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, classify(err)
}

func (r *proposalRepository) GetByNumber(ctx context.Context, number string) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).First(&proposal, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, classify(err)
}

func (r *proposalRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Preload("Items").
		First(&proposal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, classify(err)
}

func (r *proposalRepository) Update(ctx context.Context, proposal *entity.Proposal) error {
	return classify(r.db.WithContext(ctx).Save(proposal).Error)
}

func (r *proposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ProposalItem{}, "proposal_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Proposal{}, "id = ?", id).Error
	}))
}

func (r *proposalRepository) List(ctx context.Context, params *domainRepo.ProposalFilterParams) ([]entity.Proposal, int64, error) {
	var proposals []entity.Proposal
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Proposal{})

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR title ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Order("created_at DESC").
		Find(&proposals).Error

	return proposals, total, classify(err)
}

func (r *proposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProposalStatus) error {
	return classify(r.db.WithContext(ctx).Model(&entity.Proposal{}).
		Where("id = ?", id).
		Update("status", status).Error)
}

func (r *proposalRepository) GetNextNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Proposal{}).Count(&count).Error
	return int(count) + 1, classify(err)
}

type proposalItemRepository struct {
	db *gorm.DB
}

// NewProposalItemRepository creates a new proposal item repository
func NewProposalItemRepository(db *gorm.DB) domainRepo.ProposalItemRepository {
	return &proposalItemRepository{db: db}
}

func (r *proposalItemRepository) Create(ctx context.Context, item *entity.ProposalItem) error {
	return classify(r.db.WithContext(ctx).Create(item).Error)
}

func (r *proposalItemRepository) CreateBatch(ctx context.Context, items []entity.ProposalItem) error {
	return classify(r.db.WithContext(ctx).Create(&items).Error)
}

func (r *proposalItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProposalItem, error) {
	var item entity.ProposalItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, classify(err)
}

func (r *proposalItemRepository) GetByProposalID(ctx context.Context, proposalID uuid.UUID) ([]entity.ProposalItem, error) {
	var items []entity.ProposalItem
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Find(&items).Error
	return items, classify(err)
}

func (r *proposalItemRepository) DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error {
	return classify(r.db.WithContext(ctx).Delete(&entity.ProposalItem{}, "proposal_id = ?", proposalID).Error)
}
