package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// ProposalRepository defines the interface for proposal data operations
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	GetByNumber(ctx context.Context, number string) (*entity.Proposal, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	Update(ctx context.Context, proposal *entity.Proposal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProposalFilterParams) ([]entity.Proposal, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProposalStatus) error
	GetNextNumber(ctx context.Context) (int, error)
}

// ProposalFilterParams contains filtering parameters for proposal queries
type ProposalFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProposalStatus
	ClientID   *uuid.UUID
	UserID     *uuid.UUID
}

// ProposalItemRepository defines the interface for proposal item data operations
type ProposalItemRepository interface {
	Create(ctx context.Context, item *entity.ProposalItem) error
	CreateBatch(ctx context.Context, items []entity.ProposalItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProposalItem, error)
	GetByProposalID(ctx context.Context, proposalID uuid.UUID) ([]entity.ProposalItem, error)
	DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error
}
