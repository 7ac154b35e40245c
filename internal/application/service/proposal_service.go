package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/billing"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// ProposalService handles proposal-related operations
type ProposalService struct {
	proposalRepo     repository.ProposalRepository
	proposalItemRepo repository.ProposalItemRepository
	clientRepo       repository.ClientRepository
	recurringRepo    repository.RecurringRepository
}

// NewProposalService creates a new proposal service
func NewProposalService(
	proposalRepo repository.ProposalRepository,
	proposalItemRepo repository.ProposalItemRepository,
	clientRepo repository.ClientRepository,
	recurringRepo repository.RecurringRepository,
) *ProposalService {
	return &ProposalService{
		proposalRepo:     proposalRepo,
		proposalItemRepo: proposalItemRepo,
		clientRepo:       clientRepo,
		recurringRepo:    recurringRepo,
	}
}

// ProposalItemInput represents a line item input
type ProposalItemInput struct {
	ProjectID    *uuid.UUID
	Description  string
	Quantity     float64
	UnitPrice    float64
	Recurring    bool
	Frequency    enum.Frequency
	CustomMonths *int
}

// CreateProposalInput represents the input for creating a proposal
type CreateProposalInput struct {
	UserID          uuid.UUID
	ClientID        uuid.UUID
	Date            time.Time
	DiscountPercent float64
	DiscountAmount  float64
	TaxRate         float64
	TaxType         enum.TaxType
	Note            *string
	Recurring       bool
	Frequency       enum.Frequency
	CustomMonths    *int
	Items           []ProposalItemInput
}

// CreateProposal creates a new proposal with derived totals
func (s *ProposalService) CreateProposal(ctx context.Context, input *CreateProposalInput) (*entity.Proposal, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	nextNum, err := s.proposalRepo.GetNextNumber(ctx)
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("PR-%06d", nextNum)

	if existing, err := s.proposalRepo.GetByNumber(ctx, number); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.NewConflictError("Proposal number already in use")
	}

	var subtotal float64
	for _, item := range input.Items {
		subtotal += item.Quantity * item.UnitPrice
	}

	totals := billing.ComputeTotals(billing.TotalsInput{
		Subtotal:        subtotal,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		TaxRate:         input.TaxRate,
		TaxType:         input.TaxType,
	})

	proposal := &entity.Proposal{
		UserID:          input.UserID,
		ClientID:        input.ClientID,
		Number:          number,
		Date:            input.Date,
		Status:          enum.ProposalStatusDraft,
		Subtotal:        subtotal,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		DiscountValue:   totals.DiscountValue,
		TaxRate:         input.TaxRate,
		TaxType:         input.TaxType,
		TaxValue:        totals.TaxValue,
		TotalAmount:     totals.Total,
		Note:            input.Note,
		Recurring:       input.Recurring,
		Frequency:       input.Frequency,
		CustomMonths:    input.CustomMonths,
	}

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	if len(input.Items) > 0 {
		items := buildProposalItems(proposal.ID, input.Items)
		if err := s.proposalItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.proposalRepo.GetWithItems(ctx, proposal.ID)
}

func buildProposalItems(proposalID uuid.UUID, inputs []ProposalItemInput) []entity.ProposalItem {
	items := make([]entity.ProposalItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, entity.ProposalItem{
			ProposalID:   proposalID,
			ProjectID:    in.ProjectID,
			Description:  in.Description,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Amount:       in.Quantity * in.UnitPrice,
			Recurring:    in.Recurring,
			Frequency:    in.Frequency,
			CustomMonths: in.CustomMonths,
		})
	}
	return items
}

// GetProposal retrieves a proposal with its items
func (s *ProposalService) GetProposal(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	return proposal, nil
}

// ListProposalsInput represents the input for listing proposals
type ListProposalsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProposalStatus
	ClientID   *uuid.UUID
	UserID     *uuid.UUID
}

// ListProposals lists proposals with filtering
func (s *ProposalService) ListProposals(ctx context.Context, input *ListProposalsInput) (*pagination.PaginatedResult[entity.Proposal], error) {
	params := &repository.ProposalFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		ClientID:   input.ClientID,
		UserID:     input.UserID,
	}

	proposals, total, err := s.proposalRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(proposals, pag), nil
}

// UpdateProposalInput represents the input for updating a proposal
type UpdateProposalInput struct {
	ID              uuid.UUID
	Date            time.Time
	DiscountPercent float64
	DiscountAmount  float64
	TaxRate         float64
	TaxType         enum.TaxType
	Note            *string
	Recurring       bool
	Frequency       enum.Frequency
	CustomMonths    *int
	Items           []ProposalItemInput
}

// UpdateProposal replaces a draft proposal's content and recomputes totals
func (s *ProposalService) UpdateProposal(ctx context.Context, input *UpdateProposalInput) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusDraft {
		return nil, apperror.NewBadRequestError("Only draft proposals can be edited")
	}

	var subtotal float64
	for _, item := range input.Items {
		subtotal += item.Quantity * item.UnitPrice
	}

	totals := billing.ComputeTotals(billing.TotalsInput{
		Subtotal:        subtotal,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		TaxRate:         input.TaxRate,
		TaxType:         input.TaxType,
	})

	proposal.Date = input.Date
	proposal.Subtotal = subtotal
	proposal.DiscountPercent = input.DiscountPercent
	proposal.DiscountAmount = input.DiscountAmount
	proposal.DiscountValue = totals.DiscountValue
	proposal.TaxRate = input.TaxRate
	proposal.TaxType = input.TaxType
	proposal.TaxValue = totals.TaxValue
	proposal.TotalAmount = totals.Total
	proposal.Note = input.Note
	proposal.Recurring = input.Recurring
	proposal.Frequency = input.Frequency
	proposal.CustomMonths = input.CustomMonths

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	if err := s.proposalItemRepo.DeleteByProposalID(ctx, proposal.ID); err != nil {
		return nil, err
	}
	if len(input.Items) > 0 {
		items := buildProposalItems(proposal.ID, input.Items)
		if err := s.proposalItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.proposalRepo.GetWithItems(ctx, proposal.ID)
}

// SendProposal marks a draft proposal as sent
func (s *ProposalService) SendProposal(ctx context.Context, id uuid.UUID) error {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if proposal == nil {
		return apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusDraft {
		return apperror.NewBadRequestError("Only draft proposals can be sent")
	}

	return s.proposalRepo.UpdateStatus(ctx, id, enum.ProposalStatusSent)
}

// ApproveProposal marks a sent proposal as approved, converts a lead client
// to active, and creates recurring schedules for the proposal's recurring
// sources.
func (s *ProposalService) ApproveProposal(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusSent && proposal.Status != enum.ProposalStatusDraft {
		return nil, apperror.NewBadRequestError("Proposal cannot be approved in its current status")
	}

	now := time.Now()
	proposal.Status = enum.ProposalStatusApproved
	proposal.ApprovedAt = &now
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	if proposal.Client.Status == enum.ClientStatusLead {
		if err := s.clientRepo.UpdateStatus(ctx, proposal.ClientID, enum.ClientStatusActive); err != nil {
			return nil, err
		}
	}

	schedules := recurringSchedulesFor(proposal, now)
	if len(schedules) > 0 {
		if err := s.recurringRepo.CreateBatch(ctx, schedules); err != nil {
			return nil, err
		}
	}

	return s.proposalRepo.GetWithItems(ctx, proposal.ID)
}

// recurringSchedulesFor derives the schedules an approval spawns: one for
// the proposal itself when it recurs as a whole, one per recurring item
// otherwise.
func recurringSchedulesFor(proposal *entity.Proposal, now time.Time) []entity.RecurringSchedule {
	var schedules []entity.RecurringSchedule
	start := billing.Midnight(now)

	if proposal.Recurring {
		schedules = append(schedules, entity.RecurringSchedule{
			SourceType:   enum.RecurringSourceProposal,
			SourceID:     proposal.ID,
			ProposalID:   proposal.ID,
			StartDate:    start,
			Frequency:    proposal.Frequency,
			CustomMonths: proposal.CustomMonths,
		})
		return schedules
	}

	for _, item := range proposal.Items {
		if !item.Recurring {
			continue
		}
		schedules = append(schedules, entity.RecurringSchedule{
			SourceType:   enum.RecurringSourceProposalItem,
			SourceID:     item.ID,
			ProposalID:   proposal.ID,
			StartDate:    start,
			Frequency:    item.Frequency,
			CustomMonths: item.CustomMonths,
		})
	}
	return schedules
}

// RejectProposal marks a sent proposal as rejected
func (s *ProposalService) RejectProposal(ctx context.Context, id uuid.UUID) error {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if proposal == nil {
		return apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusSent {
		return apperror.NewBadRequestError("Only sent proposals can be rejected")
	}

	return s.proposalRepo.UpdateStatus(ctx, id, enum.ProposalStatusRejected)
}

// DeleteProposal deletes a proposal and its items
func (s *ProposalService) DeleteProposal(ctx context.Context, id uuid.UUID) error {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if proposal == nil {
		return apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status == enum.ProposalStatusApproved {
		return apperror.NewBadRequestError("Approved proposals cannot be deleted")
	}

	return s.proposalRepo.Delete(ctx, id)
}
