package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
)

type fakeProposalRepo struct {
	repository.ProposalRepository

	proposals     map[uuid.UUID]*entity.Proposal
	statusUpdates map[uuid.UUID]enum.ProposalStatus
}

func (f *fakeProposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	return f.proposals[id], nil
}

func (f *fakeProposalRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	return f.proposals[id], nil
}

func (f *fakeProposalRepo) Update(ctx context.Context, proposal *entity.Proposal) error {
	f.proposals[proposal.ID] = proposal
	return nil
}

func (f *fakeProposalRepo) Create(ctx context.Context, proposal *entity.Proposal) error {
	if proposal.ID == uuid.Nil {
		proposal.ID = uuid.New()
	}
	if f.proposals == nil {
		f.proposals = map[uuid.UUID]*entity.Proposal{}
	}
	f.proposals[proposal.ID] = proposal
	return nil
}

func (f *fakeProposalRepo) GetByNumber(ctx context.Context, number string) (*entity.Proposal, error) {
	for _, p := range f.proposals {
		if p.Number == number {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProposalRepo) GetNextNumber(ctx context.Context) (int, error) {
	return len(f.proposals) + 1, nil
}

func (f *fakeProposalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProposalStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[uuid.UUID]enum.ProposalStatus{}
	}
	f.statusUpdates[id] = status
	if p, ok := f.proposals[id]; ok {
		p.Status = status
	}
	return nil
}

type fakeProposalItemRepo struct {
	repository.ProposalItemRepository

	batches [][]entity.ProposalItem
}

func (f *fakeProposalItemRepo) CreateBatch(ctx context.Context, items []entity.ProposalItem) error {
	f.batches = append(f.batches, items)
	return nil
}

func TestCreateProposal_DerivesTotals(t *testing.T) {
	clientID := uuid.New()
	clientRepo := &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{
		clientID: {ID: clientID, Status: enum.ClientStatusActive},
	}}
	proposalRepo := &fakeProposalRepo{}
	itemRepo := &fakeProposalItemRepo{}
	svc := NewProposalService(proposalRepo, itemRepo, clientRepo, &fakeRecurringRepo{})

	created, err := svc.CreateProposal(context.Background(), &CreateProposalInput{
		UserID:          uuid.New(),
		ClientID:        clientID,
		Date:            date(2026, 3, 1),
		DiscountPercent: 10,
		TaxRate:         23,
		TaxType:         enum.TaxTypeExclusive,
		Items: []ProposalItemInput{
			{Description: "Consulting", Quantity: 10, UnitPrice: 80},
			{Description: "Audit", Quantity: 1, UnitPrice: 200},
		},
	})
	if err != nil {
		t.Fatalf("CreateProposal() error = %v", err)
	}

	if created.Number != "PR-000001" {
		t.Errorf("Number = %q, want %q", created.Number, "PR-000001")
	}
	if created.Status != enum.ProposalStatusDraft {
		t.Errorf("Status = %v, want draft", created.Status)
	}
	if created.Subtotal != 1000 {
		t.Errorf("Subtotal = %v, want 1000", created.Subtotal)
	}
	if created.DiscountValue != 100 {
		t.Errorf("DiscountValue = %v, want 100", created.DiscountValue)
	}
	if created.TaxValue != 207 {
		t.Errorf("TaxValue = %v, want 23%% of the discounted 900", created.TaxValue)
	}
	if created.TotalAmount != 1107 {
		t.Errorf("TotalAmount = %v, want 1107", created.TotalAmount)
	}

	if len(itemRepo.batches) != 1 || len(itemRepo.batches[0]) != 2 {
		t.Fatalf("CreateBatch batches = %v, want one batch of two items", itemRepo.batches)
	}
	if amt := itemRepo.batches[0][0].Amount; amt != 800 {
		t.Errorf("item Amount = %v, want 800", amt)
	}
}

func TestApproveProposal_ConvertsLeadAndCreatesSchedules(t *testing.T) {
	clientID := uuid.New()
	proposal := &entity.Proposal{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ClientID:  clientID,
		Number:    "PRO-000050",
		Status:    enum.ProposalStatusSent,
		Recurring: true,
		Frequency: enum.FrequencyQuarterly,
		Client:    entity.Client{ID: clientID, Status: enum.ClientStatusLead},
	}

	proposalRepo := &fakeProposalRepo{proposals: map[uuid.UUID]*entity.Proposal{proposal.ID: proposal}}
	clientRepo := &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{
		clientID: {ID: clientID, Status: enum.ClientStatusLead},
	}}
	recurringRepo := &fakeRecurringRepo{}
	svc := NewProposalService(proposalRepo, nil, clientRepo, recurringRepo)

	approved, err := svc.ApproveProposal(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("ApproveProposal() error = %v", err)
	}

	if approved.Status != enum.ProposalStatusApproved {
		t.Errorf("Status = %v, want approved", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Error("ApprovedAt = nil, want set")
	}
	if got := clientRepo.statusUpdates[clientID]; got != enum.ClientStatusActive {
		t.Errorf("client status = %v, want active after lead conversion", got)
	}

	if len(recurringRepo.batched) != 1 {
		t.Fatalf("CreateBatch called %d times, want 1", len(recurringRepo.batched))
	}
	schedules := recurringRepo.batched[0]
	if len(schedules) != 1 {
		t.Fatalf("len(schedules) = %d, want 1 for a whole-proposal recurrence", len(schedules))
	}
	s := schedules[0]
	if s.SourceType != enum.RecurringSourceProposal || s.SourceID != proposal.ID {
		t.Errorf("schedule source = (%v, %v), want the proposal itself", s.SourceType, s.SourceID)
	}
	if s.Frequency != enum.FrequencyQuarterly {
		t.Errorf("Frequency = %v, want quarterly", s.Frequency)
	}
	if s.LastInvoiceDate != nil {
		t.Error("LastInvoiceDate set on a fresh schedule, want nil")
	}
}

func TestApproveProposal_PerItemSchedules(t *testing.T) {
	clientID := uuid.New()
	recurringItem := entity.ProposalItem{
		ID: uuid.New(), Description: "Support retainer",
		Recurring: true, Frequency: enum.FrequencyMonthly,
	}
	oneOffItem := entity.ProposalItem{ID: uuid.New(), Description: "Setup fee"}
	proposal := &entity.Proposal{
		ID:       uuid.New(),
		ClientID: clientID,
		Number:   "PRO-000051",
		Status:   enum.ProposalStatusSent,
		Items:    []entity.ProposalItem{recurringItem, oneOffItem},
		Client:   entity.Client{ID: clientID, Status: enum.ClientStatusActive},
	}

	proposalRepo := &fakeProposalRepo{proposals: map[uuid.UUID]*entity.Proposal{proposal.ID: proposal}}
	clientRepo := &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{
		clientID: {ID: clientID, Status: enum.ClientStatusActive},
	}}
	recurringRepo := &fakeRecurringRepo{}
	svc := NewProposalService(proposalRepo, nil, clientRepo, recurringRepo)

	if _, err := svc.ApproveProposal(context.Background(), proposal.ID); err != nil {
		t.Fatalf("ApproveProposal() error = %v", err)
	}

	if len(clientRepo.statusUpdates) != 0 {
		t.Error("client status was touched though the client is already active")
	}
	if len(recurringRepo.batched) != 1 {
		t.Fatalf("CreateBatch called %d times, want 1", len(recurringRepo.batched))
	}
	schedules := recurringRepo.batched[0]
	if len(schedules) != 1 {
		t.Fatalf("len(schedules) = %d, want 1 (only the recurring item)", len(schedules))
	}
	s := schedules[0]
	if s.SourceType != enum.RecurringSourceProposalItem || s.SourceID != recurringItem.ID {
		t.Errorf("schedule source = (%v, %v), want the recurring item", s.SourceType, s.SourceID)
	}
}

func TestApproveProposal_InvalidStatus(t *testing.T) {
	proposal := &entity.Proposal{
		ID:     uuid.New(),
		Status: enum.ProposalStatusRejected,
	}
	proposalRepo := &fakeProposalRepo{proposals: map[uuid.UUID]*entity.Proposal{proposal.ID: proposal}}
	svc := NewProposalService(proposalRepo, nil, &fakeClientRepo{}, &fakeRecurringRepo{})

	_, err := svc.ApproveProposal(context.Background(), proposal.ID)
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != 400 {
		t.Errorf("ApproveProposal() error = %v, want 400", err)
	}
}

func TestSendProposal_OnlyDrafts(t *testing.T) {
	draft := &entity.Proposal{ID: uuid.New(), Status: enum.ProposalStatusDraft}
	sent := &entity.Proposal{ID: uuid.New(), Status: enum.ProposalStatusSent}
	proposalRepo := &fakeProposalRepo{proposals: map[uuid.UUID]*entity.Proposal{
		draft.ID: draft, sent.ID: sent,
	}}
	svc := NewProposalService(proposalRepo, nil, &fakeClientRepo{}, &fakeRecurringRepo{})

	if err := svc.SendProposal(context.Background(), draft.ID); err != nil {
		t.Errorf("SendProposal(draft) error = %v, want nil", err)
	}
	if got := proposalRepo.statusUpdates[draft.ID]; got != enum.ProposalStatusSent {
		t.Errorf("draft status = %v, want sent", got)
	}

	if err := svc.SendProposal(context.Background(), sent.ID); err == nil {
		t.Error("SendProposal(sent) error = nil, want bad request")
	}
}

func TestConvertLead(t *testing.T) {
	lead := &entity.Client{ID: uuid.New(), Status: enum.ClientStatusLead}
	active := &entity.Client{ID: uuid.New(), Status: enum.ClientStatusActive}
	clientRepo := &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{
		lead.ID: lead, active.ID: active,
	}}
	svc := NewClientService(clientRepo, &fakeUserRepo{})

	converted, err := svc.ConvertLead(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("ConvertLead() error = %v", err)
	}
	if converted.Status != enum.ClientStatusActive {
		t.Errorf("Status = %v, want active", converted.Status)
	}

	if _, err := svc.ConvertLead(context.Background(), active.ID); err == nil {
		t.Error("ConvertLead(active) error = nil, want bad request")
	}

	if _, err := svc.ConvertLead(context.Background(), uuid.New()); !apperror.IsNotFound(err) {
		t.Errorf("ConvertLead(unknown) error = %v, want not found", err)
	}
}
