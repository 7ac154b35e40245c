package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type generatedCall struct {
	invoice     *entity.Invoice
	scheduleID  uuid.UUID
	generatedAt time.Time
}

type fakeRecurringRepo struct {
	repository.RecurringRepository

	schedules   []entity.RecurringSchedule
	generated   []generatedCall
	generateErr error
	batched     [][]entity.RecurringSchedule
}

func (f *fakeRecurringRepo) CreateBatch(ctx context.Context, schedules []entity.RecurringSchedule) error {
	f.batched = append(f.batched, schedules)
	return nil
}

func (f *fakeRecurringRepo) ListForApprovedProposals(ctx context.Context) ([]entity.RecurringSchedule, error) {
	return f.schedules, nil
}

func (f *fakeRecurringRepo) GenerateInvoice(ctx context.Context, invoice *entity.Invoice, scheduleID uuid.UUID, generatedAt time.Time) error {
	if f.generateErr != nil {
		return f.generateErr
	}
	f.generated = append(f.generated, generatedCall{invoice, scheduleID, generatedAt})
	return nil
}

type fakeNotificationRepo struct {
	repository.NotificationRepository

	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}

type fakeClientRepo struct {
	repository.ClientRepository

	clients       map[uuid.UUID]*entity.Client
	statusUpdates map[uuid.UUID]enum.ClientStatus
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	return f.clients[id], nil
}

func (f *fakeClientRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ClientStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[uuid.UUID]enum.ClientStatus{}
	}
	f.statusUpdates[id] = status
	if c, ok := f.clients[id]; ok {
		c.Status = status
	}
	return nil
}

func approvedProposal(number string) entity.Proposal {
	return entity.Proposal{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		ClientID: uuid.New(),
		Number:   number,
		Status:   enum.ProposalStatusApproved,
	}
}

func monthlySchedule(proposal entity.Proposal, start time.Time, last *time.Time) entity.RecurringSchedule {
	return entity.RecurringSchedule{
		ID:              uuid.New(),
		SourceType:      enum.RecurringSourceProposal,
		SourceID:        proposal.ID,
		ProposalID:      proposal.ID,
		StartDate:       start,
		LastInvoiceDate: last,
		Frequency:       enum.FrequencyMonthly,
		Proposal:        proposal,
	}
}

func TestRun_NeverInvoicedNotifiesWithoutAdvancing(t *testing.T) {
	proposal := approvedProposal("PRO-000001")
	manager := uuid.New()
	schedule := monthlySchedule(proposal, date(2026, 1, 15), nil)

	recurringRepo := &fakeRecurringRepo{schedules: []entity.RecurringSchedule{schedule}}
	notificationRepo := &fakeNotificationRepo{}
	clientRepo := &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{
		proposal.ClientID: {ID: proposal.ClientID, ManagerID: &manager},
	}}
	svc := NewRecurringService(recurringRepo, &fakeInvoiceRepo{}, clientRepo, notificationRepo)

	result, err := svc.Run(context.Background(), date(2026, 2, 15))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.NotificationsCreated != 2 {
		t.Errorf("NotificationsCreated = %d, want 2 (creator and manager)", result.NotificationsCreated)
	}
	if len(recurringRepo.generated) != 0 {
		t.Error("an invoice was generated for a never-invoiced schedule")
	}
	recipients := map[uuid.UUID]bool{}
	for _, n := range notificationRepo.created {
		if n.Type != enum.NotificationFirstInvoiceDue {
			t.Errorf("notification Type = %v, want NotificationFirstInvoiceDue", n.Type)
		}
		recipients[n.UserID] = true
	}
	if !recipients[proposal.UserID] || !recipients[manager] {
		t.Errorf("recipients = %v, want creator %v and manager %v", recipients, proposal.UserID, manager)
	}
}

func TestRun_NotDueDoesNothing(t *testing.T) {
	proposal := approvedProposal("PRO-000002")
	last := date(2026, 2, 1)
	schedule := monthlySchedule(proposal, date(2026, 1, 1), &last)

	recurringRepo := &fakeRecurringRepo{schedules: []entity.RecurringSchedule{schedule}}
	notificationRepo := &fakeNotificationRepo{}
	svc := NewRecurringService(recurringRepo, &fakeInvoiceRepo{}, &fakeClientRepo{}, notificationRepo)

	result, err := svc.Run(context.Background(), date(2026, 2, 20))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.NotificationsCreated != 0 || len(recurringRepo.generated) != 0 || len(notificationRepo.created) != 0 {
		t.Errorf("Run() acted on a schedule that is not due yet: %+v", result)
	}
}

func TestRun_ActiveScheduleGeneratesInvoice(t *testing.T) {
	proposal := approvedProposal("PRO-000003")
	proposal.Subtotal = 1000
	proposal.DiscountPercent = 10
	proposal.TaxRate = 23
	proposal.TaxType = enum.TaxTypeExclusive
	proposal.Items = []entity.ProposalItem{
		{ID: uuid.New(), ProposalID: proposal.ID, Description: "Retainer", Quantity: 1, UnitPrice: 1000, Amount: 1000},
	}
	last := date(2026, 1, 1)
	schedule := monthlySchedule(proposal, date(2025, 12, 1), &last)

	recurringRepo := &fakeRecurringRepo{schedules: []entity.RecurringSchedule{schedule}}
	notificationRepo := &fakeNotificationRepo{}
	invoiceRepo := &fakeInvoiceRepo{
		getByNumber: func(context.Context, string) (*entity.Invoice, error) { return nil, nil },
	}
	svc := NewRecurringService(recurringRepo, invoiceRepo, &fakeClientRepo{}, notificationRepo)

	result, err := svc.Run(context.Background(), date(2026, 2, 1))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(recurringRepo.generated) != 1 {
		t.Fatalf("GenerateInvoice called %d times, want 1", len(recurringRepo.generated))
	}
	call := recurringRepo.generated[0]
	if call.scheduleID != schedule.ID {
		t.Errorf("scheduleID = %v, want %v", call.scheduleID, schedule.ID)
	}
	if !call.generatedAt.Equal(date(2026, 2, 1)) {
		t.Errorf("generatedAt = %v, want %v", call.generatedAt, date(2026, 2, 1))
	}

	inv := call.invoice
	if inv.Number != "PRO-000003-R" {
		t.Errorf("Number = %q, want %q", inv.Number, "PRO-000003-R")
	}
	if !inv.Generated {
		t.Error("Generated = false, want true")
	}
	if inv.Status != enum.InvoiceStatusDraft {
		t.Errorf("Status = %v, want draft", inv.Status)
	}
	// 1000 - 10% discount = 900, + 23% tax = 1107
	if math.Abs(inv.TotalAmount-1107) > 1e-9 {
		t.Errorf("TotalAmount = %v, want 1107", inv.TotalAmount)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Retainer" {
		t.Errorf("Items = %+v, want the proposal's single line", inv.Items)
	}

	if result.NotificationsCreated != 1 {
		t.Errorf("NotificationsCreated = %d, want 1", result.NotificationsCreated)
	}
	if len(notificationRepo.created) != 1 || notificationRepo.created[0].Type != enum.NotificationInvoiceGenerated {
		t.Errorf("notifications = %+v, want one generation notice", notificationRepo.created)
	}
}

func TestRun_ItemSourceCarriesProportionalDiscount(t *testing.T) {
	proposal := approvedProposal("PRO-000004")
	proposal.Subtotal = 2000
	proposal.DiscountAmount = 200
	itemID := uuid.New()
	proposal.Items = []entity.ProposalItem{
		{ID: itemID, ProposalID: proposal.ID, Description: "Support", Quantity: 1, UnitPrice: 500, Amount: 500},
		{ID: uuid.New(), ProposalID: proposal.ID, Description: "Development", Quantity: 1, UnitPrice: 1500, Amount: 1500},
	}
	last := date(2026, 1, 1)
	schedule := entity.RecurringSchedule{
		ID:              uuid.New(),
		SourceType:      enum.RecurringSourceProposalItem,
		SourceID:        itemID,
		ProposalID:      proposal.ID,
		StartDate:       date(2025, 12, 1),
		LastInvoiceDate: &last,
		Frequency:       enum.FrequencyMonthly,
		Proposal:        proposal,
	}

	recurringRepo := &fakeRecurringRepo{schedules: []entity.RecurringSchedule{schedule}}
	invoiceRepo := &fakeInvoiceRepo{
		getByNumber: func(context.Context, string) (*entity.Invoice, error) { return nil, nil },
	}
	svc := NewRecurringService(recurringRepo, invoiceRepo, &fakeClientRepo{}, &fakeNotificationRepo{})

	if _, err := svc.Run(context.Background(), date(2026, 2, 1)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(recurringRepo.generated) != 1 {
		t.Fatalf("GenerateInvoice called %d times, want 1", len(recurringRepo.generated))
	}

	inv := recurringRepo.generated[0].invoice
	if inv.Subtotal != 500 {
		t.Errorf("Subtotal = %v, want 500", inv.Subtotal)
	}
	// The item is a quarter of the proposal, so it carries a quarter of
	// the 200 fixed discount.
	if math.Abs(inv.DiscountValue-50) > 1e-9 {
		t.Errorf("DiscountValue = %v, want 50", inv.DiscountValue)
	}
	if math.Abs(inv.TotalAmount-450) > 1e-9 {
		t.Errorf("TotalAmount = %v, want 450", inv.TotalAmount)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Support" {
		t.Errorf("Items = %+v, want just the source line", inv.Items)
	}
}

func TestRun_GenerationFailureNotifiesAndRetriesNextRun(t *testing.T) {
	proposal := approvedProposal("PRO-000005")
	proposal.Subtotal = 100
	proposal.Items = []entity.ProposalItem{
		{ID: uuid.New(), ProposalID: proposal.ID, Description: "Retainer", Quantity: 1, UnitPrice: 100, Amount: 100},
	}
	last := date(2026, 1, 1)
	schedule := monthlySchedule(proposal, date(2025, 12, 1), &last)

	recurringRepo := &fakeRecurringRepo{
		schedules:   []entity.RecurringSchedule{schedule},
		generateErr: errors.New("deadlock detected"),
	}
	notificationRepo := &fakeNotificationRepo{}
	invoiceRepo := &fakeInvoiceRepo{
		getByNumber: func(context.Context, string) (*entity.Invoice, error) { return nil, nil },
	}
	svc := NewRecurringService(recurringRepo, invoiceRepo, &fakeClientRepo{}, notificationRepo)

	result, err := svc.Run(context.Background(), date(2026, 2, 1))
	if err != nil {
		t.Fatalf("Run() error = %v, a single failed schedule must not abort the run", err)
	}

	if len(recurringRepo.generated) != 0 {
		t.Error("an invoice was recorded despite the generation failure")
	}
	if result.NotificationsCreated != 1 {
		t.Errorf("NotificationsCreated = %d, want 1 failure notice", result.NotificationsCreated)
	}
	if len(notificationRepo.created) != 1 || notificationRepo.created[0].Type != enum.NotificationGenerationFailed {
		t.Errorf("notifications = %+v, want one failure notice", notificationRepo.created)
	}
}

func TestRun_NumberCollisionFallsBackToSequence(t *testing.T) {
	proposal := approvedProposal("PRO-000006")
	proposal.Subtotal = 100
	proposal.Items = []entity.ProposalItem{
		{ID: uuid.New(), ProposalID: proposal.ID, Description: "Retainer", Quantity: 1, UnitPrice: 100, Amount: 100},
	}
	last := date(2026, 1, 1)
	schedule := monthlySchedule(proposal, date(2025, 12, 1), &last)

	recurringRepo := &fakeRecurringRepo{schedules: []entity.RecurringSchedule{schedule}}
	invoiceRepo := &fakeInvoiceRepo{
		getByNumber: func(_ context.Context, number string) (*entity.Invoice, error) {
			if number == "PRO-000006-R" {
				return &entity.Invoice{ID: uuid.New(), Number: number}, nil
			}
			return nil, nil
		},
		nextNumber: 42,
	}
	svc := NewRecurringService(recurringRepo, invoiceRepo, &fakeClientRepo{}, &fakeNotificationRepo{})

	if _, err := svc.Run(context.Background(), date(2026, 2, 1)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(recurringRepo.generated) != 1 {
		t.Fatalf("GenerateInvoice called %d times, want 1", len(recurringRepo.generated))
	}
	if got := recurringRepo.generated[0].invoice.Number; got != "INV-000042" {
		t.Errorf("Number = %q, want %q", got, "INV-000042")
	}
}
