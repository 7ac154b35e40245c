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
)

// RecurringService evaluates recurring schedules and generates invoices.
// It is driven by an external trigger (a cron endpoint), not an in-process
// timer.
type RecurringService struct {
	recurringRepo    repository.RecurringRepository
	invoiceRepo      repository.InvoiceRepository
	clientRepo       repository.ClientRepository
	notificationRepo repository.NotificationRepository
}

// NewRecurringService creates a new recurring service
func NewRecurringService(
	recurringRepo repository.RecurringRepository,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	notificationRepo repository.NotificationRepository,
) *RecurringService {
	return &RecurringService{
		recurringRepo:    recurringRepo,
		invoiceRepo:      invoiceRepo,
		clientRepo:       clientRepo,
		notificationRepo: notificationRepo,
	}
}

// RunResult summarizes one evaluation run
type RunResult struct {
	NotificationsCreated int      `json:"notifications_created"`
	Details              []string `json:"details"`
}

// Run evaluates every schedule whose parent proposal is still approved.
// Due never-invoiced schedules notify a human; due active schedules
// generate a draft invoice and advance the schedule. A generation failure
// is recorded as a notification and the schedule is left un-advanced so the
// next run retries.
func (s *RecurringService) Run(ctx context.Context, now time.Time) (*RunResult, error) {
	schedules, err := s.recurringRepo.ListForApprovedProposals(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Details: []string{}}
	for i := range schedules {
		schedule := &schedules[i]

		switch billing.Evaluate(schedule.AsSchedule(), now) {
		case billing.ActionNotifyFirstInvoice:
			n, err := s.notifyFirstInvoice(ctx, schedule)
			if err != nil {
				result.Details = append(result.Details,
					fmt.Sprintf("schedule %s: notification failed: %v", schedule.ID, err))
				continue
			}
			result.NotificationsCreated += n
			result.Details = append(result.Details,
				fmt.Sprintf("proposal %s: first invoice due, notified", schedule.Proposal.Number))

		case billing.ActionGenerateInvoice:
			invoice, err := s.generateInvoice(ctx, schedule, now)
			if err != nil {
				if s.notifyFailure(ctx, schedule, err) == nil {
					result.NotificationsCreated++
				}
				result.Details = append(result.Details,
					fmt.Sprintf("proposal %s: generation failed: %v", schedule.Proposal.Number, err))
				continue
			}
			if s.notifyGenerated(ctx, schedule, invoice) == nil {
				result.NotificationsCreated++
			}
			result.Details = append(result.Details,
				fmt.Sprintf("proposal %s: generated invoice %s", schedule.Proposal.Number, invoice.Number))
		}
	}

	return result, nil
}

// notifyFirstInvoice asks the proposal creator (and the client's manager,
// when one is set) to generate the first invoice by hand. The schedule is
// not advanced; it fires again next run until an invoice exists.
func (s *RecurringService) notifyFirstInvoice(ctx context.Context, schedule *entity.RecurringSchedule) (int, error) {
	recipients := map[uuid.UUID]bool{schedule.Proposal.UserID: true}

	client, err := s.clientRepo.GetByID(ctx, schedule.Proposal.ClientID)
	if err != nil {
		return 0, err
	}
	if client != nil && client.ManagerID != nil {
		recipients[*client.ManagerID] = true
	}

	created := 0
	for userID := range recipients {
		notification := &entity.Notification{
			UserID:  userID,
			Type:    enum.NotificationFirstInvoiceDue,
			Title:   "First invoice due",
			Message: fmt.Sprintf("Proposal %s is due for its first invoice. Generate it manually to start the recurring cycle.", schedule.Proposal.Number),
			RefID:   &schedule.ProposalID,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// generateInvoice builds a draft invoice from the schedule's source and
// persists it together with the schedule advance in one transaction.
func (s *RecurringService) generateInvoice(ctx context.Context, schedule *entity.RecurringSchedule, now time.Time) (*entity.Invoice, error) {
	proposal := &schedule.Proposal

	var subtotal float64
	var projectID *uuid.UUID
	var lines []entity.InvoiceItem

	switch schedule.SourceType {
	case enum.RecurringSourceProposalItem:
		var item *entity.ProposalItem
		for i := range proposal.Items {
			if proposal.Items[i].ID == schedule.SourceID {
				item = &proposal.Items[i]
				break
			}
		}
		if item == nil {
			return nil, fmt.Errorf("source item %s not found on proposal %s", schedule.SourceID, proposal.Number)
		}
		subtotal = item.Amount
		projectID = item.ProjectID
		lines = append(lines, entity.InvoiceItem{
			Type:        enum.ItemTypeService,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	default:
		subtotal = proposal.Subtotal
		for _, item := range proposal.Items {
			lines = append(lines, entity.InvoiceItem{
				Type:        enum.ItemTypeService,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Amount:      item.Amount,
			})
		}
	}

	// The proposal's discount and tax settings are inherited. A fixed
	// discount is scaled against the original proposal subtotal so a
	// single-item invoice carries its proportional share.
	totals := billing.ComputeTotals(billing.TotalsInput{
		Subtotal:        subtotal,
		DiscountPercent: proposal.DiscountPercent,
		DiscountAmount:  proposal.DiscountAmount,
		ReferenceTotal:  proposal.Subtotal,
		TaxRate:         proposal.TaxRate,
		TaxType:         proposal.TaxType,
	})

	number, err := s.allocateNumber(ctx, proposal.Number)
	if err != nil {
		return nil, err
	}

	issueDate := billing.Midnight(now)
	invoice := &entity.Invoice{
		UserID:          proposal.UserID,
		ClientID:        proposal.ClientID,
		ProjectID:       projectID,
		ProposalID:      &proposal.ID,
		Number:          number,
		Status:          enum.InvoiceStatusDraft,
		IssueDate:       issueDate,
		Subtotal:        subtotal,
		DiscountPercent: proposal.DiscountPercent,
		DiscountAmount:  proposal.DiscountAmount,
		DiscountValue:   totals.DiscountValue,
		TaxRate:         proposal.TaxRate,
		TaxType:         proposal.TaxType,
		TaxValue:        totals.TaxValue,
		TotalAmount:     totals.Total,
		Generated:       true,
		Items:           lines,
	}

	if err := s.recurringRepo.GenerateInvoice(ctx, invoice, schedule.ID, issueDate); err != nil {
		return nil, err
	}
	return invoice, nil
}

// allocateNumber reuses the parent proposal's number with an -R suffix,
// falling back to a fresh sequence number on collision.
func (s *RecurringService) allocateNumber(ctx context.Context, proposalNumber string) (string, error) {
	candidate := proposalNumber + "-R"
	existing, err := s.invoiceRepo.GetByNumber(ctx, candidate)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return candidate, nil
	}

	nextNum, err := s.invoiceRepo.GetNextNumber(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", nextNum), nil
}

func (s *RecurringService) notifyGenerated(ctx context.Context, schedule *entity.RecurringSchedule, invoice *entity.Invoice) error {
	return s.notificationRepo.Create(ctx, &entity.Notification{
		UserID:  schedule.Proposal.UserID,
		Type:    enum.NotificationInvoiceGenerated,
		Title:   "Invoice generated",
		Message: fmt.Sprintf("Invoice %s was generated from proposal %s.", invoice.Number, schedule.Proposal.Number),
		RefID:   &invoice.ID,
	})
}

func (s *RecurringService) notifyFailure(ctx context.Context, schedule *entity.RecurringSchedule, cause error) error {
	return s.notificationRepo.Create(ctx, &entity.Notification{
		UserID:  schedule.Proposal.UserID,
		Type:    enum.NotificationGenerationFailed,
		Title:   "Invoice generation failed",
		Message: fmt.Sprintf("Automatic invoice generation for proposal %s failed: %v. It will be retried on the next run.", schedule.Proposal.Number, cause),
		RefID:   &schedule.ProposalID,
	})
}
