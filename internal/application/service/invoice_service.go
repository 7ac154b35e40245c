package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/billing"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	clientRepo      repository.ClientRepository
	projectRepo     repository.ProjectRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		clientRepo:      clientRepo,
		projectRepo:     projectRepo,
	}
}

// InvoiceItemInput represents a line item input
type InvoiceItemInput struct {
	Type        enum.ItemType
	PersonID    *uuid.UUID
	Description string
	Quantity    float64
	UnitPrice   float64
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	UserID          uuid.UUID
	ClientID        uuid.UUID
	ProjectID       *uuid.UUID
	ProposalID      *uuid.UUID
	IssueDate       time.Time
	DueDate         *time.Time
	DiscountPercent float64
	DiscountAmount  float64
	TaxRate         float64
	TaxType         enum.TaxType
	Note            *string
	Items           []InvoiceItemInput
}

// CreateInvoice creates a new draft invoice with derived totals
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, apperror.NewNotFoundError("Project")
		}
	}

	nextNum, err := s.invoiceRepo.GetNextNumber(ctx)
	if err != nil {
		return nil, err
	}
	number := fmt.Sprintf("INV-%06d", nextNum)

	if existing, err := s.invoiceRepo.GetByNumber(ctx, number); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperror.NewConflictError("Invoice number already in use")
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

	invoice := &entity.Invoice{
		UserID:          input.UserID,
		ClientID:        input.ClientID,
		ProjectID:       input.ProjectID,
		ProposalID:      input.ProposalID,
		Number:          number,
		Status:          enum.InvoiceStatusDraft,
		IssueDate:       input.IssueDate,
		DueDate:         input.DueDate,
		Subtotal:        subtotal,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		DiscountValue:   totals.DiscountValue,
		TaxRate:         input.TaxRate,
		TaxType:         input.TaxType,
		TaxValue:        totals.TaxValue,
		TotalAmount:     totals.Total,
		Note:            input.Note,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if len(input.Items) > 0 {
		items := buildInvoiceItems(invoice.ID, input.Items)
		if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

func buildInvoiceItems(invoiceID uuid.UUID, inputs []InvoiceItemInput) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, entity.InvoiceItem{
			InvoiceID:   invoiceID,
			Type:        in.Type,
			PersonID:    in.PersonID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      in.Quantity * in.UnitPrice,
		})
	}
	return items
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	ClientID   *uuid.UUID
	ProjectID  *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		ClientID:   input.ClientID,
		ProjectID:  input.ProjectID,
		From:       input.From,
		To:         input.To,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the input for updating an invoice
type UpdateInvoiceInput struct {
	ID              uuid.UUID
	IssueDate       time.Time
	DueDate         *time.Time
	DiscountPercent float64
	DiscountAmount  float64
	TaxRate         float64
	TaxType         enum.TaxType
	Note            *string
	Items           []InvoiceItemInput
}

// UpdateInvoice replaces a draft invoice's content and recomputes totals
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusDraft {
		return nil, apperror.NewBadRequestError("Only draft invoices can be edited")
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

	invoice.IssueDate = input.IssueDate
	invoice.DueDate = input.DueDate
	invoice.Subtotal = subtotal
	invoice.DiscountPercent = input.DiscountPercent
	invoice.DiscountAmount = input.DiscountAmount
	invoice.DiscountValue = totals.DiscountValue
	invoice.TaxRate = input.TaxRate
	invoice.TaxType = input.TaxType
	invoice.TaxValue = totals.TaxValue
	invoice.TotalAmount = totals.Total
	invoice.Note = input.Note

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceItemRepo.DeleteByInvoiceID(ctx, invoice.ID); err != nil {
		return nil, err
	}
	if len(input.Items) > 0 {
		items := buildInvoiceItems(invoice.ID, input.Items)
		if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// SendInvoice marks a draft invoice as sent
func (s *InvoiceService) SendInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusDraft {
		return apperror.NewBadRequestError("Only draft invoices can be sent")
	}

	return s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusSent)
}

// MarkInvoicePaid settles a sent invoice
func (s *InvoiceService) MarkInvoicePaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusSent {
		return apperror.NewBadRequestError("Only sent invoices can be marked paid")
	}

	return s.invoiceRepo.MarkPaid(ctx, id, paidAt)
}

// VoidInvoice voids an unpaid invoice
func (s *InvoiceService) VoidInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return apperror.NewBadRequestError("Paid invoices cannot be voided")
	}

	return s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusVoid)
}

// BulkInvoiceRef identifies an invoice that passed bulk validation
type BulkInvoiceRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BulkInvoiceIssue identifies an invoice that failed bulk validation
type BulkInvoiceIssue struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
}

// BulkValidateResult is the outcome of a bulk-delete validation pass.
// AllConnectivity is set when every single check failed because the store
// was unreachable; callers report that as unavailability, not as "nothing
// is deletable".
type BulkValidateResult struct {
	Deletable       []BulkInvoiceRef
	NonDeletable    []BulkInvoiceIssue
	AllConnectivity bool
}

type bulkCheckOutcome struct {
	index        int
	ref          BulkInvoiceRef
	issue        *BulkInvoiceIssue
	connectivity bool
}

// ValidateBulkDelete fans out one check per invoice. Every check runs to
// completion regardless of the others; failures are collected per item, not
// raised.
func (s *InvoiceService) ValidateBulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkValidateResult, error) {
	if len(ids) == 0 {
		return nil, apperror.NewBadRequestError("No invoice ids given")
	}

	outcomes := make([]bulkCheckOutcome, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			outcomes[i] = s.checkDeletable(ctx, i, id)
		}(i, id)
	}
	wg.Wait()

	result := &BulkValidateResult{AllConnectivity: true}
	for _, out := range outcomes {
		if !out.connectivity {
			result.AllConnectivity = false
		}
		if out.issue != nil {
			result.NonDeletable = append(result.NonDeletable, *out.issue)
		} else {
			result.Deletable = append(result.Deletable, out.ref)
		}
	}

	return result, nil
}

func (s *InvoiceService) checkDeletable(ctx context.Context, index int, id uuid.UUID) bulkCheckOutcome {
	out := bulkCheckOutcome{index: index}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		out.connectivity = apperror.IsConnectivity(err)
		reason := "Validation failed"
		if out.connectivity {
			reason = "Database unavailable"
		}
		out.issue = &BulkInvoiceIssue{ID: id, Reason: reason}
		return out
	}
	if invoice == nil {
		out.issue = &BulkInvoiceIssue{ID: id, Reason: "Invoice not found"}
		return out
	}

	if reason := deleteBlockReason(invoice); reason != "" {
		out.issue = &BulkInvoiceIssue{ID: id, Name: invoice.Number, Reason: reason}
		return out
	}

	out.ref = BulkInvoiceRef{ID: id, Name: invoice.Number}
	return out
}

// deleteBlockReason returns the business rule preventing deletion, or ""
// when the invoice is deletable.
func deleteBlockReason(invoice *entity.Invoice) string {
	switch {
	case invoice.IsPaid():
		return "Paid invoices cannot be deleted"
	case invoice.Status == enum.InvoiceStatusSent:
		return "Sent invoices must be voided before deletion"
	case invoice.Generated && !invoice.IsPaid() && invoice.Status != enum.InvoiceStatusVoid:
		return "Invoice was generated by a recurring schedule"
	default:
		return ""
	}
}

// BulkDeleteResult is the outcome of a bulk-delete mutation
type BulkDeleteResult struct {
	DeletedCount int                `json:"deleted_count"`
	NonDeletable []BulkInvoiceIssue `json:"non_deletable,omitempty"`
}

// BulkDelete validates the batch, then deletes the deletable subset in one
// all-or-nothing transaction.
func (s *InvoiceService) BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkDeleteResult, error) {
	validation, err := s.ValidateBulkDelete(ctx, ids)
	if err != nil {
		return nil, err
	}
	if validation.AllConnectivity {
		return nil, apperror.ErrServiceUnavailable
	}
	if len(validation.Deletable) == 0 {
		return nil, apperror.NewBadRequestError("No invoices in the batch are deletable")
	}

	deletableIDs := make([]uuid.UUID, 0, len(validation.Deletable))
	for _, ref := range validation.Deletable {
		deletableIDs = append(deletableIDs, ref.ID)
	}

	if err := s.invoiceRepo.DeleteBatch(ctx, deletableIDs); err != nil {
		return nil, err
	}

	return &BulkDeleteResult{
		DeletedCount: len(deletableIDs),
		NonDeletable: validation.NonDeletable,
	}, nil
}

// DeleteInvoice deletes a single invoice subject to the same business rules
// as bulk deletion
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if reason := deleteBlockReason(invoice); reason != "" {
		return apperror.NewBadRequestError(reason)
	}

	return s.invoiceRepo.Delete(ctx, id)
}
