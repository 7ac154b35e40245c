package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteBatch removes the given invoices and their items in a single
	// all-or-nothing transaction.
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	GetNextNumber(ctx context.Context) (int, error)
	// ListPaidForProjects returns paid invoices (items preloaded) attached
	// to the given projects and paid inside [from, to).
	ListPaidForProjects(ctx context.Context, projectIDs []uuid.UUID, from, to time.Time) ([]entity.Invoice, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	ClientID   *uuid.UUID
	ProjectID  *uuid.UUID
	UserID     *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// InvoiceItemRepository defines the interface for invoice item data operations
type InvoiceItemRepository interface {
	Create(ctx context.Context, item *entity.InvoiceItem) error
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
