package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
)

// RecurringRepository defines the interface for recurring schedule data
// operations
type RecurringRepository interface {
	Create(ctx context.Context, schedule *entity.RecurringSchedule) error
	CreateBatch(ctx context.Context, schedules []entity.RecurringSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error)
	GetBySourceID(ctx context.Context, sourceID uuid.UUID) (*entity.RecurringSchedule, error)
	// ListForApprovedProposals returns every schedule whose parent proposal
	// is still approved, with the proposal and its items preloaded.
	ListForApprovedProposals(ctx context.Context) ([]entity.RecurringSchedule, error)
	// GenerateInvoice creates the invoice (with its items) and advances the
	// schedule's LastInvoiceDate in one transaction, so a failure leaves the
	// schedule un-advanced and the next run retries.
	GenerateInvoice(ctx context.Context, invoice *entity.Invoice, scheduleID uuid.UUID, generatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
