package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// CompensationRepository defines the interface for compensation data
// operations: schemes, eligibility overrides, computed entries and payments.
type CompensationRepository interface {
	// Schemes
	CreateScheme(ctx context.Context, scheme *entity.CompensationScheme) error
	GetSchemeByID(ctx context.Context, id uuid.UUID) (*entity.CompensationScheme, error)
	ListSchemesForUser(ctx context.Context, userID uuid.UUID) ([]entity.CompensationScheme, error)
	// GetSchemeCovering returns the scheme effective for any part of the
	// given month, or nil when none covers it.
	GetSchemeCovering(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationScheme, error)
	// ListSchemesOverlapping returns schemes whose effective range intersects
	// [from, to]. A nil "to" means open-ended.
	ListSchemesOverlapping(ctx context.Context, userID uuid.UUID, from time.Time, to *time.Time) ([]entity.CompensationScheme, error)
	UpdateScheme(ctx context.Context, scheme *entity.CompensationScheme) error
	DeleteScheme(ctx context.Context, id uuid.UUID) error

	// Eligibility overrides
	UpsertOverride(ctx context.Context, override *entity.EligibilityOverride) error
	ListOverrides(ctx context.Context, schemeID uuid.UUID) ([]entity.EligibilityOverride, error)
	DeleteOverride(ctx context.Context, id uuid.UUID) error

	// Entries
	CreateEntry(ctx context.Context, entry *entity.CompensationEntry) error
	GetEntryByID(ctx context.Context, id uuid.UUID) (*entity.CompensationEntry, error)
	GetEntryForPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationEntry, error)
	ListEntries(ctx context.Context, params *CompensationEntryFilterParams) ([]entity.CompensationEntry, int64, error)
	// RecordPayment inserts the payment and updates the entry's paid/balance
	// figures in one transaction.
	RecordPayment(ctx context.Context, payment *entity.CompensationPayment) error

	// CandidateProjects returns the projects that can earn the user
	// percentage compensation in [from, to): projects the user manages,
	// logged timesheet hours on, or appears in paid invoice items of.
	CandidateProjects(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Project, error)
}

// CompensationEntryFilterParams contains filtering parameters for entry
// queries
type CompensationEntryFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Year       *int
	Month      *int
}
