package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/billing"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
	"github.com/praxishq/praxis-api/pkg/pagination"
)

// CompensationService handles compensation schemes, eligibility overrides,
// period calculation and payouts
type CompensationService struct {
	compensationRepo repository.CompensationRepository
	timesheetRepo    repository.TimesheetRepository
	invoiceRepo      repository.InvoiceRepository
	userRepo         repository.UserRepository
}

// NewCompensationService creates a new compensation service
func NewCompensationService(
	compensationRepo repository.CompensationRepository,
	timesheetRepo repository.TimesheetRepository,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
) *CompensationService {
	return &CompensationService{
		compensationRepo: compensationRepo,
		timesheetRepo:    timesheetRepo,
		invoiceRepo:      invoiceRepo,
		userRepo:         userRepo,
	}
}

// CreateSchemeInput represents the input for creating a compensation scheme
type CreateSchemeInput struct {
	UserID            uuid.UUID
	Type              enum.CompensationType
	BaseSalary        float64
	PercentageType    enum.PercentageType
	ProjectPercent    float64
	DirectWorkPercent float64
	EffectiveFrom     time.Time
	EffectiveTo       *time.Time
}

// CreateScheme creates a scheme after checking the user has no other scheme
// effective in the same date range
func (s *CompensationService) CreateScheme(ctx context.Context, input *CreateSchemeInput) (*entity.CompensationScheme, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.EffectiveTo != nil && input.EffectiveTo.Before(input.EffectiveFrom) {
		return nil, apperror.NewBadRequestError("Effective-to date precedes effective-from")
	}

	overlapping, err := s.compensationRepo.ListSchemesOverlapping(ctx, input.UserID, input.EffectiveFrom, input.EffectiveTo)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, apperror.NewConflictError("User already has a compensation scheme effective in this range")
	}

	scheme := &entity.CompensationScheme{
		UserID:            input.UserID,
		Type:              input.Type,
		BaseSalary:        input.BaseSalary,
		PercentageType:    input.PercentageType,
		ProjectPercent:    input.ProjectPercent,
		DirectWorkPercent: input.DirectWorkPercent,
		EffectiveFrom:     input.EffectiveFrom,
		EffectiveTo:       input.EffectiveTo,
	}

	if err := s.compensationRepo.CreateScheme(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// GetScheme retrieves a scheme with its overrides
func (s *CompensationService) GetScheme(ctx context.Context, id uuid.UUID) (*entity.CompensationScheme, error) {
	scheme, err := s.compensationRepo.GetSchemeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, apperror.NewNotFoundError("Compensation scheme")
	}
	return scheme, nil
}

// ListSchemes lists a user's schemes, newest first
func (s *CompensationService) ListSchemes(ctx context.Context, userID uuid.UUID) ([]entity.CompensationScheme, error) {
	return s.compensationRepo.ListSchemesForUser(ctx, userID)
}

// UpdateSchemeInput represents the input for updating a scheme
type UpdateSchemeInput struct {
	ID                uuid.UUID
	Type              enum.CompensationType
	BaseSalary        float64
	PercentageType    enum.PercentageType
	ProjectPercent    float64
	DirectWorkPercent float64
	EffectiveFrom     time.Time
	EffectiveTo       *time.Time
}

// UpdateScheme updates a scheme, revalidating range overlap against the
// user's other schemes
func (s *CompensationService) UpdateScheme(ctx context.Context, input *UpdateSchemeInput) (*entity.CompensationScheme, error) {
	scheme, err := s.compensationRepo.GetSchemeByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, apperror.NewNotFoundError("Compensation scheme")
	}

	if input.EffectiveTo != nil && input.EffectiveTo.Before(input.EffectiveFrom) {
		return nil, apperror.NewBadRequestError("Effective-to date precedes effective-from")
	}

	overlapping, err := s.compensationRepo.ListSchemesOverlapping(ctx, scheme.UserID, input.EffectiveFrom, input.EffectiveTo)
	if err != nil {
		return nil, err
	}
	for _, other := range overlapping {
		if other.ID != scheme.ID {
			return nil, apperror.NewConflictError("User already has a compensation scheme effective in this range")
		}
	}

	scheme.Type = input.Type
	scheme.BaseSalary = input.BaseSalary
	scheme.PercentageType = input.PercentageType
	scheme.ProjectPercent = input.ProjectPercent
	scheme.DirectWorkPercent = input.DirectWorkPercent
	scheme.EffectiveFrom = input.EffectiveFrom
	scheme.EffectiveTo = input.EffectiveTo

	if err := s.compensationRepo.UpdateScheme(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// DeleteScheme deletes a scheme and its overrides
func (s *CompensationService) DeleteScheme(ctx context.Context, id uuid.UUID) error {
	scheme, err := s.compensationRepo.GetSchemeByID(ctx, id)
	if err != nil {
		return err
	}
	if scheme == nil {
		return apperror.NewNotFoundError("Compensation scheme")
	}
	return s.compensationRepo.DeleteScheme(ctx, id)
}

// UpsertEligibilityInput represents the input for an eligibility override.
// Exactly one of ProjectID, ClientID and InvoiceID must be set.
type UpsertEligibilityInput struct {
	SchemeID   uuid.UUID
	ProjectID  *uuid.UUID
	ClientID   *uuid.UUID
	InvoiceID  *uuid.UUID
	IsEligible bool

	ProjectPercent    *float64
	DirectWorkPercent *float64
	FixedAmount       *float64
}

// UpsertEligibility creates or replaces the override for a scope
func (s *CompensationService) UpsertEligibility(ctx context.Context, input *UpsertEligibilityInput) (*entity.EligibilityOverride, error) {
	scopes := 0
	for _, set := range []bool{input.ProjectID != nil, input.ClientID != nil, input.InvoiceID != nil} {
		if set {
			scopes++
		}
	}
	if scopes != 1 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "scope", Message: "Exactly one of project_id, client_id and invoice_id must be set"},
		})
	}

	scheme, err := s.compensationRepo.GetSchemeByID(ctx, input.SchemeID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, apperror.NewNotFoundError("Compensation scheme")
	}

	override := &entity.EligibilityOverride{
		SchemeID:          input.SchemeID,
		ProjectID:         input.ProjectID,
		ClientID:          input.ClientID,
		InvoiceID:         input.InvoiceID,
		IsEligible:        input.IsEligible,
		ProjectPercent:    input.ProjectPercent,
		DirectWorkPercent: input.DirectWorkPercent,
		FixedAmount:       input.FixedAmount,
	}

	if err := s.compensationRepo.UpsertOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// ListEligibility lists a scheme's overrides
func (s *CompensationService) ListEligibility(ctx context.Context, schemeID uuid.UUID) ([]entity.EligibilityOverride, error) {
	scheme, err := s.compensationRepo.GetSchemeByID(ctx, schemeID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, apperror.NewNotFoundError("Compensation scheme")
	}
	return s.compensationRepo.ListOverrides(ctx, schemeID)
}

// DeleteEligibility removes an override
func (s *CompensationService) DeleteEligibility(ctx context.Context, id uuid.UUID) error {
	return s.compensationRepo.DeleteOverride(ctx, id)
}

// CalculateInput represents the input for computing a period entry
type CalculateInput struct {
	UserID          uuid.UUID
	Year            int
	Month           int
	BonusMultiplier *float64
}

// Calculate computes and stores the compensation entry for one (user,
// year, month). It fails with not-found when no scheme covers the period
// and with a conflict when the period was already computed.
func (s *CompensationService) Calculate(ctx context.Context, input *CalculateInput) (*entity.CompensationEntry, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, apperror.NewBadRequestError("Month must be between 1 and 12")
	}

	scheme, err := s.compensationRepo.GetSchemeCovering(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, apperror.NewNotFoundError("Active compensation scheme for the period")
	}

	existing, err := s.compensationRepo.GetEntryForPeriod(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Compensation entry already exists for this period")
	}

	entry := &entity.CompensationEntry{
		UserID:     input.UserID,
		SchemeID:   scheme.ID,
		Year:       input.Year,
		Month:      input.Month,
		BaseSalary: scheme.BaseSalary,
	}

	if input.BonusMultiplier != nil {
		entry.BonusAmount = scheme.BaseSalary * *input.BonusMultiplier
	}

	if scheme.Type == enum.CompensationPercentageBased {
		earnings, err := s.periodEarnings(ctx, input.UserID, scheme, input.Year, input.Month)
		if err != nil {
			return nil, err
		}
		entry.ProjectTotalEarnings = earnings.ProjectTotalEarnings
		entry.DirectWorkEarnings = earnings.DirectWorkEarnings
		entry.PercentageEarnings = earnings.TotalEarned
	}

	entry.TotalEarned = entry.BaseSalary + entry.BonusAmount + entry.PercentageEarnings
	entry.Balance = entry.TotalEarned

	if err := s.compensationRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// periodEarnings assembles the user's period activity and runs the
// percentage aggregator over it
func (s *CompensationService) periodEarnings(ctx context.Context, userID uuid.UUID, scheme *entity.CompensationScheme, year, month int) (billing.Earnings, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	projects, err := s.compensationRepo.CandidateProjects(ctx, userID, from, to)
	if err != nil {
		return billing.Earnings{}, err
	}
	if len(projects) == 0 {
		return billing.Earnings{}, nil
	}

	activity := make(map[uuid.UUID]*billing.ProjectActivity, len(projects))
	order := make([]uuid.UUID, 0, len(projects))
	projectIDs := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		activity[p.ID] = &billing.ProjectActivity{ProjectID: p.ID, ClientID: p.ClientID}
		order = append(order, p.ID)
		projectIDs = append(projectIDs, p.ID)
	}

	timesheets, err := s.timesheetRepo.ListForPeriod(ctx, userID, from, to)
	if err != nil {
		return billing.Earnings{}, err
	}
	for _, ts := range timesheets {
		if act, ok := activity[ts.ProjectID]; ok {
			act.Timesheets = append(act.Timesheets, billing.TimesheetEntry{
				Hours: ts.Hours,
				Rate:  ts.HourlyRate,
			})
		}
	}

	invoices, err := s.invoiceRepo.ListPaidForProjects(ctx, projectIDs, from, to)
	if err != nil {
		return billing.Earnings{}, err
	}
	for _, inv := range invoices {
		if inv.ProjectID == nil {
			continue
		}
		act, ok := activity[*inv.ProjectID]
		if !ok {
			continue
		}
		bill := billing.Bill{ID: inv.ID, Amount: inv.TotalAmount, Paid: inv.IsPaid()}
		for _, item := range inv.Items {
			bill.Lines = append(bill.Lines, billing.BillLine{
				Type:     item.Type,
				PersonID: item.PersonID,
				Amount:   item.Amount,
			})
		}
		act.Bills = append(act.Bills, bill)
	}

	projectActivity := make([]billing.ProjectActivity, 0, len(order))
	for _, id := range order {
		projectActivity = append(projectActivity, *activity[id])
	}

	overrides := make([]billing.Override, 0, len(scheme.Overrides))
	for _, ov := range scheme.Overrides {
		overrides = append(overrides, billing.Override{
			InvoiceID:         ov.InvoiceID,
			ProjectID:         ov.ProjectID,
			ClientID:          ov.ClientID,
			IsEligible:        ov.IsEligible,
			ProjectPercent:    ov.ProjectPercent,
			DirectWorkPercent: ov.DirectWorkPercent,
			FixedAmount:       ov.FixedAmount,
		})
	}

	return billing.CalculateEarnings(userID, billing.Scheme{
		PercentageType:    scheme.PercentageType,
		ProjectPercent:    scheme.ProjectPercent,
		DirectWorkPercent: scheme.DirectWorkPercent,
	}, projectActivity, overrides), nil
}

// GetEntry retrieves an entry with its payments
func (s *CompensationService) GetEntry(ctx context.Context, id uuid.UUID) (*entity.CompensationEntry, error) {
	entry, err := s.compensationRepo.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Compensation entry")
	}
	return entry, nil
}

// ListEntriesInput represents the input for listing entries
type ListEntriesInput struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Year       *int
	Month      *int
}

// ListEntries lists computed entries with filtering
func (s *CompensationService) ListEntries(ctx context.Context, input *ListEntriesInput) (*pagination.PaginatedResult[entity.CompensationEntry], error) {
	params := &repository.CompensationEntryFilterParams{
		Pagination: input.Pagination,
		UserID:     input.UserID,
		Year:       input.Year,
		Month:      input.Month,
	}

	entries, total, err := s.compensationRepo.ListEntries(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// RecordPaymentInput represents the input for recording a payout
type RecordPaymentInput struct {
	EntryID uuid.UUID
	Amount  float64
	PaidAt  time.Time
	Note    *string
}

// RecordPayment records a payout against an entry and updates its paid and
// balance figures atomically
func (s *CompensationService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.CompensationEntry, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	entry, err := s.compensationRepo.GetEntryByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Compensation entry")
	}

	payment := &entity.CompensationPayment{
		EntryID: input.EntryID,
		Amount:  input.Amount,
		PaidAt:  input.PaidAt,
		Note:    input.Note,
	}

	if err := s.compensationRepo.RecordPayment(ctx, payment); err != nil {
		return nil, err
	}

	return s.compensationRepo.GetEntryByID(ctx, input.EntryID)
}
