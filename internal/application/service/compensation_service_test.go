package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-api/internal/domain/entity"
	"github.com/praxishq/praxis-api/internal/domain/enum"
	"github.com/praxishq/praxis-api/internal/domain/repository"
	"github.com/praxishq/praxis-api/pkg/apperror"
)

type fakeCompensationRepo struct {
	repository.CompensationRepository

	schemes        map[uuid.UUID]*entity.CompensationScheme
	covering       *entity.CompensationScheme
	overlapping    []entity.CompensationScheme
	existingEntry  *entity.CompensationEntry
	candidates     []entity.Project
	createdSchemes []*entity.CompensationScheme
	createdEntries []*entity.CompensationEntry
	payments       []*entity.CompensationPayment
	entries        map[uuid.UUID]*entity.CompensationEntry
}

func (f *fakeCompensationRepo) CreateScheme(ctx context.Context, scheme *entity.CompensationScheme) error {
	f.createdSchemes = append(f.createdSchemes, scheme)
	return nil
}

func (f *fakeCompensationRepo) GetSchemeByID(ctx context.Context, id uuid.UUID) (*entity.CompensationScheme, error) {
	return f.schemes[id], nil
}

func (f *fakeCompensationRepo) GetSchemeCovering(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationScheme, error) {
	return f.covering, nil
}

func (f *fakeCompensationRepo) ListSchemesOverlapping(ctx context.Context, userID uuid.UUID, from time.Time, to *time.Time) ([]entity.CompensationScheme, error) {
	return f.overlapping, nil
}

func (f *fakeCompensationRepo) GetEntryForPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.CompensationEntry, error) {
	return f.existingEntry, nil
}

func (f *fakeCompensationRepo) CreateEntry(ctx context.Context, entry *entity.CompensationEntry) error {
	f.createdEntries = append(f.createdEntries, entry)
	return nil
}

func (f *fakeCompensationRepo) GetEntryByID(ctx context.Context, id uuid.UUID) (*entity.CompensationEntry, error) {
	return f.entries[id], nil
}

func (f *fakeCompensationRepo) RecordPayment(ctx context.Context, payment *entity.CompensationPayment) error {
	f.payments = append(f.payments, payment)
	if entry, ok := f.entries[payment.EntryID]; ok {
		entry.TotalPaid += payment.Amount
		entry.Balance = entry.TotalEarned - entry.TotalPaid
	}
	return nil
}

func (f *fakeCompensationRepo) UpsertOverride(ctx context.Context, override *entity.EligibilityOverride) error {
	return nil
}

func (f *fakeCompensationRepo) CandidateProjects(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Project, error) {
	return f.candidates, nil
}

type fakeTimesheetRepo struct {
	repository.TimesheetRepository

	timesheets []entity.Timesheet
}

func (f *fakeTimesheetRepo) ListForPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]entity.Timesheet, error) {
	return f.timesheets, nil
}

type fakeUserRepo struct {
	repository.UserRepository

	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func TestCreateScheme_Validation(t *testing.T) {
	userID := uuid.New()
	from := date(2026, 1, 1)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{userID: {ID: userID}}}

	t.Run("overlapping scheme is a conflict", func(t *testing.T) {
		repo := &fakeCompensationRepo{overlapping: []entity.CompensationScheme{{ID: uuid.New()}}}
		svc := NewCompensationService(repo, nil, nil, users)

		_, err := svc.CreateScheme(context.Background(), &CreateSchemeInput{
			UserID: userID, Type: enum.CompensationSalaryBonus, BaseSalary: 3000, EffectiveFrom: from,
		})
		appErr := apperror.GetAppError(err)
		if appErr == nil || appErr.Kind != apperror.KindConflict {
			t.Errorf("CreateScheme() error = %v, want conflict", err)
		}
	})

	t.Run("inverted date range is rejected", func(t *testing.T) {
		to := date(2025, 12, 1)
		svc := NewCompensationService(&fakeCompensationRepo{}, nil, nil, users)

		_, err := svc.CreateScheme(context.Background(), &CreateSchemeInput{
			UserID: userID, EffectiveFrom: from, EffectiveTo: &to,
		})
		appErr := apperror.GetAppError(err)
		if appErr == nil || appErr.Code != 400 {
			t.Errorf("CreateScheme() error = %v, want 400", err)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc := NewCompensationService(&fakeCompensationRepo{}, nil, nil, &fakeUserRepo{})

		_, err := svc.CreateScheme(context.Background(), &CreateSchemeInput{
			UserID: uuid.New(), EffectiveFrom: from,
		})
		if !apperror.IsNotFound(err) {
			t.Errorf("CreateScheme() error = %v, want not found", err)
		}
	})
}

func TestCalculate_GuardRails(t *testing.T) {
	userID := uuid.New()

	t.Run("month out of range", func(t *testing.T) {
		svc := NewCompensationService(&fakeCompensationRepo{}, nil, nil, nil)

		_, err := svc.Calculate(context.Background(), &CalculateInput{UserID: userID, Year: 2026, Month: 13})
		appErr := apperror.GetAppError(err)
		if appErr == nil || appErr.Code != 400 {
			t.Errorf("Calculate() error = %v, want 400", err)
		}
	})

	t.Run("no scheme covers the period", func(t *testing.T) {
		svc := NewCompensationService(&fakeCompensationRepo{}, nil, nil, nil)

		_, err := svc.Calculate(context.Background(), &CalculateInput{UserID: userID, Year: 2026, Month: 3})
		if !apperror.IsNotFound(err) {
			t.Errorf("Calculate() error = %v, want not found", err)
		}
	})

	t.Run("period already computed", func(t *testing.T) {
		repo := &fakeCompensationRepo{
			covering:      &entity.CompensationScheme{ID: uuid.New(), UserID: userID},
			existingEntry: &entity.CompensationEntry{ID: uuid.New()},
		}
		svc := NewCompensationService(repo, nil, nil, nil)

		_, err := svc.Calculate(context.Background(), &CalculateInput{UserID: userID, Year: 2026, Month: 3})
		appErr := apperror.GetAppError(err)
		if appErr == nil || appErr.Kind != apperror.KindConflict {
			t.Errorf("Calculate() error = %v, want conflict", err)
		}
	})
}

func TestCalculate_SalaryWithBonus(t *testing.T) {
	userID := uuid.New()
	scheme := &entity.CompensationScheme{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       enum.CompensationSalaryBonus,
		BaseSalary: 3000,
	}
	repo := &fakeCompensationRepo{covering: scheme}
	svc := NewCompensationService(repo, nil, nil, nil)

	multiplier := 0.5
	entry, err := svc.Calculate(context.Background(), &CalculateInput{
		UserID: userID, Year: 2026, Month: 3, BonusMultiplier: &multiplier,
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if entry.BaseSalary != 3000 {
		t.Errorf("BaseSalary = %v, want 3000", entry.BaseSalary)
	}
	if entry.BonusAmount != 1500 {
		t.Errorf("BonusAmount = %v, want 1500", entry.BonusAmount)
	}
	if entry.PercentageEarnings != 0 {
		t.Errorf("PercentageEarnings = %v, want 0 for a salary scheme", entry.PercentageEarnings)
	}
	if entry.TotalEarned != 4500 {
		t.Errorf("TotalEarned = %v, want 4500", entry.TotalEarned)
	}
	if entry.Balance != entry.TotalEarned {
		t.Errorf("Balance = %v, want full TotalEarned before payouts", entry.Balance)
	}
	if len(repo.createdEntries) != 1 {
		t.Errorf("CreateEntry called %d times, want 1", len(repo.createdEntries))
	}
}

func TestCalculate_PercentageEarnings(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()

	scheme := &entity.CompensationScheme{
		ID:                uuid.New(),
		UserID:            userID,
		Type:              enum.CompensationPercentageBased,
		BaseSalary:        1000,
		PercentageType:    enum.PercentageBoth,
		ProjectPercent:    10,
		DirectWorkPercent: 50,
	}
	repo := &fakeCompensationRepo{
		covering:   scheme,
		candidates: []entity.Project{{ID: projectID, ClientID: clientID}},
	}
	timesheets := &fakeTimesheetRepo{timesheets: []entity.Timesheet{
		{ProjectID: projectID, Hours: 10, HourlyRate: 50},
	}}
	invoices := &fakeInvoiceRepo{paidInvoices: []entity.Invoice{
		{
			ID:          uuid.New(),
			ProjectID:   &projectID,
			Status:      enum.InvoiceStatusPaid,
			TotalAmount: 2000,
		},
	}}
	svc := NewCompensationService(repo, timesheets, invoices, nil)

	entry, err := svc.Calculate(context.Background(), &CalculateInput{UserID: userID, Year: 2026, Month: 3})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// 10% of the 2000 paid project total.
	if math.Abs(entry.ProjectTotalEarnings-200) > 1e-9 {
		t.Errorf("ProjectTotalEarnings = %v, want 200", entry.ProjectTotalEarnings)
	}
	// 50% of 10h * 50 logged work.
	if math.Abs(entry.DirectWorkEarnings-250) > 1e-9 {
		t.Errorf("DirectWorkEarnings = %v, want 250", entry.DirectWorkEarnings)
	}
	if math.Abs(entry.PercentageEarnings-450) > 1e-9 {
		t.Errorf("PercentageEarnings = %v, want 450", entry.PercentageEarnings)
	}
	if math.Abs(entry.TotalEarned-1450) > 1e-9 {
		t.Errorf("TotalEarned = %v, want base 1000 + 450", entry.TotalEarned)
	}
}

func TestCalculate_IneligibleProjectExcluded(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()
	projectID := uuid.New()

	scheme := &entity.CompensationScheme{
		ID:             uuid.New(),
		UserID:         userID,
		Type:           enum.CompensationPercentageBased,
		PercentageType: enum.PercentageProjectTotal,
		ProjectPercent: 10,
		Overrides: []entity.EligibilityOverride{
			{ProjectID: &projectID, IsEligible: false},
		},
	}
	repo := &fakeCompensationRepo{
		covering:   scheme,
		candidates: []entity.Project{{ID: projectID, ClientID: clientID}},
	}
	invoices := &fakeInvoiceRepo{paidInvoices: []entity.Invoice{
		{ID: uuid.New(), ProjectID: &projectID, Status: enum.InvoiceStatusPaid, TotalAmount: 5000},
	}}
	svc := NewCompensationService(repo, &fakeTimesheetRepo{}, invoices, nil)

	entry, err := svc.Calculate(context.Background(), &CalculateInput{UserID: userID, Year: 2026, Month: 3})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if entry.PercentageEarnings != 0 {
		t.Errorf("PercentageEarnings = %v, want 0 for an excluded project", entry.PercentageEarnings)
	}
}

func TestUpsertEligibility_RequiresExactlyOneScope(t *testing.T) {
	schemeID := uuid.New()
	repo := &fakeCompensationRepo{schemes: map[uuid.UUID]*entity.CompensationScheme{
		schemeID: {ID: schemeID},
	}}
	svc := NewCompensationService(repo, nil, nil, nil)
	projectID := uuid.New()
	clientID := uuid.New()

	tests := []struct {
		name  string
		input UpsertEligibilityInput
		valid bool
	}{
		{"no scope", UpsertEligibilityInput{SchemeID: schemeID}, false},
		{"two scopes", UpsertEligibilityInput{SchemeID: schemeID, ProjectID: &projectID, ClientID: &clientID}, false},
		{"one scope", UpsertEligibilityInput{SchemeID: schemeID, ProjectID: &projectID, IsEligible: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertEligibility(context.Background(), &tt.input)
			if tt.valid && err != nil {
				t.Errorf("UpsertEligibility() error = %v, want nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("UpsertEligibility() error = nil, want validation error")
			}
		})
	}
}

func TestRecordPayment(t *testing.T) {
	entryID := uuid.New()
	repo := &fakeCompensationRepo{entries: map[uuid.UUID]*entity.CompensationEntry{
		entryID: {ID: entryID, TotalEarned: 4500, Balance: 4500},
	}}
	svc := NewCompensationService(repo, nil, nil, nil)

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{EntryID: entryID, Amount: 0})
		appErr := apperror.GetAppError(err)
		if appErr == nil || appErr.Code != 400 {
			t.Errorf("RecordPayment() error = %v, want 400", err)
		}
	})

	t.Run("payment reduces the balance", func(t *testing.T) {
		entry, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
			EntryID: entryID, Amount: 1500, PaidAt: date(2026, 4, 1),
		})
		if err != nil {
			t.Fatalf("RecordPayment() error = %v", err)
		}
		if entry.TotalPaid != 1500 {
			t.Errorf("TotalPaid = %v, want 1500", entry.TotalPaid)
		}
		if entry.Balance != 3000 {
			t.Errorf("Balance = %v, want 3000", entry.Balance)
		}
		if len(repo.payments) != 1 {
			t.Errorf("RecordPayment persisted %d payments, want 1", len(repo.payments))
		}
	})

	t.Run("unknown entry is not found", func(t *testing.T) {
		_, err := svc.RecordPayment(context.Background(), &RecordPaymentInput{
			EntryID: uuid.New(), Amount: 100, PaidAt: date(2026, 4, 1),
		})
		if !apperror.IsNotFound(err) {
			t.Errorf("RecordPayment() error = %v, want not found", err)
		}
	})
}
